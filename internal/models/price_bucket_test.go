package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceBucket_Slug(t *testing.T) {
	assert.Equal(t, "10000_49999", PriceBucket{Min: 10000, Max: 49999}.Slug())
}

func TestPriceBucket_ContainsInclusiveBounds(t *testing.T) {
	bucket := PriceBucket{Min: 10000, Max: 49999}

	assert.False(t, bucket.Contains(9999))
	assert.True(t, bucket.Contains(10000))
	assert.True(t, bucket.Contains(30000))
	assert.True(t, bucket.Contains(49999))
	assert.False(t, bucket.Contains(50000))
}

func TestParsePriceBucket(t *testing.T) {
	bucket, ok := ParsePriceBucket("10000_49999")
	require.True(t, ok)
	assert.Equal(t, PriceBucket{Min: 10000, Max: 49999}, bucket)

	_, ok = ParsePriceBucket("10000")
	assert.False(t, ok)

	_, ok = ParsePriceBucket("abc_def")
	assert.False(t, ok)

	_, ok = ParsePriceBucket("10000_abc")
	assert.False(t, ok)

	_, ok = ParsePriceBucket("500_100")
	assert.False(t, ok)
}

func TestParsePriceBucket_RoundTrip(t *testing.T) {
	original := PriceBucket{Min: 0, Max: 499}

	parsed, ok := ParsePriceBucket(original.Slug())

	require.True(t, ok)
	assert.Equal(t, original, parsed)
}
