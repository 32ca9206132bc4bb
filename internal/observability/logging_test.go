package observability

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/torgmarket/catalog-api/internal/logging"
)

func TestLogger(t *testing.T) {
	require.NoError(t, logging.InitLogger())

	logger := Logger()
	require.NotNil(t, logger)

	// Should be safe to use
	logger.Info("test message")
}
