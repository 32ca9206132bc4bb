package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/torgmarket/catalog-api/internal/config"
	"github.com/torgmarket/catalog-api/internal/logging"
	"github.com/torgmarket/catalog-api/internal/services"
)

func setupCatalogHandlersTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	_ = logging.InitLogger()
	require.NoError(t, config.LoadConfig())

	router := gin.New()
	router.GET("/v1/catalogue/:rubric", GetCataloguePage)
	router.GET("/v1/catalogue/:rubric/*filters", GetCataloguePage)
	router.GET("/v1/rubrics/:rubric/categories", GetCategoryTree)
	return router
}

func TestSplitFilterPath(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single slash", "/", nil},
		{"one token", "/brand-canon", []string{"brand-canon"}},
		{"several tokens", "/brand-canon/tsvet-chernyj/page-2", []string{"brand-canon", "tsvet-chernyj", "page-2"}},
		{"empty segments skipped", "//brand-canon//", []string{"brand-canon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitFilterPath(tt.raw))
		})
	}
}

func TestCatalogueBasePath(t *testing.T) {
	// Filter links must carry the version prefix the routes are mounted under
	assert.Equal(t, "/v1/catalogue/fotoapparaty", catalogueBasePath("fotoapparaty"))
}

func TestGetCataloguePage_ServiceUnavailable(t *testing.T) {
	router := setupCatalogHandlersTest(t)
	services.CatalogServiceInstance = nil

	req, _ := http.NewRequest("GET", "/v1/catalogue/fotoapparaty/brand-canon", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Error)
}

func TestGetCategoryTree_ServiceUnavailable(t *testing.T) {
	router := setupCatalogHandlersTest(t)
	services.CatalogServiceInstance = nil

	req, _ := http.NewRequest("GET", "/v1/rubrics/fotoapparaty/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
