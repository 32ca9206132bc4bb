package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/torgmarket/catalog-api/internal/config"
	"github.com/torgmarket/catalog-api/internal/models"
	"github.com/torgmarket/catalog-api/internal/observability"
	"github.com/torgmarket/catalog-api/internal/services"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrorResponse is the uniform error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// GetCataloguePage godoc
// @Summary Get a catalogue page for a filter path
// @Description Decodes the filter tokens of the URL path, runs the faceted catalogue query and returns the assembled page: title, products, facet attributes, selected filters and pagination.
// @Tags catalogue
// @Accept json
// @Produce json
// @Param rubric path string true "Rubric slug"
// @Param filters path string false "Slash-separated filter tokens (key-value)"
// @Param search query string false "Free-text search"
// @Param locale query string false "Locale code (default: configured locale)"
// @Success 200 {object} models.CataloguePage "Catalogue page assembled successfully"
// @Failure 404 {object} ErrorResponse "Rubric not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /catalogue/{rubric}/{filters} [get]
func GetCataloguePage(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetCataloguePage")
	defer span.End()

	rubricSlug := c.Param("rubric")
	filters := splitFilterPath(c.Param("filters"))
	search := c.Query("search")
	locale := c.DefaultQuery("locale", config.AppConfig.DefaultLocale)
	logger := observability.Logger().With(zap.String("rubric", rubricSlug))

	span.SetAttributes(
		attribute.String("rubric", rubricSlug),
		attribute.Int("filter_tokens", len(filters)),
		attribute.String("locale", locale),
		attribute.Bool("has_search", search != ""),
		attribute.String("operation", "get_catalogue_page"),
	)

	if services.CatalogServiceInstance == nil {
		logger.Error("catalog service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Catalog service unavailable"})
		return
	}

	page, err := services.CatalogServiceInstance.GetCataloguePage(ctx, services.CatalogueRequest{
		RubricSlug: rubricSlug,
		Filters:    filters,
		Search:     search,
		Locale:     locale,
		BasePath:   catalogueBasePath(rubricSlug),
	})
	if err != nil {
		if errors.Is(err, models.ErrRubricNotFound) {
			observability.CatalogueQueries.WithLabelValues(rubricSlug, "not_found").Inc()
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Rubric not found"})
			return
		}
		observability.CatalogueQueries.WithLabelValues(rubricSlug, "error").Inc()
		logger.Error("failed to build catalogue page", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build catalogue page"})
		return
	}

	observability.CatalogueQueries.WithLabelValues(rubricSlug, "success").Inc()
	c.JSON(http.StatusOK, page)

	logger.Debug("GetCataloguePage completed",
		zap.Int("total", page.Pagination.Total),
		zap.Int("products", len(page.Products)),
		zap.Duration("total_duration", time.Since(startTime)),
		zap.String("status", "success"))
}

// GetCategoryTree godoc
// @Summary Get the category tree of a rubric
// @Description Returns the rubric's categories as a sorted hierarchy with localized, optionally gendered names.
// @Tags catalogue
// @Accept json
// @Produce json
// @Param rubric path string true "Rubric slug"
// @Param locale query string false "Locale code"
// @Param gender query string false "Grammatical gender override (he/she/it)"
// @Success 200 {array} models.TreeNode "Category tree"
// @Failure 404 {object} ErrorResponse "Rubric not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /rubrics/{rubric}/categories [get]
func GetCategoryTree(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetCategoryTree")
	defer span.End()

	rubricSlug := c.Param("rubric")
	locale := c.DefaultQuery("locale", config.AppConfig.DefaultLocale)
	gender := c.Query("gender")
	logger := observability.Logger().With(zap.String("rubric", rubricSlug))

	span.SetAttributes(
		attribute.String("rubric", rubricSlug),
		attribute.String("operation", "get_category_tree"),
	)

	if services.CatalogServiceInstance == nil {
		logger.Error("catalog service not initialized")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Catalog service unavailable"})
		return
	}

	tree, err := services.CatalogServiceInstance.GetCategoryTree(ctx, rubricSlug, locale, gender)
	if err != nil {
		if errors.Is(err, models.ErrRubricNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Rubric not found"})
			return
		}
		logger.Error("failed to build category tree", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build category tree"})
		return
	}

	c.JSON(http.StatusOK, tree)
}

// catalogueBasePath builds the prefix filter links are emitted under. It has
// to match the mounted route, version prefix included, or the hrefs in the
// page would not resolve against this service.
func catalogueBasePath(rubricSlug string) string {
	return "/v1/catalogue/" + rubricSlug
}

// splitFilterPath turns a gin wildcard path into an ordered token list
func splitFilterPath(raw string) []string {
	var tokens []string
	for _, segment := range strings.Split(raw, "/") {
		if segment != "" {
			tokens = append(tokens, segment)
		}
	}
	return tokens
}
