package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/intercel/backend/internal/application/catalog"
	siteconfigapp "github.com/intercel/backend/internal/application/siteconfig"
)

// PublicHandler serves the unauthenticated storefront endpoints
type PublicHandler struct {
	BaseHandler
	catalogService    *catalogapp.PublicCatalogService
	siteConfigService *siteconfigapp.Service
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(catalogService *catalogapp.PublicCatalogService, siteConfigService *siteconfigapp.Service) *PublicHandler {
	return &PublicHandler{
		catalogService:    catalogService,
		siteConfigService: siteConfigService,
	}
}

// Plans godoc
// @Summary      Storefront plans
// @Description  Active categories in display order, each with its active plans in display order
// @Tags         public
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalog.PublicCategory}
// @Router       /public/plans [get]
func (h *PublicHandler) Plans(c *gin.Context) {
	categories, err := h.catalogService.Plans(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// Categories godoc
// @Summary      Storefront categories
// @Description  Active categories with the number of active plans in each
// @Tags         public
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalog.PublicCategorySummary}
// @Router       /public/categories [get]
func (h *PublicHandler) Categories(c *gin.Context) {
	categories, err := h.catalogService.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// Config godoc
// @Summary      Storefront settings
// @Description  Flat key to value map of every config entry
// @Tags         public
// @Produce      json
// @Success      200 {object} dto.Response{data=map[string]string}
// @Router       /public/config [get]
func (h *PublicHandler) Config(c *gin.Context) {
	values, err := h.siteConfigService.PublicMap(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, values)
}
