package handler

import (
	"github.com/gin-gonic/gin"
	siteconfigapp "github.com/intercel/backend/internal/application/siteconfig"
)

// SiteConfigHandler handles admin config endpoints
type SiteConfigHandler struct {
	BaseHandler
	service *siteconfigapp.Service
}

// NewSiteConfigHandler creates a new SiteConfigHandler
func NewSiteConfigHandler(service *siteconfigapp.Service) *SiteConfigHandler {
	return &SiteConfigHandler{service: service}
}

// List godoc
// @Summary      List config entries
// @Tags         config
// @Produce      json
// @Success      200 {object} dto.Response{data=[]siteconfig.EntryResponse}
// @Security     BearerAuth
// @Router       /config [get]
func (h *SiteConfigHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// Upsert godoc
// @Summary      Create or replace a config entry
// @Description  An omitted type keeps the stored type, or string for a new key
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        key path string true "Config key"
// @Param        request body siteconfig.UpsertEntryRequest true "Value and type"
// @Success      200 {object} dto.Response{data=siteconfig.EntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /config/{key} [put]
func (h *SiteConfigHandler) Upsert(c *gin.Context) {
	var req siteconfigapp.UpsertEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.service.Upsert(c.Request.Context(), c.Param("key"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// Delete godoc
// @Summary      Delete a config entry
// @Tags         config
// @Param        key path string true "Config key"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /config/{key} [delete]
func (h *SiteConfigHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("key")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
