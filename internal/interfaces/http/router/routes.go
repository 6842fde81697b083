package router

import (
	"github.com/gin-gonic/gin"
	"github.com/intercel/backend/internal/interfaces/http/handler"
)

// CatalogHandlers bundles the handlers mounted under the API base path
type CatalogHandlers struct {
	Categories *handler.CategoryHandler
	Plans      *handler.PlanHandler
	SiteConfig *handler.SiteConfigHandler
	Public     *handler.PublicHandler
	System     *handler.SystemHandler
}

// PublicRoutes is the unauthenticated storefront surface
func PublicRoutes(h CatalogHandlers) *DomainGroup {
	return NewDomainGroup("public", "/public").
		GET("/plans", h.Public.Plans).
		GET("/categories", h.Public.Categories).
		GET("/config", h.Public.Config)
}

// CategoryRoutes is the admin category surface guarded by admin
func CategoryRoutes(h CatalogHandlers, admin ...gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("categories", "/categories").
		Use(admin...).
		GET("", h.Categories.List).
		POST("", h.Categories.Create).
		PUT("/reorder", h.Categories.Reorder).
		GET("/:id", h.Categories.GetByID).
		PUT("/:id", h.Categories.Update).
		DELETE("/:id", h.Categories.Delete)
}

// PlanRoutes is the admin plan surface guarded by admin
func PlanRoutes(h CatalogHandlers, admin ...gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("plans", "/plans").
		Use(admin...).
		GET("", h.Plans.List).
		POST("", h.Plans.Create).
		PUT("/reorder", h.Plans.Reorder).
		GET("/:id", h.Plans.GetByID).
		PUT("/:id", h.Plans.Update).
		DELETE("/:id", h.Plans.Delete).
		POST("/:id/duplicate", h.Plans.Duplicate).
		POST("/:id/toggle-featured", h.Plans.ToggleFeatured)
}

// SiteConfigRoutes is the admin site settings surface guarded by admin
func SiteConfigRoutes(h CatalogHandlers, admin ...gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("config", "/config").
		Use(admin...).
		GET("", h.SiteConfig.List).
		PUT("/:key", h.SiteConfig.Upsert).
		DELETE("/:key", h.SiteConfig.Delete)
}

// SystemRoutes exposes build information to administrators
func SystemRoutes(h CatalogHandlers, admin ...gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("system", "/system").
		Use(admin...).
		GET("/info", h.System.GetSystemInfo)
}

// SetupCatalog mounts /health on the engine and every catalog group under
// the router's base path. admin runs in front of each admin group.
func SetupCatalog(engine *gin.Engine, h CatalogHandlers, admin []gin.HandlerFunc, opts ...RouterOption) *Router {
	engine.GET("/health", h.System.Health)

	r := NewRouter(engine, opts...)
	r.Register(
		PublicRoutes(h),
		CategoryRoutes(h, admin...),
		PlanRoutes(h, admin...),
		SiteConfigRoutes(h, admin...),
		SystemRoutes(h, admin...),
	)
	r.Setup()
	return r
}
