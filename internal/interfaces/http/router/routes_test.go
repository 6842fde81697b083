package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/intercel/backend/internal/application/catalog"
	siteconfigapp "github.com/intercel/backend/internal/application/siteconfig"
	"github.com/intercel/backend/internal/infrastructure/auth"
	"github.com/intercel/backend/internal/infrastructure/config"
	"github.com/intercel/backend/internal/infrastructure/persistence"
	"github.com/intercel/backend/internal/interfaces/http/dto"
	"github.com/intercel/backend/internal/interfaces/http/handler"
	"github.com/intercel/backend/internal/interfaces/http/middleware"
	"github.com/intercel/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminRole = "admin"

type catalogServer struct {
	engine *gin.Engine
	jwt    *auth.JWTService
}

func newCatalogServer(t *testing.T) *catalogServer {
	t.Helper()
	middleware.SetupValidator()

	database := testutil.NewSQLiteDatabase(t)

	categoryRepo := persistence.NewGormCategoryRepository(database.DB)
	planRepo := persistence.NewGormPlanRepository(database.DB)
	cfg := catalogapp.ServiceConfig{
		CategoryRepo: categoryRepo,
		PlanRepo:     planRepo,
		TxScope:      persistence.NewGormTransactionScope(database.DB),
	}
	ordering := catalogapp.NewOrderingService(cfg)
	siteConfig := siteconfigapp.NewService(persistence.NewGormSiteConfigRepository(database.DB), nil)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret-with-enough-length!!",
		Issuer:                "intercel-test",
		AdminRole:             adminRole,
		AccessTokenExpiration: time.Hour,
	})

	h := CatalogHandlers{
		Categories: handler.NewCategoryHandler(catalogapp.NewCategoryService(cfg), ordering),
		Plans:      handler.NewPlanHandler(catalogapp.NewPlanService(cfg), ordering),
		SiteConfig: handler.NewSiteConfigHandler(siteConfig),
		Public: handler.NewPublicHandler(catalogapp.NewPublicCatalogService(catalogapp.PublicCatalogServiceConfig{
			CategoryRepo: categoryRepo,
			PlanRepo:     planRepo,
			TxScope:      cfg.TxScope,
		}), siteConfig),
		System: handler.NewSystemHandler(database, "intercel-api", "test"),
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	SetupCatalog(engine, h, []gin.HandlerFunc{
		middleware.JWTAuthMiddleware(jwtService),
		middleware.RequireRole(adminRole),
	})

	return &catalogServer{engine: engine, jwt: jwtService}
}

func (s *catalogServer) token(t *testing.T, roles ...string) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "operator",
		Roles:    roles,
	})
	require.NoError(t, err)
	return token
}

func (s *catalogServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.Request(t, s.engine, method, path, token, body)
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestCatalogRouteTable(t *testing.T) {
	h := CatalogHandlers{}
	var routes []Route
	for _, g := range []*DomainGroup{
		PublicRoutes(h),
		CategoryRoutes(h),
		PlanRoutes(h),
		SiteConfigRoutes(h),
	} {
		routes = append(routes, g.Routes()...)
	}

	assert.ElementsMatch(t, []Route{
		{http.MethodGet, "/public/plans"},
		{http.MethodGet, "/public/categories"},
		{http.MethodGet, "/public/config"},
		{http.MethodGet, "/categories"},
		{http.MethodPost, "/categories"},
		{http.MethodPut, "/categories/reorder"},
		{http.MethodGet, "/categories/:id"},
		{http.MethodPut, "/categories/:id"},
		{http.MethodDelete, "/categories/:id"},
		{http.MethodGet, "/plans"},
		{http.MethodPost, "/plans"},
		{http.MethodPut, "/plans/reorder"},
		{http.MethodGet, "/plans/:id"},
		{http.MethodPut, "/plans/:id"},
		{http.MethodDelete, "/plans/:id"},
		{http.MethodPost, "/plans/:id/duplicate"},
		{http.MethodPost, "/plans/:id/toggle-featured"},
		{http.MethodGet, "/config"},
		{http.MethodPut, "/config/:key"},
		{http.MethodDelete, "/config/:key"},
	}, routes)
}

func TestSetupCatalog_PublicRoutesNeedNoToken(t *testing.T) {
	s := newCatalogServer(t)

	for _, path := range []string{"/health", "/api/public/plans", "/api/public/categories", "/api/public/config"} {
		w := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestSetupCatalog_AdminRoutesRequireToken(t *testing.T) {
	s := newCatalogServer(t)

	w := s.do(t, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeUnauthorized, errorCode(t, w))

	w = s.do(t, http.MethodGet, "/api/plans", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenInvalid, errorCode(t, w))

	w = s.do(t, http.MethodGet, "/api/config", s.token(t, "viewer"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrCodeForbidden, errorCode(t, w))

	w = s.do(t, http.MethodGet, "/api/system/info", s.token(t), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSetupCatalog_AdminFlow(t *testing.T) {
	s := newCatalogServer(t)
	token := s.token(t, adminRole)

	w := s.do(t, http.MethodPost, "/api/categories", token, map[string]any{
		"name": "monthly", "label": "Monthly", "icon": "calendar",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = s.do(t, http.MethodPut, "/api/categories/reorder", token, map[string]any{
		"orders": []map[string]any{{"id": created.Data.ID, "order": 4}},
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/plans", token, map[string]any{
		"categoryId": created.Data.ID, "data": "10GB", "price": 1500,
		"features": "4G LTE", "duration": "30 days",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/public/plans", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var public struct {
		Data []struct {
			ID    string            `json:"id"`
			Plans []json.RawMessage `json:"plans"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &public))
	require.Len(t, public.Data, 1)
	assert.Equal(t, "monthly", public.Data[0].ID)
	assert.Len(t, public.Data[0].Plans, 1)

	w = s.do(t, http.MethodGet, "/api/system/info", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
