package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/intercel/backend/internal/application/catalog"
	siteconfigapp "github.com/intercel/backend/internal/application/siteconfig"
	"github.com/intercel/backend/internal/infrastructure/config"
	"github.com/intercel/backend/internal/infrastructure/persistence"
	"github.com/intercel/backend/internal/interfaces/http/dto"
	"github.com/intercel/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testServer wires the handlers to real services backed by in-memory sqlite
type testServer struct {
	engine   *gin.Engine
	database *persistence.Database
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	database, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
	}, nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate())
	t.Cleanup(func() { _ = database.Close() })

	categoryRepo := persistence.NewGormCategoryRepository(database.DB)
	planRepo := persistence.NewGormPlanRepository(database.DB)
	cfg := catalogapp.ServiceConfig{
		CategoryRepo: categoryRepo,
		PlanRepo:     planRepo,
		TxScope:      persistence.NewGormTransactionScope(database.DB),
	}
	ordering := catalogapp.NewOrderingService(cfg)
	siteConfig := siteconfigapp.NewService(persistence.NewGormSiteConfigRepository(database.DB), nil)

	categories := NewCategoryHandler(catalogapp.NewCategoryService(cfg), ordering)
	plans := NewPlanHandler(catalogapp.NewPlanService(cfg), ordering)
	public := NewPublicHandler(catalogapp.NewPublicCatalogService(catalogapp.PublicCatalogServiceConfig{
		CategoryRepo: categoryRepo,
		PlanRepo:     planRepo,
		TxScope:      cfg.TxScope,
	}), siteConfig)
	configs := NewSiteConfigHandler(siteConfig)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	pub := engine.Group("/api/public")
	pub.GET("/plans", public.Plans)
	pub.GET("/categories", public.Categories)
	pub.GET("/config", public.Config)

	api := engine.Group("/api")
	api.GET("/categories", categories.List)
	api.POST("/categories", categories.Create)
	api.PUT("/categories/reorder", categories.Reorder)
	api.GET("/categories/:id", categories.GetByID)
	api.PUT("/categories/:id", categories.Update)
	api.DELETE("/categories/:id", categories.Delete)

	api.GET("/plans", plans.List)
	api.POST("/plans", plans.Create)
	api.PUT("/plans/reorder", plans.Reorder)
	api.GET("/plans/:id", plans.GetByID)
	api.PUT("/plans/:id", plans.Update)
	api.DELETE("/plans/:id", plans.Delete)
	api.POST("/plans/:id/duplicate", plans.Duplicate)
	api.POST("/plans/:id/toggle-featured", plans.ToggleFeatured)

	api.GET("/config", configs.List)
	api.PUT("/config/:key", configs.Upsert)
	api.DELETE("/config/:key", configs.Delete)

	return &testServer{engine: engine, database: database}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// envelope is dto.Response with the data left raw for typed decoding
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}

// decodeData asserts a success envelope with the given status and decodes its data into dest
func decodeData(t *testing.T, w *httptest.ResponseRecorder, status int, dest any) {
	t.Helper()
	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

// decodeFailure asserts an error envelope with the given status and code
func decodeFailure(t *testing.T, w *httptest.ResponseRecorder, status int, code string) *dto.ErrorInfo {
	t.Helper()
	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
	env := decodeEnvelope(t, w)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	require.Equal(t, code, env.Error.Code)
	require.NotEmpty(t, env.Error.RequestID)
	return env.Error
}

func (s *testServer) createCategory(t *testing.T, name string, order int) catalogapp.CategoryResponse {
	t.Helper()
	var cat catalogapp.CategoryResponse
	decodeData(t, s.do(t, http.MethodPost, "/api/categories", map[string]any{
		"name":  name,
		"label": "Plan " + name,
		"icon":  "calendar",
		"order": order,
	}), http.StatusCreated, &cat)
	return cat
}

func (s *testServer) createPlan(t *testing.T, categoryID string, data string, order int, extra map[string]any) catalogapp.PlanResponse {
	t.Helper()
	body := map[string]any{
		"categoryId": categoryID,
		"price":      1500,
		"data":       data,
		"features":   "Llamadas ilimitadas",
		"duration":   "30 días",
		"order":      order,
	}
	for k, v := range extra {
		body[k] = v
	}
	var plan catalogapp.PlanResponse
	decodeData(t, s.do(t, http.MethodPost, "/api/plans", body), http.StatusCreated, &plan)
	return plan
}

func hasDetail(details []dto.ValidationDetail, field string) bool {
	for _, d := range details {
		if d.Field == field {
			return true
		}
	}
	return false
}
