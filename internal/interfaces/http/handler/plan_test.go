package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	catalogapp "github.com/intercel/backend/internal/application/catalog"
	"github.com/intercel/backend/internal/domain/catalog"
	"github.com/intercel/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanHandler_CreateDefaults(t *testing.T) {
	s := newTestServer(t)
	cat := s.createCategory(t, "monthly", 0)

	plan := s.createPlan(t, cat.ID.String(), "5GB", 0, map[string]any{"tag": "Más vendido"})
	assert.Equal(t, cat.ID, plan.CategoryID)
	assert.Equal(t, int64(1500), plan.Price)
	assert.True(t, plan.IsActive)
	assert.False(t, plan.IsFeatured)
	assert.False(t, plan.HasCalls)
	require.NotNil(t, plan.Tag)
	assert.Equal(t, "Más vendido", *plan.Tag)
	assert.Nil(t, plan.SMS)
	require.NotNil(t, plan.Category)
	assert.Equal(t, "monthly", plan.Category.Name)
}

func TestPlanHandler_CreateValidation(t *testing.T) {
	s := newTestServer(t)
	cat := s.createCategory(t, "monthly", 0)

	t.Run("missing required fields", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/plans", map[string]any{
			"categoryId": cat.ID,
			"price":      -5,
		})
		errInfo := decodeFailure(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.True(t, hasDetail(errInfo.Details, "price"))
		assert.True(t, hasDetail(errInfo.Details, "data"))
		assert.True(t, hasDetail(errInfo.Details, "features"))
		assert.True(t, hasDetail(errInfo.Details, "duration"))
	})

	t.Run("unknown category", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/plans", map[string]any{
			"categoryId": uuid.New(),
			"price":      100,
			"data":       "1GB",
			"features":   "Redes",
			"duration":   "7 días",
		})
		errInfo := decodeFailure(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.True(t, hasDetail(errInfo.Details, "categoryId"))
	})

	t.Run("wrong json type", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/plans", `{"categoryId":"`+cat.ID.String()+`","price":"cheap"}`)
		errInfo := decodeFailure(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.True(t, hasDetail(errInfo.Details, "price"))
	})
}

func TestPlanHandler_ListOrdersByCategoryThenPlan(t *testing.T) {
	s := newTestServer(t)
	annual := s.createCategory(t, "annual", 1)
	monthly := s.createCategory(t, "monthly", 0)
	a1 := s.createPlan(t, annual.ID.String(), "100GB", 0, nil)
	m2 := s.createPlan(t, monthly.ID.String(), "10GB", 1, nil)
	m1 := s.createPlan(t, monthly.ID.String(), "5GB", 0, map[string]any{"isActive": false})

	var all []catalogapp.PlanResponse
	decodeData(t, s.do(t, http.MethodGet, "/api/plans", nil), http.StatusOK, &all)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{m1.ID, m2.ID, a1.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})
	require.NotNil(t, all[2].Category)
	assert.Equal(t, "annual", all[2].Category.Name)

	var filtered []catalogapp.PlanResponse
	decodeData(t, s.do(t, http.MethodGet, "/api/plans?categoryId="+monthly.ID.String()+"&isActive=true", nil),
		http.StatusOK, &filtered)
	require.Len(t, filtered, 1)
	assert.Equal(t, m2.ID, filtered[0].ID)
}

func TestPlanHandler_ListFilterErrors(t *testing.T) {
	s := newTestServer(t)
	cat := s.createCategory(t, "monthly", 0)
	s.createPlan(t, cat.ID.String(), "5GB", 0, nil)

	t.Run("malformed category id", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/plans?categoryId=monthly", nil)
		errInfo := decodeFailure(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.True(t, hasDetail(errInfo.Details, "categoryId"))
	})

	t.Run("malformed active flag", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/plans?isActive=maybe", nil)
		decodeFailure(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("unknown category id", func(t *testing.T) {
		var plans []catalogapp.PlanResponse
		decodeData(t, s.do(t, http.MethodGet, "/api/plans?categoryId="+uuid.NewString(), nil), http.StatusOK, &plans)
		assert.Empty(t, plans)
	})
}

func TestPlanHandler_UpdateClearsNullableFields(t *testing.T) {
	s := newTestServer(t)
	cat := s.createCategory(t, "monthly", 0)
	plan := s.createPlan(t, cat.ID.String(), "5GB", 0, map[string]any{
		"tag": "Nuevo",
		"sms": "100 SMS",
	})

	var updated catalogapp.PlanResponse
	decodeData(t, s.do(t, http.MethodPut, "/api/plans/"+plan.ID.String(), `{"tag":null,"price":2000}`),
		http.StatusOK, &updated)
	assert.Nil(t, updated.Tag)
	require.NotNil(t, updated.SMS)
	assert.Equal(t, "100 SMS", *updated.SMS)
	assert.Equal(t, int64(2000), updated.Price)
	assert.Equal(t, "5GB", updated.Data)
}

func TestPlanHandler_UpdateMovesCategory(t *testing.T) {
	s := newTestServer(t)
	from := s.createCategory(t, "monthly", 0)
	to := s.createCategory(t, "annual", 1)
	plan := s.createPlan(t, from.ID.String(), "5GB", 0, nil)

	var moved catalogapp.PlanResponse
	decodeData(t, s.do(t, http.MethodPut, "/api/plans/"+plan.ID.String(), map[string]any{"categoryId": to.ID}),
		http.StatusOK, &moved)
	assert.Equal(t, to.ID, moved.CategoryID)

	w := s.do(t, http.MethodPut, "/api/plans/"+plan.ID.String(), map[string]any{"categoryId": uuid.New()})
	errInfo := decodeFailure(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	assert.True(t, hasDetail(errInfo.Details, "categoryId"))
}

func TestPlanHandler_DuplicateAndToggle(t *testing.T) {
	s := newTestServer(t)
	cat := s.createCategory(t, "monthly", 0)
	plan := s.createPlan(t, cat.ID.String(), "5GB", 3, nil)

	var cp catalogapp.PlanResponse
	decodeData(t, s.do(t, http.MethodPost, "/api/plans/"+plan.ID.String()+"/duplicate", nil), http.StatusCreated, &cp)
	assert.NotEqual(t, plan.ID, cp.ID)
	assert.Equal(t, "5GB"+catalog.CopySuffix, cp.Data)
	assert.Equal(t, 4, cp.Order)
	assert.Equal(t, plan.CategoryID, cp.CategoryID)

	var toggled catalogapp.PlanResponse
	decodeData(t, s.do(t, http.MethodPost, "/api/plans/"+plan.ID.String()+"/toggle-featured", nil), http.StatusOK, &toggled)
	assert.True(t, toggled.IsFeatured)
	decodeData(t, s.do(t, http.MethodPost, "/api/plans/"+plan.ID.String()+"/toggle-featured", nil), http.StatusOK, &toggled)
	assert.False(t, toggled.IsFeatured)

	missing := "/api/plans/" + uuid.NewString()
	decodeFailure(t, s.do(t, http.MethodPost, missing+"/duplicate", nil), http.StatusNotFound, dto.ErrCodeNotFound)
	decodeFailure(t, s.do(t, http.MethodPost, missing+"/toggle-featured", nil), http.StatusNotFound, dto.ErrCodeNotFound)
}

func TestPlanHandler_Delete(t *testing.T) {
	s := newTestServer(t)
	cat := s.createCategory(t, "monthly", 0)
	plan := s.createPlan(t, cat.ID.String(), "5GB", 0, nil)

	w := s.do(t, http.MethodDelete, "/api/plans/"+plan.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	decodeFailure(t, s.do(t, http.MethodDelete, "/api/plans/"+plan.ID.String(), nil), http.StatusNotFound, dto.ErrCodeNotFound)
	decodeFailure(t, s.do(t, http.MethodGet, "/api/plans/bogus", nil), http.StatusBadRequest, dto.ErrCodeValidation)
}

func TestPlanHandler_Reorder(t *testing.T) {
	s := newTestServer(t)
	cat := s.createCategory(t, "monthly", 0)
	other := s.createCategory(t, "annual", 1)
	p1 := s.createPlan(t, cat.ID.String(), "5GB", 0, nil)
	p2 := s.createPlan(t, cat.ID.String(), "10GB", 1, nil)
	foreign := s.createPlan(t, other.ID.String(), "50GB", 0, nil)

	var resp catalogapp.ReorderResponse
	decodeData(t, s.do(t, http.MethodPut, "/api/plans/reorder", map[string]any{
		"categoryId": cat.ID,
		"orders": []map[string]any{
			{"id": p1.ID, "order": 1},
			{"id": p2.ID, "order": 0},
		},
	}), http.StatusOK, &resp)
	assert.Equal(t, 2, resp.Updated)

	var detail catalogapp.CategoryDetailResponse
	decodeData(t, s.do(t, http.MethodGet, "/api/categories/"+cat.ID.String(), nil), http.StatusOK, &detail)
	require.Len(t, detail.Plans, 2)
	assert.Equal(t, p2.ID, detail.Plans[0].ID)

	t.Run("plan from another category rejects the batch", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/plans/reorder", map[string]any{
			"categoryId": cat.ID,
			"orders": []map[string]any{
				{"id": p1.ID, "order": 7},
				{"id": foreign.ID, "order": 8},
			},
		})
		errInfo := decodeFailure(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.True(t, hasDetail(errInfo.Details, "orders[1].id"))

		var p catalogapp.PlanResponse
		decodeData(t, s.do(t, http.MethodGet, "/api/plans/"+p1.ID.String(), nil), http.StatusOK, &p)
		assert.Equal(t, 1, p.Order)
	})

	t.Run("missing category id", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/plans/reorder", map[string]any{
			"orders": []map[string]any{{"id": p1.ID, "order": 0}},
		})
		errInfo := decodeFailure(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.True(t, hasDetail(errInfo.Details, "categoryId"))
	})

	t.Run("unknown category", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/plans/reorder", map[string]any{
			"categoryId": uuid.New(),
			"orders":     []map[string]any{{"id": p1.ID, "order": 0}},
		})
		decodeFailure(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})
}
