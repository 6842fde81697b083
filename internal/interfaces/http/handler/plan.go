package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/intercel/backend/internal/application/catalog"
	"github.com/intercel/backend/internal/domain/shared"
)

// PlanHandler handles admin plan endpoints
type PlanHandler struct {
	BaseHandler
	planService     *catalogapp.PlanService
	orderingService *catalogapp.OrderingService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService *catalogapp.PlanService, orderingService *catalogapp.OrderingService) *PlanHandler {
	return &PlanHandler{
		planService:     planService,
		orderingService: orderingService,
	}
}

// planListQuery holds the raw query filters of the plan list
type planListQuery struct {
	CategoryID string `form:"categoryId"`
	IsActive   *bool  `form:"isActive"`
}

// List godoc
// @Summary      List plans
// @Description  Plans ordered by category order then plan order, each with its category reference
// @Tags         plans
// @Produce      json
// @Param        categoryId query string false "Category ID" format(uuid)
// @Param        isActive query bool false "Filter by active flag"
// @Success      200 {object} dto.Response{data=[]catalog.PlanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	var query planListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	filter := catalogapp.PlanListFilter{IsActive: query.IsActive}
	if query.CategoryID != "" {
		categoryID, err := uuid.Parse(query.CategoryID)
		if err != nil {
			h.HandleError(c, shared.NewFieldError("categoryId", "categoryId must be a valid UUID"))
			return
		}
		filter.CategoryID = &categoryID
	}

	plans, err := h.planService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plans)
}

// GetByID godoc
// @Summary      Get plan by ID
// @Tags         plans
// @Produce      json
// @Param        id path string true "Plan ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.PlanResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /plans/{id} [get]
func (h *PlanHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	plan, err := h.planService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// Create godoc
// @Summary      Create a plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreatePlanRequest true "Plan"
// @Success      201 {object} dto.Response{data=catalog.PlanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /plans [post]
func (h *PlanHandler) Create(c *gin.Context) {
	var req catalogapp.CreatePlanRequest
	if !h.bindJSON(c, &req) {
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, plan)
}

// Update godoc
// @Summary      Update a plan
// @Description  Partial update. Send null to clear an optional text field.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        id path string true "Plan ID" format(uuid)
// @Param        request body catalog.UpdatePlanRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=catalog.PlanResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /plans/{id} [put]
func (h *PlanHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req catalogapp.UpdatePlanRequest
	if !h.bindJSON(c, &req) {
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// Delete godoc
// @Summary      Delete a plan
// @Tags         plans
// @Param        id path string true "Plan ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /plans/{id} [delete]
func (h *PlanHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.planService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Duplicate godoc
// @Summary      Duplicate a plan
// @Description  Copies the plan into the same category at the end of its order
// @Tags         plans
// @Produce      json
// @Param        id path string true "Plan ID" format(uuid)
// @Success      201 {object} dto.Response{data=catalog.PlanResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /plans/{id}/duplicate [post]
func (h *PlanHandler) Duplicate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	plan, err := h.planService.Duplicate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, plan)
}

// ToggleFeatured godoc
// @Summary      Flip the featured flag of a plan
// @Tags         plans
// @Produce      json
// @Param        id path string true "Plan ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.PlanResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /plans/{id}/toggle-featured [post]
func (h *PlanHandler) ToggleFeatured(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	plan, err := h.planService.ToggleFeatured(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// Reorder godoc
// @Summary      Reorder the plans of one category
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        request body catalog.ReorderPlansRequest true "Category and order assignments"
// @Success      200 {object} dto.Response{data=catalog.ReorderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /plans/reorder [put]
func (h *PlanHandler) Reorder(c *gin.Context) {
	var req catalogapp.ReorderPlansRequest
	if !h.bindJSON(c, &req) {
		return
	}

	updated, err := h.orderingService.ReorderPlans(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, catalogapp.ReorderResponse{Updated: updated})
}
