package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/intercel/backend/internal/domain/catalog"
	"github.com/intercel/backend/internal/domain/shared"
	"github.com/intercel/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// planListOrder sorts by the owning category's display order, then the plan's own
const planListOrder = "categories.sort_order ASC, categories.created_at ASC, categories.id ASC, " +
	"plans.sort_order ASC, plans.created_at ASC, plans.id ASC"

// GormPlanRepository implements PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by its ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all plans matching the filter
func (r *GormPlanRepository) FindAll(ctx context.Context, filter catalog.PlanFilter) ([]catalog.Plan, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PlanModel{}).
		Select("plans.*").
		Joins("JOIN categories ON categories.id = plans.category_id")
	query = applyPlanFilter(query, filter)

	var rows []models.PlanModel
	if err := query.Order(planListOrder).Find(&rows).Error; err != nil {
		return nil, err
	}
	return plansToDomain(rows), nil
}

// FindByIDs finds the plans with the given IDs
func (r *GormPlanRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Plan, error) {
	if len(ids) == 0 {
		return []catalog.Plan{}, nil
	}
	var rows []models.PlanModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return plansToDomain(rows), nil
}

// CountByCategory counts plans per category for plans matching the filter
func (r *GormPlanRepository) CountByCategory(ctx context.Context, filter catalog.PlanFilter) (map[uuid.UUID]int64, error) {
	type row struct {
		CategoryID uuid.UUID
		Total      int64
	}
	var rows []row
	query := applyPlanFilter(r.db.WithContext(ctx).Model(&models.PlanModel{}), filter)
	if err := query.
		Select("plans.category_id AS category_id, COUNT(*) AS total").
		Group("plans.category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Total
	}
	return counts, nil
}

// Save creates or updates a plan. A missing category yields a categoryId validation error.
func (r *GormPlanRepository) Save(ctx context.Context, plan *catalog.Plan) error {
	model := models.PlanModelFromDomain(plan)
	if err := r.db.WithContext(ctx).Omit("Category").Save(model).Error; err != nil {
		return translateError(err)
	}
	plan.CreatedAt = model.CreatedAt
	plan.UpdatedAt = model.UpdatedAt
	return nil
}

// UpdateOrder sets the order of one plan
func (r *GormPlanRepository) UpdateOrder(ctx context.Context, id uuid.UUID, order int) error {
	result := r.db.WithContext(ctx).Model(&models.PlanModel{}).
		Where("id = ?", id).
		Update("sort_order", order)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a plan
func (r *GormPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PlanModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByCategory deletes every plan of a category
func (r *GormPlanRepository) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Delete(&models.PlanModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func applyPlanFilter(query *gorm.DB, filter catalog.PlanFilter) *gorm.DB {
	if filter.CategoryID != nil {
		query = query.Where("plans.category_id = ?", *filter.CategoryID)
	}
	if filter.IsActive != nil {
		query = query.Where("plans.is_active = ?", *filter.IsActive)
	}
	return query
}

func plansToDomain(rows []models.PlanModel) []catalog.Plan {
	plans := make([]catalog.Plan, len(rows))
	for i := range rows {
		plans[i] = *rows[i].ToDomain()
	}
	return plans
}

// Ensure GormPlanRepository implements PlanRepository
var _ catalog.PlanRepository = (*GormPlanRepository)(nil)
