package persistence

import (
	"context"

	"github.com/intercel/backend/internal/domain/shared"
	"github.com/intercel/backend/internal/domain/siteconfig"
	"github.com/intercel/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSiteConfigRepository implements siteconfig.Repository using GORM
type GormSiteConfigRepository struct {
	db *gorm.DB
}

// NewGormSiteConfigRepository creates a new GormSiteConfigRepository
func NewGormSiteConfigRepository(db *gorm.DB) *GormSiteConfigRepository {
	return &GormSiteConfigRepository{db: db}
}

// FindAll returns every entry ordered by key
func (r *GormSiteConfigRepository) FindAll(ctx context.Context) ([]siteconfig.Entry, error) {
	var rows []models.SiteConfigModel
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]siteconfig.Entry, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries, nil
}

// FindByKey finds one entry by its key
func (r *GormSiteConfigRepository) FindByKey(ctx context.Context, key string) (*siteconfig.Entry, error) {
	var model models.SiteConfigModel
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates an entry
func (r *GormSiteConfigRepository) Save(ctx context.Context, entry *siteconfig.Entry) error {
	model := models.SiteConfigModelFromDomain(entry)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// DeleteByKey deletes one entry by its key
func (r *GormSiteConfigRepository) DeleteByKey(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).Where("key = ?", key).Delete(&models.SiteConfigModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSiteConfigRepository implements Repository
var _ siteconfig.Repository = (*GormSiteConfigRepository)(nil)
