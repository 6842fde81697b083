package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	catalogapp "github.com/intercel/backend/internal/application/catalog"
	siteconfigapp "github.com/intercel/backend/internal/application/siteconfig"
	"go.uber.org/zap"
)

// seeder loads the initial storefront through the application services,
// so seeded rows pass the same validation as admin edits
type seeder struct {
	categories *catalogapp.CategoryService
	plans      *catalogapp.PlanService
	settings   *siteconfigapp.Service
	logger     *zap.Logger
}

// seedResult counts what a run changed
type seedResult struct {
	CategoriesCreated int
	CategoriesUpdated int
	CategoriesRemoved int
	PlansRemoved      int
	PlansCreated      int
	SettingsUpserted  int
}

// Run upserts categories by name, replaces every plan, drops categories that
// are no longer part of the catalog and upserts the default settings.
// Running it twice leaves the same catalog.
func (s *seeder) Run(ctx context.Context, catalog []seedCategory, settings []seedSetting) (*seedResult, error) {
	result := &seedResult{}

	existing, err := s.categories.List(ctx, catalogapp.CategoryListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]uuid.UUID, len(existing))
	for _, c := range existing {
		byName[c.Name] = c.ID
	}

	wanted := make(map[string]uuid.UUID, len(catalog))
	for i, cat := range catalog {
		order := i + 1
		if id, ok := byName[cat.Name]; ok {
			label, icon := cat.Label, cat.Icon
			if _, err := s.categories.Update(ctx, id, catalogapp.UpdateCategoryRequest{
				Label: &label,
				Icon:  &icon,
				Order: &order,
			}); err != nil {
				return nil, fmt.Errorf("update category %s: %w", cat.Name, err)
			}
			wanted[cat.Name] = id
			result.CategoriesUpdated++
			continue
		}

		created, err := s.categories.Create(ctx, catalogapp.CreateCategoryRequest{
			Name:  cat.Name,
			Label: cat.Label,
			Icon:  cat.Icon,
			Order: &order,
		})
		if err != nil {
			return nil, fmt.Errorf("create category %s: %w", cat.Name, err)
		}
		wanted[cat.Name] = created.ID
		result.CategoriesCreated++
	}

	plans, err := s.plans.List(ctx, catalogapp.PlanListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	for _, p := range plans {
		if err := s.plans.Delete(ctx, p.ID); err != nil {
			return nil, fmt.Errorf("delete plan %s: %w", p.ID, err)
		}
		result.PlansRemoved++
	}

	for name, id := range byName {
		if _, ok := wanted[name]; ok {
			continue
		}
		if _, err := s.categories.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("delete obsolete category %s: %w", name, err)
		}
		result.CategoriesRemoved++
	}

	for _, cat := range catalog {
		for j, p := range cat.Plans {
			if _, err := s.plans.Create(ctx, p.request(wanted[cat.Name], j+1)); err != nil {
				return nil, fmt.Errorf("create plan %q in %s: %w", p.Data, cat.Name, err)
			}
			result.PlansCreated++
		}
		s.logger.Info("Seeded category",
			zap.String("category", cat.Name),
			zap.Int("plans", len(cat.Plans)))
	}

	for _, setting := range settings {
		if _, err := s.settings.Upsert(ctx, setting.Key, siteconfigapp.UpsertEntryRequest{
			Value: setting.Value,
			Type:  setting.Type,
		}); err != nil {
			return nil, fmt.Errorf("upsert setting %s: %w", setting.Key, err)
		}
		result.SettingsUpserted++
	}

	return result, nil
}

func (p seedPlan) request(categoryID uuid.UUID, order int) catalogapp.CreatePlanRequest {
	price := p.Price
	hasCalls, social, featured, mifi := p.HasCalls, p.UnlimitedSocial, p.IsFeatured, p.IsMifi
	return catalogapp.CreatePlanRequest{
		CategoryID:      categoryID,
		Price:           &price,
		Data:            p.Data,
		OriginalData:    p.OriginalData,
		Multiplier:      p.Multiplier,
		Features:        p.Features,
		SMS:             p.SMS,
		Duration:        p.Duration,
		HasCalls:        &hasCalls,
		UnlimitedSocial: &social,
		IsFeatured:      &featured,
		IsMifi:          &mifi,
		Tag:             p.Tag,
		Order:           &order,
	}
}
