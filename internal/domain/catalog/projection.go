package catalog

import "github.com/google/uuid"

// PublicPlan is the storefront view of an active plan
type PublicPlan struct {
	ID              uuid.UUID `json:"id"`
	Price           int64     `json:"price"`
	Data            string    `json:"data"`
	OriginalData    *string   `json:"originalData"`
	Multiplier      *string   `json:"multiplier"`
	Features        string    `json:"features"`
	SMS             *string   `json:"sms"`
	Duration        string    `json:"duration"`
	Calls           bool      `json:"calls"`
	UnlimitedSocial bool      `json:"unlimitedSocial"`
	Featured        bool      `json:"featured"`
	Tag             *string   `json:"tag"`
	IsMifi          bool      `json:"isMifi"`
}

// PublicCategory is the storefront view of an active category.
// ID carries the category name, which is the key the storefront routes on.
type PublicCategory struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Icon  string       `json:"icon"`
	Plans []PublicPlan `json:"plans"`
}

// PublicCategorySummary is an active category with the number of active plans it holds
type PublicCategorySummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	Icon      string    `json:"icon"`
	PlanCount int       `json:"planCount"`
}

// ProjectPublicCatalog derives the storefront catalog from the full admin catalog.
// Only active categories appear, in display order, each with its active plans in display order.
// A category with no active plans is still included with an empty plan list.
// The inputs are not modified.
func ProjectPublicCatalog(categories []Category, plans []Plan) []PublicCategory {
	visible := activeCategories(categories)
	byCategory := activePlansByCategory(plans)

	result := make([]PublicCategory, 0, len(visible))
	for _, c := range visible {
		owned := byCategory[c.ID]
		SortPlans(owned)

		publicPlans := make([]PublicPlan, 0, len(owned))
		for i := range owned {
			publicPlans = append(publicPlans, ToPublicPlan(&owned[i]))
		}
		result = append(result, PublicCategory{
			ID:    c.Name,
			Label: c.Label,
			Icon:  c.Icon,
			Plans: publicPlans,
		})
	}
	return result
}

// SummarizePublicCategories lists active categories in display order with their active plan counts
func SummarizePublicCategories(categories []Category, plans []Plan) []PublicCategorySummary {
	visible := activeCategories(categories)
	byCategory := activePlansByCategory(plans)

	result := make([]PublicCategorySummary, 0, len(visible))
	for _, c := range visible {
		result = append(result, PublicCategorySummary{
			ID:        c.ID,
			Name:      c.Name,
			Label:     c.Label,
			Icon:      c.Icon,
			PlanCount: len(byCategory[c.ID]),
		})
	}
	return result
}

// ToPublicPlan renames plan fields to the storefront contract
func ToPublicPlan(p *Plan) PublicPlan {
	return PublicPlan{
		ID:              p.ID,
		Price:           p.Price,
		Data:            p.Data,
		OriginalData:    cloneText(p.OriginalData),
		Multiplier:      cloneText(p.Multiplier),
		Features:        p.Features,
		SMS:             cloneText(p.SMS),
		Duration:        p.Duration,
		Calls:           p.HasCalls,
		UnlimitedSocial: p.UnlimitedSocial,
		Featured:        p.IsFeatured,
		Tag:             cloneText(p.Tag),
		IsMifi:          p.IsMifi,
	}
}

func activeCategories(categories []Category) []Category {
	visible := make([]Category, 0, len(categories))
	for i := range categories {
		if categories[i].IsActive {
			visible = append(visible, categories[i])
		}
	}
	SortCategories(visible)
	return visible
}

func activePlansByCategory(plans []Plan) map[uuid.UUID][]Plan {
	byCategory := make(map[uuid.UUID][]Plan)
	for i := range plans {
		if plans[i].IsActive {
			byCategory[plans[i].CategoryID] = append(byCategory[plans[i].CategoryID], plans[i])
		}
	}
	return byCategory
}
