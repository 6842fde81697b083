package catalog

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/intercel/backend/internal/domain/catalog"
)

// NullableString is a JSON string field that tells an absent key apart from an explicit null.
// An absent key leaves Set false. A null sets Set with a nil Value.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// MarshalJSON implements json.Marshaler
func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Null returns a NullableString that clears the field
func Null() NullableString {
	return NullableString{Set: true}
}

// Text returns a NullableString that sets the field to s
func Text(s string) NullableString {
	return NullableString{Set: true, Value: &s}
}

func (n NullableString) toOptional() catalog.OptionalText {
	return catalog.OptionalText{Set: n.Set, Value: n.Value}
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Label    string `json:"label" binding:"required,min=2,max=100"`
	Icon     string `json:"icon" binding:"required,min=2,max=50"`
	Order    *int   `json:"order" binding:"omitempty,min=0"`
	IsActive *bool  `json:"isActive"`
}

// UpdateCategoryRequest represents a partial category update. The name cannot be changed.
type UpdateCategoryRequest struct {
	Label    *string `json:"label" binding:"omitempty,min=2,max=100"`
	Icon     *string `json:"icon" binding:"omitempty,min=2,max=50"`
	Order    *int    `json:"order" binding:"omitempty,min=0"`
	IsActive *bool   `json:"isActive"`
}

func (r UpdateCategoryRequest) toPatch() catalog.CategoryPatch {
	return catalog.CategoryPatch{
		Label:    r.Label,
		Icon:     r.Icon,
		Order:    r.Order,
		IsActive: r.IsActive,
	}
}

// CategoryListFilter represents filter options for the admin category list
type CategoryListFilter struct {
	IsActive *bool `form:"isActive"`
}

// CreatePlanRequest represents a request to create a plan
type CreatePlanRequest struct {
	CategoryID      uuid.UUID `json:"categoryId" binding:"required"`
	Price           *int64    `json:"price" binding:"required,min=0"`
	Data            string    `json:"data" binding:"required,min=1,max=50"`
	OriginalData    *string   `json:"originalData" binding:"omitempty,max=50"`
	Multiplier      *string   `json:"multiplier" binding:"omitempty,max=50"`
	Features        string    `json:"features" binding:"required,min=1,max=255"`
	SMS             *string   `json:"sms" binding:"omitempty,max=100"`
	Duration        string    `json:"duration" binding:"required,min=1,max=50"`
	HasCalls        *bool     `json:"hasCalls"`
	UnlimitedSocial *bool     `json:"unlimitedSocial"`
	IsFeatured      *bool     `json:"isFeatured"`
	IsMifi          *bool     `json:"isMifi"`
	IsActive        *bool     `json:"isActive"`
	Tag             *string   `json:"tag" binding:"omitempty,max=255"`
	Order           *int      `json:"order" binding:"omitempty,min=0"`
}

func (r CreatePlanRequest) toAttributes() catalog.PlanAttributes {
	attrs := catalog.PlanAttributes{
		CategoryID:      r.CategoryID,
		Data:            r.Data,
		OriginalData:    r.OriginalData,
		Multiplier:      r.Multiplier,
		Features:        r.Features,
		SMS:             r.SMS,
		Duration:        r.Duration,
		HasCalls:        boolOr(r.HasCalls, false),
		UnlimitedSocial: boolOr(r.UnlimitedSocial, false),
		IsFeatured:      boolOr(r.IsFeatured, false),
		IsMifi:          boolOr(r.IsMifi, false),
		IsActive:        boolOr(r.IsActive, true),
		Tag:             r.Tag,
	}
	if r.Price != nil {
		attrs.Price = *r.Price
	}
	if r.Order != nil {
		attrs.Order = *r.Order
	}
	return attrs
}

// UpdatePlanRequest represents a partial plan update.
// Nullable text fields accept an explicit null to clear the stored value.
type UpdatePlanRequest struct {
	CategoryID      *uuid.UUID     `json:"categoryId"`
	Price           *int64         `json:"price" binding:"omitempty,min=0"`
	Data            *string        `json:"data" binding:"omitempty,min=1,max=50"`
	OriginalData    NullableString `json:"originalData"`
	Multiplier      NullableString `json:"multiplier"`
	Features        *string        `json:"features" binding:"omitempty,min=1,max=255"`
	SMS             NullableString `json:"sms"`
	Duration        *string        `json:"duration" binding:"omitempty,min=1,max=50"`
	HasCalls        *bool          `json:"hasCalls"`
	UnlimitedSocial *bool          `json:"unlimitedSocial"`
	IsFeatured      *bool          `json:"isFeatured"`
	IsMifi          *bool          `json:"isMifi"`
	IsActive        *bool          `json:"isActive"`
	Tag             NullableString `json:"tag"`
	Order           *int           `json:"order" binding:"omitempty,min=0"`
}

func (r UpdatePlanRequest) toPatch() catalog.PlanPatch {
	return catalog.PlanPatch{
		CategoryID:      r.CategoryID,
		Price:           r.Price,
		Data:            r.Data,
		OriginalData:    r.OriginalData.toOptional(),
		Multiplier:      r.Multiplier.toOptional(),
		Features:        r.Features,
		SMS:             r.SMS.toOptional(),
		Duration:        r.Duration,
		HasCalls:        r.HasCalls,
		UnlimitedSocial: r.UnlimitedSocial,
		IsFeatured:      r.IsFeatured,
		IsMifi:          r.IsMifi,
		IsActive:        r.IsActive,
		Tag:             r.Tag.toOptional(),
		Order:           r.Order,
	}
}

// PlanListFilter represents filter options for the admin plan list
type PlanListFilter struct {
	CategoryID *uuid.UUID
	IsActive   *bool
}

// ReorderCategoriesRequest assigns new orders to categories
type ReorderCategoriesRequest struct {
	Orders []catalog.OrderAssignment `json:"orders" binding:"dive"`
}

// ReorderPlansRequest assigns new orders to the plans of one category
type ReorderPlansRequest struct {
	CategoryID uuid.UUID                 `json:"categoryId" binding:"required"`
	Orders     []catalog.OrderAssignment `json:"orders" binding:"dive"`
}

// ReorderResponse reports how many records a reorder updated
type ReorderResponse struct {
	Updated int `json:"updated"`
}

// CategoryResponse represents a category in admin API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	Icon      string    `json:"icon"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"isActive"`
	PlanCount int64     `json:"planCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryDetailResponse is a category with its plans in display order
type CategoryDetailResponse struct {
	CategoryResponse
	Plans []PlanResponse `json:"plans"`
}

// CategoryRef is the owning category embedded in plan responses
type CategoryRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Icon     string    `json:"icon"`
	IsActive bool      `json:"isActive"`
}

// DeleteCategoryResponse reports the outcome of a cascade delete
type DeleteCategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PlansRemoved int64     `json:"plansRemoved"`
}

// PlanResponse represents a plan in admin API responses
type PlanResponse struct {
	ID              uuid.UUID    `json:"id"`
	CategoryID      uuid.UUID    `json:"categoryId"`
	Price           int64        `json:"price"`
	Data            string       `json:"data"`
	OriginalData    *string      `json:"originalData"`
	Multiplier      *string      `json:"multiplier"`
	Features        string       `json:"features"`
	SMS             *string      `json:"sms"`
	Duration        string       `json:"duration"`
	HasCalls        bool         `json:"hasCalls"`
	UnlimitedSocial bool         `json:"unlimitedSocial"`
	IsFeatured      bool         `json:"isFeatured"`
	IsMifi          bool         `json:"isMifi"`
	IsActive        bool         `json:"isActive"`
	Tag             *string      `json:"tag"`
	Order           int          `json:"order"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
	Category        *CategoryRef `json:"category,omitempty"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category, planCount int64) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Label:     c.Label,
		Icon:      c.Icon,
		Order:     c.SortOrder,
		IsActive:  c.IsActive,
		PlanCount: planCount,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCategoryRef converts a domain Category to the reference embedded in plans
func ToCategoryRef(c *catalog.Category) *CategoryRef {
	if c == nil {
		return nil
	}
	return &CategoryRef{
		ID:       c.ID,
		Name:     c.Name,
		Label:    c.Label,
		Icon:     c.Icon,
		IsActive: c.IsActive,
	}
}

// ToPlanResponse converts a domain Plan to PlanResponse
func ToPlanResponse(p *catalog.Plan, category *catalog.Category) PlanResponse {
	return PlanResponse{
		ID:              p.ID,
		CategoryID:      p.CategoryID,
		Price:           p.Price,
		Data:            p.Data,
		OriginalData:    p.OriginalData,
		Multiplier:      p.Multiplier,
		Features:        p.Features,
		SMS:             p.SMS,
		Duration:        p.Duration,
		HasCalls:        p.HasCalls,
		UnlimitedSocial: p.UnlimitedSocial,
		IsFeatured:      p.IsFeatured,
		IsMifi:          p.IsMifi,
		IsActive:        p.IsActive,
		Tag:             p.Tag,
		Order:           p.SortOrder,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Category:        ToCategoryRef(category),
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
