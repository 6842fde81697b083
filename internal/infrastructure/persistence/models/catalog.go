package models

import (
	"github.com/google/uuid"
	"github.com/intercel/backend/internal/domain/catalog"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	BaseModel
	Name      string `gorm:"type:varchar(50);not null;uniqueIndex:idx_categories_name"`
	Label     string `gorm:"type:varchar(100);not null"`
	Icon      string `gorm:"type:varchar(50);not null"`
	SortOrder int    `gorm:"not null;default:0;index:idx_categories_sort"`
	IsActive  bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseAggregateRoot: m.aggregateRoot(),
		Name:              m.Name,
		Label:             m.Label,
		Icon:              m.Icon,
		SortOrder:         m.SortOrder,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Label = c.Label
	m.Icon = c.Icon
	m.SortOrder = c.SortOrder
	m.IsActive = c.IsActive
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// PlanModel is the persistence model for the Plan domain entity.
// Data is wider than the create bound so duplicated labels with the copy suffix fit.
type PlanModel struct {
	BaseModel
	CategoryID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_plans_category_sort,priority:1"`
	Category        *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Price           int64          `gorm:"not null;default:0"`
	Data            string         `gorm:"type:varchar(100);not null"`
	OriginalData    *string        `gorm:"type:varchar(50)"`
	Multiplier      *string        `gorm:"type:varchar(50)"`
	Features        string         `gorm:"type:varchar(255);not null"`
	SMS             *string        `gorm:"column:sms;type:varchar(100)"`
	Duration        string         `gorm:"type:varchar(50);not null"`
	HasCalls        bool           `gorm:"not null;default:false"`
	UnlimitedSocial bool           `gorm:"not null;default:false"`
	IsFeatured      bool           `gorm:"not null;default:false"`
	IsMifi          bool           `gorm:"not null;default:false"`
	IsActive        bool           `gorm:"not null"`
	Tag             *string        `gorm:"type:varchar(255)"`
	SortOrder       int            `gorm:"not null;default:0;index:idx_plans_category_sort,priority:2"`
}

// TableName returns the table name for GORM
func (PlanModel) TableName() string {
	return "plans"
}

// ToDomain converts the persistence model to a domain Plan entity.
func (m *PlanModel) ToDomain() *catalog.Plan {
	return &catalog.Plan{
		BaseAggregateRoot: m.aggregateRoot(),
		CategoryID:        m.CategoryID,
		Price:             m.Price,
		Data:              m.Data,
		OriginalData:      m.OriginalData,
		Multiplier:        m.Multiplier,
		Features:          m.Features,
		SMS:               m.SMS,
		Duration:          m.Duration,
		HasCalls:          m.HasCalls,
		UnlimitedSocial:   m.UnlimitedSocial,
		IsFeatured:        m.IsFeatured,
		IsMifi:            m.IsMifi,
		IsActive:          m.IsActive,
		Tag:               m.Tag,
		SortOrder:         m.SortOrder,
	}
}

// FromDomain populates the persistence model from a domain Plan entity.
func (m *PlanModel) FromDomain(p *catalog.Plan) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.CategoryID = p.CategoryID
	m.Price = p.Price
	m.Data = p.Data
	m.OriginalData = p.OriginalData
	m.Multiplier = p.Multiplier
	m.Features = p.Features
	m.SMS = p.SMS
	m.Duration = p.Duration
	m.HasCalls = p.HasCalls
	m.UnlimitedSocial = p.UnlimitedSocial
	m.IsFeatured = p.IsFeatured
	m.IsMifi = p.IsMifi
	m.IsActive = p.IsActive
	m.Tag = p.Tag
	m.SortOrder = p.SortOrder
}

// PlanModelFromDomain creates a new persistence model from a domain Plan entity.
func PlanModelFromDomain(p *catalog.Plan) *PlanModel {
	m := &PlanModel{}
	m.FromDomain(p)
	return m
}
