package models

import (
	"github.com/intercel/backend/internal/domain/siteconfig"
)

// SiteConfigModel is the persistence model for a site config entry.
type SiteConfigModel struct {
	BaseModel
	Key   string               `gorm:"type:varchar(100);not null;uniqueIndex:idx_site_configs_key"`
	Value string               `gorm:"type:text;not null"`
	Type  siteconfig.ValueType `gorm:"type:varchar(20);not null;default:'string'"`
}

// TableName returns the table name for GORM
func (SiteConfigModel) TableName() string {
	return "site_configs"
}

// ToDomain converts the persistence model to a domain Entry.
func (m *SiteConfigModel) ToDomain() *siteconfig.Entry {
	return &siteconfig.Entry{
		BaseEntity: m.BaseModel.ToDomain(),
		Key:        m.Key,
		Value:      m.Value,
		Type:       m.Type,
	}
}

// FromDomain populates the persistence model from a domain Entry.
func (m *SiteConfigModel) FromDomain(e *siteconfig.Entry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Key = e.Key
	m.Value = e.Value
	m.Type = e.Type
}

// SiteConfigModelFromDomain creates a new persistence model from a domain Entry.
func SiteConfigModelFromDomain(e *siteconfig.Entry) *SiteConfigModel {
	m := &SiteConfigModel{}
	m.FromDomain(e)
	return m
}
