// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free of ORM tags.
//
// Structure:
//   - base.go: BaseModel shared by every table
//   - catalog.go: categories and plans
//   - siteconfig.go: key/value site configuration
//
// Each model exposes ToDomain, FromDomain and an XModelFromDomain constructor.
// The SQL files under migrations/ are the schema of record for PostgreSQL;
// AllModels is only used to create the schema for the embedded SQLite mode.
package models

// AllModels returns the models managed by this package in dependency order
func AllModels() []any {
	return []any{
		&CategoryModel{},
		&PlanModel{},
		&SiteConfigModel{},
	}
}
