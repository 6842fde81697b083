package siteconfig_test

import (
	"context"
	"testing"

	appsiteconfig "github.com/intercel/backend/internal/application/siteconfig"
	"github.com/intercel/backend/internal/domain/shared"
	"github.com/intercel/backend/internal/infrastructure/config"
	"github.com/intercel/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *appsiteconfig.Service {
	t.Helper()
	database, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
	}, nil)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate())
	t.Cleanup(func() { _ = database.Close() })

	return appsiteconfig.NewService(persistence.NewGormSiteConfigRepository(database.DB), nil)
}

func TestService_UpsertCreatesAndUpdates(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Upsert(ctx, "exchange_rate", appsiteconfig.UpsertEntryRequest{Value: "320", Type: "number"})
	require.NoError(t, err)
	assert.Equal(t, "number", created.Type)

	updated, err := svc.Upsert(ctx, "exchange_rate", appsiteconfig.UpsertEntryRequest{Value: "335.5"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "number", updated.Type, "type is kept when omitted")
	assert.Equal(t, "335.5", updated.Value)

	_, err = svc.Upsert(ctx, "exchange_rate", appsiteconfig.UpsertEntryRequest{Value: "n/a"})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.KindValidation, de.Kind)
}

func TestService_UpsertDefaultsToString(t *testing.T) {
	svc := newService(t)

	entry, err := svc.Upsert(context.Background(), "whatsapp_number", appsiteconfig.UpsertEntryRequest{Value: "+53 5555 5555"})
	require.NoError(t, err)
	assert.Equal(t, "string", entry.Type)
}

func TestService_ListAndPublicMap(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Upsert(ctx, "maintenance", appsiteconfig.UpsertEntryRequest{Value: "false", Type: "boolean"})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, "banner", appsiteconfig.UpsertEntryRequest{Value: `{"title":"Oferta"}`, Type: "json"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "banner", list[0].Key)
	assert.Equal(t, "maintenance", list[1].Key)

	public, err := svc.PublicMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"banner":      `{"title":"Oferta"}`,
		"maintenance": "false",
	}, public)
}

func TestService_Delete(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Upsert(ctx, "promo", appsiteconfig.UpsertEntryRequest{Value: "on"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "promo"))

	err = svc.Delete(ctx, "promo")
	assert.True(t, shared.IsNotFound(err))

	public, err := svc.PublicMap(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)
}
