package siteconfig

import (
	"testing"

	"github.com/intercel/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		typ     ValueType
		want    ValueType
		wantErr string
	}{
		{name: "defaults to string", key: "whatsapp_number", value: "+53 5555 5555", want: ValueTypeString},
		{name: "number", key: "exchange_rate", value: "320.5", typ: ValueTypeNumber, want: ValueTypeNumber},
		{name: "boolean", key: "maintenance", value: "true", typ: ValueTypeBoolean, want: ValueTypeBoolean},
		{name: "json", key: "banner", value: `{"title":"Oferta"}`, typ: ValueTypeJSON, want: ValueTypeJSON},
		{name: "bad number", key: "exchange_rate", value: "abc", typ: ValueTypeNumber, wantErr: "value"},
		{name: "bad boolean", key: "maintenance", value: "maybe", typ: ValueTypeBoolean, wantErr: "value"},
		{name: "bad json", key: "banner", value: "{", typ: ValueTypeJSON, wantErr: "value"},
		{name: "unknown type", key: "x", value: "1", typ: "int", wantErr: "type"},
		{name: "empty key", key: " ", value: "1", wantErr: "key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewEntry(tt.key, tt.value, tt.typ)
			if tt.wantErr != "" {
				var de *shared.DomainError
				require.ErrorAs(t, err, &de)
				assert.Equal(t, shared.KindValidation, de.Kind)
				assert.Equal(t, tt.wantErr, de.Details[0].Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, entry.Type)
			assert.Equal(t, tt.value, entry.Value)
		})
	}
}

func TestEntry_Set(t *testing.T) {
	entry, err := NewEntry("exchange_rate", "320", ValueTypeNumber)
	require.NoError(t, err)

	t.Run("keeps type when omitted", func(t *testing.T) {
		require.NoError(t, entry.Set("330", ""))
		assert.Equal(t, ValueTypeNumber, entry.Type)
		assert.Equal(t, "330", entry.Value)
	})

	t.Run("rejects value of the kept type", func(t *testing.T) {
		require.Error(t, entry.Set("n/a", ""))
		assert.Equal(t, "330", entry.Value)
	})

	t.Run("changes type", func(t *testing.T) {
		require.NoError(t, entry.Set("n/a", ValueTypeString))
		assert.Equal(t, ValueTypeString, entry.Type)
	})
}
