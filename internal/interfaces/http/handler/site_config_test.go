package handler

import (
	"net/http"
	"testing"

	siteconfigapp "github.com/intercel/backend/internal/application/siteconfig"
	"github.com/intercel/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteConfigHandler_UpsertKeepsType(t *testing.T) {
	s := newTestServer(t)

	var created siteconfigapp.EntryResponse
	decodeData(t, s.do(t, http.MethodPut, "/api/config/max_plans", map[string]any{"value": "12", "type": "number"}),
		http.StatusOK, &created)
	assert.Equal(t, "max_plans", created.Key)
	assert.Equal(t, "number", created.Type)

	var updated siteconfigapp.EntryResponse
	decodeData(t, s.do(t, http.MethodPut, "/api/config/max_plans", map[string]any{"value": "15"}),
		http.StatusOK, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "15", updated.Value)
	assert.Equal(t, "number", updated.Type)
}

func TestSiteConfigHandler_UpsertValidation(t *testing.T) {
	s := newTestServer(t)

	t.Run("unknown type", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/config/k", map[string]any{"value": "x", "type": "date"})
		errInfo := decodeFailure(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		assert.True(t, hasDetail(errInfo.Details, "type"))
	})

	t.Run("value does not match type", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/config/k", map[string]any{"value": "many", "type": "number"})
		decodeFailure(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})
}

func TestSiteConfigHandler_ListAndDelete(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPut, "/api/config/b_key", map[string]any{"value": "2"})
	s.do(t, http.MethodPut, "/api/config/a_key", map[string]any{"value": "1"})

	var entries []siteconfigapp.EntryResponse
	decodeData(t, s.do(t, http.MethodGet, "/api/config", nil), http.StatusOK, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, "a_key", entries[0].Key)
	assert.Equal(t, "string", entries[0].Type)

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/config/a_key", nil).Code)
	decodeFailure(t, s.do(t, http.MethodDelete, "/api/config/a_key", nil), http.StatusNotFound, dto.ErrCodeNotFound)
}
