package catalog

import (
	"encoding/json"
	"testing"

	"github.com/intercel/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableString_UnmarshalJSON(t *testing.T) {
	var req UpdatePlanRequest
	require.NoError(t, json.Unmarshal([]byte(`{"tag": null, "sms": "50 SMS"}`), &req))

	assert.True(t, req.Tag.Set)
	assert.Nil(t, req.Tag.Value)
	assert.True(t, req.SMS.Set)
	assert.Equal(t, "50 SMS", *req.SMS.Value)
	assert.False(t, req.Multiplier.Set, "absent keys stay unset")

	patch := req.toPatch()
	assert.True(t, patch.Tag.Set)
	assert.False(t, patch.OriginalData.Set)
}

func TestNullableString_RejectsNonString(t *testing.T) {
	var req UpdatePlanRequest
	assert.Error(t, json.Unmarshal([]byte(`{"tag": 5}`), &req))
}

func TestNullableString_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A NullableString `json:"a"`
		B NullableString `json:"b"`
	}{A: Text("x"), B: Null()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":null}`, string(data))
}

func TestCreatePlanRequest_Defaults(t *testing.T) {
	attrs := CreatePlanRequest{Data: "5GB"}.toAttributes()
	assert.True(t, attrs.IsActive)
	assert.False(t, attrs.IsFeatured)
	assert.False(t, attrs.HasCalls)
	assert.Zero(t, attrs.Order)
}

func TestValidateRequest(t *testing.T) {
	err := validateRequest(CreateCategoryRequest{Name: "m", Label: "Mensual"})
	require.Error(t, err)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.KindValidation, de.Kind)
	assert.ElementsMatch(t, []shared.FieldError{
		{Field: "name", Message: "name must be at least 2 characters"},
		{Field: "icon", Message: "icon is required"},
	}, de.Details)

	err = validateRequest(CreatePlanRequest{Price: new(int64)})
	require.ErrorAs(t, err, &de)
	fields := make([]string, 0, len(de.Details))
	for _, d := range de.Details {
		fields = append(fields, d.Field)
	}
	assert.NotContains(t, fields, "price", "zero is a valid price")
	assert.Contains(t, fields, "data")

	negative := int64(-5)
	err = validateRequest(UpdatePlanRequest{Price: &negative})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "price must be a non-negative integer", de.Details[0].Message)

	assert.NoError(t, validateRequest(UpdateCategoryRequest{}))
}
