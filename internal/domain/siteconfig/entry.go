package siteconfig

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/intercel/backend/internal/domain/shared"
)

// KeyMaxLength bounds config keys
const KeyMaxLength = 100

// ValueType tags how a config value should be interpreted by readers
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumber  ValueType = "number"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeJSON    ValueType = "json"
)

// IsValid returns true if the type tag is known
func (t ValueType) IsValid() bool {
	switch t {
	case ValueTypeString, ValueTypeNumber, ValueTypeBoolean, ValueTypeJSON:
		return true
	}
	return false
}

// Entry is one key of the flat site configuration map
type Entry struct {
	shared.BaseEntity
	Key   string
	Value string
	Type  ValueType
}

// NewEntry creates a config entry, defaulting the type tag to string
func NewEntry(key, value string, typ ValueType) (*Entry, error) {
	key = strings.TrimSpace(key)
	if typ == "" {
		typ = ValueTypeString
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := validateValue(value, typ); err != nil {
		return nil, err
	}
	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		Key:        key,
		Value:      value,
		Type:       typ,
	}, nil
}

// Set replaces the value, keeping the current type tag when typ is empty
func (e *Entry) Set(value string, typ ValueType) error {
	if typ == "" {
		typ = e.Type
	}
	if err := validateValue(value, typ); err != nil {
		return err
	}
	e.Value = value
	e.Type = typ
	e.Touch()
	return nil
}

func validateKey(key string) error {
	if key == "" {
		return shared.NewFieldError("key", "key is required")
	}
	if len(key) > KeyMaxLength {
		return shared.NewFieldError("key", "key cannot exceed 100 characters")
	}
	return nil
}

func validateValue(value string, typ ValueType) error {
	if !typ.IsValid() {
		return shared.NewFieldError("type", "type must be one of string, number, boolean, json")
	}
	switch typ {
	case ValueTypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return shared.NewFieldError("value", "value is not a number")
		}
	case ValueTypeBoolean:
		if _, err := strconv.ParseBool(value); err != nil {
			return shared.NewFieldError("value", "value is not a boolean")
		}
	case ValueTypeJSON:
		if !json.Valid([]byte(value)) {
			return shared.NewFieldError("value", "value is not valid JSON")
		}
	}
	return nil
}
