package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordGet(t *testing.T) {
	rec := Record{FieldDate: "01/05/2024 08:15:00 AM", FieldNote: ""}

	assert.Equal(t, "01/05/2024 08:15:00 AM", rec.Get(FieldDate))
	assert.Empty(t, rec.Get(FieldAmount))
	assert.True(t, rec.Has(FieldNote), "empty value still counts as present")
	assert.False(t, rec.Has(FieldAmount))
}

func TestRecordNil(t *testing.T) {
	var rec Record
	assert.Empty(t, rec.Get(FieldBalance))
	assert.False(t, rec.Has(FieldBalance))
}
