package validation

import (
	"testing"

	"github.com/harperreed/outreach/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leadInput struct {
	Name       string `validate:"required,max=20"`
	Email      string `validate:"omitempty,email"`
	Status     string `validate:"lead_status"`
	LeadSource string `validate:"required,lead_source"`
	Priority   string `validate:"priority"`
}

func TestStructValid(t *testing.T) {
	err := Struct(leadInput{Name: "Ana", LeadSource: "referral", Status: "new", Priority: "high"})
	assert.NoError(t, err)
}

func TestStructEmptyEnumsAreAllowed(t *testing.T) {
	err := Struct(leadInput{Name: "Ana", LeadSource: "website"})
	assert.NoError(t, err)
}

func TestStructCollectsEveryFailure(t *testing.T) {
	err := Struct(leadInput{Email: "nope", Status: "zombie", LeadSource: "pigeon", Priority: "urgent"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	msg := err.Error()
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "status must be one of: new, contacted, engaged, nurture, won, lost")
	assert.Contains(t, msg, `lead_source has unknown value "pigeon"`)
	assert.Contains(t, msg, `priority has unknown value "urgent"`)
}

func TestStructMax(t *testing.T) {
	err := Struct(leadInput{Name: "A name that is far too long", LeadSource: "other"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must be at most 20")
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "lead_source", toSnake("LeadSource"))
	assert.Equal(t, "name", toSnake("Name"))
}
