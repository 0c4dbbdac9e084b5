package validator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidatorIsValid(t *testing.T) {
	v := New()

	assert.True(t, v.IsValid())
}

func TestAddErrorKeepsFirstMessage(t *testing.T) {
	v := New()

	v.AddError("title", "must be provided")
	v.AddError("title", "a different message")

	assert.False(t, v.IsValid())
	assert.Equal(t, "must be provided", v.Errors["title"])
}

func TestCheck(t *testing.T) {
	v := New()

	v.Check(true, "ok", "should not appear")
	v.Check(false, "bad", "must be valid")

	assert.Equal(t, map[string]string{"bad": "must be valid"}, v.Errors)
}

func TestCheckNotBlank(t *testing.T) {
	v := New()

	v.CheckNotBlank("value", "present", "must be provided")
	v.CheckNotBlank("", "empty", "must be provided")
	v.CheckNotBlank("   ", "spaces", "must be provided")

	assert.NotContains(t, v.Errors, "present")
	assert.Contains(t, v.Errors, "empty")
	assert.Contains(t, v.Errors, "spaces")
}

func TestIsMatch(t *testing.T) {
	v := New()
	rx := regexp.MustCompile(`^[a-z_]+$`)

	assert.True(t, v.IsMatch("butter_bridge", rx))
	assert.False(t, v.IsMatch("Butter Bridge", rx))
}
