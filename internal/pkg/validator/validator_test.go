package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"rep@example.com",
		"first.last@sub.domain.co",
		"a+b@d.io",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@no-local.com",
		"user@",
		"user@domain",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidUUID(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidUUID("01890a5d-ac96-774b-bcce-b302099a8057"))
	assert.True(t, IsValidUUID("01890A5D-AC96-774B-BCCE-B302099A8057"))

	// v4, wrong version digit
	assert.False(t, IsValidUUID("9f8c8d22-5b67-4bab-b0b6-9e9c0e2b1f47"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidDate(t *testing.T) {
	t.Parallel()

	date, ok := IsValidDate("2025-04-01")
	assert.True(t, ok)
	assert.Equal(t, 2025, date.Year())

	_, ok = IsValidDate("01-04-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-40")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	t.Parallel()

	roles := []string{"TBM", "ABM", "RBM"}
	assert.True(t, IsInSlice("ABM", roles))
	assert.False(t, IsInSlice("ZBM", roles))
	assert.False(t, IsInSlice("", roles))
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{
		{Field: "email", Message: "A valid email is required"},
		{Field: "role", Message: "Unknown role"},
	}

	assert.Contains(t, errs.Error(), "email: A valid email is required")
	assert.Equal(t, map[string]string{
		"email": "A valid email is required",
		"role":  "Unknown role",
	}, errs.ToMap())
}
