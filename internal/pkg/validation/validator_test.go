package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Age   int    `validate:"gte=18"`
	Code  string `validate:"omitempty,min=4"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(&signup{Name: "Ana", Email: "ana@example.com", Age: 30}))

	err := Struct(&signup{Email: "nope", Age: 12, Code: "ab"})
	require.Error(t, err)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 4)
	assert.Equal(t, "Name is required", errs[0].Message)
	assert.Equal(t, "Email must be a valid email address", errs[1].Message)
	assert.Equal(t, "Age must be greater than or equal to 18", errs[2].Message)
	assert.Equal(t, "Code must be at least 4 characters", errs[3].Message)
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("someone@shop.io"))
	assert.False(t, Email("someone@"))
	assert.False(t, Email(""))
}
