package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func testValidator(t *testing.T) *validator.Validate {
	t.Helper()
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

func TestToDetailsFieldMessages(t *testing.T) {
	v := testValidator(t)

	err := v.Struct(signupForm{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	details := ToDetails(err)
	require.Equal(t, "must be a valid email", details["email"])
	require.Equal(t, "must be between 6 and 128 characters long", details["password"])
}

func TestToDetailsRequired(t *testing.T) {
	v := testValidator(t)

	details := ToDetails(v.Struct(signupForm{}))
	require.Equal(t, "is required", details["email"])
	require.Equal(t, "is required", details["password"])
}

func TestToDetailsNonValidatorError(t *testing.T) {
	require.Nil(t, ToDetails(nil))
	require.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(assertionErr{}))
}

type assertionErr struct{}

func (assertionErr) Error() string { return "boom" }
