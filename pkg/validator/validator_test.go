package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(registerForm{
		Fullname: "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ng!Pass",
	})
	assert.NoError(t, err)
}

func TestValidate_MissingFields(t *testing.T) {
	err := Validate(registerForm{})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Contains(t, fields, "Fullname")
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")
	assert.Equal(t, "is required", fields["Fullname"])
}

func TestValidate_BadEmail(t *testing.T) {
	err := Validate(registerForm{
		Fullname: "Alice Smith",
		Email:    "not-an-email",
		Password: "Str0ng!Pass",
	})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid email address", valErr.Fields()["Email"])
}

func TestValidate_MinLength(t *testing.T) {
	err := Validate(registerForm{
		Fullname: "Alice Smith",
		Email:    "alice@example.com",
		Password: "short",
	})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Password"], "at least 8")
}

func TestValidationError_MessageListsFields(t *testing.T) {
	err := Validate(registerForm{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fullname")
	assert.Contains(t, err.Error(), "is required")
}

func TestDecodeAndValidate_Valid(t *testing.T) {
	body := `{"fullname":"Alice Smith","email":"alice@example.com","password":"Str0ng!Pass"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))

	var form registerForm
	require.NoError(t, DecodeAndValidate(req, &form))
	assert.Equal(t, "alice@example.com", form.Email)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{"))

	var form registerForm
	err := DecodeAndValidate(req, &form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestDecodeAndValidate_InvalidPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"email":"alice@example.com"}`))

	var form registerForm
	err := DecodeAndValidate(req, &form)
	require.Error(t, err)

	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}
