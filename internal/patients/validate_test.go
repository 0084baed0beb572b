package patients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignup() SignupRequest {
	return SignupRequest{
		Name:     "Jordan Smith",
		Email:    "jordan@example.com",
		Phone:    "5551234567",
		Age:      30,
		Gender:   "female",
		Password: "secret1",
	}
}

func TestValidateAccepts(t *testing.T) {
	req := validSignup()
	req.Normalize()
	assert.NoError(t, req.Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	req := validSignup()
	req.Name = ""
	assert.EqualError(t, req.Validate(), "name is required")

	req = validSignup()
	req.Password = ""
	assert.EqualError(t, req.Validate(), "password is required")

	req = validSignup()
	req.Age = 0
	assert.EqualError(t, req.Validate(), "age is required")
}

func TestValidateEmailFormat(t *testing.T) {
	req := validSignup()
	req.Email = "not-an-email"
	assert.EqualError(t, req.Validate(), "Invalid email format")
}

func TestValidatePhoneFormat(t *testing.T) {
	req := validSignup()
	req.Phone = "12345"
	assert.EqualError(t, req.Validate(), "Phone number must be 10 digits")
}

func TestValidateAgeBounds(t *testing.T) {
	req := validSignup()
	req.Age = 121
	assert.EqualError(t, req.Validate(), "Age must be between 1 and 120")

	req.Age = -3
	assert.EqualError(t, req.Validate(), "Age must be between 1 and 120")
}

func TestValidatePasswordLength(t *testing.T) {
	req := validSignup()
	req.Password = "short"
	assert.EqualError(t, req.Validate(), "Password must be at least 6 characters")
}

func TestValidateEmergencyContactOptional(t *testing.T) {
	req := validSignup()
	req.EmergencyContact = ""
	assert.NoError(t, req.Validate())

	req.EmergencyContact = "123"
	assert.EqualError(t, req.Validate(), "Emergency contact must be 10 digits")
}

func TestNormalizeLowercasesEmail(t *testing.T) {
	req := validSignup()
	req.Email = "  Jordan@Example.COM  "
	req.Normalize()
	require.Equal(t, "jordan@example.com", req.Email)
}
