package patients

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignupRequest is the registration payload.
type SignupRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	Password         string `json:"password"`
	EmergencyContact string `json:"emergencyContact"`
	BloodGroup       string `json:"bloodGroup"`
	Address          string `json:"address"`
	MedicalHistory   string `json:"medicalHistory"`
}

// Normalize trims and lower-cases the lookup fields in place.
func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.EmergencyContact = strings.TrimSpace(r.EmergencyContact)
	r.Address = strings.TrimSpace(r.Address)
	r.MedicalHistory = strings.TrimSpace(r.MedicalHistory)
}

// Validate checks every field and returns the first violation.
func (r *SignupRequest) Validate() error {
	required := []struct {
		field, value string
	}{
		{"name", r.Name},
		{"email", r.Email},
		{"phone", r.Phone},
		{"gender", r.Gender},
		{"password", r.Password},
	}
	for _, f := range required {
		if f.value == "" {
			return &ValidationError{Field: f.field, Message: fmt.Sprintf("%s is required", f.field)}
		}
	}
	if r.Age == 0 {
		return &ValidationError{Field: "age", Message: "age is required"}
	}

	if !emailPattern.MatchString(r.Email) {
		return &ValidationError{Field: "email", Message: "Invalid email format"}
	}
	if !phonePattern.MatchString(r.Phone) {
		return &ValidationError{Field: "phone", Message: "Phone number must be 10 digits"}
	}
	if r.Age < 1 || r.Age > 120 {
		return &ValidationError{Field: "age", Message: "Age must be between 1 and 120"}
	}
	if len(r.Password) < 6 {
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}
	if r.EmergencyContact != "" && !phonePattern.MatchString(r.EmergencyContact) {
		return &ValidationError{Field: "emergencyContact", Message: "Emergency contact must be 10 digits"}
	}
	return nil
}
