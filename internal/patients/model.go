// Package patients manages patient accounts: signup, login and the admin
// approval workflow.
package patients

import "time"

// Patient is one registered account. PasswordHash never leaves the package.
type Patient struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Age              int        `json:"age"`
	Gender           string     `json:"gender"`
	PasswordHash     string     `json:"-"`
	EmergencyContact string     `json:"emergencyContact"`
	BloodGroup       string     `json:"bloodGroup"`
	Address          string     `json:"address"`
	MedicalHistory   string     `json:"medicalHistory"`
	IsApproved       bool       `json:"is_approved"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Update carries the admin-editable fields. Nil means leave unchanged.
type Update struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Age    *int    `json:"age,omitempty"`
	Gender *string `json:"gender,omitempty"`
	Phone  *string `json:"phone,omitempty"`
}

// Empty reports whether the update touches nothing.
func (u Update) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Age == nil && u.Gender == nil && u.Phone == nil
}
