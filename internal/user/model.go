package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrPasswordIncorrect = errors.New("password is incorrect")
)

// Profile is the demographic part of a user row. Age is derived from
// the date of birth whenever one is supplied.
type Profile struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth *time.Time `json:"dob,omitempty"`
	Age         int        `json:"age"`
	Gender      string     `json:"gender"`
	Country     string     `json:"country"`
	Address     string     `json:"address"`
	PhoneNumber string     `json:"phone_number"`
}

// deriveAge computes whole years between dob and now.
func deriveAge(dob time.Time, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
