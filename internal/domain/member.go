// internal/domain/member.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Member represents a registered member account.
type Member struct {
	ID               int             `db:"id" json:"id"`                             // Primary key, SERIAL in DB
	FirstName        string          `db:"first_name" json:"firstName"`              // Required, max 50 characters
	LastName         string          `db:"last_name" json:"lastName"`                // Required, max 50 characters
	Email            string          `db:"email" json:"email"`                       // Required, max 100 characters, unique (case-insensitive)
	BirthDate        time.Time       `db:"birth_date" json:"birthDate"`              // Set at creation, never updated
	RegistrationDate time.Time       `db:"registration_date" json:"registrationDate"` // Stamped once at creation
	IsActive         bool            `db:"is_active" json:"isActive"`                // Defaults to true at creation
	Balance          decimal.Decimal `db:"balance" json:"balance"`                   // NUMERIC(18, 2) in DB, not touched by updates
}

// NewMember creates a new Member instance with creation-time fields stamped.
// The id is assigned by the database on insert.
func NewMember(firstName, lastName, email string, birthDate time.Time, initialBalance decimal.Decimal) *Member {
	return &Member{
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		BirthDate:        birthDate,
		RegistrationDate: time.Now().UTC(),
		IsActive:         true,
		Balance:          initialBalance,
	}
}
