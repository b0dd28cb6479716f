// internal/seed/seed.go
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"member-service/internal/domain"
	"member-service/internal/repository"
)

// sampleMembers returns the development seed data set.
func sampleMembers() []domain.Member {
	registered := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Member{
		{
			FirstName:        "Juan",
			LastName:         "Pérez",
			Email:            "juan.perez@example.com",
			BirthDate:        time.Date(1985, time.May, 15, 0, 0, 0, 0, time.UTC),
			RegistrationDate: registered,
			IsActive:         true,
			Balance:          decimal.RequireFromString("1000.00"),
		},
		{
			FirstName:        "María",
			LastName:         "García",
			Email:            "maria.garcia@example.com",
			BirthDate:        time.Date(1990, time.August, 22, 0, 0, 0, 0, time.UTC),
			RegistrationDate: registered,
			IsActive:         true,
			Balance:          decimal.RequireFromString("2500.50"),
		},
		{
			FirstName:        "Carlos",
			LastName:         "Rodríguez",
			Email:            "carlos.rodriguez@example.com",
			BirthDate:        time.Date(1978, time.March, 10, 0, 0, 0, 0, time.UTC),
			RegistrationDate: registered,
			IsActive:         true,
			Balance:          decimal.RequireFromString("5000.75"),
		},
	}
}

// Members inserts the sample member set, skipping rows whose email is
// already present. It is idempotent and safe to run on every startup
// when seeding is enabled.
func Members(ctx context.Context, q repository.DBExecutor) error {
	query := `INSERT INTO members (first_name, last_name, email, birth_date, registration_date, is_active, balance)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              ON CONFLICT (LOWER(email)) DO NOTHING`
	for _, m := range sampleMembers() {
		if _, err := q.ExecContext(ctx, query,
			m.FirstName, m.LastName, m.Email,
			m.BirthDate, m.RegistrationDate, m.IsActive, m.Balance,
		); err != nil {
			return fmt.Errorf("failed to seed member '%s': %w", m.Email, err)
		}
	}
	return nil
}
