// internal/repository/postgres/member_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"member-service/internal/domain"
	"member-service/internal/repository"
	"member-service/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// pqUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pqUniqueViolation = "23505"

// MemberRepository implements repository.MemberRepository for PostgreSQL.
type MemberRepository struct {
	// Methods receive a DBExecutor directly instead of holding *sqlx.DB.
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(db *sqlx.DB) repository.MemberRepository {
	return &MemberRepository{}
}

// ListAll retrieves all members using the provided DBExecutor.
func (r *MemberRepository) ListAll(ctx context.Context, q repository.DBExecutor) ([]domain.Member, error) {
	members := []domain.Member{}
	query := `SELECT id, first_name, last_name, email, birth_date, registration_date, is_active, balance
              FROM members`
	if err := q.SelectContext(ctx, &members, query); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// GetByID retrieves a member by id using the provided DBExecutor.
func (r *MemberRepository) GetByID(ctx context.Context, q repository.DBExecutor, id int) (*domain.Member, error) {
	var member domain.Member
	query := `SELECT id, first_name, last_name, email, birth_date, registration_date, is_active, balance
              FROM members WHERE id = $1`
	err := q.GetContext(ctx, &member, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member by ID %d: %w", id, err)
	}
	return &member, nil
}

// GetByEmail retrieves a member by email using the provided DBExecutor.
// The comparison is case-insensitive.
func (r *MemberRepository) GetByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.Member, error) {
	var member domain.Member
	query := `SELECT id, first_name, last_name, email, birth_date, registration_date, is_active, balance
              FROM members WHERE LOWER(email) = LOWER($1)`
	err := q.GetContext(ctx, &member, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member by email '%s': %w", email, err)
	}
	return &member, nil
}

// ExistsByID reports whether a member with the given id exists.
func (r *MemberRepository) ExistsByID(ctx context.Context, q repository.DBExecutor, id int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE id = $1)`
	if err := q.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check member existence for ID %d: %w", id, err)
	}
	return exists, nil
}

// ExistsByEmail reports whether any member has the given email,
// compared case-insensitively.
func (r *MemberRepository) ExistsByEmail(ctx context.Context, q repository.DBExecutor, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE LOWER(email) = LOWER($1))`
	if err := q.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("failed to check member existence for email '%s': %w", email, err)
	}
	return exists, nil
}

// Insert persists a new member and assigns its id in place.
// A unique index violation on the email column surfaces as util.ErrDuplicateEmail,
// the backstop for the check-then-insert race in the service layer.
func (r *MemberRepository) Insert(ctx context.Context, q repository.DBExecutor, member *domain.Member) error {
	query := `INSERT INTO members (first_name, last_name, email, birth_date, registration_date, is_active, balance)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		member.FirstName, member.LastName, member.Email,
		member.BirthDate, member.RegistrationDate, member.IsActive, member.Balance,
	).Scan(&member.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return util.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// Update replaces the mutable columns of the member with the given id.
// birth_date, registration_date and balance are never touched here.
func (r *MemberRepository) Update(ctx context.Context, q repository.DBExecutor, member *domain.Member) error {
	query := `UPDATE members SET first_name = $1, last_name = $2, email = $3, is_active = $4 WHERE id = $5`
	result, err := q.ExecContext(ctx, query,
		member.FirstName, member.LastName, member.Email, member.IsActive, member.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return util.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update member ID %d: %w", member.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating member ID %d: %w", member.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// Delete removes the member row with the given id.
func (r *MemberRepository) Delete(ctx context.Context, q repository.DBExecutor, id int) error {
	query := `DELETE FROM members WHERE id = $1`
	result, err := q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete member ID %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting member ID %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
