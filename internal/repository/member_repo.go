// internal/repository/member_repo.go
package repository

import (
	"context"

	"member-service/internal/domain"
)

// MemberRepository defines the interface for member data operations.
type MemberRepository interface {
	// ListAll retrieves every member in storage order.
	ListAll(ctx context.Context, q DBExecutor) ([]domain.Member, error)
	// GetByID retrieves a member by id, returning util.ErrNotFound if absent.
	GetByID(ctx context.Context, q DBExecutor, id int) (*domain.Member, error)
	// GetByEmail retrieves a member by email, compared case-insensitively.
	GetByEmail(ctx context.Context, q DBExecutor, email string) (*domain.Member, error)
	// ExistsByID reports whether a member with the given id exists.
	ExistsByID(ctx context.Context, q DBExecutor, id int) (bool, error)
	// ExistsByEmail reports whether any member has the given email,
	// compared case-insensitively.
	ExistsByEmail(ctx context.Context, q DBExecutor, email string) (bool, error)
	// Insert persists a new member and assigns its id in place.
	Insert(ctx context.Context, q DBExecutor, member *domain.Member) error
	// Update replaces the mutable columns of the member with the given id.
	Update(ctx context.Context, q DBExecutor, member *domain.Member) error
	// Delete removes the member row with the given id.
	Delete(ctx context.Context, q DBExecutor, id int) error
}
