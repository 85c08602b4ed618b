package user

import "context"

// Repository defines the interface for user data operations
type Repository interface {
	Create(ctx context.Context, user *User) error

	GetByID(ctx context.Context, id uint) (*User, error)

	// GetBySID retrieves a user by external SID
	GetBySID(ctx context.Context, sid string) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ListByRoleKind returns users of one role kind, newest first
	ListByRoleKind(ctx context.Context, kind RoleKind) ([]*User, error)

	// Delete hard deletes a user by internal ID
	Delete(ctx context.Context, id uint) error
}
