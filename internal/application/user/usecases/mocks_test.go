package usecases

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fixora-app/fixora/internal/domain/user"
)

// mockUserRepository keeps users in memory. Func fields override the
// default behaviour when set.
type mockUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  []*user.User

	CreateFunc func(ctx context.Context, u *user.User) error
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email().String() == u.Email().String() {
			return user.ErrEmailTaken
		}
	}
	m.nextID++
	if err := u.SetID(m.nextID); err != nil {
		return err
	}
	m.users = append(m.users, u)
	return nil
}

func (m *mockUserRepository) find(match func(u *user.User) bool) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.find(func(u *user.User) bool { return u.ID() == id })
}

func (m *mockUserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	return m.find(func(u *user.User) bool { return u.SID() == sid })
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.find(func(u *user.User) bool { return u.Email().String() == email })
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockUserRepository) ListByRoleKind(ctx context.Context, kind user.RoleKind) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*user.User, 0)
	for _, u := range m.users {
		if u.Role().Kind() == kind {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.users {
		if u.ID() == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return user.ErrUserNotFound
}

// mockHasher stores passwords reversibly so tests can read them back.
type mockHasher struct{}

func (mockHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (mockHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type mockTokenIssuer struct {
	GenerateFunc func(userSID string, role string) (*TokenPair, error)
}

func (m *mockTokenIssuer) Generate(userSID string, role string) (*TokenPair, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userSID, role)
	}
	return &TokenPair{AccessToken: "token-" + strings.ToLower(role) + "-" + userSID, ExpiresIn: 3600}, nil
}
