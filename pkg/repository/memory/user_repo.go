package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/DarkVeteran28/PORTFOLIO-OPTIMISER/pkg/auth"
)

// UserRepository implements auth.UserRepository with a map keyed by e-mail.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]auth.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]auth.User)}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	key := strings.ToLower(user.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[key]; ok {
		return auth.ErrUserAlreadyExists
	}
	user.Email = key
	r.users[key] = user
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}
