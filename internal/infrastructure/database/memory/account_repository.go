// Package memory holds process-local repositories used by tests and by
// STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/account"

	"github.com/google/uuid"
)

type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*account.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[uuid.UUID]*account.Account)}
}

var _ account.Repository = (*AccountRepository)(nil)

func (r *AccountRepository) Create(_ context.Context, a *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if strings.EqualFold(existing.Email, a.Email) {
			return account.ErrAccountAlreadyExists
		}
	}

	now := time.Now()
	a.ID = uuid.New()
	a.CreatedAt = now
	a.UpdatedAt = now

	stored := *a
	r.accounts[a.ID] = &stored
	return nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			out := *a
			return &out, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (r *AccountRepository) GetByID(_ context.Context, accountID uuid.UUID) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[accountID]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	out := *a
	return &out, nil
}

func (r *AccountRepository) Update(_ context.Context, a *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.accounts[a.ID]
	if !ok {
		return account.ErrAccountNotFound
	}

	a.UpdatedAt = time.Now()
	updated := *a
	updated.PasswordHashed = existing.PasswordHashed
	r.accounts[a.ID] = &updated
	return nil
}

func (r *AccountRepository) UpdatePassword(_ context.Context, accountID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[accountID]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.PasswordHashed = passwordHash
	a.UpdatedAt = time.Now()
	return nil
}

type RefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*account.RefreshToken
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{tokens: make(map[uuid.UUID]*account.RefreshToken)}
}

var _ account.RefreshTokenRepository = (*RefreshTokenRepository)(nil)

func (r *RefreshTokenRepository) Create(_ context.Context, token *account.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	token.ID = uuid.New()
	token.CreatedAt = now
	token.UpdatedAt = now
	token.Revoked = false

	stored := *token
	r.tokens[token.ID] = &stored
	return nil
}

func (r *RefreshTokenRepository) GetByToken(_ context.Context, token string) (*account.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tokens {
		if t.Token == token && t.IsActive() {
			out := *t
			return &out, nil
		}
	}
	return nil, account.ErrTokenInvalid
}

func (r *RefreshTokenRepository) Revoke(_ context.Context, tokenID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[tokenID]
	if !ok || t.Revoked {
		return account.ErrTokenInvalid
	}
	now := time.Now()
	t.Revoked = true
	t.RevokedAt = now
	t.UpdatedAt = now
	return nil
}

func (r *RefreshTokenRepository) RevokeAllForAccount(_ context.Context, accountID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, t := range r.tokens {
		if t.AccountID == accountID && !t.Revoked {
			t.Revoked = true
			t.RevokedAt = now
			t.UpdatedAt = now
		}
	}
	return nil
}

func (r *RefreshTokenRepository) DeleteExpired(_ context.Context, olderThan time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	var deleted int64
	for id, t := range r.tokens {
		if t.ExpiresAt.Before(cutoff) || (t.Revoked && t.RevokedAt.Before(cutoff)) {
			delete(r.tokens, id)
			deleted++
		}
	}
	return deleted, nil
}
