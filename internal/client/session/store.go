// Package session owns the authenticated identity: which user is logged
// in and the bearer token proving it. The pair is restored from the
// local database at startup and persisted there on login, so a session
// survives process restarts.
//
// Contract:
//   - user and token are set and cleared together; there is no state
//     where one exists without the other.
//   - Login/Register report success as a bool and never return an error;
//     failures are logged.
//   - Durable-storage failures degrade: restore yields no session,
//     persist and clear become logged warnings. They never surface to
//     the caller and never roll back in-memory state.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"

	"github.com/openroad/stopfinder/internal/client/api"
	"github.com/openroad/stopfinder/internal/client/models"
	"github.com/openroad/stopfinder/internal/client/storage"
	"github.com/openroad/stopfinder/internal/dbx"
	"github.com/openroad/stopfinder/internal/logging"
)

// Store is an explicitly constructed session container. Construct one
// per application lifetime and share it; all session mutations go
// through it.
type Store struct {
	client api.Client
	db     *sql.DB
	log    logging.Logger

	mu    sync.RWMutex
	user  *models.User
	token string
}

// NewStore builds a Store with no session. Call Restore to pick up a
// persisted one.
func NewStore(client api.Client, db *sql.DB, log logging.Logger) *Store {
	return &Store{client: client, db: db, log: log}
}

// Restore loads a previously persisted session. Both the user record and
// the token must be present, and the user record must parse; anything
// less leaves the store unauthenticated. Storage failures are warnings,
// never errors.
func (s *Store) Restore(ctx context.Context) {
	repo := storage.NewSQLiteRepository(s.db)

	rawUser, err := repo.Get(ctx, storage.KeyUser)
	if err != nil {
		s.log.Warn(ctx, "session restore failed", "key", storage.KeyUser, "err", err)
		return
	}
	rawToken, err := repo.Get(ctx, storage.KeyToken)
	if err != nil {
		s.log.Warn(ctx, "session restore failed", "key", storage.KeyToken, "err", err)
		return
	}
	if len(rawUser) == 0 || len(rawToken) == 0 {
		return
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.log.Warn(ctx, "session restore failed: corrupt user record", "err", err)
		return
	}

	s.setSession(&user, string(rawToken))
}

// Login authenticates against the API. On success the in-memory session
// is updated first, then persisted best-effort; a persistence failure is
// logged and does not undo the session. Returns false on any API error,
// leaving state untouched.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	user, token, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.log.Error(ctx, "login failed", "email", email, "err", err)
		return false
	}

	s.setSession(user, token)

	if err := s.persistSession(ctx, user, token); err != nil {
		s.log.Warn(ctx, "session persist failed", "err", err)
	}
	return true
}

// Register creates an account. It never touches session state; the
// caller is expected to log in separately.
func (s *Store) Register(ctx context.Context, name, email, password string) bool {
	if err := s.client.Register(ctx, name, email, password); err != nil {
		s.log.Error(ctx, "registration failed", "email", email, "err", err)
		return false
	}
	return true
}

// Logout clears the in-memory session first, then best-effort removes
// the persisted entries. A storage failure is a logged warning; the
// in-memory state is cleared regardless.
func (s *Store) Logout(ctx context.Context) {
	s.setSession(nil, "")

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, storage.KeyUser); err != nil {
			return err
		}
		return repo.Delete(ctx, storage.KeyToken)
	})
	if err != nil {
		s.log.Warn(ctx, "session clear failed", "err", err)
	}
}

// IsAuthenticated reports whether both user and token are held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the raw bearer token, or "" when unauthenticated. The
// route guard keys off token presence alone.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// setSession updates in-memory state and pushes the token into the
// transport. It is the only writer of user/token.
func (s *Store) setSession(user *models.User, token string) {
	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()

	if th, ok := s.client.(api.TokenHolder); ok {
		if token == "" {
			th.ClearToken()
		} else {
			th.SetToken(token)
		}
	}
}

// persistSession writes both entries in a single transaction so a saved
// session is always complete.
func (s *Store) persistSession(ctx context.Context, user *models.User, token string) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := storage.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, storage.KeyUser, rawUser); err != nil {
			return err
		}
		return repo.Set(ctx, storage.KeyToken, []byte(token))
	})
}
