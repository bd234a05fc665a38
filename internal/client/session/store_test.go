package session

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/openroad/stopfinder/internal/client/models"
	"github.com/openroad/stopfinder/internal/logging"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared"
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func insertMeta(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	require.NoError(t, err)
	return v
}

func nopLogger() logging.Logger {
	return logging.NewZapLogger(zap.NewNop())
}

// ---- fake client ----

// fakeClient implements api.Client and api.TokenHolder for Store tests.
type fakeClient struct {
	LoginUser *models.User
	LoginTok  string
	LoginErr  error

	RegisterErr error

	LastLoginEmail    string
	LastLoginPassword string
	LastRegisterName  string
	LastRegisterEmail string

	HeldToken    string
	TokenCleared bool
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	f.LastLoginEmail = email
	f.LastLoginPassword = password
	if f.LoginErr != nil {
		return nil, "", f.LoginErr
	}
	u := *f.LoginUser
	return &u, f.LoginTok, nil
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) error {
	f.LastRegisterName = name
	f.LastRegisterEmail = email
	return f.RegisterErr
}

func (f *fakeClient) SearchNearby(ctx context.Context, lat, lng, radius float64) ([]models.TruckStop, error) {
	return nil, nil
}

func (f *fakeClient) GetTruckStop(ctx context.Context, id int64) (*models.TruckStop, error) {
	return nil, nil
}

func (f *fakeClient) CreateTruckStop(ctx context.Context, dto models.CreateTruckStopDto) (*models.TruckStop, error) {
	return nil, nil
}

func (f *fakeClient) CreateReview(ctx context.Context, id int64, dto models.CreateReviewDto) (*models.Review, error) {
	return nil, nil
}

func (f *fakeClient) SetToken(token string) { f.HeldToken = token }
func (f *fakeClient) ClearToken()           { f.HeldToken = ""; f.TokenCleared = true }

// ---- tests ----

func TestLogin_Success_SetsStateAndPersists(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{
		LoginUser: &models.User{ID: 1, Email: "a@x.com", Name: "Alice"},
		LoginTok:  "tok-123",
	}
	s := NewStore(fc, db, nopLogger())

	ok := s.Login(context.Background(), "a@x.com", "pw")
	require.True(t, ok)

	assert.Equal(t, "a@x.com", fc.LastLoginEmail)
	assert.Equal(t, "pw", fc.LastLoginPassword)

	assert.True(t, s.IsAuthenticated())
	require.NotNil(t, s.CurrentUser())
	assert.Equal(t, "Alice", s.CurrentUser().Name)
	assert.Equal(t, "tok-123", s.Token())
	assert.Equal(t, "tok-123", fc.HeldToken, "token must reach the transport")

	assert.Equal(t, []byte("tok-123"), getMeta(t, db, "token"))
	assert.Contains(t, string(getMeta(t, db, "user")), `"email":"a@x.com"`)
}

func TestLogin_Failure_LeavesStateUntouched(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{LoginErr: errors.New("bad credentials")}
	s := NewStore(fc, db, nopLogger())

	ok := s.Login(context.Background(), "a@x.com", "wrong")
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
	assert.Empty(t, s.Token())
	assert.Nil(t, getMeta(t, db, "token"))
}

func TestLogin_PersistFailureDoesNotRollBackSession(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close()) // storage is broken from here on

	fc := &fakeClient{
		LoginUser: &models.User{ID: 1, Email: "a@x.com", Name: "Alice"},
		LoginTok:  "tok-123",
	}
	s := NewStore(fc, db, nopLogger())

	ok := s.Login(context.Background(), "a@x.com", "pw")
	require.True(t, ok, "storage failure must not fail the login")
	assert.True(t, s.IsAuthenticated())
}

func TestRegister_NeverTouchesSession(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	s := NewStore(fc, db, nopLogger())

	require.True(t, s.Register(context.Background(), "Alice", "a@x.com", "pw"))
	assert.Equal(t, "Alice", fc.LastRegisterName)
	assert.False(t, s.IsAuthenticated())

	fc.RegisterErr = errors.New("email taken")
	assert.False(t, s.Register(context.Background(), "Bob", "b@x.com", "pw"))
	assert.False(t, s.IsAuthenticated())
}

func TestRestore_FullSession(t *testing.T) {
	db := setupDB(t)
	insertMeta(t, db, "user", []byte(`{"id":1,"email":"a@x.com","name":"Alice"}`))
	insertMeta(t, db, "token", []byte("tok-123"))

	fc := &fakeClient{}
	s := NewStore(fc, db, nopLogger())
	s.Restore(context.Background())

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok-123", s.Token())
	assert.Equal(t, "tok-123", fc.HeldToken)
	require.NotNil(t, s.CurrentUser())
	assert.Equal(t, int64(1), s.CurrentUser().ID)
}

func TestRestore_PartialOrCorrupt_YieldsNoSession(t *testing.T) {
	tests := []struct {
		name string
		seed func(t *testing.T, db *sql.DB)
	}{
		{"nothing stored", func(t *testing.T, db *sql.DB) {}},
		{"token only", func(t *testing.T, db *sql.DB) {
			insertMeta(t, db, "token", []byte("tok"))
		}},
		{"user only", func(t *testing.T, db *sql.DB) {
			insertMeta(t, db, "user", []byte(`{"id":1}`))
		}},
		{"corrupt user json", func(t *testing.T, db *sql.DB) {
			insertMeta(t, db, "user", []byte(`{nope`))
			insertMeta(t, db, "token", []byte("tok"))
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := setupDB(t)
			tc.seed(t, db)

			s := NewStore(&fakeClient{}, db, nopLogger())
			s.Restore(context.Background())

			assert.False(t, s.IsAuthenticated())
			assert.Nil(t, s.CurrentUser())
			assert.Empty(t, s.Token())
		})
	}
}

func TestRestore_StorageError_YieldsNoSession(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	s := NewStore(&fakeClient{}, db, nopLogger())
	s.Restore(context.Background()) // must not panic or error

	assert.False(t, s.IsAuthenticated())
}

func TestLogout_ClearsMemoryAndStorage(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{
		LoginUser: &models.User{ID: 1, Email: "a@x.com", Name: "Alice"},
		LoginTok:  "tok-123",
	}
	s := NewStore(fc, db, nopLogger())
	require.True(t, s.Login(context.Background(), "a@x.com", "pw"))

	s.Logout(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
	assert.Empty(t, s.Token())
	assert.True(t, fc.TokenCleared)
	assert.Nil(t, getMeta(t, db, "user"))
	assert.Nil(t, getMeta(t, db, "token"))
}

func TestLogout_StorageFailureStillClearsMemory(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{
		LoginUser: &models.User{ID: 1, Email: "a@x.com", Name: "Alice"},
		LoginTok:  "tok-123",
	}
	s := NewStore(fc, db, nopLogger())
	require.True(t, s.Login(context.Background(), "a@x.com", "pw"))

	require.NoError(t, db.Close())
	s.Logout(context.Background())

	assert.False(t, s.IsAuthenticated())
}
