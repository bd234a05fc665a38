// Package storage is the client's durable key-value store. The session
// layer keeps the saved user record and bearer token here so a login
// survives process restarts.
package storage

import "context"

// Keys used by the session layer. Both are written together on login
// and removed together on logout.
const (
	KeyUser  = "user"
	KeyToken = "token"
)

// Repository is a durable key-value store. Get returns nil (not an
// error) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
