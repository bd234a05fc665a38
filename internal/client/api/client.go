package api

import (
	"context"

	"github.com/openroad/stopfinder/internal/client/models"
)

// Client is the remote directory API as seen by the stores.
//
// Contract:
//   - Login: authenticate; returns the account record and a bearer token.
//   - Register: create an account; does not authenticate.
//   - SearchNearby: geo-bounded search around a point.
//   - GetTruckStop: fetch one truck stop with its reviews.
//   - CreateTruckStop / CreateReview: create entities server-side and
//     return the stored representation.
//
// All methods honor context cancellation. Failures are reported as
// sentinel errors where the cause is classifiable (see errors.go).
type Client interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Register(ctx context.Context, name, email, password string) error
	SearchNearby(ctx context.Context, latitude, longitude, radius float64) ([]models.TruckStop, error)
	GetTruckStop(ctx context.Context, id int64) (*models.TruckStop, error)
	CreateTruckStop(ctx context.Context, dto models.CreateTruckStopDto) (*models.TruckStop, error)
	CreateReview(ctx context.Context, truckStopID int64, dto models.CreateReviewDto) (*models.Review, error)
}

// TokenHolder is implemented by transports that attach a bearer token to
// outgoing requests. The session store pushes token changes through it.
type TokenHolder interface {
	SetToken(token string)
	ClearToken()
}
