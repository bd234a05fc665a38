// Package truckstops caches the directory state relevant to the current
// view: the list from the last search and the one truck stop being
// looked at. All create operations go through here, and review writes
// update the cached aggregates locally.
//
// Failure policy: operations swallow transport errors into a fixed
// message readable via Err, logging the underlying cause. Callers
// inspect Err or the returned value instead of handling errors.
//
// Concurrency: the internal mutex protects state only and is never held
// across a network call, so overlapping operations are not serialized.
// When two calls race, the one whose response resolves last wins.
package truckstops

import (
	"context"
	"sync"

	"github.com/openroad/stopfinder/internal/client/api"
	"github.com/openroad/stopfinder/internal/client/models"
	"github.com/openroad/stopfinder/internal/logging"
)

// Fixed user-facing failure messages. Details go to the log.
const (
	msgFetchNearbyFailed = "Failed to fetch nearby truck stops"
	msgFetchFailed       = "Failed to fetch truck stop details"
	msgCreateFailed      = "Failed to create truck stop"
	msgReviewFailed      = "Failed to create review"
)

// DefaultRadius is used when a caller passes a non-positive search
// radius.
const DefaultRadius = 1.0

// Store is an explicitly constructed domain-state container. Construct
// one per application lifetime; the UI reads state through the
// accessors and never mutates it directly.
type Store struct {
	client api.Client
	log    logging.Logger

	mu      sync.RWMutex
	stops   []models.TruckStop
	current *models.TruckStop
	loading bool
	lastErr string
}

func NewStore(client api.Client, log logging.Logger) *Store {
	return &Store{client: client, log: log}
}

// begin marks an operation as started: the error is cleared and the
// busy flag raised. The returned func drops the flag and is meant to be
// deferred so it runs on every exit path.
func (s *Store) begin() func() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}
}

func (s *Store) fail(ctx context.Context, msg string, err error) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
	s.log.Error(ctx, msg, "err", err)
}

// FetchNearby replaces the whole list with the search result for the
// given point. A non-positive radius falls back to DefaultRadius. On
// failure the previous list is kept and Err is set.
func (s *Store) FetchNearby(ctx context.Context, latitude, longitude, radius float64) {
	done := s.begin()
	defer done()

	if radius <= 0 {
		radius = DefaultRadius
	}

	stops, err := s.client.SearchNearby(ctx, latitude, longitude, radius)
	if err != nil {
		s.fail(ctx, msgFetchNearbyFailed, err)
		return
	}

	s.mu.Lock()
	s.stops = stops
	s.mu.Unlock()
}

// Fetch loads one truck stop and makes it current. On failure the
// previous selection is kept and Err is set.
func (s *Store) Fetch(ctx context.Context, id int64) {
	done := s.begin()
	defer done()

	stop, err := s.client.GetTruckStop(ctx, id)
	if err != nil {
		s.fail(ctx, msgFetchFailed, err)
		return
	}

	s.mu.Lock()
	s.current = stop
	s.mu.Unlock()
}

// Create submits a new truck stop. The server's representation is
// appended to the list and returned; on failure nil is returned, Err is
// set, and the list is untouched.
func (s *Store) Create(ctx context.Context, dto models.CreateTruckStopDto) *models.TruckStop {
	done := s.begin()
	defer done()

	stop, err := s.client.CreateTruckStop(ctx, dto)
	if err != nil {
		s.fail(ctx, msgCreateFailed, err)
		return nil
	}

	s.mu.Lock()
	s.stops = append(s.stops, *stop)
	s.mu.Unlock()

	return stop
}

// CreateReview submits a review for the given truck stop and, on
// success, folds the server's review into the cached aggregates:
//
//   - the current truck stop gains the review and a recomputed average,
//     but only when it is still the one the review was posted for (the
//     user may have navigated away while the request was in flight);
//   - a matching list entry is replaced by index with an updated copy,
//     so holders of the old value observe no mutation.
//
// On failure neither collection changes and nil is returned.
func (s *Store) CreateReview(ctx context.Context, truckStopID int64, dto models.CreateReviewDto) *models.Review {
	done := s.begin()
	defer done()

	review, err := s.client.CreateReview(ctx, truckStopID, dto)
	if err != nil {
		s.fail(ctx, msgReviewFailed, err)
		return nil
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == truckStopID {
		s.current.Reviews = append(append([]models.Review(nil), s.current.Reviews...), *review)
		s.current.AverageRating = models.AverageRating(s.current.Reviews)
	}
	for i := range s.stops {
		if s.stops[i].ID != truckStopID {
			continue
		}
		updated := s.stops[i]
		updated.Reviews = append(append([]models.Review(nil), s.stops[i].Reviews...), *review)
		updated.AverageRating = models.AverageRating(updated.Reviews)
		s.stops[i] = updated
		break
	}
	s.mu.Unlock()

	return review
}

// TruckStops returns a copy of the cached list in server order.
func (s *Store) TruckStops() []models.TruckStop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.TruckStop(nil), s.stops...)
}

// Current returns the selected truck stop, or nil.
func (s *Store) Current() *models.TruckStop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// Reviews returns the current truck stop's reviews, or an empty slice
// when nothing is selected.
func (s *Store) Reviews() []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return []models.Review{}
	}
	return append([]models.Review(nil), s.current.Reviews...)
}

// Loading reports whether an operation is in flight. It is a UI hint,
// not a lock: it does not prevent overlapping calls.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the message of the last failed operation, or "". It is
// cleared when the next operation starts.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
