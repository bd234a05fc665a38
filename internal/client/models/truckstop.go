package models

import "time"

// TruckStop is a directory entry as served by the API. Reviews arrive in
// server order; reviews appended locally go to the end. AverageRating is
// nil until at least one review is known.
type TruckStop struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	HasFood       bool      `json:"hasFood"`
	HasShower     bool      `json:"hasShower"`
	HasParking    bool      `json:"hasParking"`
	Photos        []string  `json:"photos"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	UserID        int64     `json:"userId"`
	Reviews       []Review  `json:"reviews"`
	CreatedBy     User      `json:"createdBy"`
	AverageRating *float64  `json:"averageRating,omitempty"`
}

// Review belongs to exactly one truck stop. Rating range is enforced
// server-side.
type Review struct {
	ID          int64     `json:"id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UserID      int64     `json:"userId"`
	TruckStopID int64     `json:"truckStopId"`
}

// CreateTruckStopDto is the request body for creating a truck stop.
type CreateTruckStopDto struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	HasFood     bool     `json:"hasFood"`
	HasShower   bool     `json:"hasShower"`
	HasParking  bool     `json:"hasParking"`
	Photos      []string `json:"photos,omitempty"`
}

// CreateReviewDto is the request body for posting a review. The API also
// expects the target truck stop id in the body; the client fills it in.
type CreateReviewDto struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// AverageRating returns the arithmetic mean of the review ratings, or nil
// for an empty collection.
func AverageRating(reviews []Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	avg := float64(total) / float64(len(reviews))
	return &avg
}
