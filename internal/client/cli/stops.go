package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/openroad/stopfinder/internal/client/models"
)

// Near searches for truck stops around a point: near <lat> <lng> [radius].
func (a *App) Near(ctx context.Context, args []string) error {
	if !a.enterHome() {
		return nil
	}
	if len(args) < 2 {
		printlnFn("Usage: near <lat> <lng> [radius]")
		return nil
	}

	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		printlnFn("Invalid latitude:", args[0])
		return nil
	}
	lng, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		printlnFn("Invalid longitude:", args[1])
		return nil
	}
	radius := 0.0
	if len(args) > 2 {
		if radius, err = strconv.ParseFloat(args[2], 64); err != nil {
			printlnFn("Invalid radius:", args[2])
			return nil
		}
	}

	a.stops.FetchNearby(ctx, lat, lng, radius)
	if msg := a.stops.Err(); msg != "" {
		printlnFn(msg)
		return nil
	}
	a.printStops()
	return nil
}

// List prints the stops cached by the last search.
func (a *App) List(ctx context.Context) error {
	if !a.enterHome() {
		return nil
	}
	a.printStops()
	return nil
}

// Show fetches one truck stop and prints its details and reviews.
func (a *App) Show(ctx context.Context, args []string) error {
	if !a.enterHome() {
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: show <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Invalid id:", args[0])
		return nil
	}

	a.stops.Fetch(ctx, id)
	if msg := a.stops.Err(); msg != "" {
		printlnFn(msg)
		return nil
	}

	stop := a.stops.Current()
	printlnFn(formatStop(*stop))
	for _, review := range a.stops.Reviews() {
		line := fmt.Sprintf("  #%d %s", review.ID, strings.Repeat("*", review.Rating))
		if review.Comment != "" {
			line += " - " + review.Comment
		}
		printlnFn(line)
	}
	return nil
}

// Add interactively collects a new truck stop and submits it.
func (a *App) Add(ctx context.Context) error {
	if !a.enterHome() {
		return nil
	}

	dto, err := a.readTruckStopDto()
	if err != nil {
		return err
	}

	created := a.stops.Create(ctx, *dto)
	if created == nil {
		printlnFn(a.stops.Err())
		return nil
	}
	printlnFn("Created truck stop", created.ID)
	return nil
}

// Review posts a review for a truck stop: review <id>.
func (a *App) Review(ctx context.Context, args []string) error {
	if !a.enterHome() {
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: review <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Invalid id:", args[0])
		return nil
	}

	ratingText, err := getSimpleText(a.reader, "Rating (1-5)", os.Stdout)
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(ratingText)
	if err != nil {
		printlnFn("Invalid rating:", ratingText)
		return nil
	}
	comment, err := getSimpleText(a.reader, "Comment (optional)", os.Stdout)
	if err != nil {
		return err
	}

	review := a.stops.CreateReview(ctx, id, models.CreateReviewDto{Rating: rating, Comment: comment})
	if review == nil {
		printlnFn(a.stops.Err())
		return nil
	}

	if current := a.stops.Current(); current != nil && current.ID == id && current.AverageRating != nil {
		printlnFn(fmt.Sprintf("Review posted. Average rating is now %.1f", *current.AverageRating))
	} else {
		printlnFn("Review posted.")
	}
	return nil
}

func (a *App) readTruckStopDto() (*models.CreateTruckStopDto, error) {
	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return nil, err
	}
	description, err := getSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		return nil, err
	}
	latText, err := getSimpleText(a.reader, "Latitude", os.Stdout)
	if err != nil {
		return nil, err
	}
	lat, err := strconv.ParseFloat(latText, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", latText, err)
	}
	lngText, err := getSimpleText(a.reader, "Longitude", os.Stdout)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(lngText, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", lngText, err)
	}
	hasFood, err := GetYesNo(a.reader, "Food available?", os.Stdout)
	if err != nil {
		return nil, err
	}
	hasShower, err := GetYesNo(a.reader, "Showers?", os.Stdout)
	if err != nil {
		return nil, err
	}
	hasParking, err := GetYesNo(a.reader, "Overnight parking?", os.Stdout)
	if err != nil {
		return nil, err
	}
	photos, err := GetLines(a.reader, "Photo URLs", os.Stdout)
	if err != nil {
		return nil, err
	}

	return &models.CreateTruckStopDto{
		Name:        name,
		Description: description,
		Latitude:    lat,
		Longitude:   lng,
		HasFood:     hasFood,
		HasShower:   hasShower,
		HasParking:  hasParking,
		Photos:      photos,
	}, nil
}

func (a *App) printStops() {
	stops := a.stops.TruckStops()
	if len(stops) == 0 {
		printlnFn("No truck stops loaded. Try: near <lat> <lng> [radius]")
		return
	}
	for _, stop := range stops {
		printlnFn(formatStop(stop))
	}
}

func formatStop(stop models.TruckStop) string {
	rating := "unrated"
	if stop.AverageRating != nil {
		rating = fmt.Sprintf("%.1f", *stop.AverageRating)
	}

	var amenities []string
	if stop.HasFood {
		amenities = append(amenities, "food")
	}
	if stop.HasShower {
		amenities = append(amenities, "showers")
	}
	if stop.HasParking {
		amenities = append(amenities, "parking")
	}
	extra := ""
	if len(amenities) > 0 {
		extra = " [" + strings.Join(amenities, ", ") + "]"
	}

	return fmt.Sprintf("%d: %s (%.4f, %.4f) rating=%s%s", stop.ID, stop.Name, stop.Latitude, stop.Longitude, rating, extra)
}
