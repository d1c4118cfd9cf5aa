package transit

import (
	"context"
	"strconv"
	"strings"
)

// Hit describes the nearest transit station to a point and how long it
// takes to walk there.
type Hit struct {
	Name         string `json:"name"`
	DistanceText string `json:"distance_text,omitempty"`
	DurationText string `json:"duration_text,omitempty"`
	Minutes      *int   `json:"minutes,omitempty"`
}

// Locator finds the closest transit station to a coordinate. A nil hit with
// a nil error means no station was found within range.
type Locator interface {
	Nearest(ctx context.Context, lat, lng float64) (*Hit, error)
}

// leadingMinutes extracts the leading integer token of a human readable
// duration like "7 mins".
func leadingMinutes(text string) (int, bool) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}
