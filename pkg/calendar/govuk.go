package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/dates"
)

// DefaultFeedURL is the GOV.UK bank-holidays feed.
const DefaultFeedURL = "https://www.gov.uk/bank-holidays.json"

// GOVUKSource fetches holiday data from the GOV.UK bank-holidays feed. The
// feed's division keys line up with the engine's region keys.
type GOVUKSource struct {
	URL    string
	Client *http.Client
}

// NewGOVUKSource builds a source against the public feed with a sane
// request timeout. The Service's Refresh context bounds each fetch further.
func NewGOVUKSource() *GOVUKSource {
	return &GOVUKSource{
		URL:    DefaultFeedURL,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type govukFeed map[string]struct {
	Division string `json:"division"`
	Events   []struct {
		Date string `json:"date"`
	} `json:"events"`
}

// Holidays implements Source.
func (s *GOVUKSource) Holidays(ctx context.Context, region string) ([]dates.Date, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", s.URL, resp.Status)
	}

	var feed govukFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding holiday feed: %w", err)
	}

	division, ok := feed[region]
	if !ok {
		return nil, fmt.Errorf("holiday feed has no division %q", region)
	}

	out := make([]dates.Date, 0, len(division.Events))
	for _, ev := range division.Events {
		d, err := dates.Parse(ev.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday feed: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}
