package domain

import (
	"sort"
	"strings"
	"time"
)

// Space is a bookable physical facility.
type Space struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	Features  []string  `json:"features"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the invariants the persistence layer does not enforce.
func (s *Space) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return Validationf("name is required")
	}
	if strings.TrimSpace(s.Location) == "" {
		return Validationf("location is required")
	}
	if s.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}

// FeatureSet trims, de-duplicates and sorts feature tags. Blank tags are dropped.
func FeatureSet(features []string) []string {
	seen := make(map[string]struct{}, len(features))
	out := make([]string, 0, len(features))
	for _, f := range features {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
