package dining

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// DefaultTimeZone is where every Carnegie Mellon dining location operates.
const DefaultTimeZone = "America/New_York"

// LoadTimeZone resolves name, falling back to DefaultTimeZone when empty.
func LoadTimeZone(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimeZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", name, err)
	}
	return loc, nil
}
