// Package engine implements the consumption and rental-unit
// allocation core: it expands booking lines into day-by-day
// consumption records and assigns rental units under capacity and
// hierarchy constraints.  The package is pure computation — all
// reads happen before calling in, all writes happen after.
package engine

import (
    "errors"
    "fmt"
    "strconv"
    "strings"
    "time"

    "github.com/iliyamo/lodging-reservation/internal/model"
)

// ErrInvalidScheduleWindow is returned when a product model carries a
// schedule window that cannot be parsed.  An empty window is not an
// error; it falls back to the engine default.
var ErrInvalidScheduleWindow = errors.New("invalid schedule window")

// defaultWindow is applied when a product model has no schedule
// window configured (12:00-13:00).
var defaultWindow = Window{From: 12 * 3600, To: 13 * 3600}

// Window is a time-of-day range expressed in seconds since midnight.
// For accommodations From is the check-in time and To the check-out
// time of the stay's boundary days.
type Window struct {
    From int
    To   int
}

// TimeSlot is one entry of the resolved time grid: a calendar day
// plus the schedule window applying on that day.
type TimeSlot struct {
    Date time.Time
    From int
    To   int
}

// ParseWindow parses a "HH:MM-HH:MM" schedule window.  An empty
// string yields the default window.  When only "HH:MM" is given, the
// window closes one hour after it opens.
func ParseWindow(s string) (Window, error) {
    s = strings.TrimSpace(s)
    if s == "" {
        return defaultWindow, nil
    }
    parts := strings.SplitN(s, "-", 2)
    from, err := parseClock(parts[0])
    if err != nil {
        return Window{}, fmt.Errorf("%w: %q", ErrInvalidScheduleWindow, s)
    }
    to := from + 3600
    if len(parts) == 2 {
        to, err = parseClock(parts[1])
        if err != nil {
            return Window{}, fmt.Errorf("%w: %q", ErrInvalidScheduleWindow, s)
        }
    }
    return Window{From: from, To: to}, nil
}

// parseClock converts "HH:MM" to seconds since midnight.
func parseClock(s string) (int, error) {
    hm := strings.SplitN(strings.TrimSpace(s), ":", 2)
    if len(hm) != 2 {
        return 0, fmt.Errorf("missing ':' in %q", s)
    }
    h, err := strconv.Atoi(hm[0])
    if err != nil {
        return 0, err
    }
    m, err := strconv.Atoi(hm[1])
    if err != nil {
        return 0, err
    }
    if h < 0 || h > 24 || m < 0 || m > 59 {
        return 0, fmt.Errorf("out of range clock value %q", s)
    }
    return h*3600 + m*60, nil
}

// ResolveTimeGrid turns a sojourn's date range and a product model's
// schedule settings into the ordered list of days and windows on
// which the product is delivered.
//
// Plain services get one slot per night, each using the model's
// window.  Services with a fixed duration get exactly that many
// slots.  Accommodations get nbNights+1 slots modelling continuous
// occupancy: check-in time on the arrival day, midnight boundaries in
// between, check-out time on the departure day.
func ResolveTimeGrid(start time.Time, nbNights int, pm model.ProductModel) ([]TimeSlot, error) {
    w, err := ParseWindow(pm.ScheduleWindow)
    if err != nil {
        return nil, err
    }

    days := nbNights
    if pm.IsAccommodation() {
        days = nbNights + 1
    } else if pm.HasDuration {
        days = pm.Duration
    }
    if days <= 0 {
        return nil, nil
    }

    day0 := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

    grid := make([]TimeSlot, 0, days)
    for i := 0; i < days; i++ {
        slot := TimeSlot{
            Date: day0.AddDate(0, 0, i+pm.ScheduleOffset),
            From: w.From,
            To:   w.To,
        }
        if pm.IsAccommodation() {
            if i > 0 {
                slot.From = 0 // occupancy continues from the previous midnight
            }
            if i != nbNights {
                slot.To = model.EndOfDay // occupancy runs through the night
            }
        }
        grid = append(grid, slot)
    }
    return grid, nil
}
