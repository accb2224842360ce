package engine

import (
    "errors"
    "testing"
    "time"

    "github.com/iliyamo/lodging-reservation/internal/model"
)

func TestParseWindow(t *testing.T) {
    cases := []struct {
        name    string
        in      string
        from    int
        to      int
        wantErr bool
    }{
        {name: "empty uses default", in: "", from: 12 * 3600, to: 13 * 3600},
        {name: "full window", in: "14:00-10:00", from: 14 * 3600, to: 10 * 3600},
        {name: "minutes kept", in: "09:30-11:15", from: 9*3600 + 30*60, to: 11*3600 + 15*60},
        {name: "open time only", in: "18:00", from: 18 * 3600, to: 19 * 3600},
        {name: "garbage", in: "noon-ish", wantErr: true},
        {name: "out of range", in: "25:00-26:00", wantErr: true},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            w, err := ParseWindow(tc.in)
            if tc.wantErr {
                if !errors.Is(err, ErrInvalidScheduleWindow) {
                    t.Fatalf("ParseWindow(%q) err = %v, want ErrInvalidScheduleWindow", tc.in, err)
                }
                return
            }
            if err != nil {
                t.Fatalf("ParseWindow(%q) unexpected error: %v", tc.in, err)
            }
            if w.From != tc.from || w.To != tc.to {
                t.Errorf("ParseWindow(%q) = %d-%d, want %d-%d", tc.in, w.From, w.To, tc.from, tc.to)
            }
        })
    }
}

func day(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveTimeGrid_Accommodation(t *testing.T) {
    pm := model.ProductModel{
        Kind:           model.KindAccommodation,
        Schedulable:    true,
        ScheduleWindow: "14:00-10:00",
    }
    start := time.Date(2026, time.July, 10, 14, 0, 0, 0, time.UTC)

    grid, err := ResolveTimeGrid(start, 3, pm)
    if err != nil {
        t.Fatalf("ResolveTimeGrid: %v", err)
    }
    if len(grid) != 4 {
        t.Fatalf("accommodation grid length = %d, want nbNights+1 = 4", len(grid))
    }

    // arrival day opens at check-in and runs through the night
    if grid[0].From != 14*3600 || grid[0].To != model.EndOfDay {
        t.Errorf("arrival slot = %d-%d, want %d-%d", grid[0].From, grid[0].To, 14*3600, model.EndOfDay)
    }
    // intermediate days are fully occupied
    for i := 1; i < 3; i++ {
        if grid[i].From != 0 || grid[i].To != model.EndOfDay {
            t.Errorf("slot %d = %d-%d, want 0-%d", i, grid[i].From, grid[i].To, model.EndOfDay)
        }
    }
    // departure day closes at check-out
    if grid[3].From != 0 || grid[3].To != 10*3600 {
        t.Errorf("departure slot = %d-%d, want 0-%d", grid[3].From, grid[3].To, 10*3600)
    }
    for i, slot := range grid {
        want := day(2026, time.July, 10+i)
        if !slot.Date.Equal(want) {
            t.Errorf("slot %d date = %v, want %v", i, slot.Date, want)
        }
    }
}

func TestResolveTimeGrid_Service(t *testing.T) {
    pm := model.ProductModel{
        Kind:           model.KindMeal,
        Schedulable:    true,
        ScheduleWindow: "12:00-13:00",
        ScheduleOffset: 1, // first meal is served on day 2 of the stay
    }
    grid, err := ResolveTimeGrid(day(2026, time.July, 10), 3, pm)
    if err != nil {
        t.Fatalf("ResolveTimeGrid: %v", err)
    }
    if len(grid) != 3 {
        t.Fatalf("service grid length = %d, want nbNights = 3", len(grid))
    }
    for i, slot := range grid {
        if slot.From != 12*3600 || slot.To != 13*3600 {
            t.Errorf("slot %d window = %d-%d, want default window", i, slot.From, slot.To)
        }
        want := day(2026, time.July, 11+i)
        if !slot.Date.Equal(want) {
            t.Errorf("slot %d date = %v, want offset date %v", i, slot.Date, want)
        }
    }
}

func TestResolveTimeGrid_FixedDuration(t *testing.T) {
    pm := model.ProductModel{
        Kind:        model.KindOther,
        Schedulable: true,
        HasDuration: true,
        Duration:    2,
    }
    grid, err := ResolveTimeGrid(day(2026, time.July, 10), 5, pm)
    if err != nil {
        t.Fatalf("ResolveTimeGrid: %v", err)
    }
    if len(grid) != 2 {
        t.Errorf("fixed-duration grid length = %d, want duration = 2", len(grid))
    }
}

func TestResolveTimeGrid_InvalidWindow(t *testing.T) {
    pm := model.ProductModel{Kind: model.KindMeal, Schedulable: true, ScheduleWindow: "bogus"}
    if _, err := ResolveTimeGrid(day(2026, time.July, 10), 2, pm); !errors.Is(err, ErrInvalidScheduleWindow) {
        t.Fatalf("err = %v, want ErrInvalidScheduleWindow", err)
    }
}
