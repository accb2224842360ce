package model

import "time"

// SojournGroup describes a stay of one or more nights for a given
// headcount within a booking.  Booking lines always belong to exactly
// one group; the group's date range and headcount drive the quantity
// and schedule of every line it owns.
//
// Fields:
//  ID        – primary key identifier.
//  BookingID – booking the group belongs to.
//  DateFrom  – arrival date and time (check-in).
//  DateTo    – departure date and time (check-out).
//  NbPers    – number of persons staying.
//  NbNights  – whole nights between DateFrom and DateTo; repositories
//              populate it with DATEDIFF so it always matches the range.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type SojournGroup struct {
    ID        uint64    // sojourn_groups.id
    BookingID uint64    // sojourn_groups.booking_id
    DateFrom  time.Time // sojourn_groups.date_from
    DateTo    time.Time // sojourn_groups.date_to
    NbPers    int       // sojourn_groups.nb_pers
    NbNights  int       // derived: DATEDIFF(date_to, date_from)
    CreatedAt time.Time // sojourn_groups.created_at
    UpdatedAt time.Time // sojourn_groups.updated_at
}

// Nights recomputes the night count from the date range.  It is the
// floor of the duration expressed in whole days and must agree with
// the stored NbNights field.
func (g SojournGroup) Nights() int {
    return int(g.DateTo.Sub(g.DateFrom) / (24 * time.Hour))
}
