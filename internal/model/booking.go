package model

import "time"

// BookingStatus enumerates the lifecycle states of a booking.  Only
// bookings moving to OPTION or CONFIRMED get their consumptions
// placed on the planning.
type BookingStatus string

const (
    BookingQuote     BookingStatus = "QUOTE"
    BookingOption    BookingStatus = "OPTION"
    BookingConfirmed BookingStatus = "CONFIRMED"
    BookingCancelled BookingStatus = "CANCELLED"
)

// Booking is the root aggregate of a stay.  It owns one or more
// sojourn groups, each of which owns the booking lines.
//
// Fields:
//  ID        – primary key identifier.
//  CenterID  – lodging center at which the stay takes place.
//  CustomerID – customer the booking belongs to.
//  Status    – state of the booking (QUOTE, OPTION, CONFIRMED, CANCELLED).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Booking struct {
    ID         uint64        // bookings.id
    CenterID   uint64        // bookings.center_id
    CustomerID uint64        // bookings.customer_id
    Status     BookingStatus // bookings.status
    CreatedAt  time.Time     // bookings.created_at
    UpdatedAt  time.Time     // bookings.updated_at
}
