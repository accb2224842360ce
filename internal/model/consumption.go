package model

import "time"

// ConsumptionKind distinguishes how a consumption occupies a rental
// unit.
//
//  BOOK – the unit (or service) is actually delivered to the customer.
//  LINK – the unit is fully blocked because a related unit is booked
//         (a child room of a booked suite, or a parent that cannot be
//         partially rented).
//  PART – the unit is partially blocked by a booked descendant and
//         remains available for its remaining capacity.
type ConsumptionKind string

const (
    KindBook ConsumptionKind = "BOOK"
    KindLink ConsumptionKind = "LINK"
    KindPart ConsumptionKind = "PART"
)

// EndOfDay is the schedule boundary, in seconds, for a consumption
// spanning until midnight of the next day.
const EndOfDay = 24 * 3600

// Consumption is one generated record of service delivery on a
// specific calendar day, optionally bound to a rental unit.  The full
// set of a line's consumptions is bulk-deleted and regenerated
// whenever the line's quantity, product or group dates change; rows
// are never edited individually.
//
// Fields:
//  ID             – primary key identifier.
//  BookingID      – booking the consumption belongs to.
//  CenterID       – center where the service is delivered.
//  SojournGroupID – group the owning line belongs to.
//  BookingLineID  – line the consumption was generated from.
//  ProductID      – product being delivered.
//  Date           – calendar day (midnight, UTC).
//  ScheduleFrom   – start of the window, seconds since midnight.
//  ScheduleTo     – end of the window, seconds since midnight (86400
//                   when the occupancy runs through the night).
//  Qty            – quantity delivered that day (persons or units).
//  Kind           – BOOK, LINK or PART.
//  IsRentalUnit   – consumption is bound to a rental unit.
//  IsMeal         – consumption is a meal.
//  RentalUnitID   – bound unit, 0 when not unit-bound.
type Consumption struct {
    ID             uint64          // consumptions.id
    BookingID      uint64          // consumptions.booking_id
    CenterID       uint64          // consumptions.center_id
    SojournGroupID uint64          // consumptions.sojourn_group_id
    BookingLineID  uint64          // consumptions.booking_line_id
    ProductID      uint64          // consumptions.product_id
    Date           time.Time       // consumptions.date
    ScheduleFrom   int             // consumptions.schedule_from (seconds)
    ScheduleTo     int             // consumptions.schedule_to (seconds)
    Qty            int             // consumptions.qty
    Kind           ConsumptionKind // consumptions.kind
    IsRentalUnit   bool            // consumptions.is_rental_unit
    IsMeal         bool            // consumptions.is_meal
    RentalUnitID   uint64          // consumptions.rental_unit_id (0 = none)
}
