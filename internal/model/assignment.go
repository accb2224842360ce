package model

// OverflowUnitID is the sentinel rental-unit id recorded when the
// required headcount could not be covered by the available units.
// An overflow assignment is a warning, never an error.
const OverflowUnitID uint64 = 0

// RentalUnitAssignment maps part of a booking line's occupancy onto a
// rental unit.  Assignments are replaced wholesale whenever the
// owning line's quantity or dates change.  Per line, the qty values
// sum to the target headcount, or a single overflow assignment
// (RentalUnitID = 0) carries the whole unmet demand.
//
// Fields:
//  ID            – primary key identifier.
//  BookingID     – booking the assignment belongs to.
//  BookingLineID – line whose occupancy is being assigned.
//  RentalUnitID  – assigned unit, OverflowUnitID when none fit.
//  Qty           – occupants assigned to the unit for this line.
type RentalUnitAssignment struct {
    ID            uint64 // rental_unit_assignments.id
    BookingID     uint64 // rental_unit_assignments.booking_id
    BookingLineID uint64 // rental_unit_assignments.booking_line_id
    RentalUnitID  uint64 // rental_unit_assignments.rental_unit_id
    Qty           int    // rental_unit_assignments.qty
}

// IsOverflow reports whether the assignment records unmet demand
// instead of an actual unit.
func (a RentalUnitAssignment) IsOverflow() bool { return a.RentalUnitID == OverflowUnitID }
