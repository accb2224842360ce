package engine

import (
    "github.com/iliyamo/lodging-reservation/internal/model"
)

// LineSnapshot bundles the read state needed to expand one booking
// line into consumptions.  Callers load it inside the transaction
// that will also persist the result, so the expansion works on a
// consistent view.
type LineSnapshot struct {
    Booking model.Booking
    Group   model.SojournGroup
    Line    model.BookingLine
    Model   model.ProductModel

    // Assignments holds the line's rental-unit assignments; empty for
    // non-accommodation lines.
    Assignments []model.RentalUnitAssignment

    // Units covers the assigned units plus their ancestors and
    // descendants, as loaded by the repository.  May be nil for
    // non-accommodation lines.
    Units *UnitForest
}

// Consumptions expands a booking line over its time grid.
//
// Non-schedulable products and lines with a non-positive quantity
// yield nothing.  Accommodation lines yield one BOOK consumption per
// day per assigned unit, plus LINK rows for every descendant of a
// booked unit and LINK or PART rows for its ancestors (PART when the
// ancestor allows partial renting).  Other lines yield a single BOOK
// consumption per day carrying that day's quantity.
//
// malformedVars reports a qty_vars value that could not be decoded
// and was ignored; the caller is expected to log it.
func Consumptions(s LineSnapshot) (out []model.Consumption, malformedVars bool, err error) {
    if !s.Model.Schedulable || s.Line.Qty <= 0 {
        return nil, false, nil
    }

    grid, err := ResolveTimeGrid(s.Group.DateFrom, s.Group.NbNights, s.Model)
    if err != nil {
        return nil, false, err
    }
    if len(grid) == 0 {
        return nil, false, nil
    }

    // an accommodation is accounted independently of the headcount
    nbTimes := s.Group.NbPers
    if s.Model.QtyMethod == model.AccountingAccommodation {
        nbTimes = 1
    }

    daily := make([]int, len(grid))
    for i := range daily {
        daily[i] = nbTimes
    }
    if s.Model.QtyMethod == model.AccountingPerson && nbTimes*len(grid) != s.Line.Qty {
        daily, malformedVars = DailyQuantities(nbTimes, len(grid), s.Line.QtyVars, s.Model.IsAccommodation())
    }

    base := model.Consumption{
        BookingID:      s.Line.BookingID,
        CenterID:       s.Booking.CenterID,
        SojournGroupID: s.Line.SojournGroupID,
        BookingLineID:  s.Line.ID,
        ProductID:      s.Line.ProductID,
        IsMeal:         s.Model.IsMeal(),
        IsRentalUnit:   s.Model.IsAccommodation(),
    }

    for i, slot := range grid {
        c := base
        c.Date = slot.Date
        c.ScheduleFrom = slot.From
        c.ScheduleTo = slot.To

        if !s.Model.IsAccommodation() {
            c.Kind = model.KindBook
            c.Qty = daily[i]
            out = append(out, c)
            continue
        }

        for _, a := range s.Assignments {
            c.Kind = model.KindBook
            c.Qty = a.Qty
            c.RentalUnitID = a.RentalUnitID
            out = append(out, c)

            if a.IsOverflow() || s.Units == nil {
                continue
            }
            // every contained unit is fully blocked for the same window
            for _, childID := range s.Units.Descendants(a.RentalUnitID) {
                c.Kind = model.KindLink
                c.RentalUnitID = childID
                out = append(out, c)
            }
            // containers are blocked too, partially when they allow it
            for _, parentID := range s.Units.Ancestors(a.RentalUnitID) {
                c.Kind = model.KindLink
                if parent, ok := s.Units.Unit(parentID); ok && parent.CanPartialRent {
                    c.Kind = model.KindPart
                }
                c.RentalUnitID = parentID
                out = append(out, c)
            }
        }
    }
    return out, malformedVars, nil
}
