package engine

import (
    "encoding/json"

    "github.com/iliyamo/lodging-reservation/internal/model"
)

// NominalQty derives a line's flat quantity from its sojourn group,
// for lines that do not carry their own quantity and have no per-day
// deltas.  Accommodation-accounted products count nights; per-person
// products count persons, multiplied by the duration for services
// spanning several days (meals and accommodations span the stay);
// unit-accounted products keep whatever quantity they have.
func NominalQty(pm model.ProductModel, nbPers, nbNights, current int) int {
    switch pm.QtyMethod {
    case model.AccountingAccommodation:
        return nbNights
    case model.AccountingPerson:
        factor := 1
        if pm.HasDuration {
            factor = pm.Duration
        } else if pm.IsAccommodation() || pm.IsMeal() {
            factor = nbNights
            if factor < 1 {
                factor = 1
            }
        }
        return nbPers * factor
    default:
        return current
    }
}

// DecodeQtyVars parses a raw qty_vars JSON array into per-day deltas.
// ok is false when the value is non-empty but not a valid JSON array
// of integers; callers treat that as absent (flat quantity) after
// logging it, so partially entered data never blocks regeneration.
func DecodeQtyVars(raw string) (vars []int, ok bool) {
    if raw == "" {
        return nil, true
    }
    if err := json.Unmarshal([]byte(raw), &vars); err != nil {
        return nil, false
    }
    return vars, true
}

// EncodeQtyVars serializes per-day deltas back to their stored JSON
// form.
func EncodeQtyVars(vars []int) string {
    b, _ := json.Marshal(vars)
    return string(b)
}

// ResizeVars adapts a delta list to a new stay length: the list is
// padded with zero deltas when the stay grows and truncated from the
// end when it shrinks.  Existing deltas are preserved.
func ResizeVars(vars []int, n int) []int {
    if n < 0 {
        n = 0
    }
    out := make([]int, n)
    copy(out, vars)
    return out
}

// TotalFromVars computes a line's total quantity from the flat
// headcount and its per-day deltas: the sum over days of
// nbPers+delta.
func TotalFromVars(nbPers int, vars []int) int {
    total := 0
    for _, v := range vars {
        total += nbPers + v
    }
    return total
}

// DailyQuantities resolves the quantity to deliver on each day of a
// grid of the given length.  Every day starts at the flat nbTimes
// value; when rawVars holds valid deltas, day i becomes
// nbTimes+vars[i].  For accommodations the grid has one more day than
// the delta list (the check-out morning) and that trailing day reuses
// the last delta.  malformed reports a non-decodable rawVars value,
// which falls back to the flat profile.
func DailyQuantities(nbTimes, days int, rawVars string, isAccommodation bool) (quantities []int, malformed bool) {
    quantities = make([]int, days)
    for i := range quantities {
        quantities[i] = nbTimes
    }
    vars, ok := DecodeQtyVars(rawVars)
    if !ok {
        return quantities, true
    }
    if len(vars) == 0 {
        return quantities, false
    }
    last := 0
    for i, v := range vars {
        if i >= days {
            break
        }
        quantities[i] = nbTimes + v
        last = v
    }
    if isAccommodation && len(vars) < days {
        quantities[len(vars)] = nbTimes + last
    }
    return quantities, false
}
