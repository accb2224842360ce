package engine

import (
    "sort"

    "github.com/iliyamo/lodging-reservation/internal/model"
)

// UnitOption is a candidate rental unit presented to the allocator:
// just an id and the capacity it contributes.
type UnitOption struct {
    ID       uint64
    Capacity int
}

// Share is one slice of an allocation: qty occupants placed on a
// rental unit.  A share with UnitID = model.OverflowUnitID carries
// the whole unmet demand when the pool is insufficient.
type Share struct {
    UnitID uint64
    Qty    int
}

// SortPool orders a candidate pool by descending capacity, ties
// broken by ascending id so allocation stays deterministic.
func SortPool(pool []UnitOption) {
    sort.Slice(pool, func(i, j int) bool {
        if pool[i].Capacity != pool[j].Capacity {
            return pool[i].Capacity > pool[j].Capacity
        }
        return pool[i].ID < pool[j].ID
    })
}

// Allocate selects rental units out of pool to cover nbPers
// occupants and computes the per-unit share.  The pool must already
// be sorted by descending capacity (see SortPool).
//
// In UNIT mode the first candidate takes the whole headcount;
// capacity is advisory there, a configured unit is never split.  The
// other modes walk the descending list looking for the shortest
// suffix whose summed capacity still covers nbPers, preferring a
// single unit close to the target over a wider split, then fill units
// greedily.  When the pool cannot cover the demand a single overflow
// share is returned instead of an error: lack of availability is a
// warning for the caller, not a failure.
func Allocate(mode model.AssignmentMode, nbPers int, pool []UnitOption) []Share {
    if nbPers <= 0 {
        return nil
    }

    overflow := []Share{{UnitID: model.OverflowUnitID, Qty: nbPers}}

    if mode == model.AssignByUnit {
        if len(pool) == 0 {
            return overflow
        }
        return []Share{{UnitID: pool[0].ID, Qty: nbPers}}
    }

    n := len(pool)
    available := 0
    i := 0
    for ; i < n; i++ {
        sum := 0
        for _, u := range pool[i:] {
            sum += u.Capacity
        }
        if sum < nbPers {
            break
        }
        // when the previous window already covers the demand and the
        // narrower one is at least as close to it, keep the narrower
        // starting point
        if available >= nbPers && abs(nbPers-sum) <= abs(nbPers-available) {
            i--
            break
        }
        available = sum
    }

    if available < nbPers {
        return overflow
    }

    start := i - 1
    if start < 0 {
        start = 0
    }
    shares := make([]Share, 0, n-start)
    remaining := nbPers
    for j := start; j < n && remaining > 0; j++ {
        qty := pool[j].Capacity
        if qty > remaining {
            qty = remaining
        }
        shares = append(shares, Share{UnitID: pool[j].ID, Qty: qty})
        remaining -= qty
    }
    if remaining > 0 {
        return overflow
    }
    return shares
}

func abs(v int) int {
    if v < 0 {
        return -v
    }
    return v
}
