package engine

import (
    "reflect"
    "testing"

    "github.com/iliyamo/lodging-reservation/internal/model"
)

func TestSortPool(t *testing.T) {
    pool := []UnitOption{{ID: 2, Capacity: 2}, {ID: 3, Capacity: 3}, {ID: 1, Capacity: 2}}
    SortPool(pool)
    want := []UnitOption{{ID: 3, Capacity: 3}, {ID: 1, Capacity: 2}, {ID: 2, Capacity: 2}}
    if !reflect.DeepEqual(pool, want) {
        t.Errorf("SortPool = %v, want capacity desc then id asc %v", pool, want)
    }
}

func TestAllocate_SplitOverTwoUnits(t *testing.T) {
    // 4 persons over capacities [3,2,2]: the [3,2] pair wins over the
    // full [2,2,3] split, filled in descending-capacity order
    pool := []UnitOption{{ID: 1, Capacity: 2}, {ID: 2, Capacity: 2}, {ID: 3, Capacity: 3}}
    SortPool(pool)
    got := Allocate(model.AssignByCategory, 4, pool)
    want := []Share{{UnitID: 3, Qty: 3}, {UnitID: 1, Qty: 1}}
    if !reflect.DeepEqual(got, want) {
        t.Errorf("Allocate = %v, want %v", got, want)
    }
}

func TestAllocate_Overflow(t *testing.T) {
    // 5 persons cannot fit in [2,2]: one overflow share, no partial fill
    pool := []UnitOption{{ID: 1, Capacity: 2}, {ID: 2, Capacity: 2}}
    got := Allocate(model.AssignByCapacity, 5, pool)
    want := []Share{{UnitID: model.OverflowUnitID, Qty: 5}}
    if !reflect.DeepEqual(got, want) {
        t.Errorf("Allocate = %v, want overflow %v", got, want)
    }
}

func TestAllocate_PrefersSingleUnit(t *testing.T) {
    // 3 persons with [5,4] available: one unit suffices, no split
    pool := []UnitOption{{ID: 10, Capacity: 5}, {ID: 11, Capacity: 4}}
    got := Allocate(model.AssignByCategory, 3, pool)
    if len(got) != 1 {
        t.Fatalf("Allocate used %d units, want 1 (%v)", len(got), got)
    }
    if got[0].UnitID == model.OverflowUnitID || got[0].Qty != 3 {
        t.Errorf("share = %+v, want full headcount on a single unit", got[0])
    }
}

func TestAllocate_ExactFullPool(t *testing.T) {
    pool := []UnitOption{{ID: 1, Capacity: 3}, {ID: 2, Capacity: 2}, {ID: 3, Capacity: 2}}
    got := Allocate(model.AssignByCapacity, 7, pool)
    want := []Share{{UnitID: 1, Qty: 3}, {UnitID: 2, Qty: 2}, {UnitID: 3, Qty: 2}}
    if !reflect.DeepEqual(got, want) {
        t.Errorf("Allocate = %v, want whole pool %v", got, want)
    }
}

func TestAllocate_FixedUnit(t *testing.T) {
    // the configured unit takes the whole headcount; its capacity is
    // advisory in this mode
    pool := []UnitOption{{ID: 7, Capacity: 2}}
    got := Allocate(model.AssignByUnit, 6, pool)
    want := []Share{{UnitID: 7, Qty: 6}}
    if !reflect.DeepEqual(got, want) {
        t.Errorf("Allocate = %v, want %v", got, want)
    }
}

func TestAllocate_FixedUnitUnavailable(t *testing.T) {
    got := Allocate(model.AssignByUnit, 2, nil)
    want := []Share{{UnitID: model.OverflowUnitID, Qty: 2}}
    if !reflect.DeepEqual(got, want) {
        t.Errorf("Allocate = %v, want overflow %v", got, want)
    }
}

func TestAllocate_ZeroHeadcount(t *testing.T) {
    if got := Allocate(model.AssignByCategory, 0, []UnitOption{{ID: 1, Capacity: 2}}); got != nil {
        t.Errorf("Allocate with zero headcount = %v, want nil", got)
    }
}

func TestAllocate_SharesSumToHeadcount(t *testing.T) {
    pools := [][]UnitOption{
        {{ID: 1, Capacity: 6}},
        {{ID: 1, Capacity: 4}, {ID: 2, Capacity: 4}},
        {{ID: 1, Capacity: 8}, {ID: 2, Capacity: 3}, {ID: 3, Capacity: 2}},
    }
    for _, pool := range pools {
        SortPool(pool)
        for n := 1; n <= 13; n++ {
            shares := Allocate(model.AssignByCapacity, n, pool)
            sum := 0
            for _, s := range shares {
                sum += s.Qty
            }
            if sum != n {
                t.Errorf("pool %v headcount %d: shares %v sum to %d", pool, n, shares, sum)
            }
            if len(shares) == 1 && shares[0].UnitID == model.OverflowUnitID {
                continue
            }
            for _, s := range shares {
                if s.UnitID == model.OverflowUnitID {
                    t.Errorf("pool %v headcount %d: overflow mixed with real shares %v", pool, n, shares)
                }
            }
        }
    }
}
