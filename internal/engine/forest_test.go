package engine

import (
    "reflect"
    "sort"
    "testing"

    "github.com/iliyamo/lodging-reservation/internal/model"
)

// testUnits is a small house: building 1 holds floors 2 and 3, floor
// 2 holds rooms 4 and 5, room 4 holds bed 6.
func testUnits() []model.RentalUnit {
    return []model.RentalUnit{
        {ID: 1, Name: "building", Capacity: 12, CanPartialRent: true},
        {ID: 2, Name: "floor 1", Capacity: 8, ParentID: 1, CanPartialRent: false},
        {ID: 3, Name: "floor 2", Capacity: 4, ParentID: 1, CanPartialRent: true},
        {ID: 4, Name: "room 201", Capacity: 4, ParentID: 2},
        {ID: 5, Name: "room 202", Capacity: 4, ParentID: 2},
        {ID: 6, Name: "bed 201-a", Capacity: 1, ParentID: 4},
    }
}

func sortedIDs(ids []uint64) []uint64 {
    out := append([]uint64(nil), ids...)
    sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
    return out
}

func TestUnitForest_Descendants(t *testing.T) {
    f := NewUnitForest(testUnits())
    got := sortedIDs(f.Descendants(2))
    if want := []uint64{4, 5, 6}; !reflect.DeepEqual(got, want) {
        t.Errorf("Descendants(2) = %v, want %v", got, want)
    }
    if ids := f.Descendants(6); len(ids) != 0 {
        t.Errorf("Descendants(leaf) = %v, want none", ids)
    }
    if ids := f.Descendants(99); ids != nil {
        t.Errorf("Descendants(unknown) = %v, want nil", ids)
    }
}

func TestUnitForest_Ancestors(t *testing.T) {
    f := NewUnitForest(testUnits())
    if got, want := f.Ancestors(6), []uint64{4, 2, 1}; !reflect.DeepEqual(got, want) {
        t.Errorf("Ancestors(6) = %v, want nearest-first %v", got, want)
    }
    if ids := f.Ancestors(1); len(ids) != 0 {
        t.Errorf("Ancestors(root) = %v, want none", ids)
    }
}

func TestUnitForest_MissingParentIsRoot(t *testing.T) {
    // units loaded without their container behave as roots
    f := NewUnitForest([]model.RentalUnit{{ID: 4, ParentID: 2}})
    if ids := f.Ancestors(4); len(ids) != 0 {
        t.Errorf("Ancestors with unloaded parent = %v, want none", ids)
    }
}
