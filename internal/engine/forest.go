package engine

import "github.com/iliyamo/lodging-reservation/internal/model"

// UnitForest is an arena over a set of rental units: parent and
// children relations are kept as slice indices so traversal never
// chases pointers and cannot cycle.  Units referenced by ParentID but
// absent from the input are simply treated as roots, which lets
// callers load only the neighbourhood of the units they care about.
type UnitForest struct {
    units    []model.RentalUnit
    index    map[uint64]int
    parent   []int   // index of the parent, -1 for roots
    children [][]int // indices of direct children, insertion order
}

// NewUnitForest builds the arena from a flat unit list.
func NewUnitForest(units []model.RentalUnit) *UnitForest {
    f := &UnitForest{
        units:    units,
        index:    make(map[uint64]int, len(units)),
        parent:   make([]int, len(units)),
        children: make([][]int, len(units)),
    }
    for i, u := range units {
        f.index[u.ID] = i
    }
    for i, u := range units {
        f.parent[i] = -1
        if u.ParentID != 0 {
            if p, ok := f.index[u.ParentID]; ok {
                f.parent[i] = p
                f.children[p] = append(f.children[p], i)
            }
        }
    }
    return f
}

// Unit returns the unit for an id when the forest holds it.
func (f *UnitForest) Unit(id uint64) (model.RentalUnit, bool) {
    i, ok := f.index[id]
    if !ok {
        return model.RentalUnit{}, false
    }
    return f.units[i], true
}

// Descendants returns the ids of every unit contained in the given
// one, depth first.
func (f *UnitForest) Descendants(id uint64) []uint64 {
    i, ok := f.index[id]
    if !ok {
        return nil
    }
    var out []uint64
    stack := make([]int, len(f.children[i]))
    copy(stack, f.children[i])
    for len(stack) > 0 {
        j := stack[len(stack)-1]
        stack = stack[:len(stack)-1]
        out = append(out, f.units[j].ID)
        stack = append(stack, f.children[j]...)
    }
    return out
}

// Ancestors returns the ids of every unit containing the given one,
// nearest first.
func (f *UnitForest) Ancestors(id uint64) []uint64 {
    i, ok := f.index[id]
    if !ok {
        return nil
    }
    var out []uint64
    for p := f.parent[i]; p >= 0; p = f.parent[p] {
        out = append(out, f.units[p].ID)
    }
    return out
}
