package model

// RentalUnit is a physical bookable resource at a center: a building,
// a floor, a room or even a single bed.  Units form a forest through
// ParentID; reserving a unit also blocks its descendants, and blocks
// or partially reserves its ancestors depending on CanPartialRent.
//
// Fields:
//  ID             – primary key identifier.
//  CenterID       – center the unit belongs to.
//  CategoryID     – unit category, used by the CATEGORY assignment mode.
//  Name           – display name.
//  Capacity       – maximum number of occupants.
//  ParentID       – containing unit, 0 for roots.
//  CanPartialRent – when true, reserving a child only partially blocks
//                   this unit; when false any child reservation blocks
//                   it entirely.
type RentalUnit struct {
    ID             uint64 // rental_units.id
    CenterID       uint64 // rental_units.center_id
    CategoryID     uint64 // rental_units.category_id
    Name           string // rental_units.name
    Capacity       int    // rental_units.capacity
    ParentID       uint64 // rental_units.parent_id (0 = root)
    CanPartialRent bool   // rental_units.can_partial_rent
}
