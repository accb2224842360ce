package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/iliyamo/lodging-reservation/internal/engine"
    "github.com/iliyamo/lodging-reservation/internal/model"
)

// RentalUnitRepo provides access to rental units and answers the
// availability question: which units of a center can still host a
// stay over a given window.  Ordering is always capacity DESC then
// id ASC, which is the order the allocator walks.
type RentalUnitRepo struct {
    db *sql.DB
}

// NewRentalUnitRepo returns a new RentalUnitRepo bound to the given database.
func NewRentalUnitRepo(db *sql.DB) *RentalUnitRepo { return &RentalUnitRepo{db: db} }

const unitColumns = `id, center_id, COALESCE(category_id, 0), name, capacity,
               COALESCE(parent_id, 0), can_partial_rent`

func scanUnits(rows *sql.Rows) ([]model.RentalUnit, error) {
    defer rows.Close()
    var units []model.RentalUnit
    for rows.Next() {
        var u model.RentalUnit
        if err := rows.Scan(&u.ID, &u.CenterID, &u.CategoryID, &u.Name, &u.Capacity,
            &u.ParentID, &u.CanPartialRent); err != nil {
            return nil, err
        }
        units = append(units, u)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return units, nil
}

// eligibleQuery builds the pool query for a product model's
// assignment mode.  UNIT mode targets the one configured unit,
// CATEGORY restricts by category within the center, CAPACITY takes
// every unit of the center at or under the model's capacity ceiling.
func eligibleQuery(centerID uint64, pm *model.ProductModel) (string, []interface{}, error) {
    base := `SELECT ` + unitColumns + ` FROM rental_units WHERE `
    switch pm.AssignMode {
    case model.AssignByUnit:
        if pm.RentalUnitID == 0 {
            return "", nil, ErrMissingUnitReference
        }
        // center scoping guards against a model configured with a
        // unit belonging to another center
        return base + `id = ? AND center_id = ?`, []interface{}{pm.RentalUnitID, centerID}, nil
    case model.AssignByCategory:
        if pm.RentalUnitCategoryID == 0 {
            return "", nil, ErrMissingCategoryReference
        }
        return base + `center_id = ? AND category_id = ? ORDER BY capacity DESC, id ASC`,
            []interface{}{centerID, pm.RentalUnitCategoryID}, nil
    default:
        return base + `center_id = ? AND capacity <= ? ORDER BY capacity DESC, id ASC`,
            []interface{}{centerID, pm.Capacity}, nil
    }
}

// unitConflicts returns, for every pool unit holding an overlapping
// rental-unit consumption, whether at least one of those consumptions
// belongs to a booking other than ownBookingID.  Overlap is half-open
// on absolute instants (date plus schedule seconds), so a departure
// at 10:00 never blocks an arrival at 10:00 the same day.
func (r *RentalUnitRepo) unitConflicts(ctx context.Context, q queryer, unitIDs []uint64,
    from, to time.Time, ownBookingID uint64) (map[uint64]bool, error) {

    conflicts := make(map[uint64]bool)
    if len(unitIDs) == 0 {
        return conflicts, nil
    }
    placeholders := make([]string, len(unitIDs))
    args := make([]interface{}, 0, len(unitIDs)+2)
    for i, id := range unitIDs {
        placeholders[i] = "?"
        args = append(args, id)
    }
    args = append(args,
        to.UTC().Format("2006-01-02 15:04:05"),
        from.UTC().Format("2006-01-02 15:04:05"),
    )
    query := `SELECT DISTINCT rental_unit_id, booking_id FROM consumptions
              WHERE is_rental_unit = 1
                AND rental_unit_id IN (` + strings.Join(placeholders, ",") + `)
                AND TIMESTAMP(date) + INTERVAL schedule_from SECOND < ?
                AND TIMESTAMP(date) + INTERVAL schedule_to SECOND > ?`
    rows, err := q.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var unitID, bookingID uint64
        if err := rows.Scan(&unitID, &bookingID); err != nil {
            return nil, err
        }
        // presence means occupied, true means by another booking
        conflicts[unitID] = conflicts[unitID] || bookingID != ownBookingID
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return conflicts, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
    QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// available computes the ordered availability list over q: free units
// first (capacity DESC, id ASC), then units occupied only by
// ownBookingID, so a regeneration can keep its current rooms.  Units
// blocked by any other booking are dropped.
func (r *RentalUnitRepo) available(ctx context.Context, q queryer, centerID uint64,
    pm *model.ProductModel, from, to time.Time, ownBookingID uint64, lock bool) ([]model.RentalUnit, error) {

    poolQuery, args, err := eligibleQuery(centerID, pm)
    if err != nil {
        return nil, err
    }
    if lock {
        poolQuery += ` FOR UPDATE`
    }
    rows, err := q.QueryContext(ctx, poolQuery, args...)
    if err != nil {
        return nil, err
    }
    pool, err := scanUnits(rows)
    if err != nil {
        return nil, err
    }

    ids := make([]uint64, len(pool))
    for i, u := range pool {
        ids[i] = u.ID
    }
    conflicts, err := r.unitConflicts(ctx, q, ids, from, to, ownBookingID)
    if err != nil {
        return nil, err
    }

    free := make([]model.RentalUnit, 0, len(pool))
    var ownOccupied []model.RentalUnit
    for _, u := range pool {
        other, occupied := conflicts[u.ID]
        switch {
        case !occupied:
            free = append(free, u)
        case !other:
            ownOccupied = append(ownOccupied, u)
        }
    }
    return append(free, ownOccupied...), nil
}

// Available answers the availability endpoint without locking rows.
// The result may be stale by the time a generation runs; the
// generation re-checks under FOR UPDATE.
func (r *RentalUnitRepo) Available(ctx context.Context, centerID uint64, pm *model.ProductModel,
    from, to time.Time, ownBookingID uint64) ([]model.RentalUnit, error) {
    return r.available(ctx, r.db, centerID, pm, from, to, ownBookingID, false)
}

// AvailableTx is the locking variant used during generation: the pool
// rows are held FOR UPDATE so two concurrent allocations cannot both
// see the same unit as free.
func (r *RentalUnitRepo) AvailableTx(ctx context.Context, tx *sql.Tx, centerID uint64, pm *model.ProductModel,
    from, to time.Time, ownBookingID uint64) ([]model.RentalUnit, error) {
    return r.available(ctx, tx, centerID, pm, from, to, ownBookingID, true)
}

func (r *RentalUnitRepo) unitsWhereTx(ctx context.Context, tx *sql.Tx, column string, ids []uint64) ([]model.RentalUnit, error) {
    if len(ids) == 0 {
        return nil, nil
    }
    placeholders := make([]string, len(ids))
    args := make([]interface{}, len(ids))
    for i, id := range ids {
        placeholders[i] = "?"
        args[i] = id
    }
    q := `SELECT ` + unitColumns + ` FROM rental_units WHERE ` + column +
        ` IN (` + strings.Join(placeholders, ",") + `)`
    rows, err := tx.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    return scanUnits(rows)
}

// ForestForUnitsTx loads the assigned units together with their full
// ancestor chains and descendant subtrees, enough for the generator
// to propagate consumptions up and down the hierarchy.  Siblings of
// ancestors are not loaded; propagation never visits them.
func (r *RentalUnitRepo) ForestForUnitsTx(ctx context.Context, tx *sql.Tx, unitIDs []uint64) (*engine.UnitForest, error) {
    seen := make(map[uint64]bool)
    var units []model.RentalUnit

    // assigned units plus their ancestor chains
    frontier := append([]uint64(nil), unitIDs...)
    for len(frontier) > 0 {
        batch, err := r.unitsWhereTx(ctx, tx, "id", frontier)
        if err != nil {
            return nil, err
        }
        frontier = nil
        for _, u := range batch {
            if seen[u.ID] {
                continue
            }
            seen[u.ID] = true
            units = append(units, u)
            if u.ParentID != 0 && !seen[u.ParentID] {
                frontier = append(frontier, u.ParentID)
            }
        }
    }

    // descendant subtrees of the assigned units
    frontier = append([]uint64(nil), unitIDs...)
    for len(frontier) > 0 {
        batch, err := r.unitsWhereTx(ctx, tx, "parent_id", frontier)
        if err != nil {
            return nil, err
        }
        frontier = nil
        for _, u := range batch {
            if seen[u.ID] {
                continue
            }
            seen[u.ID] = true
            units = append(units, u)
            frontier = append(frontier, u.ID)
        }
    }
    return engine.NewUnitForest(units), nil
}
