package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/lodging-reservation/internal/model"
)

// ConsumptionRepo persists generated consumptions.  Consumptions are
// never updated in place: regeneration deletes the previous set of a
// line and inserts the new one inside the same transaction.
type ConsumptionRepo struct {
    db *sql.DB
}

// NewConsumptionRepo returns a new ConsumptionRepo bound to the given database.
func NewConsumptionRepo(db *sql.DB) *ConsumptionRepo { return &ConsumptionRepo{db: db} }

// DeleteByLinesTx discards every consumption belonging to the given
// booking lines.
func (r *ConsumptionRepo) DeleteByLinesTx(ctx context.Context, tx *sql.Tx, lineIDs []uint64) error {
    if len(lineIDs) == 0 {
        return nil
    }
    placeholders := make([]string, len(lineIDs))
    args := make([]interface{}, len(lineIDs))
    for i, id := range lineIDs {
        placeholders[i] = "?"
        args[i] = id
    }
    q := `DELETE FROM consumptions WHERE booking_line_id IN (` + strings.Join(placeholders, ",") + `)`
    _, err := tx.ExecContext(ctx, q, args...)
    return err
}

// CreateBulkTx inserts all consumptions in one statement.  A stay of
// a few nights easily produces dozens of rows (one per day per unit
// in the hierarchy), so row-at-a-time inserts would dominate the
// generation transaction.
func (r *ConsumptionRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, consumptions []model.Consumption) error {
    if len(consumptions) == 0 {
        return nil
    }
    var sb strings.Builder
    sb.WriteString(`INSERT INTO consumptions
        (booking_id, center_id, sojourn_group_id, booking_line_id, product_id,
         date, schedule_from, schedule_to, qty, kind, is_rental_unit, is_meal, rental_unit_id)
        VALUES `)
    args := make([]interface{}, 0, len(consumptions)*13)
    for i, c := range consumptions {
        if i > 0 {
            sb.WriteString(", ")
        }
        sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
        args = append(args, c.BookingID, c.CenterID, c.SojournGroupID, c.BookingLineID, c.ProductID,
            c.Date.UTC().Format("2006-01-02"), c.ScheduleFrom, c.ScheduleTo,
            c.Qty, c.Kind, c.IsRentalUnit, c.IsMeal, c.RentalUnitID)
    }
    _, err := tx.ExecContext(ctx, sb.String(), args...)
    return err
}

// ListByBooking returns the stored consumptions of a booking ordered
// the way planners read them: by date, then unit, then line.
func (r *ConsumptionRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.Consumption, error) {
    const q = `SELECT id, booking_id, center_id, sojourn_group_id, booking_line_id, product_id,
               date, schedule_from, schedule_to, qty, kind, is_rental_unit, is_meal, rental_unit_id
               FROM consumptions WHERE booking_id = ?
               ORDER BY date ASC, rental_unit_id ASC, booking_line_id ASC, id ASC`
    rows, err := r.db.QueryContext(ctx, q, bookingID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Consumption
    for rows.Next() {
        var c model.Consumption
        if err := rows.Scan(&c.ID, &c.BookingID, &c.CenterID, &c.SojournGroupID, &c.BookingLineID, &c.ProductID,
            &c.Date, &c.ScheduleFrom, &c.ScheduleTo, &c.Qty, &c.Kind, &c.IsRentalUnit, &c.IsMeal, &c.RentalUnitID); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
