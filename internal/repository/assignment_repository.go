package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/lodging-reservation/internal/model"
)

// AssignmentRepo persists rental-unit assignments, the per-line split
// of the headcount over physical units.  Assignments survive a
// consumption discard so a regeneration with unchanged dates can
// reuse them instead of re-running the allocator.
type AssignmentRepo struct {
    db *sql.DB
}

// NewAssignmentRepo returns a new AssignmentRepo bound to the given database.
func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

// ListByLineTx returns the assignments of a booking line, overflow
// rows (rental_unit_id = 0) included, ordered by id.
func (r *AssignmentRepo) ListByLineTx(ctx context.Context, tx *sql.Tx, lineID uint64) ([]model.RentalUnitAssignment, error) {
    const q = `SELECT id, booking_id, booking_line_id, rental_unit_id, qty
               FROM rental_unit_assignments WHERE booking_line_id = ? ORDER BY id`
    rows, err := tx.QueryContext(ctx, q, lineID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.RentalUnitAssignment
    for rows.Next() {
        var a model.RentalUnitAssignment
        if err := rows.Scan(&a.ID, &a.BookingID, &a.BookingLineID, &a.RentalUnitID, &a.Qty); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// DeleteByLineTx drops every assignment of a booking line.
func (r *AssignmentRepo) DeleteByLineTx(ctx context.Context, tx *sql.Tx, lineID uint64) error {
    const q = `DELETE FROM rental_unit_assignments WHERE booking_line_id = ?`
    _, err := tx.ExecContext(ctx, q, lineID)
    return err
}

// CreateBulkTx inserts all assignments of a line in one statement.
func (r *AssignmentRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, assignments []model.RentalUnitAssignment) error {
    if len(assignments) == 0 {
        return nil
    }
    var sb strings.Builder
    sb.WriteString(`INSERT INTO rental_unit_assignments (booking_id, booking_line_id, rental_unit_id, qty) VALUES `)
    args := make([]interface{}, 0, len(assignments)*4)
    for i, a := range assignments {
        if i > 0 {
            sb.WriteString(", ")
        }
        sb.WriteString("(?, ?, ?, ?)")
        args = append(args, a.BookingID, a.BookingLineID, a.RentalUnitID, a.Qty)
    }
    _, err := tx.ExecContext(ctx, sb.String(), args...)
    return err
}
