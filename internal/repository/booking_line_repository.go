package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/lodging-reservation/internal/model"
)

// BookingLineRepo provides access to booking lines.  Regeneration
// always starts by locking the targeted lines (SELECT ... FOR UPDATE)
// so that concurrent runs on the same line are serialized and a
// discard/regenerate pair can never interleave with another one.
type BookingLineRepo struct {
    db *sql.DB
}

// NewBookingLineRepo returns a new BookingLineRepo bound to the given database.
func NewBookingLineRepo(db *sql.DB) *BookingLineRepo { return &BookingLineRepo{db: db} }

const lineColumns = `id, booking_id, sojourn_group_id, product_id, product_model_id,
               qty, COALESCE(qty_vars, ''), has_own_qty, created_at, updated_at`

func scanLines(rows *sql.Rows) ([]model.BookingLine, error) {
    defer rows.Close()
    var lines []model.BookingLine
    for rows.Next() {
        var l model.BookingLine
        if err := rows.Scan(&l.ID, &l.BookingID, &l.SojournGroupID, &l.ProductID, &l.ProductModelID,
            &l.Qty, &l.QtyVars, &l.HasOwnQty, &l.CreatedAt, &l.UpdatedAt); err != nil {
            return nil, err
        }
        lines = append(lines, l)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return lines, nil
}

// LockByIDsTx loads the given lines and locks their rows until the
// transaction ends.  It returns ErrLineNotFound when any requested id
// is missing, so a generation run never silently skips a line.
func (r *BookingLineRepo) LockByIDsTx(ctx context.Context, tx *sql.Tx, ids []uint64) ([]model.BookingLine, error) {
    if len(ids) == 0 {
        return nil, nil
    }
    placeholders := make([]string, len(ids))
    args := make([]interface{}, len(ids))
    for i, id := range ids {
        placeholders[i] = "?"
        args[i] = id
    }
    q := `SELECT ` + lineColumns + ` FROM booking_lines WHERE id IN (` +
        strings.Join(placeholders, ",") + `) ORDER BY id FOR UPDATE`
    rows, err := tx.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    lines, err := scanLines(rows)
    if err != nil {
        return nil, err
    }
    if len(lines) != len(ids) {
        return nil, ErrLineNotFound
    }
    return lines, nil
}

// LockByGroupTx loads and locks every line of a sojourn group,
// ordered by id for deterministic processing.
func (r *BookingLineRepo) LockByGroupTx(ctx context.Context, tx *sql.Tx, groupID uint64) ([]model.BookingLine, error) {
    q := `SELECT ` + lineColumns + ` FROM booking_lines WHERE sojourn_group_id = ? ORDER BY id FOR UPDATE`
    rows, err := tx.QueryContext(ctx, q, groupID)
    if err != nil {
        return nil, err
    }
    return scanLines(rows)
}

// UpdateQtyTx rewrites a line's quantity and per-day deltas.  An
// empty qtyVars clears the stored value.
func (r *BookingLineRepo) UpdateQtyTx(ctx context.Context, tx *sql.Tx, id uint64, qty int, qtyVars string) error {
    const q = `UPDATE booking_lines SET qty = ?, qty_vars = NULLIF(?, ''), updated_at = UTC_TIMESTAMP() WHERE id = ?`
    res, err := tx.ExecContext(ctx, q, qty, qtyVars, id)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return ErrLineNotFound
    }
    return nil
}
