package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/lodging-reservation/internal/model"
)

// BookingRepo provides read access to bookings.  The engine never
// mutates a booking itself; status transitions are owned by the
// surrounding sales workflow.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning several repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// GetByIDTx loads a booking inside an existing transaction.  It
// returns ErrBookingNotFound when no such booking exists.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
    const q = `SELECT id, center_id, customer_id, status, created_at, updated_at
               FROM bookings WHERE id = ?`
    var b model.Booking
    err := tx.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.CenterID, &b.CustomerID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrBookingNotFound
    }
    if err != nil {
        return nil, err
    }
    return &b, nil
}
