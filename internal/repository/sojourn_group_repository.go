package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/iliyamo/lodging-reservation/internal/model"
)

// SojournGroupRepo provides access to sojourn groups.  NbNights is
// always computed by the database from the stored date range so the
// invariant nb_nights = floor(duration / 86400) cannot drift.
type SojournGroupRepo struct {
    db *sql.DB
}

// NewSojournGroupRepo returns a new SojournGroupRepo bound to the given database.
func NewSojournGroupRepo(db *sql.DB) *SojournGroupRepo { return &SojournGroupRepo{db: db} }

const groupColumns = `id, booking_id, date_from, date_to, nb_pers,
               DATEDIFF(date_to, date_from), created_at, updated_at`

func scanGroup(row *sql.Row) (*model.SojournGroup, error) {
    var g model.SojournGroup
    err := row.Scan(&g.ID, &g.BookingID, &g.DateFrom, &g.DateTo, &g.NbPers, &g.NbNights, &g.CreatedAt, &g.UpdatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrGroupNotFound
    }
    if err != nil {
        return nil, err
    }
    return &g, nil
}

// GetByIDTx loads a sojourn group inside an existing transaction.
func (r *SojournGroupRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.SojournGroup, error) {
    const q = `SELECT ` + groupColumns + ` FROM sojourn_groups WHERE id = ?`
    return scanGroup(tx.QueryRowContext(ctx, q, id))
}

// LockByIDTx loads a sojourn group and locks its row for the duration
// of the transaction.  Date changes lock the group first so that two
// concurrent regenerations of the same stay are serialized.
func (r *SojournGroupRepo) LockByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.SojournGroup, error) {
    const q = `SELECT ` + groupColumns + ` FROM sojourn_groups WHERE id = ? FOR UPDATE`
    return scanGroup(tx.QueryRowContext(ctx, q, id))
}

// UpdateDatesTx rewrites the group's date range.  The caller is
// responsible for resizing qty_vars and regenerating the owned lines
// within the same transaction.
func (r *SojournGroupRepo) UpdateDatesTx(ctx context.Context, tx *sql.Tx, id uint64, dateFrom, dateTo time.Time) error {
    const q = `UPDATE sojourn_groups SET date_from = ?, date_to = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
    res, err := tx.ExecContext(ctx, q,
        dateFrom.UTC().Format("2006-01-02 15:04:05"),
        dateTo.UTC().Format("2006-01-02 15:04:05"),
        id,
    )
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return ErrGroupNotFound
    }
    return nil
}
