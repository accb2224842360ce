package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/lodging-reservation/internal/model"
)

// ProductModelRepo resolves the allocation metadata of products.
// Lines reference a product (SKU); the engine works on the model
// behind it.
type ProductModelRepo struct {
    db *sql.DB
}

// NewProductModelRepo returns a new ProductModelRepo bound to the given database.
func NewProductModelRepo(db *sql.DB) *ProductModelRepo { return &ProductModelRepo{db: db} }

const modelColumns = `id, name, kind, is_schedulable, qty_accounting_method,
               schedule_offset, COALESCE(schedule_window, ''), has_duration, duration,
               rental_unit_assignment, capacity,
               COALESCE(rental_unit_category_id, 0), COALESCE(rental_unit_id, 0)`

func scanModel(scan func(dest ...interface{}) error) (model.ProductModel, error) {
    var m model.ProductModel
    err := scan(&m.ID, &m.Name, &m.Kind, &m.Schedulable, &m.QtyMethod,
        &m.ScheduleOffset, &m.ScheduleWindow, &m.HasDuration, &m.Duration,
        &m.AssignMode, &m.Capacity, &m.RentalUnitCategoryID, &m.RentalUnitID)
    return m, err
}

// GetByProduct resolves the model of a product (SKU).  Used by the
// availability picker, which receives product ids from the UI.
func (r *ProductModelRepo) GetByProduct(ctx context.Context, productID uint64) (*model.ProductModel, error) {
    const q = `SELECT m.id, m.name, m.kind, m.is_schedulable, m.qty_accounting_method,
               m.schedule_offset, COALESCE(m.schedule_window, ''), m.has_duration, m.duration,
               m.rental_unit_assignment, m.capacity,
               COALESCE(m.rental_unit_category_id, 0), COALESCE(m.rental_unit_id, 0)
               FROM products p
               JOIN product_models m ON m.id = p.product_model_id
               WHERE p.id = ?`
    m, err := scanModel(r.db.QueryRowContext(ctx, q, productID).Scan)
    if err == sql.ErrNoRows {
        return nil, ErrProductModelNotFound
    }
    if err != nil {
        return nil, err
    }
    return &m, nil
}

// ModelsByIDsTx loads a batch of product models keyed by id inside an
// existing transaction.  Missing ids are simply absent from the map;
// callers decide whether that is fatal.
func (r *ProductModelRepo) ModelsByIDsTx(ctx context.Context, tx *sql.Tx, ids []uint64) (map[uint64]model.ProductModel, error) {
    out := make(map[uint64]model.ProductModel, len(ids))
    if len(ids) == 0 {
        return out, nil
    }
    placeholders := make([]string, len(ids))
    args := make([]interface{}, len(ids))
    for i, id := range ids {
        placeholders[i] = "?"
        args[i] = id
    }
    q := `SELECT ` + modelColumns + ` FROM product_models WHERE id IN (` +
        strings.Join(placeholders, ",") + `)`
    rows, err := tx.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        m, err := scanModel(rows.Scan)
        if err != nil {
            return nil, err
        }
        out[m.ID] = m
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
