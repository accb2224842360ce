package model

import "time"

// BookingLine is one product sold as part of a sojourn group.  The
// line stores its own quantity plus, for per-person products, an
// optional JSON array of signed per-day deltas (qty_vars) that lets
// the headcount vary from one day of the stay to the next.
//
// Fields:
//  ID             – primary key identifier.
//  BookingID      – booking the line belongs to (kept consistent with
//                   the group's booking).
//  SojournGroupID – group the line belongs to.
//  ProductID      – product (SKU) sold by the line.
//  ProductModelID – model carrying the allocation metadata.
//  Qty            – total quantity of the line.
//  QtyVars        – raw JSON array of per-day deltas, empty when the
//                   flat headcount applies to every day.
//  HasOwnQty      – quantity was set explicitly (pack line) and must
//                   not be recomputed from the group.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type BookingLine struct {
    ID             uint64    // booking_lines.id
    BookingID      uint64    // booking_lines.booking_id
    SojournGroupID uint64    // booking_lines.sojourn_group_id
    ProductID      uint64    // booking_lines.product_id
    ProductModelID uint64    // booking_lines.product_model_id
    Qty            int       // booking_lines.qty
    QtyVars        string    // booking_lines.qty_vars (JSON, nullable)
    HasOwnQty      bool      // booking_lines.has_own_qty
    CreatedAt      time.Time // booking_lines.created_at
    UpdatedAt      time.Time // booking_lines.updated_at
}
