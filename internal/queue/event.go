// Package queue defines message payloads exchanged over the message broker.
package queue

// ConsumptionLine summarizes one generated consumption for downstream
// consumers.  Dates and times are pre-formatted so the planning log
// writer does not need any date math.
type ConsumptionLine struct {
    BookingLineID uint64 `json:"booking_line_id"`
    ProductID     uint64 `json:"product_id"`
    RentalUnitID  uint64 `json:"rental_unit_id"`
    IsRentalUnit  bool   `json:"is_rental_unit"`
    Date          string `json:"date"`
    ScheduleFrom  string `json:"schedule_from"`
    ScheduleTo    string `json:"schedule_to"`
    Qty           int    `json:"qty"`
    Kind          string `json:"kind"`
}

// ConsumptionsGeneratedEvent is published after a generation run
// commits.  It contains enough information for downstream consumers
// (planning boards, housekeeping, analytics) to react without
// querying the primary database.
type ConsumptionsGeneratedEvent struct {
    BookingID      uint64            `json:"booking_id"`
    CenterID       uint64            `json:"center_id"`
    SojournGroupID uint64            `json:"sojourn_group_id"`
    LineIDs        []uint64          `json:"booking_line_ids"`
    Consumptions   []ConsumptionLine `json:"consumptions"`
    OverflowLines  []uint64          `json:"overflow_lines,omitempty"`
    GeneratedAt    string            `json:"generated_at"`
}
