package handler

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "log"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lodging-reservation/internal/engine"
    "github.com/iliyamo/lodging-reservation/internal/model"
    "github.com/iliyamo/lodging-reservation/internal/queue"
    "github.com/iliyamo/lodging-reservation/internal/repository"
    queue_publisher "github.com/iliyamo/lodging-reservation/internal/service"
)

// GenerationHandler owns the discard-and-regenerate cycle of booking
// line consumptions.  All write paths follow the same shape: lock the
// affected rows, wipe the previous consumptions of the targeted
// lines, rebuild assignments where the stored split no longer matches
// the headcount, expand each line over its time grid and bulk-insert
// the result.  Everything happens in one transaction; a failed line
// rolls the whole run back so the schedule is never half-updated.
type GenerationHandler struct {
    BookingRepo     *repository.BookingRepo
    GroupRepo       *repository.SojournGroupRepo
    LineRepo        *repository.BookingLineRepo
    ModelRepo       *repository.ProductModelRepo
    UnitRepo        *repository.RentalUnitRepo
    ConsumptionRepo *repository.ConsumptionRepo
    AssignmentRepo  *repository.AssignmentRepo
}

// NewGenerationHandler constructs a GenerationHandler with the
// provided repositories.  All dependencies must be non-nil.
func NewGenerationHandler(
    bookingRepo *repository.BookingRepo,
    groupRepo *repository.SojournGroupRepo,
    lineRepo *repository.BookingLineRepo,
    modelRepo *repository.ProductModelRepo,
    unitRepo *repository.RentalUnitRepo,
    consumptionRepo *repository.ConsumptionRepo,
    assignmentRepo *repository.AssignmentRepo,
) *GenerationHandler {
    if bookingRepo == nil || groupRepo == nil || lineRepo == nil || modelRepo == nil ||
        unitRepo == nil || consumptionRepo == nil || assignmentRepo == nil {
        panic("nil repository passed to NewGenerationHandler")
    }
    return &GenerationHandler{
        BookingRepo:     bookingRepo,
        GroupRepo:       groupRepo,
        LineRepo:        lineRepo,
        ModelRepo:       modelRepo,
        UnitRepo:        unitRepo,
        ConsumptionRepo: consumptionRepo,
        AssignmentRepo:  assignmentRepo,
    }
}

// runResult collects what a regeneration produced, for the HTTP
// response and the published event.
type runResult struct {
    Booking       *model.Booking
    GroupID       uint64
    LineIDs       []uint64
    Consumptions  []model.Consumption
    OverflowLines []uint64
}

// regenerateTx rebuilds the consumptions of the given locked lines.
// The previous consumptions of every line must already be deleted.
// All lines must belong to the same booking, which the callers
// guarantee by validating the locked set first.  reallocate forces a
// fresh rental-unit allocation even when the stored split still
// covers the headcount; date and quantity changes must set it, since
// the old units were picked against a range that no longer applies.
func (h *GenerationHandler) regenerateTx(ctx context.Context, tx *sql.Tx, lines []model.BookingLine, reallocate bool) (*runResult, error) {
    res := &runResult{}
    if len(lines) == 0 {
        return res, nil
    }

    lineIDs := make([]uint64, len(lines))
    modelIDs := make([]uint64, len(lines))
    for i, l := range lines {
        lineIDs[i] = l.ID
        modelIDs[i] = l.ProductModelID
    }
    res.LineIDs = lineIDs

    models, err := h.ModelRepo.ModelsByIDsTx(ctx, tx, modelIDs)
    if err != nil {
        return nil, err
    }

    booking, err := h.BookingRepo.GetByIDTx(ctx, tx, lines[0].BookingID)
    if err != nil {
        return nil, err
    }
    res.Booking = booking
    res.GroupID = lines[0].SojournGroupID

    groups := map[uint64]*model.SojournGroup{}
    for _, line := range lines {
        pm, ok := models[line.ProductModelID]
        if !ok {
            return nil, repository.ErrProductModelNotFound
        }

        group := groups[line.SojournGroupID]
        if group == nil {
            if group, err = h.GroupRepo.GetByIDTx(ctx, tx, line.SojournGroupID); err != nil {
                return nil, err
            }
            groups[line.SojournGroupID] = group
        }

        var assignments []model.RentalUnitAssignment
        var forest *engine.UnitForest
        if pm.IsAccommodation() && pm.Schedulable && line.Qty > 0 {
            if assignments, forest, err = h.ensureAssignmentsTx(ctx, tx, booking, group, line, pm, reallocate); err != nil {
                return nil, err
            }
            for _, a := range assignments {
                if a.IsOverflow() {
                    res.OverflowLines = append(res.OverflowLines, line.ID)
                    break
                }
            }
        }

        rows, malformed, err := engine.Consumptions(engine.LineSnapshot{
            Booking:     *booking,
            Group:       *group,
            Line:        line,
            Model:       pm,
            Assignments: assignments,
            Units:       forest,
        })
        if err != nil {
            return nil, err
        }
        if malformed {
            log.Printf("generation: line %d carries malformed qty_vars, flat quantities applied", line.ID)
        }
        res.Consumptions = append(res.Consumptions, rows...)
    }

    if err := h.ConsumptionRepo.CreateBulkTx(ctx, tx, res.Consumptions); err != nil {
        return nil, err
    }
    return res, nil
}

// reuseAssignments reports whether a stored rental-unit split can
// survive a regeneration.  A split is only reusable when the run was
// not forced to reallocate (date or quantity changes invalidate the
// units, not just the numbers) and when its shares still sum to the
// group headcount.
func reuseAssignments(assignments []model.RentalUnitAssignment, nbPers int, reallocate bool) bool {
    if reallocate || len(assignments) == 0 {
        return false
    }
    total := 0
    for _, a := range assignments {
        total += a.Qty
    }
    return total == nbPers
}

// ensureAssignmentsTx returns the line's rental-unit split, reusing
// the stored assignments when they still cover the group headcount
// and re-running the allocator against current availability when they
// do not (or when reallocate forces it).  The returned forest covers
// the assigned units with their ancestors and descendants; it is nil
// when everything overflowed.
func (h *GenerationHandler) ensureAssignmentsTx(ctx context.Context, tx *sql.Tx,
    booking *model.Booking, group *model.SojournGroup, line model.BookingLine,
    pm model.ProductModel, reallocate bool) ([]model.RentalUnitAssignment, *engine.UnitForest, error) {

    assignments, err := h.AssignmentRepo.ListByLineTx(ctx, tx, line.ID)
    if err != nil {
        return nil, nil, err
    }

    if !reuseAssignments(assignments, group.NbPers, reallocate) {
        units, err := h.UnitRepo.AvailableTx(ctx, tx, booking.CenterID, &pm, group.DateFrom, group.DateTo, booking.ID)
        if err != nil {
            return nil, nil, err
        }
        pool := make([]engine.UnitOption, len(units))
        for i, u := range units {
            pool[i] = engine.UnitOption{ID: u.ID, Capacity: u.Capacity}
        }
        shares := engine.Allocate(pm.AssignMode, group.NbPers, pool)

        if err := h.AssignmentRepo.DeleteByLineTx(ctx, tx, line.ID); err != nil {
            return nil, nil, err
        }
        assignments = make([]model.RentalUnitAssignment, len(shares))
        for i, s := range shares {
            assignments[i] = model.RentalUnitAssignment{
                BookingID:     line.BookingID,
                BookingLineID: line.ID,
                RentalUnitID:  s.UnitID,
                Qty:           s.Qty,
            }
        }
        if err := h.AssignmentRepo.CreateBulkTx(ctx, tx, assignments); err != nil {
            return nil, nil, err
        }
    }

    var unitIDs []uint64
    for _, a := range assignments {
        if !a.IsOverflow() {
            unitIDs = append(unitIDs, a.RentalUnitID)
        }
    }
    var forest *engine.UnitForest
    if len(unitIDs) > 0 {
        if forest, err = h.UnitRepo.ForestForUnitsTx(ctx, tx, unitIDs); err != nil {
            return nil, nil, err
        }
    }
    return assignments, forest, nil
}

// Generate handles POST /v1/booking-lines/generate.  The body carries
// a JSON object with a "booking_line_ids" array; all lines must
// belong to the same booking.  Previous consumptions of those lines
// are discarded and rebuilt.  Returns 200 with a summary of the run.
func (h *GenerationHandler) Generate(c echo.Context) error {
    var body struct {
        LineIDs []uint64 `json:"booking_line_ids"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    // deduplicate ids, dropping zeroes
    unique := make([]uint64, 0, len(body.LineIDs))
    seen := make(map[uint64]struct{})
    for _, id := range body.LineIDs {
        if id == 0 {
            continue
        }
        if _, ok := seen[id]; !ok {
            seen[id] = struct{}{}
            unique = append(unique, id)
        }
    }
    if len(unique) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_line_ids is required"})
    }

    ctx := c.Request().Context()
    tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    lines, err := h.LineRepo.LockByIDsTx(ctx, tx, unique)
    if err != nil {
        if errors.Is(err, repository.ErrLineNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking line not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    for _, l := range lines {
        if l.BookingID != lines[0].BookingID {
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "lines must belong to a single booking"})
        }
    }

    if err := h.ConsumptionRepo.DeleteByLinesTx(ctx, tx, unique); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to discard consumptions"})
    }
    res, err := h.regenerateTx(ctx, tx, lines, false)
    if err != nil {
        return h.generationError(c, err)
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    h.publish(ctx, res)
    return c.JSON(http.StatusOK, echo.Map{
        "booking_id":     res.Booking.ID,
        "generated":      len(res.Consumptions),
        "overflow_lines": res.OverflowLines,
    })
}

// UpdateGroupDates handles PATCH /v1/sojourn-groups/:id/dates.  It
// moves or resizes the stay, rescales quantities and per-day deltas
// of the owned lines to the new night count, and regenerates every
// line of the group.
func (h *GenerationHandler) UpdateGroupDates(c echo.Context) error {
    groupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || groupID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid group id"})
    }
    var body struct {
        DateFrom string `json:"date_from"`
        DateTo   string `json:"date_to"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    from, err := parseDay(body.DateFrom)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_from"})
    }
    to, err := parseDay(body.DateTo)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_to"})
    }
    if !to.After(from) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_to must be after date_from"})
    }

    ctx := c.Request().Context()
    tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if _, err := h.GroupRepo.LockByIDTx(ctx, tx, groupID); err != nil {
        if errors.Is(err, repository.ErrGroupNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "sojourn group not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := h.GroupRepo.UpdateDatesTx(ctx, tx, groupID, from, to); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update dates"})
    }
    group, err := h.GroupRepo.GetByIDTx(ctx, tx, groupID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    lines, err := h.LineRepo.LockByGroupTx(ctx, tx, groupID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    modelIDs := make([]uint64, len(lines))
    lineIDs := make([]uint64, len(lines))
    for i, l := range lines {
        modelIDs[i] = l.ProductModelID
        lineIDs[i] = l.ID
    }
    models, err := h.ModelRepo.ModelsByIDsTx(ctx, tx, modelIDs)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    // rescale quantities to the new night count before regenerating
    for i := range lines {
        pm, ok := models[lines[i].ProductModelID]
        if !ok {
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "product model not found"})
        }
        if changed := rescaleLine(&lines[i], pm, group); changed {
            if err := h.LineRepo.UpdateQtyTx(ctx, tx, lines[i].ID, lines[i].Qty, lines[i].QtyVars); err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update line"})
            }
        }
    }

    if err := h.ConsumptionRepo.DeleteByLinesTx(ctx, tx, lineIDs); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to discard consumptions"})
    }
    // the old units were picked for the old range; force reallocation
    res, err := h.regenerateTx(ctx, tx, lines, true)
    if err != nil {
        return h.generationError(c, err)
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    h.publish(ctx, res)
    return c.JSON(http.StatusOK, echo.Map{
        "sojourn_group_id": groupID,
        "date_from":        from.Format(time.RFC3339),
        "date_to":          to.Format(time.RFC3339),
        "nb_nights":        group.NbNights,
        "generated":        len(res.Consumptions),
        "overflow_lines":   res.OverflowLines,
    })
}

// rescaleLine adjusts a line's quantity for a new night count.  Lines
// with per-day deltas keep their daily profile, padded or truncated
// to the new length; lines without an explicit own quantity fall back
// to the nominal quantity of their accounting method.  Reports
// whether the line changed.
func rescaleLine(line *model.BookingLine, pm model.ProductModel, group *model.SojournGroup) bool {
    days := group.NbNights
    if pm.HasDuration {
        // the grid length is fixed by the product, dates do not resize it
        days = pm.Duration
    }
    if pm.QtyMethod == model.AccountingPerson && line.QtyVars != "" {
        if vars, ok := engine.DecodeQtyVars(line.QtyVars); ok {
            resized := engine.ResizeVars(vars, days)
            qty := engine.TotalFromVars(group.NbPers, resized)
            encoded := engine.EncodeQtyVars(resized)
            changed := encoded != line.QtyVars || qty != line.Qty
            line.QtyVars = encoded
            line.Qty = qty
            return changed
        }
    }
    if line.HasOwnQty {
        return false
    }
    qty := engine.NominalQty(pm, group.NbPers, group.NbNights, line.Qty)
    if qty == line.Qty {
        return false
    }
    line.Qty = qty
    return true
}

// UpdateLineQtyVars handles PATCH /v1/booking-lines/:id/qty-vars.
// The body carries a "qty_vars" array of signed per-day deltas
// relative to the group headcount.  The line total is recomputed from
// the deltas and the line is regenerated.
func (h *GenerationHandler) UpdateLineQtyVars(c echo.Context) error {
    lineID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || lineID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid line id"})
    }
    var body struct {
        QtyVars []int `json:"qty_vars"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if len(body.QtyVars) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "qty_vars is required"})
    }

    ctx := c.Request().Context()
    tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    lines, err := h.LineRepo.LockByIDsTx(ctx, tx, []uint64{lineID})
    if err != nil {
        if errors.Is(err, repository.ErrLineNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking line not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    line := lines[0]

    models, err := h.ModelRepo.ModelsByIDsTx(ctx, tx, []uint64{line.ProductModelID})
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    pm, ok := models[line.ProductModelID]
    if !ok {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "product model not found"})
    }
    if pm.QtyMethod != model.AccountingPerson {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "line does not use per-person accounting"})
    }
    group, err := h.GroupRepo.GetByIDTx(ctx, tx, line.SojournGroupID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    days := group.NbNights
    if pm.HasDuration {
        days = pm.Duration
    }
    vars := engine.ResizeVars(body.QtyVars, days)
    line.QtyVars = engine.EncodeQtyVars(vars)
    line.Qty = engine.TotalFromVars(group.NbPers, vars)
    if err := h.LineRepo.UpdateQtyTx(ctx, tx, line.ID, line.Qty, line.QtyVars); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update line"})
    }

    if err := h.ConsumptionRepo.DeleteByLinesTx(ctx, tx, []uint64{line.ID}); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to discard consumptions"})
    }
    // the line quantity changed; the stored split no longer binds
    res, err := h.regenerateTx(ctx, tx, []model.BookingLine{line}, true)
    if err != nil {
        return h.generationError(c, err)
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    h.publish(ctx, res)
    return c.JSON(http.StatusOK, echo.Map{
        "booking_line_id": line.ID,
        "qty":             line.Qty,
        "qty_vars":        vars,
        "generated":       len(res.Consumptions),
        "overflow_lines":  res.OverflowLines,
    })
}

// generationError maps engine and repository failures to HTTP codes.
func (h *GenerationHandler) generationError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, repository.ErrBookingNotFound),
        errors.Is(err, repository.ErrGroupNotFound),
        errors.Is(err, repository.ErrProductModelNotFound):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
    case errors.Is(err, repository.ErrMissingUnitReference),
        errors.Is(err, repository.ErrMissingCategoryReference),
        errors.Is(err, engine.ErrInvalidScheduleWindow):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generation failed"})
}

// publish emits the consumptions.generated event.  Generation already
// committed; a broker outage is logged by the publisher and ignored.
func (h *GenerationHandler) publish(ctx context.Context, res *runResult) {
    if res == nil || res.Booking == nil {
        return
    }
    ev := queue.ConsumptionsGeneratedEvent{
        BookingID:      res.Booking.ID,
        CenterID:       res.Booking.CenterID,
        SojournGroupID: res.GroupID,
        LineIDs:        res.LineIDs,
        OverflowLines:  res.OverflowLines,
        GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
    }
    for _, cons := range res.Consumptions {
        ev.Consumptions = append(ev.Consumptions, queue.ConsumptionLine{
            BookingLineID: cons.BookingLineID,
            ProductID:     cons.ProductID,
            RentalUnitID:  cons.RentalUnitID,
            IsRentalUnit:  cons.IsRentalUnit,
            Date:          cons.Date.Format("2006-01-02"),
            ScheduleFrom:  fmtClock(cons.ScheduleFrom),
            ScheduleTo:    fmtClock(cons.ScheduleTo),
            Qty:           cons.Qty,
            Kind:          string(cons.Kind),
        })
    }
    _ = queue_publisher.PublishConsumptionsGenerated(ctx, ev)
}

// fmtClock renders seconds since midnight as HH:MM.
func fmtClock(sec int) string {
    return fmt.Sprintf("%02d:%02d", sec/3600, (sec%3600)/60)
}
