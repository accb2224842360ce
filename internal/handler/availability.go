package handler

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lodging-reservation/internal/repository"
)

// AvailabilityHandler serves the rental-unit picker: given a center,
// a product and a date range it lists the units that could host the
// stay, free units first, then units already occupied by the caller's
// own booking.  The answer is advisory; generation re-checks
// availability under row locks before assigning anything.
type AvailabilityHandler struct {
    ModelRepo *repository.ProductModelRepo // resolves the product's allocation metadata
    UnitRepo  *repository.RentalUnitRepo   // availability queries
}

// NewAvailabilityHandler constructs an AvailabilityHandler.  All
// dependencies must be non-nil.
func NewAvailabilityHandler(modelRepo *repository.ProductModelRepo, unitRepo *repository.RentalUnitRepo) *AvailabilityHandler {
    if modelRepo == nil || unitRepo == nil {
        panic("nil repository passed to NewAvailabilityHandler")
    }
    return &AvailabilityHandler{ModelRepo: modelRepo, UnitRepo: unitRepo}
}

// parseDay accepts either a bare date or a full RFC3339 timestamp and
// returns the instant in UTC.
func parseDay(s string) (time.Time, error) {
    if t, err := time.Parse("2006-01-02", s); err == nil {
        return t.UTC(), nil
    }
    t, err := time.Parse(time.RFC3339, s)
    if err != nil {
        return time.Time{}, err
    }
    return t.UTC(), nil
}

// GetAvailableUnits handles GET /v1/centers/:id/rental-units/available.
// Query parameters:
//
//	product_id – product whose model decides the eligible pool (required)
//	date_from  – arrival, date or RFC3339 timestamp (required)
//	date_to    – departure, exclusive (required)
//	booking_id – optional; units held only by this booking are listed
//	             after the free ones instead of being excluded
func (h *AvailabilityHandler) GetAvailableUnits(c echo.Context) error {
    centerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || centerID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid center id"})
    }
    productID, err := strconv.ParseUint(c.QueryParam("product_id"), 10, 64)
    if err != nil || productID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
    }
    from, err := parseDay(c.QueryParam("date_from"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_from"})
    }
    to, err := parseDay(c.QueryParam("date_to"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_to"})
    }
    if !to.After(from) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_to must be after date_from"})
    }
    var bookingID uint64
    if raw := c.QueryParam("booking_id"); raw != "" {
        if bookingID, err = strconv.ParseUint(raw, 10, 64); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking_id"})
        }
    }

    ctx := c.Request().Context()
    pm, err := h.ModelRepo.GetByProduct(ctx, productID)
    if err != nil {
        if errors.Is(err, repository.ErrProductModelNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    units, err := h.UnitRepo.Available(ctx, centerID, pm, from, to, bookingID)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrMissingUnitReference),
            errors.Is(err, repository.ErrMissingCategoryReference):
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    type unitView struct {
        ID             uint64 `json:"id"`
        Name           string `json:"name"`
        Capacity       int    `json:"capacity"`
        CategoryID     uint64 `json:"category_id,omitempty"`
        CanPartialRent bool   `json:"can_partial_rent"`
    }
    out := make([]unitView, 0, len(units))
    for _, u := range units {
        out = append(out, unitView{
            ID:             u.ID,
            Name:           u.Name,
            Capacity:       u.Capacity,
            CategoryID:     u.CategoryID,
            CanPartialRent: u.CanPartialRent,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{
        "center_id": centerID,
        "date_from": from.Format(time.RFC3339),
        "date_to":   to.Format(time.RFC3339),
        "units":     out,
    })
}
