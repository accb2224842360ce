package queue

import (
    "strings"
    "testing"
)

func TestFormatConsumptionLine_BookedUnit(t *testing.T) {
    got := formatConsumptionLine(ConsumptionLine{
        BookingLineID: 12,
        ProductID:     3,
        RentalUnitID:  7,
        IsRentalUnit:  true,
        Date:          "2026-09-01",
        ScheduleFrom:  "14:00",
        ScheduleTo:    "24:00",
        Qty:           2,
        Kind:          "BOOK",
    })
    if !strings.Contains(got, "unit=7") {
        t.Errorf("line = %q, want unit=7", got)
    }
}

func TestFormatConsumptionLine_OverflowOnlyOnRentalUnits(t *testing.T) {
    overflow := formatConsumptionLine(ConsumptionLine{
        RentalUnitID: 0,
        IsRentalUnit: true,
        Kind:         "BOOK",
    })
    if !strings.Contains(overflow, "unit=OVERFLOW") {
        t.Errorf("rental-unit row with unit 0 must be labelled overflow: %q", overflow)
    }

    // meals and other services are never unit-bound; unit 0 there is
    // not an overflow
    meal := formatConsumptionLine(ConsumptionLine{
        RentalUnitID: 0,
        IsRentalUnit: false,
        Kind:         "BOOK",
    })
    if strings.Contains(meal, "OVERFLOW") {
        t.Errorf("service row must not be labelled overflow: %q", meal)
    }
    if !strings.Contains(meal, "unit=-") {
        t.Errorf("service row should carry the unit placeholder: %q", meal)
    }
}
