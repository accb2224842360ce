package model

// ProductKind tells what a schedulable product physically delivers.
// The three kinds are mutually exclusive: a product is either an
// accommodation (bound to rental units), a meal, or some other
// service (bike rental, animation, ...).
type ProductKind string

const (
    KindAccommodation ProductKind = "ACCOMMODATION"
    KindMeal          ProductKind = "MEAL"
    KindOther         ProductKind = "OTHER"
)

// AccountingMethod defines how the quantity of a booking line is
// derived from its sojourn group.
//
//  UNIT          – quantity only depends on the line itself.
//  PERSON        – quantity depends on the headcount (× nights for
//                  meals and accommodations).
//  ACCOMMODATION – quantity depends on the number of nights; occupancy
//                  is counted per rental unit, not per person.
type AccountingMethod string

const (
    AccountingUnit          AccountingMethod = "UNIT"
    AccountingPerson        AccountingMethod = "PERSON"
    AccountingAccommodation AccountingMethod = "ACCOMMODATION"
)

// AssignmentMode defines how an accommodation product is mapped onto
// rental units.
//
//  UNIT     – a specific rental unit is configured on the product.
//  CATEGORY – any unit of the configured category may be used.
//  CAPACITY – any unit whose capacity fits the product's ceiling.
type AssignmentMode string

const (
    AssignByUnit     AssignmentMode = "UNIT"
    AssignByCategory AssignmentMode = "CATEGORY"
    AssignByCapacity AssignmentMode = "CAPACITY"
)

// ProductModel carries the allocation-relevant metadata shared by all
// variants (SKUs) of a product.  Booking lines reference a product,
// which in turn references its model; the engine only ever needs the
// model.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – display name of the model.
//  Kind           – ACCOMMODATION, MEAL or OTHER.
//  Schedulable    – whether the product is a schedulable service.
//                   Non-schedulable products never yield consumptions.
//  QtyMethod      – accounting method used to derive line quantities.
//  ScheduleOffset – shift, in days, applied to the sojourn start when
//                   placing consumptions (e.g. a tour on day 2).
//  ScheduleWindow – default time window as "HH:MM-HH:MM"; empty means
//                   the engine default of 12:00-13:00.
//  HasDuration    – the service spans a fixed number of days.
//  Duration       – number of days when HasDuration is set.
//  AssignMode     – rental-unit assignment strategy (accommodation only).
//  Capacity       – capacity ceiling used by the CAPACITY mode.
//  RentalUnitCategoryID – unit category for the CATEGORY mode.
//  RentalUnitID   – fixed unit for the UNIT mode.
type ProductModel struct {
    ID                   uint64           // product_models.id
    Name                 string           // product_models.name
    Kind                 ProductKind      // product_models.kind
    Schedulable          bool             // product_models.is_schedulable
    QtyMethod            AccountingMethod // product_models.qty_accounting_method
    ScheduleOffset       int              // product_models.schedule_offset
    ScheduleWindow       string           // product_models.schedule_window
    HasDuration          bool             // product_models.has_duration
    Duration             int              // product_models.duration
    AssignMode           AssignmentMode   // product_models.rental_unit_assignment
    Capacity             int              // product_models.capacity
    RentalUnitCategoryID uint64           // product_models.rental_unit_category_id
    RentalUnitID         uint64           // product_models.rental_unit_id
}

// IsAccommodation reports whether lines of this model must be bound
// to rental units.
func (m ProductModel) IsAccommodation() bool { return m.Kind == KindAccommodation }

// IsMeal reports whether lines of this model are meals.
func (m ProductModel) IsMeal() bool { return m.Kind == KindMeal }
