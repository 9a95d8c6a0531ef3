package domain

import (
	"time"
)

// TriggerType classifies what caused a snapshot to be taken.
type TriggerType string

const (
	TriggerClientCreated     TriggerType = "client_created"
	TriggerMealEdited        TriggerType = "meal_edited"
	TriggerMealAdded         TriggerType = "meal_added"
	TriggerMealRemoved       TriggerType = "meal_removed"
	TriggerMealPasted        TriggerType = "meal_pasted"
	TriggerDayPasted         TriggerType = "day_pasted"
	TriggerIngredientsScaled TriggerType = "ingredients_scaled"
	TriggerManualSave        TriggerType = "manual_save"
	TriggerNotesEdited       TriggerType = "notes_edited"
)

// Ingredient is a single ingredient line within a meal. Nutrition fields are
// the computed values for the given quantity, not the per-100g basis.
type Ingredient struct {
	UUID       string   `json:"uuid" db:"uuid"`
	ProductID  *string  `json:"product_id,omitempty" db:"product_id"`
	Name       string   `json:"name" db:"name"`
	Quantity   float64  `json:"quantity" db:"quantity"`
	Unit       string   `json:"unit" db:"unit"`
	UnitWeight *float64 `json:"unit_weight,omitempty" db:"unit_weight"` // grams per unit for non-gram units
	Calories   float64  `json:"calories" db:"calories"`
	Protein    float64  `json:"protein" db:"protein"`
	Fat        float64  `json:"fat" db:"fat"`
	Carbs      float64  `json:"carbs" db:"carbs"`
	Fiber      float64  `json:"fiber" db:"fiber"`
}

// Meal is an ordered set of ingredients with preparation instructions.
// Aggregate nutrition fields are maintained by the caller's recalculation,
// not by this package.
type Meal struct {
	UUID         string       `json:"uuid" db:"uuid"`
	Name         string       `json:"name" db:"name"`
	DishName     string       `json:"dish_name" db:"dish_name"`
	Instructions []string     `json:"instructions,omitempty"`
	Ingredients  []Ingredient `json:"ingredients,omitempty"`
	Calories     float64      `json:"calories" db:"calories"`
	Protein      float64      `json:"protein" db:"protein"`
	Carbs        float64      `json:"carbs" db:"carbs"`
	Fat          float64      `json:"fat" db:"fat"`
	Fiber        float64      `json:"fiber" db:"fiber"`
	CountsToward bool         `json:"counts_toward_totals" db:"counts_toward_totals"`
	TimeOfDay    *string      `json:"time_of_day,omitempty" db:"time_of_day"`
	OrderIndex   *int         `json:"order_index,omitempty" db:"order_index"`
}

// DayPlan is one named day of meals within a diet.
type DayPlan struct {
	UUID  string `json:"uuid" db:"uuid"`
	Name  string `json:"name" db:"name"`
	Meals []Meal `json:"meals,omitempty"`
}

// DietPayload is the full diet state embedded in a snapshot.
type DietPayload struct {
	Days           []DayPlan `json:"days,omitempty"`
	ImportantNotes string    `json:"important_notes,omitempty"`
}

// Snapshot is one persisted point-in-time capture of a client's diet state.
// Snapshots are immutable after creation except for the IsCurrent flag;
// at most one snapshot per client carries IsCurrent.
type Snapshot struct {
	UUID               string      `json:"uuid" db:"uuid"`
	ClientUUID         string      `json:"client_uuid" db:"client_uuid"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	IsCurrent          bool        `json:"is_current" db:"is_current"`
	IsManual           bool        `json:"is_manual" db:"is_manual"`
	TriggerType        TriggerType `json:"trigger_type" db:"trigger_type"`
	TriggerDescription string      `json:"trigger_description,omitempty" db:"trigger_description"`
	Payload            DietPayload `json:"payload"`
}

// Client is the owner of a diet and its snapshot history.
type Client struct {
	UUID      string    `json:"uuid" db:"uuid"`
	Name      string    `json:"name" db:"name"`
	Notes     string    `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Event represents an entry in the event log.
type Event struct {
	ID           int64     `json:"id" db:"id"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
	ClientUUID   *string   `json:"client_uuid,omitempty" db:"client_uuid"`
	SnapshotUUID *string   `json:"snapshot_uuid,omitempty" db:"snapshot_uuid"`
	EventType    string    `json:"event_type" db:"event_type"`
	Payload      *string   `json:"payload,omitempty" db:"payload"`
}

// FormatTimestamp formats a time.Time for storage: ISO-8601 UTC with a
// fixed-width fraction, so lexicographic order matches time order and
// snapshot ordering survives rapid creation.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}

// ParseTimestamp parses a stored timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
