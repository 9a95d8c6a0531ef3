// Package clipboard implements copy/paste of meals and whole day plans.
//
// A copy deep-clones the source so later edits to the live entity cannot
// corrupt the clipboard. A paste clones again and assigns fresh UUIDs at
// every level, so one copy supports any number of pastes without identifier
// collisions. Pasting does not clear the clipboard; only Clear does.
package clipboard

import (
	"github.com/google/uuid"

	"github.com/kamilw/dietplan/internal/domain"
)

// CopySuffix is appended to the name of a pasted meal.
const CopySuffix = " (kopia)"

// MealState is the observable state of a meal clipboard.
type MealState struct {
	Active        bool
	Source        *domain.Meal
	SourceDayUUID string
	OrderIndex    int
}

// MealClipboard holds at most one copied meal. The zero value is an empty
// clipboard ready for use.
type MealClipboard struct {
	state MealState
}

// Copy arms the clipboard with a deep clone of the meal.
func (c *MealClipboard) Copy(meal domain.Meal, dayUUID string, orderIndex int) {
	source := meal.Clone()
	c.state = MealState{
		Active:        true,
		Source:        &source,
		SourceDayUUID: dayUUID,
		OrderIndex:    orderIndex,
	}
}

// Paste returns a clone of the copied meal with fresh UUIDs for the meal and
// every ingredient, and the copy suffix appended to its name. Returns nil
// when nothing has been copied. The clipboard stays armed.
func (c *MealClipboard) Paste() *domain.Meal {
	if !c.state.Active || c.state.Source == nil {
		return nil
	}
	pasted := c.state.Source.Clone()
	pasted.UUID = uuid.NewString()
	pasted.Name += CopySuffix
	for i := range pasted.Ingredients {
		pasted.Ingredients[i].UUID = uuid.NewString()
	}
	return &pasted
}

// Clear empties the clipboard.
func (c *MealClipboard) Clear() {
	c.state = MealState{}
}

// CanPaste reports whether a meal is held.
func (c *MealClipboard) CanPaste() bool {
	return c.state.Active
}

// State returns the current clipboard state.
func (c *MealClipboard) State() MealState {
	return c.state
}

// DayState is the observable state of a day clipboard.
type DayState struct {
	Active        bool
	Source        *domain.DayPlan
	SourceDayUUID string
}

// DayClipboard holds at most one copied day plan. The zero value is an empty
// clipboard ready for use.
type DayClipboard struct {
	state DayState
}

// Copy arms the clipboard with a deep clone of the day plan.
func (c *DayClipboard) Copy(day domain.DayPlan) {
	source := day.Clone()
	c.state = DayState{
		Active:        true,
		Source:        &source,
		SourceDayUUID: day.UUID,
	}
}

// Paste returns a clone of the copied day with fresh UUIDs for the day,
// every meal, and every ingredient. Returns nil when nothing has been
// copied. The clipboard stays armed.
func (c *DayClipboard) Paste() *domain.DayPlan {
	if !c.state.Active || c.state.Source == nil {
		return nil
	}
	pasted := c.state.Source.Clone()
	pasted.UUID = uuid.NewString()
	for i := range pasted.Meals {
		pasted.Meals[i].UUID = uuid.NewString()
		for j := range pasted.Meals[i].Ingredients {
			pasted.Meals[i].Ingredients[j].UUID = uuid.NewString()
		}
	}
	return &pasted
}

// Clear empties the clipboard.
func (c *DayClipboard) Clear() {
	c.state = DayState{}
}

// CanPaste reports whether a day plan is held.
func (c *DayClipboard) CanPaste() bool {
	return c.state.Active
}

// State returns the current clipboard state.
func (c *DayClipboard) State() DayState {
	return c.state
}
