package domain

// Clone returns a structural copy of the ingredient. Pointer fields are
// re-allocated so the copy shares no memory with the original.
func (i Ingredient) Clone() Ingredient {
	c := i
	if i.ProductID != nil {
		v := *i.ProductID
		c.ProductID = &v
	}
	if i.UnitWeight != nil {
		v := *i.UnitWeight
		c.UnitWeight = &v
	}
	return c
}

// Clone returns a deep copy of the meal including all ingredients and
// instructions.
func (m Meal) Clone() Meal {
	c := m
	if m.Instructions != nil {
		c.Instructions = make([]string, len(m.Instructions))
		copy(c.Instructions, m.Instructions)
	}
	if m.Ingredients != nil {
		c.Ingredients = make([]Ingredient, len(m.Ingredients))
		for idx, ing := range m.Ingredients {
			c.Ingredients[idx] = ing.Clone()
		}
	}
	if m.TimeOfDay != nil {
		v := *m.TimeOfDay
		c.TimeOfDay = &v
	}
	if m.OrderIndex != nil {
		v := *m.OrderIndex
		c.OrderIndex = &v
	}
	return c
}

// Clone returns a deep copy of the day plan including all meals.
func (d DayPlan) Clone() DayPlan {
	c := d
	if d.Meals != nil {
		c.Meals = make([]Meal, len(d.Meals))
		for idx, m := range d.Meals {
			c.Meals[idx] = m.Clone()
		}
	}
	return c
}

// Clone returns a deep copy of the diet payload.
func (p DietPayload) Clone() DietPayload {
	c := p
	if p.Days != nil {
		c.Days = make([]DayPlan, len(p.Days))
		for idx, d := range p.Days {
			c.Days[idx] = d.Clone()
		}
	}
	return c
}
