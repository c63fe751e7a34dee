package model

// Patch carries optional field overrides. Nil fields are left alone.
type Patch struct {
	Title       *string
	Tags        *string
	Date        *string
	Priority    *float64
	Status      *Status
	Description *string
}

// Empty reports whether the patch sets nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Tags == nil && p.Date == nil &&
		p.Priority == nil && p.Status == nil && p.Description == nil
}

// Apply returns a copy of it with the set fields overwritten.
func (p Patch) Apply(it Item) Item {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Tags != nil {
		it.Tags = *p.Tags
	}
	if p.Date != nil {
		it.Date = *p.Date
	}
	if p.Priority != nil {
		it.Priority = *p.Priority
	}
	if p.Status != nil {
		it.Status = *p.Status
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	return it
}
