package backend

import "time"

// ListFilter narrows List results. Zero-valued fields are ignored; the
// provided ones combine conjunctively on top of the implicit ownership
// filter. Archived rows are excluded unless IncludeArchived is set.
type ListFilter struct {
	TankID   string
	Type     string
	Status   string
	Category string
	Lab      string

	From *time.Time
	To   *time.Time

	IncludeArchived bool
}
