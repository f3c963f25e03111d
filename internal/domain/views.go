package domain

import (
	"time"

	"github.com/google/uuid"
)

// Resource names a list page that filters can be saved for.
type Resource string

const (
	ResourceAlerts    Resource = "alerts"
	ResourceEquipment Resource = "equipment"
)

func (r Resource) Valid() bool {
	return r == ResourceAlerts || r == ResourceEquipment
}

// SavedView is a named filter preset. Query holds the encoded query string,
// without the page number.
type SavedView struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Resource  Resource  `db:"resource" json:"resource"`
	Query     string    `db:"query" json:"query"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
