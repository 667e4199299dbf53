package projectstore

import (
	"time"

	"clipforge/internal/editconfig"
)

// Status is a project lifecycle state.
type Status string

// Project lifecycle states. A project is pending until its first generation
// cycle completes, ready while editable, rendering while a job runs,
// exported once a public URL exists, and failed when its last render died.
const (
	StatusPending   Status = "pending"
	StatusReady     Status = "ready"
	StatusRendering Status = "rendering"
	StatusExported  Status = "exported"
	StatusFailed    Status = "failed"
)

func (s Status) valid() bool {
	switch s {
	case StatusPending, StatusReady, StatusRendering, StatusExported, StatusFailed:
		return true
	}
	return false
}

// Project is one stored project row with its decoded configuration tree.
type Project struct {
	ID           string
	Filename     string
	Status       Status
	Config       editconfig.Tree
	ExportURL    string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
