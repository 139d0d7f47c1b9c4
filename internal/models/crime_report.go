package models

import (
	"github.com/lib/pq" // Необхідний для pq.StringArray
	"gorm.io/gorm"
)

// Report lifecycle statuses. Only an authority moves a report forward.
const (
	ReportStatusPending       = "pending"
	ReportStatusInvestigating = "investigating"
	ReportStatusResolved      = "resolved"
	ReportStatusClosed        = "closed"
)

// CrimeReport is the root entity of the system: a single filed incident.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt.
type CrimeReport struct {
	gorm.Model

	// ComplaintID is the human-readable identifier, format CR-<year>-<6-hex-uppercase>.
	ComplaintID string `gorm:"uniqueIndex;not null" json:"complaint_id"`
	// ReporterName is kept on the row so listings do not need a join;
	// for anonymous reports it is "Anonymous".
	ReporterName string  `gorm:"not null" json:"reporter_name"`
	Title        string  `gorm:"not null" json:"title"`
	Description  string  `gorm:"type:text;not null" json:"description"`
	Category     string  `gorm:"not null" json:"category"`
	Latitude     float64 `gorm:"not null" json:"latitude"`
	Longitude    float64 `gorm:"not null" json:"longitude"`
	Pincode      string  `gorm:"not null;index" json:"pincode"`

	// UserSeverity is the reporter's own 1-5 estimate, ModelSeverity the
	// classifier-derived one, Severity the weighted blend of both.
	UserSeverity  int `gorm:"not null;default:3" json:"user_severity"`
	ModelSeverity int `gorm:"not null;default:3" json:"model_severity"`
	Severity      int `gorm:"not null;default:3" json:"severity"`

	Status      string `gorm:"not null;default:pending" json:"status"`
	IsAnonymous bool   `gorm:"default:false" json:"is_anonymous"`
	// UserID is nil for anonymous reports.
	UserID *uint `gorm:"index" json:"user_id,omitempty"`

	// Departments holds the classifier's department hints that routed
	// this report, for later audit of the fan-out.
	Departments pq.StringArray `gorm:"type:text[]" json:"departments"`
}
