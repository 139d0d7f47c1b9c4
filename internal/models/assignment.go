package models

import (
	"time"

	"gorm.io/gorm"
)

// Assignment statuses. Pending is the only non-terminal state.
const (
	AssignmentStatusPending  = "pending"
	AssignmentStatusAccepted = "accepted"
	AssignmentStatusRejected = "rejected"
)

// ComplaintAssignment routes one CrimeReport to one Authority. Each
// assignment carries its own accept/reject lifecycle, independent of
// the report's status. CreatedAt doubles as the assignment timestamp.
type ComplaintAssignment struct {
	gorm.Model

	CrimeReportID uint   `gorm:"not null;index:idx_report_authority,unique" json:"crime_report_id"`
	AuthorityID   uint   `gorm:"not null;index:idx_report_authority,unique" json:"authority_id"`
	Status        string `gorm:"not null;default:pending" json:"status"`
	// RespondedAt is stamped exactly once, on the transition into a
	// terminal state.
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

// Terminal reports whether the assignment has already been responded to.
func (a *ComplaintAssignment) Terminal() bool {
	return a.Status != AssignmentStatusPending
}
