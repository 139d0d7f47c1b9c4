package models

// AssignmentEvent is pushed over Redis pub/sub and fanned out to the
// websocket feed of the assigned authority. Delivery is best-effort.
type AssignmentEvent struct {
	Type          string `json:"type"` // "assignment_created"
	AssignmentID  uint   `json:"assignment_id"`
	CrimeReportID uint   `json:"crime_report_id"`
	AuthorityID   uint   `json:"authority_id"`
	ComplaintID   string `json:"complaint_id"`
	Category      string `json:"category"`
	Severity      int    `json:"severity"`
	Pincode       string `json:"pincode"`
}
