package report

import (
	"errors"
	"log"
	"time"

	"crimewatch/backend/internal/apperr"
	"crimewatch/backend/internal/identity"
	"crimewatch/backend/internal/models"

	"gorm.io/gorm"
)

// Decision is an authority's response to an assignment.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

func (d Decision) status() (string, error) {
	switch d {
	case DecisionAccept:
		return models.AssignmentStatusAccepted, nil
	case DecisionReject:
		return models.AssignmentStatusRejected, nil
	default:
		return "", apperr.Newf(apperr.Validation, "unknown decision %q", string(d))
	}
}

// RespondToAssignment transitions a pending assignment to a terminal
// state. Only the authority bound to the assignment may do so; a
// not-owned assignment fails Forbidden, an already-terminal one fails
// Conflict. The report's own status is untouched here: the two state
// machines are deliberately decoupled.
func (s *Service) RespondToAssignment(caller identity.Caller, assignmentID uint, decision Decision) (*models.ComplaintAssignment, error) {
	status, err := decision.status()
	if err != nil {
		return nil, err
	}

	authority, err := s.callerAuthority(caller)
	if err != nil {
		return nil, err
	}

	assignment, err := s.Storage.GetAssignmentByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperr.Newf(apperr.NotFound, "assignment %d not found", assignmentID)
	}
	if assignment.AuthorityID != authority.ID {
		return nil, apperr.New(apperr.Forbidden, "assignment belongs to another authority")
	}
	if assignment.Terminal() {
		return nil, apperr.Newf(apperr.Conflict, "assignment already %s", assignment.Status)
	}

	updated, err := s.Storage.FinalizeAssignment(assignmentID, status, time.Now().UTC())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Lost the race against a concurrent response.
		return nil, apperr.New(apperr.Conflict, "assignment already responded to")
	}
	if err != nil {
		return nil, err
	}

	log.Printf("INFO: Assignment %d %s by authority %d", assignmentID, updated.Status, authority.ID)
	return updated, nil
}

// AssignedComplaint is a pending assignment joined with its report, as
// shown on the authority's work queue.
type AssignedComplaint struct {
	AssignmentID uint      `json:"assignment_id"`
	ReportID     uint      `json:"report_id"`
	ComplaintID  string    `json:"complaint_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Severity     int       `json:"severity"`
	Status       string    `json:"status"`
	AssignedAt   time.Time `json:"assigned_at"`
}

// ListAssignedComplaints returns the caller authority's pending queue.
func (s *Service) ListAssignedComplaints(caller identity.Caller) ([]AssignedComplaint, error) {
	authority, err := s.callerAuthority(caller)
	if err != nil {
		return nil, err
	}

	assignments, err := s.Storage.ListPendingAssignmentsForAuthority(authority.ID)
	if err != nil {
		return nil, err
	}

	complaints := make([]AssignedComplaint, 0, len(assignments))
	for _, a := range assignments {
		r, err := s.Storage.GetReportByID(a.CrimeReportID)
		if err != nil {
			return nil, err
		}
		if r == nil {
			continue
		}
		complaints = append(complaints, AssignedComplaint{
			AssignmentID: a.ID,
			ReportID:     r.ID,
			ComplaintID:  r.ComplaintID,
			Title:        r.Title,
			Description:  r.Description,
			Severity:     r.Severity,
			Status:       a.Status,
			AssignedAt:   a.CreatedAt,
		})
	}
	return complaints, nil
}

// UpdateReportStatus is the authority's separate action for moving a
// report through its lifecycle.
func (s *Service) UpdateReportStatus(caller identity.Caller, reportID uint, status string) error {
	if _, err := s.callerAuthority(caller); err != nil {
		return err
	}

	switch status {
	case models.ReportStatusPending, models.ReportStatusInvestigating,
		models.ReportStatusResolved, models.ReportStatusClosed:
	default:
		return apperr.Newf(apperr.Validation, "invalid status %q", status)
	}

	r, err := s.Storage.GetReportByID(reportID)
	if err != nil {
		return err
	}
	if r == nil {
		return apperr.Newf(apperr.NotFound, "report %d not found", reportID)
	}

	return s.Storage.UpdateReportStatus(reportID, status)
}

// callerAuthority resolves the caller to their verified authority
// profile, failing Forbidden otherwise.
func (s *Service) callerAuthority(caller identity.Caller) (*models.Authority, error) {
	if caller.Role != models.RoleAuthority {
		return nil, apperr.New(apperr.Forbidden, "authority role required")
	}
	authority, err := s.Storage.GetAuthorityByUserID(caller.ID)
	if err != nil {
		return nil, err
	}
	if authority == nil {
		return nil, apperr.New(apperr.Forbidden, "no authority profile for caller")
	}
	return authority, nil
}
