// Package report implements the complaint pipeline: severity scoring,
// assignment routing, and the per-assignment accept/reject state
// machine.
package report

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"crimewatch/backend/internal/analysis"
	"crimewatch/backend/internal/apperr"
	"crimewatch/backend/internal/classifier"
	"crimewatch/backend/internal/config"
	"crimewatch/backend/internal/identity"
	"crimewatch/backend/internal/models"
	"crimewatch/backend/internal/storage"

	"github.com/google/uuid"
)

// Notifier receives best-effort notifications about noteworthy reports.
// A failing notifier never fails the pipeline.
type Notifier interface {
	HighSeverityReport(report *models.CrimeReport)
}

// Service handles the business logic for crime reports and assignments.
type Service struct {
	Storage    storage.Storage
	Classifier classifier.Client
	Settings   *config.SeverityStore
	Notifier   Notifier
}

// NewService creates a new report service. notifier may be nil.
func NewService(s storage.Storage, c classifier.Client, settings *config.SeverityStore, notifier Notifier) *Service {
	return &Service{Storage: s, Classifier: c, Settings: settings, Notifier: notifier}
}

// SubmitInput carries a report submission. An omitted UserSeverity
// (zero value) defaults to 3; anything else outside [1,5] is rejected.
type SubmitInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Pincode      string  `json:"pincode"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	UserSeverity int     `json:"severity"`
	IsAnonymous  bool    `json:"is_anonymous"`
}

// SubmitResult is what the reporter gets back.
type SubmitResult struct {
	ReportID            uint                 `json:"report_id"`
	ComplaintID         string               `json:"complaint_id"`
	UserSeverity        int                  `json:"user_severity"`
	ModelSeverity       int                  `json:"model_severity"`
	FinalSeverity       int                  `json:"final_severity"`
	Judgment            *classifier.Judgment `json:"judgment"`
	AssignedAuthorities int                  `json:"assigned_authority_count"`
}

// GenerateComplaintID produces the human-readable complaint identifier,
// format CR-<year>-<6-hex-uppercase>.
func GenerateComplaintID() string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("CR-%d-%s", time.Now().UTC().Year(), random)
}

func (in *SubmitInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(in.Pincode) == "" {
		missing = append(missing, "pincode")
	}
	if len(missing) > 0 {
		return apperr.Newf(apperr.Validation, "missing required fields: %s", strings.Join(missing, ", "))
	}
	if in.UserSeverity < config.MinSeverity || in.UserSeverity > config.MaxSeverity {
		return apperr.Newf(apperr.Validation, "severity must be between %d and %d", config.MinSeverity, config.MaxSeverity)
	}
	return nil
}

// Submit runs the full pipeline: classify, score, route, persist.
// Classifier faults degrade to the default judgment and are only
// logged; routing faults roll the report back entirely.
func (s *Service) Submit(ctx context.Context, caller identity.Caller, in SubmitInput) (*SubmitResult, error) {
	if in.UserSeverity == 0 {
		in.UserSeverity = 3
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	judgment := s.classify(ctx, in.Description)
	modelSeverity := analysis.DetermineSeverity(judgment)
	settings := s.Settings.Current()
	finalSeverity := analysis.CombineSeverity(in.UserSeverity, modelSeverity, settings.UserWeight)

	log.Printf("INFO: Severity scores for submission by user %d - user: %d, model: %d, final: %d",
		caller.ID, in.UserSeverity, modelSeverity, finalSeverity)

	authorityIDs, err := s.resolveAuthorities(judgment.Authorities)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = "Unnamed Report"
	}

	report := &models.CrimeReport{
		ComplaintID:   GenerateComplaintID(),
		ReporterName:  caller.Username,
		Title:         title,
		Description:   in.Description,
		Category:      in.Category,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		Pincode:       in.Pincode,
		UserSeverity:  in.UserSeverity,
		ModelSeverity: modelSeverity,
		Severity:      finalSeverity,
		Status:        models.ReportStatusPending,
		IsAnonymous:   in.IsAnonymous,
		Departments:   judgment.Authorities,
	}
	if in.IsAnonymous {
		report.ReporterName = "Anonymous"
	} else {
		id := caller.ID
		report.UserID = &id
	}

	assignments, err := s.createWithRetry(report, authorityIDs)
	if err != nil {
		return nil, apperr.Wrap(apperr.Routing, "failed to assign authorities", err)
	}

	for _, a := range assignments {
		ev := models.AssignmentEvent{
			Type:          "assignment_created",
			AssignmentID:  a.ID,
			CrimeReportID: report.ID,
			AuthorityID:   a.AuthorityID,
			ComplaintID:   report.ComplaintID,
			Category:      report.Category,
			Severity:      report.Severity,
			Pincode:       report.Pincode,
		}
		if err := s.Storage.PublishAssignmentEvent(ev); err != nil {
			log.Printf("ERROR: Failed to publish assignment event for %s: %v", report.ComplaintID, err)
		}
	}

	if s.Notifier != nil && report.Severity >= settings.AlertThreshold {
		s.Notifier.HighSeverityReport(report)
	}

	return &SubmitResult{
		ReportID:            report.ID,
		ComplaintID:         report.ComplaintID,
		UserSeverity:        in.UserSeverity,
		ModelSeverity:       modelSeverity,
		FinalSeverity:       finalSeverity,
		Judgment:            judgment,
		AssignedAuthorities: len(assignments),
	}, nil
}

// classify calls the external service under a deadline and substitutes
// the default judgment on any fault.
func (s *Service) classify(ctx context.Context, description string) *classifier.Judgment {
	ctx, cancel := context.WithTimeout(ctx, config.ClassifierTimeout)
	defer cancel()

	judgment, err := s.Classifier.Analyze(ctx, description)
	if err != nil {
		log.Printf("ERROR: Classifier degraded, using default judgment: %v", err)
		return classifier.DefaultJudgment()
	}
	if len(judgment.Authorities) == 0 {
		// An empty hint list fans out to everyone; keep it as-is so the
		// router applies the conservative default.
		log.Printf("INFO: Classifier returned no authority hints, falling back to full fan-out")
	}
	return judgment
}

// resolveAuthorities maps department hints onto authority ids. An empty
// match falls back to fanning out to every routable authority; if even
// that is empty, the submission fails as a routing error.
func (s *Service) resolveAuthorities(hints []string) ([]uint, error) {
	authorities, err := s.Storage.ListRoutableAuthorities()
	if err != nil {
		return nil, apperr.Wrap(apperr.Routing, "failed to load authorities", err)
	}

	ids := MatchAuthorities(hints, authorities)
	if len(ids) == 0 {
		// No hint matched a registered department; fan out to all.
		ids = MatchAuthorities(nil, authorities)
	}
	if len(ids) == 0 {
		return nil, apperr.New(apperr.Routing, "no routable authority registered")
	}
	return ids, nil
}

// createWithRetry retries the report+assignment transaction once on a
// transient store failure before surfacing it.
func (s *Service) createWithRetry(report *models.CrimeReport, authorityIDs []uint) ([]models.ComplaintAssignment, error) {
	assignments, err := s.Storage.CreateReportWithAssignments(report, authorityIDs)
	if err == nil {
		return assignments, nil
	}
	log.Printf("ERROR: Report transaction failed, retrying once: %v", err)

	// A fresh complaint id in case the first insert half-landed on a
	// uniqueness conflict.
	report.ComplaintID = GenerateComplaintID()
	return s.Storage.CreateReportWithAssignments(report, authorityIDs)
}
