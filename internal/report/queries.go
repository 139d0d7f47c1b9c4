package report

import (
	"crimewatch/backend/internal/apperr"
	"crimewatch/backend/internal/identity"
	"crimewatch/backend/internal/models"
)

// ListAll returns every report, for the public map view. Reporter
// identity is never part of this projection.
func (s *Service) ListAll() ([]models.CrimeReport, error) {
	return s.Storage.ListReports()
}

// ListByPincode returns paginated reports for an area; authority only.
// Anonymous reporters are masked in the handler projection.
func (s *Service) ListByPincode(caller identity.Caller, pincode string, page, perPage int) ([]models.CrimeReport, int64, error) {
	if _, err := s.callerAuthority(caller); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return s.Storage.ListReportsByPincode(pincode, perPage, (page-1)*perPage)
}

// History returns the caller's own reports. Anonymous reports carry no
// user id at all, so they cannot appear here either.
func (s *Service) History(caller identity.Caller) ([]models.CrimeReport, error) {
	if caller.ID == 0 {
		return nil, apperr.New(apperr.Validation, "caller id missing")
	}
	return s.Storage.ListReportsByUser(caller.ID)
}
