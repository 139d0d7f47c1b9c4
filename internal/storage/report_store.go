package storage

import (
	"errors"
	"log"
	"time"

	"crimewatch/backend/internal/models"

	"gorm.io/gorm"
)

// CreateReportWithAssignments persists the report and one pending
// assignment per authority in a single transaction. If any insert
// fails, the whole report is rolled back — no report may exist without
// its routing.
func (s *Service) CreateReportWithAssignments(report *models.CrimeReport, authorityIDs []uint) ([]models.ComplaintAssignment, error) {
	var assignments []models.ComplaintAssignment

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}

		for _, authorityID := range authorityIDs {
			assignment := models.ComplaintAssignment{
				CrimeReportID: report.ID,
				AuthorityID:   authorityID,
				Status:        models.AssignmentStatusPending,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
			assignments = append(assignments, assignment)
		}
		return nil
	})
	if err != nil {
		log.Printf("ERROR: Failed to create report %s with %d assignments: %v", report.ComplaintID, len(authorityIDs), err)
		return nil, err
	}
	return assignments, nil
}

func (s *Service) GetReportByID(id uint) (*models.CrimeReport, error) {
	var report models.CrimeReport
	err := s.DB.First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) ListReports() ([]models.CrimeReport, error) {
	var reports []models.CrimeReport
	if err := s.DB.Order("created_at desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// ListReportsByPincode повертає звіти за індексом з пагінацією
func (s *Service) ListReportsByPincode(pincode string, limit, offset int) ([]models.CrimeReport, int64, error) {
	var reports []models.CrimeReport
	var total int64

	q := s.DB.Model(&models.CrimeReport{}).Where("pincode = ?", pincode)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *Service) ListReportsByUser(userID uint) ([]models.CrimeReport, error) {
	var reports []models.CrimeReport
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *Service) UpdateReportStatus(reportID uint, status string) error {
	return s.DB.Model(&models.CrimeReport{}).
		Where("id = ?", reportID).
		Update("status", status).Error
}

func (s *Service) CountReports() (int64, error) {
	var n int64
	err := s.DB.Model(&models.CrimeReport{}).Count(&n).Error
	return n, err
}

func (s *Service) CountReportsByStatus(status string) (int64, error) {
	var n int64
	err := s.DB.Model(&models.CrimeReport{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (s *Service) CountReportsSince(since time.Time) (int64, error) {
	var n int64
	err := s.DB.Model(&models.CrimeReport{}).Where("created_at >= ?", since).Count(&n).Error
	return n, err
}

func (s *Service) GetAssignmentByID(id uint) (*models.ComplaintAssignment, error) {
	var assignment models.ComplaintAssignment
	err := s.DB.First(&assignment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *Service) ListPendingAssignmentsForAuthority(authorityID uint) ([]models.ComplaintAssignment, error) {
	var assignments []models.ComplaintAssignment
	err := s.DB.Where("authority_id = ? AND status = ?", authorityID, models.AssignmentStatusPending).
		Order("created_at desc").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// FinalizeAssignment moves a pending assignment into a terminal state.
// The WHERE clause on the current status is the guard against double
// accept/reject under concurrent requests: when another request won the
// race, zero rows match and gorm.ErrRecordNotFound is returned.
func (s *Service) FinalizeAssignment(id uint, status string, respondedAt time.Time) (*models.ComplaintAssignment, error) {
	res := s.DB.Model(&models.ComplaintAssignment{}).
		Where("id = ? AND status = ?", id, models.AssignmentStatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": respondedAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var assignment models.ComplaintAssignment
	if err := s.DB.First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}
