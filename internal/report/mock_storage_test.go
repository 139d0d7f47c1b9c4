package report_test

import (
	"time"

	"crimewatch/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) ListUsers() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) SetUserActive(id uint, active bool) error {
	args := m.Called(id, active)
	return args.Error(0)
}

func (m *MockStorage) SaveAuthority(authority *models.Authority) error {
	args := m.Called(authority)
	return args.Error(0)
}

func (m *MockStorage) GetAuthorityByID(id uint) (*models.Authority, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Authority), args.Error(1)
}

func (m *MockStorage) GetAuthorityByUserID(userID uint) (*models.Authority, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Authority), args.Error(1)
}

func (m *MockStorage) ListAuthorities() ([]models.Authority, error) {
	args := m.Called()
	return args.Get(0).([]models.Authority), args.Error(1)
}

func (m *MockStorage) ListRoutableAuthorities() ([]models.Authority, error) {
	args := m.Called()
	return args.Get(0).([]models.Authority), args.Error(1)
}

func (m *MockStorage) ListUnverifiedAuthorities() ([]models.Authority, error) {
	args := m.Called()
	return args.Get(0).([]models.Authority), args.Error(1)
}

func (m *MockStorage) VerifyAuthority(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) CreateReportWithAssignments(report *models.CrimeReport, authorityIDs []uint) ([]models.ComplaintAssignment, error) {
	args := m.Called(report, authorityIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ComplaintAssignment), args.Error(1)
}

func (m *MockStorage) GetReportByID(id uint) (*models.CrimeReport, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CrimeReport), args.Error(1)
}

func (m *MockStorage) ListReports() ([]models.CrimeReport, error) {
	args := m.Called()
	return args.Get(0).([]models.CrimeReport), args.Error(1)
}

func (m *MockStorage) ListReportsByPincode(pincode string, limit, offset int) ([]models.CrimeReport, int64, error) {
	args := m.Called(pincode, limit, offset)
	return args.Get(0).([]models.CrimeReport), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) ListReportsByUser(userID uint) ([]models.CrimeReport, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.CrimeReport), args.Error(1)
}

func (m *MockStorage) UpdateReportStatus(reportID uint, status string) error {
	args := m.Called(reportID, status)
	return args.Error(0)
}

func (m *MockStorage) CountReports() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CountReportsByStatus(status string) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CountReportsSince(since time.Time) (int64, error) {
	args := m.Called(since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CountUsers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CountAuthorities() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) GetAssignmentByID(id uint) (*models.ComplaintAssignment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComplaintAssignment), args.Error(1)
}

func (m *MockStorage) ListPendingAssignmentsForAuthority(authorityID uint) ([]models.ComplaintAssignment, error) {
	args := m.Called(authorityID)
	return args.Get(0).([]models.ComplaintAssignment), args.Error(1)
}

func (m *MockStorage) FinalizeAssignment(id uint, status string, respondedAt time.Time) (*models.ComplaintAssignment, error) {
	args := m.Called(id, status, respondedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComplaintAssignment), args.Error(1)
}

func (m *MockStorage) GetRoomByKey(key string) (*models.ChatRoom, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) CreateRoomWithParticipants(room *models.ChatRoom, participants []models.ChatParticipant) error {
	args := m.Called(room, participants)
	return args.Error(0)
}

func (m *MockStorage) GetParticipant(roomID, userID uint) (*models.ChatParticipant, error) {
	args := m.Called(roomID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatParticipant), args.Error(1)
}

func (m *MockStorage) ListParticipants(roomID uint) ([]models.ChatParticipant, error) {
	args := m.Called(roomID)
	return args.Get(0).([]models.ChatParticipant), args.Error(1)
}

func (m *MockStorage) ListRoomsForUser(userID uint) ([]models.ChatRoom, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.ChatRoom), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.ChatMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) ListMessages(roomID uint) ([]models.ChatMessage, error) {
	args := m.Called(roomID)
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockStorage) MarkMessagesRead(roomID, readerID uint, at time.Time) error {
	args := m.Called(roomID, readerID, at)
	return args.Error(0)
}

func (m *MockStorage) LastMessage(roomID uint) (*models.ChatMessage, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatMessage), args.Error(1)
}

func (m *MockStorage) CountUnread(roomID, userID uint) (int64, error) {
	args := m.Called(roomID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) PublishAssignmentEvent(ev models.AssignmentEvent) error {
	args := m.Called(ev)
	return args.Error(0)
}
