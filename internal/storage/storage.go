package storage

import (
	"context"
	"errors"
	"time"

	"crimewatch/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrRoomExists is returned by CreateRoomWithParticipants when another
// request created the room first. Callers re-fetch instead of failing.
var ErrRoomExists = errors.New("chat room already exists")

// Storage is the persistence boundary of the application. The services
// depend on this interface; tests substitute a mock.
type Storage interface {
	// Users and authorities
	SaveUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	ListUsers() ([]models.User, error)
	SetUserActive(id uint, active bool) error
	SaveAuthority(authority *models.Authority) error
	GetAuthorityByID(id uint) (*models.Authority, error)
	GetAuthorityByUserID(userID uint) (*models.Authority, error)
	ListAuthorities() ([]models.Authority, error)
	ListRoutableAuthorities() ([]models.Authority, error)
	ListUnverifiedAuthorities() ([]models.Authority, error)
	VerifyAuthority(id uint) error

	// Reports and assignments
	CreateReportWithAssignments(report *models.CrimeReport, authorityIDs []uint) ([]models.ComplaintAssignment, error)
	GetReportByID(id uint) (*models.CrimeReport, error)
	ListReports() ([]models.CrimeReport, error)
	ListReportsByPincode(pincode string, limit, offset int) ([]models.CrimeReport, int64, error)
	ListReportsByUser(userID uint) ([]models.CrimeReport, error)
	UpdateReportStatus(reportID uint, status string) error
	CountReports() (int64, error)
	CountReportsByStatus(status string) (int64, error)
	CountReportsSince(since time.Time) (int64, error)
	CountUsers() (int64, error)
	CountAuthorities() (int64, error)
	GetAssignmentByID(id uint) (*models.ComplaintAssignment, error)
	ListPendingAssignmentsForAuthority(authorityID uint) ([]models.ComplaintAssignment, error)
	FinalizeAssignment(id uint, status string, respondedAt time.Time) (*models.ComplaintAssignment, error)

	// Chat
	GetRoomByKey(key string) (*models.ChatRoom, error)
	CreateRoomWithParticipants(room *models.ChatRoom, participants []models.ChatParticipant) error
	GetParticipant(roomID, userID uint) (*models.ChatParticipant, error)
	ListParticipants(roomID uint) ([]models.ChatParticipant, error)
	ListRoomsForUser(userID uint) ([]models.ChatRoom, error)
	SaveMessage(msg *models.ChatMessage) error
	ListMessages(roomID uint) ([]models.ChatMessage, error)
	MarkMessagesRead(roomID, readerID uint, at time.Time) error
	LastMessage(roomID uint) (*models.ChatMessage, error)
	CountUnread(roomID, userID uint) (int64, error)

	// Realtime
	PublishAssignmentEvent(ev models.AssignmentEvent) error
}

// Service is the GORM/Redis implementation of Storage.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveUser зберігає користувача в PostgreSQL
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserActive перемикає прапорець активності користувача
func (s *Service) SetUserActive(id uint, active bool) error {
	return s.DB.Model(&models.User{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (s *Service) SaveAuthority(authority *models.Authority) error {
	return s.DB.Save(authority).Error
}

func (s *Service) GetAuthorityByID(id uint) (*models.Authority, error) {
	var authority models.Authority
	err := s.DB.First(&authority, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &authority, nil
}

func (s *Service) GetAuthorityByUserID(userID uint) (*models.Authority, error) {
	var authority models.Authority
	err := s.DB.Where("user_id = ?", userID).First(&authority).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &authority, nil
}

func (s *Service) ListAuthorities() ([]models.Authority, error) {
	var authorities []models.Authority
	if err := s.DB.Order("id asc").Find(&authorities).Error; err != nil {
		return nil, err
	}
	return authorities, nil
}

// ListRoutableAuthorities returns verified authorities whose user
// account is active, ordered by registration time. Only these take part
// in assignment fan-out and chat bootstrap.
func (s *Service) ListRoutableAuthorities() ([]models.Authority, error) {
	var authorities []models.Authority
	err := s.DB.
		Joins("JOIN users ON users.id = authorities.user_id AND users.is_active = ?", true).
		Where("authorities.is_verified = ?", true).
		Order("authorities.id asc").
		Find(&authorities).Error
	if err != nil {
		return nil, err
	}
	return authorities, nil
}

func (s *Service) ListUnverifiedAuthorities() ([]models.Authority, error) {
	var authorities []models.Authority
	if err := s.DB.Where("is_verified = ?", false).Find(&authorities).Error; err != nil {
		return nil, err
	}
	return authorities, nil
}

func (s *Service) VerifyAuthority(id uint) error {
	return s.DB.Model(&models.Authority{}).
		Where("id = ?", id).
		Update("is_verified", true).Error
}

func (s *Service) CountUsers() (int64, error) {
	var n int64
	err := s.DB.Model(&models.User{}).Count(&n).Error
	return n, err
}

func (s *Service) CountAuthorities() (int64, error) {
	var n int64
	err := s.DB.Model(&models.Authority{}).Count(&n).Error
	return n, err
}
