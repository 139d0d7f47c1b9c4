// Package chat provides the report-scoped conversation between a
// reporter and an authority: lazy room bootstrap, an append-only
// message log, and read tracking per participant.
package chat

import (
	"errors"
	"log"
	"strings"
	"time"

	"crimewatch/backend/internal/apperr"
	"crimewatch/backend/internal/identity"
	"crimewatch/backend/internal/models"
	"crimewatch/backend/internal/storage"
)

// AuthorityPicker selects the authority-side participant when the
// reporter opens a room first. Injectable so jurisdiction- or
// workload-aware policies can replace the default.
type AuthorityPicker interface {
	PickForReport(report *models.CrimeReport) (*models.Authority, error)
}

// FirstRegisteredPicker picks the earliest-registered routable
// authority. A stub policy, kept behind the AuthorityPicker interface.
type FirstRegisteredPicker struct {
	Storage storage.Storage
}

// PickForReport returns the first routable authority, or nil when none
// is registered.
func (p *FirstRegisteredPicker) PickForReport(_ *models.CrimeReport) (*models.Authority, error) {
	authorities, err := p.Storage.ListRoutableAuthorities()
	if err != nil {
		return nil, err
	}
	if len(authorities) == 0 {
		return nil, nil
	}
	return &authorities[0], nil
}

// Service handles the business logic for report-scoped chat.
type Service struct {
	Storage storage.Storage
	Picker  AuthorityPicker
}

// NewService creates a new chat service.
func NewService(s storage.Storage, picker AuthorityPicker) *Service {
	return &Service{Storage: s, Picker: picker}
}

// Participant is a projection of a room member.
type Participant struct {
	UserID   uint   `json:"user_id"`
	Name     string `json:"name"`
	UserType string `json:"user_type"`
}

// Room is the bootstrap result: the room plus its participant set.
type Room struct {
	ID            uint          `json:"id"`
	RoomKey       string        `json:"room_key"`
	CrimeReportID uint          `json:"crime_report_id"`
	ComplaintID   string        `json:"complaint_id"`
	Title         string        `json:"title"`
	Participants  []Participant `json:"participants"`
	CreatedAt     time.Time     `json:"created_at"`
}

// GetOrCreateRoom returns the room tied to a report, creating it with
// its full participant set on first access. Idempotent under
// concurrency: the unique room key turns the losing insert into a
// re-fetch, so two first-accesses can never produce two rooms.
func (s *Service) GetOrCreateRoom(caller identity.Caller, reportID uint) (*Room, error) {
	report, err := s.Storage.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperr.Newf(apperr.NotFound, "report %d not found", reportID)
	}

	isReporter := report.UserID != nil && *report.UserID == caller.ID
	isAuthority := caller.Role == models.RoleAuthority
	if !isReporter && !isAuthority {
		return nil, apperr.New(apperr.Forbidden, "only the reporter or an authority may open this conversation")
	}

	key := models.RoomKeyForReport(reportID)
	room, err := s.Storage.GetRoomByKey(key)
	if err != nil {
		return nil, err
	}

	if room == nil {
		room, err = s.bootstrapRoom(caller, report, key, isAuthority)
		if err != nil {
			return nil, err
		}
	}

	return s.projectRoom(room, report)
}

// bootstrapRoom creates the room and synthesizes its participant set
// atomically. The requester always joins under their own role; the
// other side is the reporter (when known) or a picked authority.
func (s *Service) bootstrapRoom(caller identity.Caller, report *models.CrimeReport, key string, isAuthority bool) (*models.ChatRoom, error) {
	room := &models.ChatRoom{RoomKey: key, CrimeReportID: report.ID}

	now := time.Now().UTC()
	requesterType := models.ParticipantUser
	if isAuthority {
		requesterType = models.ParticipantAuthority
	}
	participants := []models.ChatParticipant{
		{UserID: caller.ID, UserType: requesterType, LastRead: now},
	}

	if isAuthority {
		// Add the original reporter, unless the report is anonymous.
		if report.UserID != nil {
			participants = append(participants, models.ChatParticipant{
				UserID: *report.UserID, UserType: models.ParticipantUser, LastRead: now,
			})
		}
	} else {
		authority, err := s.Picker.PickForReport(report)
		if err != nil {
			return nil, err
		}
		if authority != nil {
			participants = append(participants, models.ChatParticipant{
				UserID: authority.UserID, UserType: models.ParticipantAuthority, LastRead: now,
			})
		}
	}

	err := s.Storage.CreateRoomWithParticipants(room, participants)
	if errors.Is(err, storage.ErrRoomExists) {
		// Другий запит програв гонку — просто перечитуємо кімнату.
		existing, ferr := s.Storage.GetRoomByKey(key)
		if ferr != nil {
			return nil, ferr
		}
		if existing == nil {
			return nil, apperr.New(apperr.Internal, "room vanished after duplicate-key conflict")
		}
		return existing, nil
	}
	if err != nil {
		return nil, err
	}

	log.Printf("INFO: Chat room %s created with %d participants", key, len(participants))
	return room, nil
}

func (s *Service) projectRoom(room *models.ChatRoom, report *models.CrimeReport) (*Room, error) {
	members, err := s.Storage.ListParticipants(room.ID)
	if err != nil {
		return nil, err
	}

	participants := make([]Participant, 0, len(members))
	for _, p := range members {
		name := ""
		if user, err := s.Storage.GetUserByID(p.UserID); err == nil && user != nil {
			name = user.Username
		}
		participants = append(participants, Participant{
			UserID:   p.UserID,
			Name:     name,
			UserType: p.UserType,
		})
	}

	return &Room{
		ID:            room.ID,
		RoomKey:       room.RoomKey,
		CrimeReportID: room.CrimeReportID,
		ComplaintID:   report.ComplaintID,
		Title:         report.Title,
		Participants:  participants,
		CreatedAt:     room.CreatedAt,
	}, nil
}

// Message is the wire projection of a chat message.
type Message struct {
	ID         uint      `json:"id"`
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	SenderType string    `json:"sender_type"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
}

// ListMessages returns the room's messages in creation order. As a side
// effect every message not sent by the requester is marked read and the
// requester's last_read is bumped; there is no separate mark-read call.
func (s *Service) ListMessages(caller identity.Caller, roomID uint) ([]Message, error) {
	if _, err := s.requireParticipant(roomID, caller.ID); err != nil {
		return nil, err
	}

	messages, err := s.Storage.ListMessages(roomID)
	if err != nil {
		return nil, err
	}

	if err := s.Storage.MarkMessagesRead(roomID, caller.ID, time.Now().UTC()); err != nil {
		log.Printf("ERROR: Failed to mark messages read in room %d for user %d: %v", roomID, caller.ID, err)
	}

	result := make([]Message, 0, len(messages))
	for _, m := range messages {
		isRead := m.IsRead
		if m.SenderID != caller.ID {
			isRead = true // just marked above
		}
		result = append(result, Message{
			ID:         m.ID,
			SenderID:   m.SenderID,
			SenderName: s.senderName(m.SenderID),
			SenderType: m.SenderType,
			Message:    m.Message,
			CreatedAt:  m.CreatedAt,
			IsRead:     isRead,
		})
	}

	return result, nil
}

// SendMessage appends a message stamped with the sender's room role.
func (s *Service) SendMessage(caller identity.Caller, roomID uint, text string) (*Message, error) {
	participant, err := s.requireParticipant(roomID, caller.ID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.New(apperr.Validation, "message cannot be empty")
	}

	msg := &models.ChatMessage{
		RoomID:     roomID,
		SenderID:   caller.ID,
		SenderType: participant.UserType,
		Message:    text,
	}
	if err := s.Storage.SaveMessage(msg); err != nil {
		return nil, err
	}

	return &Message{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		SenderName: s.senderName(msg.SenderID),
		SenderType: msg.SenderType,
		Message:    msg.Message,
		CreatedAt:  msg.CreatedAt,
		IsRead:     msg.IsRead,
	}, nil
}

func (s *Service) requireParticipant(roomID, userID uint) (*models.ChatParticipant, error) {
	participant, err := s.Storage.GetParticipant(roomID, userID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, apperr.New(apperr.Forbidden, "not a participant of this room")
	}
	return participant, nil
}

func (s *Service) senderName(userID uint) string {
	user, err := s.Storage.GetUserByID(userID)
	if err != nil || user == nil {
		return ""
	}
	return user.Username
}
