package storage

import (
	"errors"
	"log"
	"time"

	"crimewatch/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Service) GetRoomByKey(key string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := s.DB.Where("room_key = ?", key).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: Failed to get room %s: %v", key, err)
		return nil, err
	}
	return &room, nil
}

// CreateRoomWithParticipants persists the room and its full participant
// set atomically. A duplicate room key means another request created
// the room first; that surfaces as ErrRoomExists and the caller
// re-fetches. Requires TranslateError on the gorm connection.
func (s *Service) CreateRoomWithParticipants(room *models.ChatRoom, participants []models.ChatParticipant) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		for i := range participants {
			participants[i].RoomID = room.ID
			if err := tx.Create(&participants[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrRoomExists
	}
	if err != nil {
		log.Printf("ERROR: Failed to create room %s: %v", room.RoomKey, err)
	}
	return err
}

func (s *Service) GetParticipant(roomID, userID uint) (*models.ChatParticipant, error) {
	var participant models.ChatParticipant
	err := s.DB.Where("room_id = ? AND user_id = ?", roomID, userID).First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (s *Service) ListParticipants(roomID uint) ([]models.ChatParticipant, error) {
	var participants []models.ChatParticipant
	if err := s.DB.Where("room_id = ?", roomID).Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (s *Service) ListRoomsForUser(userID uint) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := s.DB.
		Joins("JOIN chat_participants ON chat_participants.room_id = chat_rooms.id").
		Where("chat_participants.user_id = ?", userID).
		Order("chat_rooms.created_at desc").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// SaveMessage зберігає повідомлення в PostgreSQL
func (s *Service) SaveMessage(msg *models.ChatMessage) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for room %d: %v", msg.RoomID, err)
		return err
	}
	return nil
}

// ListMessages отримує історію повідомлень для кімнати
func (s *Service) ListMessages(roomID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := s.DB.Where("room_id = ?", roomID).Order("created_at asc").Find(&messages).Error; err != nil {
		log.Printf("ERROR: Failed to get chat history for room %d: %v", roomID, err)
		return nil, err
	}
	return messages, nil
}

// MarkMessagesRead flips the read flag on every message in the room not
// sent by the reader and bumps the reader's last_read, in one
// transaction. This is the mutation-on-read side effect of listing.
func (s *Service) MarkMessagesRead(roomID, readerID uint, at time.Time) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.ChatMessage{}).
			Where("room_id = ? AND sender_id <> ? AND is_read = ?", roomID, readerID, false).
			Update("is_read", true).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.ChatParticipant{}).
			Where("room_id = ? AND user_id = ?", roomID, readerID).
			Update("last_read", at).Error
	})
}

func (s *Service) LastMessage(roomID uint) (*models.ChatMessage, error) {
	var msg models.ChatMessage
	err := s.DB.Where("room_id = ?", roomID).Order("created_at desc").First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *Service) CountUnread(roomID, userID uint) (int64, error) {
	var n int64
	err := s.DB.Model(&models.ChatMessage{}).
		Where("room_id = ? AND sender_id <> ? AND is_read = ?", roomID, userID, false).
		Count(&n).Error
	return n, err
}
