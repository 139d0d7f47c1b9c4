package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Participant roles inside a room.
const (
	ParticipantUser      = "user"
	ParticipantAuthority = "authority"
)

// RoomKeyForReport derives the deterministic room key for a report.
// At most one room exists per report; the unique index on RoomKey is
// what enforces that under concurrent first access.
func RoomKeyForReport(reportID uint) string {
	return fmt.Sprintf("crime-%d", reportID)
}

// ChatRoom is a conversation scoped to exactly one crime report,
// created lazily the first time either side opens it.
type ChatRoom struct {
	gorm.Model

	RoomKey       string `gorm:"uniqueIndex;not null" json:"room_key"`
	CrimeReportID uint   `gorm:"not null;index" json:"crime_report_id"`
}

// ChatParticipant binds a user to a room with a role-in-room.
type ChatParticipant struct {
	gorm.Model

	RoomID uint `gorm:"not null;index:idx_room_user;index:idx_user_rooms,priority:2" json:"room_id"`
	UserID uint `gorm:"not null;index:idx_room_user;index:idx_user_rooms,priority:1" json:"user_id"`
	// UserType is ParticipantUser or ParticipantAuthority.
	UserType string    `gorm:"not null" json:"user_type"`
	LastRead time.Time `json:"last_read"`
}

// ChatMessage is an append-only message in a room, ordered by CreatedAt.
type ChatMessage struct {
	gorm.Model

	RoomID     uint   `gorm:"not null;index" json:"room_id"`
	SenderID   uint   `gorm:"not null" json:"sender_id"`
	SenderType string `gorm:"not null" json:"sender_type"`
	Message    string `gorm:"type:text;not null" json:"message"`
	// IsRead flips when the other participant lists the room's messages.
	IsRead bool `gorm:"default:false" json:"is_read"`
}
