package chat

import (
	"log"
	"time"

	"crimewatch/backend/internal/identity"
)

// RoomSummary is one entry of the caller's conversation list.
type RoomSummary struct {
	ID               uint         `json:"id"`
	RoomKey          string       `json:"room_key"`
	CrimeReportID    uint         `json:"crime_report_id"`
	ComplaintID      string       `json:"complaint_id"`
	Title            string       `json:"title"`
	OtherParticipant *Participant `json:"other_participant,omitempty"`
	LastMessage      string       `json:"last_message,omitempty"`
	LastMessageTime  *time.Time   `json:"last_message_time,omitempty"`
	UnreadCount      int64        `json:"unread_count"`
	CreatedAt        time.Time    `json:"created_at"`
}

// ListRooms returns every room the caller participates in, with the
// counterpart, last message, and unread count for the inbox view.
func (s *Service) ListRooms(caller identity.Caller) ([]RoomSummary, error) {
	rooms, err := s.Storage.ListRoomsForUser(caller.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summary := RoomSummary{
			ID:            room.ID,
			RoomKey:       room.RoomKey,
			CrimeReportID: room.CrimeReportID,
			CreatedAt:     room.CreatedAt,
		}

		report, err := s.Storage.GetReportByID(room.CrimeReportID)
		if err != nil {
			log.Printf("ERROR: Failed to load report %d for room %d: %v", room.CrimeReportID, room.ID, err)
		} else if report != nil {
			summary.ComplaintID = report.ComplaintID
			summary.Title = report.Title
		}

		participants, err := s.Storage.ListParticipants(room.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range participants {
			if p.UserID == caller.ID {
				continue
			}
			summary.OtherParticipant = &Participant{
				UserID:   p.UserID,
				Name:     s.senderName(p.UserID),
				UserType: p.UserType,
			}
			break
		}

		last, err := s.Storage.LastMessage(room.ID)
		if err != nil {
			log.Printf("ERROR: Failed to load last message for room %d: %v", room.ID, err)
		} else if last != nil {
			summary.LastMessage = last.Message
			t := last.CreatedAt
			summary.LastMessageTime = &t
		}

		unread, err := s.Storage.CountUnread(room.ID, caller.ID)
		if err != nil {
			log.Printf("ERROR: Failed to count unread for room %d user %d: %v", room.ID, caller.ID, err)
		} else {
			summary.UnreadCount = unread
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}
