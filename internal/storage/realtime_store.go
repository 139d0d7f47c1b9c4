package storage

import (
	"encoding/json"

	"crimewatch/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// AssignmentEventsChannel is the Redis pub/sub channel carrying
// assignment events to the livefeed hub.
const AssignmentEventsChannel = "assignments:events"

// PublishAssignmentEvent публікує подію призначення в Redis Pub/Sub
func (s *Service) PublishAssignmentEvent(ev models.AssignmentEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, AssignmentEventsChannel, string(data)).Err()
}

// SubscribeAssignmentEvents subscribes to the assignment event channel.
func (s *Service) SubscribeAssignmentEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, AssignmentEventsChannel)
}
