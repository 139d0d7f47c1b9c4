// Package livefeed pushes assignment events to connected authority
// dashboards over websockets. Delivery is best-effort; the polling read
// models stay the source of truth.
package livefeed

import (
	"encoding/json"
	"log"

	"crimewatch/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Subscriber provides the Redis subscription the hub listens on.
// Satisfied by *storage.Service.
type Subscriber interface {
	SubscribeAssignmentEvents() *redis.PubSub
}

// ManagerService is the hub: it tracks connected clients per authority
// and fans incoming events out to them.
type ManagerService struct {
	// Clients maps authority id to its open connections. Several
	// operators of one department may be connected at once.
	Clients map[uint][]Client

	RegisterCh   chan Client
	UnregisterCh chan Client

	Subscriber Subscriber

	eventCh chan models.AssignmentEvent
}

// NewManagerService creates the hub.
func NewManagerService(sub Subscriber) *ManagerService {
	return &ManagerService{
		Clients:      make(map[uint][]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		Subscriber:   sub,
		eventCh:      make(chan models.AssignmentEvent),
	}
}

// startPubSubListener запускає Goroutine, яка слухає Redis Pub/Sub
func (m *ManagerService) startPubSubListener() {
	go func() {
		pubsub := m.Subscriber.SubscribeAssignmentEvents()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var ev models.AssignmentEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("ERROR: Failed to unmarshal assignment event: %v", err)
				continue
			}
			m.eventCh <- ev
		}
	}()
}

// Run is the hub's main dispatcher goroutine.
func (m *ManagerService) Run() {
	m.startPubSubListener()

	for {
		select {
		case client := <-m.RegisterCh:
			id := client.GetAuthorityID()
			m.Clients[id] = append(m.Clients[id], client)
			log.Printf("INFO: Livefeed client registered for authority %d", id)

		case client := <-m.UnregisterCh:
			m.removeClient(client)

		case ev := <-m.eventCh:
			m.Dispatch(ev)
		}
	}
}

// Dispatch forwards an event to every connection of its authority. A
// slow client gets disconnected rather than blocking the hub. Removal
// happens after the loop: removeClient compacts the slice being ranged
// over, which would skip the shifted-in client or visit one twice.
func (m *ManagerService) Dispatch(ev models.AssignmentEvent) {
	var slow []Client
	for _, client := range m.Clients[ev.AuthorityID] {
		select {
		case client.GetSendChannel() <- ev:
		default:
			log.Printf("INFO: Dropping slow livefeed client for authority %d", ev.AuthorityID)
			slow = append(slow, client)
		}
	}
	for _, client := range slow {
		m.removeClient(client)
		client.Close()
	}
}

func (m *ManagerService) removeClient(client Client) {
	id := client.GetAuthorityID()
	conns := m.Clients[id]
	for i, c := range conns {
		if c == client {
			m.Clients[id] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(m.Clients[id]) == 0 {
		delete(m.Clients, id)
	}
}
