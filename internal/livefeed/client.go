package livefeed

import "crimewatch/backend/internal/models"

// Client is the interface for one live connection of an authority
// operator. It abstracts the transport so the hub can manage websocket
// clients and test doubles uniformly.
type Client interface {
	// GetAuthorityID returns the authority this connection belongs to.
	GetAuthorityID() uint

	// GetSendChannel returns the channel the hub pushes events into.
	GetSendChannel() chan<- models.AssignmentEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the connection and its channels.
	Close()
}
