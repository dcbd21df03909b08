package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mkrishnakr62/chatting-backend-app/internal/presence"
)

// Dispatcher pushes typed events to the live connections of an
// audience. Delivery is best-effort: offline users are skipped and
// nothing is queued or retried.
type Dispatcher struct {
	registry *presence.Registry
}

func NewDispatcher(registry *presence.Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Emit resolves the audience through the presence registry and pushes
// payload tagged with kind to every live connection found. All pushes
// are enqueued before Emit returns; ordering between two racing Emit
// calls is not guaranteed. Emit never fails: a connection that cannot
// accept the push is unregistered and closed instead.
func (d *Dispatcher) Emit(kind Kind, audience []uuid.UUID, payload interface{}) {
	env := Envelope{
		Event:     kind,
		Timestamp: time.Now(),
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Printf("events: failed to marshal %s payload: %v", kind, err)
			return
		}
		env.Data = data
	}

	frame, err := json.Marshal(env)
	if err != nil {
		log.Printf("events: failed to marshal %s envelope: %v", kind, err)
		return
	}

	for userID, conns := range d.registry.ConnectionsFor(audience) {
		for _, conn := range conns {
			if err := conn.Push(frame); err != nil {
				// Connection can't keep up; drop it rather than retry.
				log.Printf("events: dropping connection %s (user %s): %v", conn.ID(), userID, err)
				d.registry.Unregister(userID, conn)
				conn.Close()
			}
		}
	}
}
