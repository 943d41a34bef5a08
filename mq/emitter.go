package mq

import (
	"context"
	"encoding/json"
	"log"

	"deskhive/rdx"
)

const channel = "booking-events"

// Event is a domain notification published for external consumers
// (notification senders, analytics) over Redis Pub/Sub.
type Event struct {
	Name       string `json:"name"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	ItemID     string `json:"item_id,omitempty"`
}

// Emit publishes an event. Failures are logged, never propagated: events are
// advisory and must not fail the request that produced them.
func Emit(name string, evt Event) {
	evt.Name = name
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
	}
}

// StartEventWorker consumes the event channel and logs every event. External
// integrations subscribe to the same channel out of process.
func StartEventWorker() {
	sub := rdx.Conn.Subscribe(context.Background(), channel)
	ch := sub.Channel()

	log.Println("[EventWorker] Listening for booking events...")
	for msg := range ch {
		var evt Event
		if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
			log.Printf("[EventWorker] Failed to parse event: %v", err)
			continue
		}
		log.Printf("[EventWorker] %s workspace=%s item=%s", evt.Name, evt.EntityID, evt.ItemID)
	}
}
