package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Event types
const (
	EventConnected          = "connected"
	EventNewOrder           = "new_order"
	EventOrderStatusUpdated = "order_status_updated"
	EventJoined             = "joined"
	EventLeft               = "left"
	EventError              = "error"
)

var (
	ErrSubscriberFull   = errors.New("subscriber buffer full")
	ErrSubscriberClosed = errors.New("subscriber closed")
)

type Message struct {
	Event string      `json:"event"`
	Topic string      `json:"topic,omitempty"`
	Data  interface{} `json:"data"`
}

// Subscriber receives encoded messages. Send must not block.
type Subscriber interface {
	ID() string
	Send(msg []byte) error
}

func CanteenTopic(canteenID uint) string {
	return fmt.Sprintf("canteen_%d", canteenID)
}

func UserTopic(userID uint) string {
	return fmt.Sprintf("user_%d", userID)
}

// Hub is a registry of topic -> subscribers. Delivery is at-most-once and
// nothing is retained for subscribers that join later.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[string]Subscriber
	log    *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[string]Subscriber),
		log:    log,
	}
}

func (h *Hub) Join(topic string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[string]Subscriber)
		h.topics[topic] = subs
	}
	subs[sub.ID()] = sub
}

func (h *Hub) Leave(topic string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(topic, sub.ID())
}

// LeaveAll removes sub from every topic it joined.
func (h *Hub) LeaveAll(sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topic := range h.topics {
		h.leaveLocked(topic, sub.ID())
	}
}

func (h *Hub) leaveLocked(topic, id string) {
	subs, ok := h.topics[topic]
	if !ok {
		return
	}
	delete(subs, id)
	if len(subs) == 0 {
		delete(h.topics, topic)
	}
}

// Subscribers returns the number of subscribers currently joined to topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Publish delivers event to the current subscribers of topic. Failed
// deliveries are reported in the returned error but never retried.
func (h *Hub) Publish(topic, event string, data interface{}) error {
	payload, err := Encode(event, topic, data)
	if err != nil {
		return err
	}

	h.mu.RLock()
	targets := make([]Subscriber, 0, len(h.topics[topic]))
	for _, sub := range h.topics[topic] {
		targets = append(targets, sub)
	}
	h.mu.RUnlock()

	var errs []error
	for _, sub := range targets {
		if err := sub.Send(payload); err != nil {
			errs = append(errs, fmt.Errorf("subscriber %s: %w", sub.ID(), err))
		}
	}

	h.log.WithFields(logrus.Fields{
		"topic":       topic,
		"event":       event,
		"subscribers": len(targets),
		"failed":      len(errs),
	}).Debug("published")

	return errors.Join(errs...)
}

// Encode renders the wire form shared by Publish and per-session replies.
func Encode(event, topic string, data interface{}) ([]byte, error) {
	payload, err := json.Marshal(Message{Event: event, Topic: topic, Data: data})
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", event, err)
	}
	return payload, nil
}
