package notify

import (
	"sync"

	"github.com/google/uuid"
)

// ChannelSubscriber buffers messages in memory. It backs in-process
// listeners such as background consumers and tests.
type ChannelSubscriber struct {
	id     string
	mu     sync.Mutex
	ch     chan []byte
	closed bool
}

func NewChannelSubscriber(buffer int) *ChannelSubscriber {
	return &ChannelSubscriber{id: uuid.NewString(), ch: make(chan []byte, buffer)}
}

func (s *ChannelSubscriber) ID() string { return s.id }

func (s *ChannelSubscriber) Send(msg []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSubscriberClosed
	}
	select {
	case s.ch <- msg:
		return nil
	default:
		return ErrSubscriberFull
	}
}

func (s *ChannelSubscriber) Messages() <-chan []byte { return s.ch }

func (s *ChannelSubscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
