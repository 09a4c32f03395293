package utils

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"minutemate/config"
)

const changeChannel = "minutemate:changes"

// ChangeEvent describes a committed mutation on a persisted entity.
type ChangeEvent struct {
	Entity string `json:"entity"` // meetings, tasks, teams, app_settings
	Action string `json:"action"` // insert, update, delete
	ID     string `json:"id"`
}

// Notifier fans change events out to in-process websocket subscribers and,
// when Redis is configured, publishes them to a shared channel so other
// instances can relay them too. Publishing is fire-and-forget: a failed
// publish never fails the request that caused it.
type Notifier struct {
	rdb *redis.Client
	log *logrus.Logger

	mu          sync.Mutex
	subscribers map[chan ChangeEvent]struct{}
}

func NewNotifier(cfg config.RedisConfig) *Notifier {
	n := &Notifier{
		log:         logrus.New(),
		subscribers: make(map[chan ChangeEvent]struct{}),
	}
	if cfg.Enabled {
		n.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}
	return n
}

// Publish delivers the event to subscribers. Without Redis the delivery is
// in-process; with Redis the event round-trips through the shared channel so
// every instance, this one included, sees exactly one copy. Slow subscribers
// are skipped rather than blocked on.
func (n *Notifier) Publish(event ChangeEvent) {
	if n.rdb == nil {
		n.deliver(event)
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.log.WithError(err).Error("failed to marshal change event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := n.rdb.Publish(ctx, changeChannel, payload).Err(); err != nil {
		n.log.WithError(err).Error("failed to publish change event to redis")
	}
}

// Subscribe registers a new listener. The returned cancel function must be
// called when the listener goes away.
func (n *Notifier) Subscribe() (<-chan ChangeEvent, func()) {
	ch := make(chan ChangeEvent, 16)

	n.mu.Lock()
	n.subscribers[ch] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		delete(n.subscribers, ch)
		n.mu.Unlock()
	}
	return ch, cancel
}

func (n *Notifier) deliver(event ChangeEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Relay forwards events published by other instances into the local
// subscriber set. It blocks until the context is cancelled; a no-op when
// Redis is not configured.
func (n *Notifier) Relay(ctx context.Context) {
	if n.rdb == nil {
		return
	}

	sub := n.rdb.Subscribe(ctx, changeChannel)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			var event ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				n.log.WithError(err).Error("failed to decode change event from redis")
				continue
			}
			n.deliver(event)
		}
	}
}
