package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minutemate/config"
)

func TestNotifier_PublishReachesSubscribers(t *testing.T) {
	n := NewNotifier(config.RedisConfig{})

	ch, cancel := n.Subscribe()
	defer cancel()

	n.Publish(ChangeEvent{Entity: "meetings", Action: "insert", ID: "m1"})

	select {
	case event := <-ch:
		assert.Equal(t, "meetings", event.Entity)
		assert.Equal(t, "insert", event.Action)
		assert.Equal(t, "m1", event.ID)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestNotifier_CancelledSubscriberStopsReceiving(t *testing.T) {
	n := NewNotifier(config.RedisConfig{})

	ch, cancel := n.Subscribe()
	cancel()

	n.Publish(ChangeEvent{Entity: "tasks", Action: "update", ID: "t1"})

	select {
	case event := <-ch:
		t.Fatalf("unexpected event after cancel: %+v", event)
	default:
	}
}

func TestNotifier_SlowSubscriberIsSkipped(t *testing.T) {
	n := NewNotifier(config.RedisConfig{})

	ch, cancel := n.Subscribe()
	defer cancel()

	// Fill the subscriber buffer, then one more; delivery must not block
	for i := 0; i < 20; i++ {
		n.Publish(ChangeEvent{Entity: "tasks", Action: "update", ID: "t1"})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	require.Equal(t, 16, received)
}
