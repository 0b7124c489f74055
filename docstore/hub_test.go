package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubSubscribeBroadcastCancel(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe("reservations")
	require.True(t, hub.HasSubscribers("reservations"))

	hub.Broadcast("reservations", []byte(`{"reservations":[]}`))

	select {
	case got := <-ch:
		assert.Equal(t, `{"reservations":[]}`, string(got))
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for broadcast")
	}

	// updates for other documents must not arrive here
	hub.Broadcast("timetable", []byte(`{}`))
	select {
	case got := <-ch:
		t.Fatalf("unexpected message: %s", got)
	default:
	}

	cancel()
	assert.False(t, hub.HasSubscribers("reservations"))

	_, open := <-ch
	assert.False(t, open, "channel should be closed after cancel")
}

func TestHubSlowSubscriberDropsUpdates(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("settings")
	defer cancel()

	// fill the buffer and keep going; Broadcast must never block
	for i := 0; i < 50; i++ {
		hub.Broadcast("settings", []byte("x"))
	}
	assert.Equal(t, cap(ch), len(ch))
}

func TestHubStopClosesSubscribers(t *testing.T) {
	hub := NewHub()
	ch, _ := hub.Subscribe("events")

	hub.Stop()

	_, open := <-ch
	assert.False(t, open)
	assert.False(t, hub.HasSubscribers("events"))

	// Stop is idempotent
	hub.Stop()
}
