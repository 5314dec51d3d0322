package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"collabex_backend/internal/auth"
	"collabex_backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan []byte) Event {
	t.Helper()
	select {
	case raw := <-ch:
		var ev Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func startHub(t *testing.T, broker Broker) *Hub {
	t.Helper()
	hub := NewHub(broker)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = hub.Run(ctx) }()
	return hub
}

func TestHubDeliversToEveryConnectionOfUser(t *testing.T) {
	hub := startHub(t, NewMemoryBroker(16))

	_, first := hub.Register("u1")
	_, second := hub.Register("u1")
	_, other := hub.Register("u2")
	assert.Equal(t, 2, hub.ConnectionCount("u1"))

	ev, err := NewEvent(EventNotification, map[string]string{"title": "hi"})
	require.NoError(t, err)
	require.NoError(t, hub.Publish(context.Background(), "u1", ev))

	for _, ch := range []<-chan []byte{first, second} {
		got := receive(t, ch)
		assert.Equal(t, EventNotification, got.Type)
		assert.JSONEq(t, `{"title":"hi"}`, string(got.Payload))
	}

	select {
	case <-other:
		t.Fatal("u2 must not receive u1's event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := startHub(t, NewMemoryBroker(16))

	connID, ch := hub.Register("u1")
	hub.Unregister("u1", connID)
	assert.Equal(t, 0, hub.ConnectionCount("u1"))

	ev, _ := NewEvent(EventMessage, map[string]string{})
	require.NoError(t, hub.Publish(context.Background(), "u1", ev))

	select {
	case <-ch:
		t.Fatal("unregistered connection received an event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubForgetsUsersWithoutConnections(t *testing.T) {
	hub := NewHub(NewMemoryBroker(1))

	first, _ := hub.Register("u1")
	second, _ := hub.Register("u1")
	hub.Register("u2")
	assert.Equal(t, 2, hub.users.Size())

	hub.Unregister("u1", first)
	assert.Equal(t, 2, hub.users.Size())
	hub.Unregister("u1", second)
	assert.Equal(t, 1, hub.users.Size())
	assert.Equal(t, 0, hub.ConnectionCount("u1"))

	// Unknown ids are ignored.
	hub.Unregister("u1", second)
	hub.Unregister("ghost", "c")
	assert.Equal(t, 1, hub.users.Size())

	hub.Register("u1")
	assert.Equal(t, 1, hub.ConnectionCount("u1"))
	assert.Equal(t, 2, hub.users.Size())
}

func TestMemoryBrokerDropsWhenFull(t *testing.T) {
	b := NewMemoryBroker(1)
	env := Envelope{UserID: "u1", Event: Event{Type: EventMessage}}
	require.NoError(t, b.Publish(context.Background(), env))
	// Second publish finds the queue full and is dropped without error.
	require.NoError(t, b.Publish(context.Background(), env))
	assert.Len(t, b.queue, 1)
}

func TestRedisBrokerFansOutAcrossHubs(t *testing.T) {
	mr := miniredis.RunT(t)
	channel := "collabex:test"

	newClient := func() *redis.Client {
		return redis.NewClient(&redis.Options{Addr: mr.Addr()})
	}

	nodeA := startHub(t, NewRedisBroker(newClient(), channel))
	nodeB := startHub(t, NewRedisBroker(newClient(), channel))

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(channel)[channel] == 2
	}, 2*time.Second, 10*time.Millisecond)

	_, onB := nodeB.Register("u1")

	ev, err := NewEvent(EventMessage, map[string]string{"content": "hello"})
	require.NoError(t, err)
	require.NoError(t, nodeA.Publish(context.Background(), "u1", ev))

	got := receive(t, onB)
	assert.Equal(t, EventMessage, got.Type)
	assert.JSONEq(t, `{"content":"hello"}`, string(got.Payload))
}

type staticVerifier struct{}

func (staticVerifier) Verify(token string) (auth.Session, error) {
	return auth.Session{UserID: token, ProfileID: "p-" + token}, nil
}

func TestServeWSStreamsEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := startHub(t, NewMemoryBroker(16))

	r := gin.New()
	NewWebSocketHandler(hub, nil).RegisterRoutes(r, middleware.QueryTokenAuth(staticVerifier{}))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=user-1"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.Eventually(t, func() bool { return hub.ConnectionCount("user-1") == 1 }, time.Second, 10*time.Millisecond)

	ev, _ := NewEvent(EventNotification, map[string]string{"id": "n1"})
	require.NoError(t, hub.Publish(context.Background(), "user-1", ev))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventNotification, got.Type)
	assert.JSONEq(t, `{"id":"n1"}`, string(got.Payload))
}

func TestServeWSRequiresToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(NewMemoryBroker(1))

	r := gin.New()
	NewWebSocketHandler(hub, nil).RegisterRoutes(r, middleware.QueryTokenAuth(staticVerifier{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
