package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) Message {
	t.Helper()
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_PublishToRoom(t *testing.T) {
	hub := NewHub(nil)
	team := uuid.New()
	room := TeamRoom(team)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(r.Context(), w, r, room)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	hello := readMessage(t, ctx, conn)
	assert.Equal(t, TypeSubscribed, hello.Type)
	assert.Equal(t, room, hello.Room)
	assert.Equal(t, 1, hub.Subscribers(room))

	hub.Publish(TeamRoom(uuid.New()), TypeEventCreated, "other team")
	hub.Publish(room, TypeEventUpdated, map[string]string{"id": "evt-1"})

	msg := readMessage(t, ctx, conn)
	assert.Equal(t, TypeEventUpdated, msg.Type)
	assert.Equal(t, map[string]any{"id": "evt-1"}, msg.Data)
}

func TestHub_LeaveOnDisconnect(t *testing.T) {
	hub := NewHub(nil)
	room := TeamRoom(uuid.New())
	done := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(r.Context(), w, r, room)
		close(done)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	readMessage(t, ctx, conn)

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, "bye"))

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("server did not return after client closed")
	}
	assert.Equal(t, 0, hub.Subscribers(room))
}
