package push

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/shredderfleet/fleetcommand/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *ws.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestBroadcastReachesClients(t *testing.T) {
	hub := NewHub([]string{"*"})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	a, b := dial(t, srv), dial(t, srv)
	defer a.Close()
	defer b.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	hub.BroadcastNav("session-1", models.NavState{View: models.ViewDetail, SelectedMachine: "Mill 2"})

	for _, conn := range []*ws.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var evt struct {
			Type    string            `json:"type"`
			Payload models.ActiveView `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(data, &evt))
		assert.Equal(t, EventNavChanged, evt.Type)
		assert.Equal(t, "session-1", evt.Payload.Session)
		assert.Equal(t, "Mill 2", evt.Payload.State.SelectedMachine)
	}

	hub.BroadcastReading("Shredder 2", models.StatusJammed, models.Reading{JamCount: 4})
	a.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := a.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"JAMMED"`)
}

func TestClientDisconnectUnregisters(t *testing.T) {
	hub := NewHub([]string{"*"})
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestCloseDisconnectsClients(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Equal(t, 0, hub.ClientCount())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.True(t, ws.IsCloseError(err, ws.CloseGoingAway), "got %v", err)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://ops.example.com"})
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/v1/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}
	assert.True(t, check(req("")))
	assert.True(t, check(req("https://ops.example.com")))
	assert.False(t, check(req("https://evil.example.com")))
	assert.True(t, originChecker([]string{"*"})(req("https://anything.example.com")))
}
