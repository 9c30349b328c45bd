package wda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	mu       sync.Mutex
	sessions int
	actions  []ActionsRequest
	expired  bool
}

func (f *fakeAgent) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.sessions++
		id := fmt.Sprintf("session-%d", f.sessions)
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"sessionId": id, "value": map[string]interface{}{}})
	})
	mux.HandleFunc("/session/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.expired {
			f.expired = false
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"value": map[string]interface{}{"error": "invalid session id"}})
			return
		}

		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/actions"):
			var req ActionsRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			f.actions = append(f.actions, req)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"value": nil})
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"value": map[string]interface{}{
					"scale":      3.0,
					"screenSize": map[string]interface{}{"width": 393.0, "height": 852.0},
				},
			})
		default:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"value": nil})
		}
	})
	return mux
}

func TestNewWdaClient_NormalizesAddress(t *testing.T) {
	assert.Equal(t, "http://localhost:8100", NewWdaClient("localhost:8100").BaseURL())
	assert.Equal(t, "https://agent:8100", NewWdaClient("https://agent:8100/").BaseURL())
}

func TestBuildActions_PressAndDrag(t *testing.T) {
	req := BuildActions([]Path{
		{X1: 100, Y1: 200, X2: 100, Y2: 200, Duration: 600 * time.Millisecond},
		{X1: 10, Y1: 20, X2: 30, Y2: 40, Duration: 200 * time.Millisecond, Delay: 50 * time.Millisecond},
	})

	require.Len(t, req.Actions, 2)
	assert.Equal(t, "finger1", req.Actions[0].ID)
	assert.Equal(t, "touch", req.Actions[0].Parameters.PointerType)
	assert.Equal(t, []TapAction{
		{Type: "pointerMove", X: 100, Y: 200},
		{Type: "pointerDown"},
		{Type: "pause", Duration: 600},
		{Type: "pointerUp"},
	}, req.Actions[0].Actions)

	assert.Equal(t, "finger2", req.Actions[1].ID)
	assert.Equal(t, []TapAction{
		{Type: "pointerMove", X: 10, Y: 20},
		{Type: "pause", Duration: 50},
		{Type: "pointerDown"},
		{Type: "pointerMove", Duration: 200, X: 30, Y: 40},
		{Type: "pointerUp"},
	}, req.Actions[1].Actions)
}

func TestPerformPaths_ReusesSession(t *testing.T) {
	agent := &fakeAgent{}
	srv := httptest.NewServer(agent.handler())
	defer srv.Close()

	c := NewWdaClient(srv.URL)
	ctx := context.Background()

	require.NoError(t, c.PerformPaths(ctx, []Path{{X1: 1, Y1: 2, X2: 1, Y2: 2, Duration: 50 * time.Millisecond}}))
	require.NoError(t, c.PerformPaths(ctx, []Path{{X1: 1, Y1: 2, X2: 5, Y2: 2, Duration: 100 * time.Millisecond}}))

	assert.Equal(t, 1, agent.sessions)
	assert.Len(t, agent.actions, 2)
}

func TestPerformPaths_RecreatesExpiredSession(t *testing.T) {
	agent := &fakeAgent{}
	srv := httptest.NewServer(agent.handler())
	defer srv.Close()

	c := NewWdaClient(srv.URL)
	ctx := context.Background()

	require.NoError(t, c.PerformPaths(ctx, []Path{{X1: 1, Y1: 2, X2: 1, Y2: 2}}))

	agent.mu.Lock()
	agent.expired = true
	agent.mu.Unlock()

	require.NoError(t, c.PerformPaths(ctx, []Path{{X1: 1, Y1: 2, X2: 1, Y2: 2}}))
	assert.Equal(t, 2, agent.sessions)
	assert.Len(t, agent.actions, 2)
}

func TestGetWindowSize(t *testing.T) {
	agent := &fakeAgent{}
	srv := httptest.NewServer(agent.handler())
	defer srv.Close()

	size, err := NewWdaClient(srv.URL).GetWindowSize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, size.Scale)
	assert.Equal(t, Size{Width: 393, Height: 852}, size.ScreenSize)
}

func TestPerformPaths_AgentDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	err := NewWdaClient(srv.URL).PerformPaths(context.Background(), []Path{{X1: 1, Y1: 1, X2: 1, Y2: 1}})
	assert.Error(t, err)
}
