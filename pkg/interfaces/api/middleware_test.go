package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/prodtrack/pkg/application/services/workspace"
	"github.com/vsinha/prodtrack/pkg/infrastructure/events"
	testhelpers "github.com/vsinha/prodtrack/pkg/infrastructure/testing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimit(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(1, 2))
	router.GET("/", func(c *gin.Context) { Success(c, nil) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "limits are per client")
}

func TestClientLimiter_SweepsIdleVisitors(t *testing.T) {
	start := time.Now()
	limiter := &clientLimiter{visitors: make(map[string]*visitor), limit: 1, burst: 1, lastSweep: start}

	assert.True(t, limiter.allow("a", start))
	assert.True(t, limiter.allow("b", start.Add(limiterIdle+time.Second)))
	assert.True(t, limiter.allow("b", start.Add(2*limiterIdle+2*time.Second)))

	assert.Len(t, limiter.visitors, 1)
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://dashboard.example.com"}))
	router.GET("/", func(c *gin.Context) { Success(c, nil) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://dashboard.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://elsewhere.example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID_ReusesHeader(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { Success(c, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestHub_BroadcastsWorkspaceChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	store := events.NewInMemoryEventStore(nil, 0)
	require.NoError(t, store.Subscribe(events.AllEventTypes, hub))
	ws := workspace.New(store, nil, workspace.DefaultOptions())
	require.NoError(t, ws.Load(testhelpers.BuildCartSnapshot()))

	srv := httptest.NewServer(NewServer(testConfig(), ws, hub, nil).Handler())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/v1/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	_, err = ws.AddCategory("Boat")
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var message ChangeMessage
	require.NoError(t, json.Unmarshal(data, &message))
	assert.Equal(t, events.CategoriesChangedEvent, message.Type)
	assert.Equal(t, 1, message.Position)
}

func TestHub_HandleNeverBlocks(t *testing.T) {
	hub := NewHub(nil)
	event := events.NewEvent(events.StatusesChangedEvent, events.StatusesStream, events.StatusesChanged{Action: "add"})

	// nothing drains the queue
	for i := 0; i < sendBuffer+10; i++ {
		require.NoError(t, hub.Handle(event))
	}
	assert.Len(t, hub.broadcast, sendBuffer)
}
