package discord

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// HealthStatus represents the bot's health status
type HealthStatus struct {
	Status           string    `json:"status"`
	Uptime           string    `json:"uptime"`
	Connected        bool      `json:"connected"`
	CommandsReceived int64     `json:"commands_received"`
	LastCommandTime  time.Time `json:"last_command_time,omitempty"`
	APIReachable     bool      `json:"api_reachable"`
}

var (
	startTime       = time.Now()
	commandCounter  int64
	lastCommandTime time.Time
)

// RecordCommand increments the command counter
func RecordCommand() {
	atomic.AddInt64(&commandCounter, 1)
	lastCommandTime = time.Now()
}

// HTTPServer exposes the bot's health endpoint
type HTTPServer struct {
	bot    *Bot
	server *http.Server
}

// NewHTTPServer creates the bot-side HTTP server
func NewHTTPServer(port string, bot *Bot) *HTTPServer {
	h := &HTTPServer{bot: bot}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.HandleHealth)

	h.server = &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return h
}

// Start runs the server in the background
func (h *HTTPServer) Start() {
	go func() {
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Bot HTTP server failed", "error", err)
		}
	}()
}

// Stop shuts the server down
func (h *HTTPServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = h.server.Shutdown(ctx)
}

// HandleHealth returns the bot's health status
func (h *HTTPServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	connected := h.bot.Session != nil && h.bot.Session.DataReady

	// Quick ping to check API
	apiReachable := false
	if h.bot.Client != nil {
		resp, err := http.Get(h.bot.Client.BaseURL + "/healthz")
		if err == nil {
			apiReachable = resp.StatusCode == http.StatusOK
			resp.Body.Close()
		}
	}

	status := "healthy"
	if !connected || !apiReachable {
		status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	health := HealthStatus{
		Status:           status,
		Uptime:           time.Since(startTime).String(),
		Connected:        connected,
		CommandsReceived: atomic.LoadInt64(&commandCounter),
		LastCommandTime:  lastCommandTime,
		APIReachable:     apiReachable,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(health); err != nil {
		// Can't write error response at this point since headers are sent
		_ = err
	}
}
