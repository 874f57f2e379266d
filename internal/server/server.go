package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tacticbot/tacticbot/internal/battle"
	"github.com/tacticbot/tacticbot/internal/database"
	"github.com/tacticbot/tacticbot/internal/equipment"
	"github.com/tacticbot/tacticbot/internal/gacha"
	"github.com/tacticbot/tacticbot/internal/handler"
	"github.com/tacticbot/tacticbot/internal/inventory"
	"github.com/tacticbot/tacticbot/internal/logger"
	"github.com/tacticbot/tacticbot/internal/metrics"
	"github.com/tacticbot/tacticbot/internal/repository"
)

type Server struct {
	httpServer       *http.Server
	dbPool           database.Pool
	inventoryService inventory.Service
	gachaService     gacha.Service
	equipmentService equipment.Service
	battleService    battle.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, inventoryService inventory.Service, gachaService gacha.Service, equipmentService equipment.Service, battleService battle.Service, battleRepo repository.Battle) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Inventory routes
		inventoryHandler := handler.NewInventoryHandler(inventoryService)
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", inventoryHandler.HandleGetInventory)
			r.Post("/daily", inventoryHandler.HandleClaimDaily)
			r.Post("/sell/unit", inventoryHandler.HandleSellUnit)
			r.Post("/sell/weapon", inventoryHandler.HandleSellWeapon)
			r.Post("/row", inventoryHandler.HandleAssignRow)
		})

		r.Get("/leaderboard", inventoryHandler.HandleGetLeaderboard)

		// Draw routes
		gachaHandler := handler.NewGachaHandler(gachaService)
		r.Route("/draw", func(r chi.Router) {
			r.Post("/unit", gachaHandler.HandleDrawUnit)
			r.Post("/weapon", gachaHandler.HandleDrawWeapon)
		})

		// Equipment routes
		equipmentHandler := handler.NewEquipmentHandler(equipmentService)
		r.Route("/equipment", func(r chi.Router) {
			r.Post("/equip", equipmentHandler.HandleEquip)
			r.Post("/unequip", equipmentHandler.HandleUnequip)
		})

		// Battle routes
		battleHandler := handler.NewBattleHandler(battleService, battleRepo)
		r.Route("/battle", func(r chi.Router) {
			r.Post("/challenge", battleHandler.HandleChallenge)
			r.Post("/accept", battleHandler.HandleAccept)
			r.Post("/decline", battleHandler.HandleDecline)
			r.Post("/select", battleHandler.HandleSelectUnits)
			r.Post("/arrange", battleHandler.HandleArrange)
			r.Post("/attack", battleHandler.HandleAttack)
			r.Post("/surrender", battleHandler.HandleSurrender)
			r.Get("/status", battleHandler.HandleStatus)
			r.Get("/history", battleHandler.HandleHistory)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:           dbPool,
		inventoryService: inventoryService,
		gachaService:     gachaService,
		equipmentService: equipmentService,
		battleService:    battleService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
