package middleware

import (
	"bytes"
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"agent-economy/internal/core/ports"
	"agent-economy/internal/metrics"
	"agent-economy/pkg/apperror"
	"agent-economy/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// Header names for signed event intake
	HeaderSignature = "X-Signature"
	HeaderTimestamp = "X-Timestamp"
	HeaderEventID   = "X-Event-ID"
	HeaderRequestID = "X-Request-ID"

	// Max timestamp drift allowed (60 seconds)
	maxTimestampDrift = 60 * time.Second

	// Dedupe namespace for feed events
	eventSource = "feed"

	// Context keys
	CtxAgentID   = "agent_id"
	CtxEventID   = "event_id"
	CtxRequestID = "request_id"

	// CtxEventApplied is set by the event handler when a failed event had
	// already changed state, so its id must stay recorded.
	CtxEventApplied = "event_applied"
)

// eventForgetter is implemented by dedupers that can release an event id so
// a delivery that failed server-side can be retried.
type eventForgetter interface {
	Forget(ctx context.Context, source string, eventID string) error
}

// EventAuth verifies signed events from the social feed.
// Pipeline: Check timestamp -> Verify signature -> Suppress duplicates.
// A nil deduper disables duplicate suppression.
func EventAuth(
	secret string,
	sigSvc ports.SignatureService,
	deduper ports.EventDeduper,
	dedupTTL time.Duration,
	log zerolog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader(HeaderSignature)
		timestampStr := c.GetHeader(HeaderTimestamp)
		eventID := c.GetHeader(HeaderEventID)

		if signature == "" || timestampStr == "" || eventID == "" || len(eventID) > 128 {
			response.Error(c, apperror.ErrInvalidSignature())
			c.Abort()
			return
		}

		// Step 1: Timestamp check
		timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
		if err != nil {
			response.Error(c, apperror.ErrTimestampExpired())
			c.Abort()
			return
		}
		now := time.Now().Unix()
		if math.Abs(float64(now-timestamp)) > maxTimestampDrift.Seconds() {
			response.Error(c, apperror.ErrTimestampExpired())
			c.Abort()
			return
		}

		// Step 2: Signature verification
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Error(c, apperror.Validation("cannot read request body"))
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		canonical := sigSvc.BuildCanonicalString(timestamp, eventID, string(bodyBytes))
		if secret == "" || !sigSvc.Verify(secret, canonical, signature) {
			response.Error(c, apperror.ErrInvalidSignature())
			c.Abort()
			return
		}

		// Step 3: Duplicate suppression
		if deduper != nil {
			first, err := deduper.FirstDelivery(c.Request.Context(), eventSource, eventID, dedupTTL)
			if err != nil {
				log.Warn().Err(err).Str("event_id", eventID).Msg("event dedupe unavailable, applying event")
			} else if !first {
				response.Error(c, apperror.ErrDuplicateEvent())
				c.Abort()
				return
			}
		}

		c.Set(CtxEventID, eventID)
		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError {
			return
		}
		if c.GetBool(CtxEventApplied) {
			log.Warn().Str("event_id", eventID).Msg("event partially applied, keeping event id")
			return
		}
		if f, ok := deduper.(eventForgetter); ok {
			if err := f.Forget(c.Request.Context(), eventSource, eventID); err != nil {
				log.Warn().Err(err).Str("event_id", eventID).Msg("failed to release event id")
			}
		}
	}
}

// JWTAuth creates a middleware that validates agent bearer tokens.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		claims, err := tokenSvc.Validate(authHeader[7:])
		if err != nil {
			log.Debug().Err(err).Msg("bearer token rejected")
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		c.Set(CtxAgentID, claims.AgentID)
		c.Next()
	}
}

// RequestID propagates X-Request-ID or assigns a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// Metrics records request counts and latency per route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(CtxRequestID)).
			Str("agent_id", c.GetString(CtxAgentID)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
