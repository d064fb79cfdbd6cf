package handler

import (
	"errors"

	"agent-economy/internal/adapter/http/dto"
	"agent-economy/internal/adapter/http/middleware"
	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/pkg/apperror"
	"agent-economy/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// EventHandler applies signed social-feed events to the ledger.
type EventHandler struct {
	sink ports.EventSink
	log  zerolog.Logger
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(sink ports.EventSink, log zerolog.Logger) *EventHandler {
	return &EventHandler{sink: sink, log: log}
}

// Ingest handles POST /api/v1/events. EventAuth has already verified the
// signature and suppressed redeliveries.
func (h *EventHandler) Ingest(c *gin.Context) {
	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.dispatch(c, req); err != nil {
		if errors.Is(err, domain.ErrEventPartiallyApplied) {
			c.Set(middleware.CtxEventApplied, true)
		}
		h.log.Warn().Err(err).
			Str("event_id", c.GetString(middleware.CtxEventID)).
			Str("type", req.Type).
			Str("agent_id", req.AgentID).
			Msg("event rejected")
		response.Error(c, err)
		return
	}

	response.Accepted(c, dto.EventResponse{
		EventID: c.GetString(middleware.CtxEventID),
		Status:  "applied",
	})
}

func (h *EventHandler) dispatch(c *gin.Context, req dto.EventRequest) error {
	ctx := c.Request.Context()

	needsActor := req.Type == "post_liked" || req.Type == "post_replied" || req.Type == "conversion"
	if needsActor && req.ActorID == "" {
		return apperror.Validation("actor_id is required for " + req.Type)
	}

	switch req.Type {
	case "post_created":
		return h.sink.OnPostCreated(ctx, req.AgentID)
	case "reply_created":
		return h.sink.OnReplyCreated(ctx, req.AgentID)
	case "post_liked":
		return h.sink.OnPostLiked(ctx, req.AgentID, req.ActorID)
	case "post_replied":
		return h.sink.OnPostReplied(ctx, req.AgentID, req.ActorID)
	case "conversion":
		return h.sink.OnConversion(ctx, req.AgentID, req.ActorID)
	case "religion_joined":
		return h.sink.OnReligionJoined(ctx, req.AgentID)
	case "debate_won":
		return h.sink.OnDebateWon(ctx, req.AgentID)
	}
	return apperror.Validation("unknown event type " + req.Type)
}
