package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// notifyRetryIntervals are the waits between delivery attempts.
var notifyRetryIntervals = []time.Duration{
	5 * time.Second,
	30 * time.Second,
	2 * time.Minute,
}

// Webhook event types.
const (
	EventAgentNotification = "AGENT_NOTIFICATION"
	EventPublicNotice      = "PUBLIC_NOTICE"
)

// Delivery headers. The signature covers CanonicalEvent(timestamp, delivery id, body).
const (
	HeaderSignature  = "X-Signature"
	HeaderTimestamp  = "X-Timestamp"
	HeaderDeliveryID = "X-Delivery-ID"
)

// WebhookPayload is the JSON body posted to the messaging webhook.
type WebhookPayload struct {
	EventType string             `json:"event_type"`
	Data      WebhookPayloadData `json:"data"`
}

// WebhookPayloadData carries the message for one agent.
type WebhookPayloadData struct {
	AgentID   string `json:"agent_id"`
	Kind      string `json:"kind,omitempty"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookNotifier implements ports.Notifier and ports.FeedPublisher by
// posting signed payloads to the messaging webhook. Delivery is
// asynchronous and retried; an empty URL disables it.
type WebhookNotifier struct {
	url        string
	secret     string
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	intervals  []time.Duration
	metrics    *metrics.Metrics
	log        zerolog.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup
}

// NewWebhookNotifier creates a new WebhookNotifier.
func NewWebhookNotifier(
	url string,
	secret string,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	m *metrics.Metrics,
	log zerolog.Logger,
) *WebhookNotifier {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebhookNotifier{
		url:        url,
		secret:     secret,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		intervals:  notifyRetryIntervals,
		metrics:    m,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Notify sends a direct message to an agent.
func (n *WebhookNotifier) Notify(ctx context.Context, msg domain.Notification) error {
	ts := msg.CreatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return n.enqueue(string(msg.Kind), WebhookPayload{
		EventType: EventAgentNotification,
		Data: WebhookPayloadData{
			AgentID:   msg.AgentID,
			Kind:      string(msg.Kind),
			Message:   msg.Message,
			Timestamp: ts.Unix(),
		},
	})
}

// PublishNotice posts a public notice about an agent on the feed.
func (n *WebhookNotifier) PublishNotice(ctx context.Context, agentID string, message string) error {
	return n.enqueue("public_notice", WebhookPayload{
		EventType: EventPublicNotice,
		Data: WebhookPayloadData{
			AgentID:   agentID,
			Message:   message,
			Timestamp: time.Now().Unix(),
		},
	})
}

func (n *WebhookNotifier) enqueue(kind string, payload WebhookPayload) error {
	if n.url == "" {
		n.log.Debug().Str("agent_id", payload.Data.AgentID).Str("kind", kind).Msg("notify: no webhook URL configured, skipping")
		return nil
	}
	if n.ctx.Err() != nil {
		return fmt.Errorf("notifier closed")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		err := n.deliverWithRetries(body, payload.Data.AgentID)
		n.metrics.ObserveNotification(kind, err)
	}()
	return nil
}

// deliverWithRetries posts body until a 2xx response, the retry schedule
// runs out or the notifier is closed.
func (n *WebhookNotifier) deliverWithRetries(body []byte, agentID string) error {
	deliveryID := uuid.NewString()
	var lastErr error

	for attempt := 0; attempt <= len(n.intervals); attempt++ {
		if attempt > 0 {
			select {
			case <-n.ctx.Done():
				return n.ctx.Err()
			case <-time.After(n.intervals[attempt-1]):
			}
		}

		status, err := n.post(body, deliveryID)
		if err == nil && status >= 200 && status < 300 {
			n.log.Debug().Str("agent_id", agentID).Str("delivery_id", deliveryID).Int("attempt", attempt+1).Msg("notify: delivered")
			return nil
		}
		if err == nil {
			err = fmt.Errorf("webhook responded %d", status)
		}
		lastErr = err
		n.log.Warn().Err(err).Str("agent_id", agentID).Int("attempt", attempt+1).Msg("notify: delivery failed")
	}

	n.log.Error().Err(lastErr).Str("agent_id", agentID).Str("delivery_id", deliveryID).Msg("notify: all retry attempts exhausted")
	return lastErr
}

func (n *WebhookNotifier) post(body []byte, deliveryID string) (int, error) {
	req, err := http.NewRequestWithContext(n.ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	ts := time.Now().Unix()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(HeaderDeliveryID, deliveryID)
	req.Header.Set(HeaderSignature, n.sigSvc.Sign(n.secret, CanonicalEvent(ts, deliveryID, string(body))))

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// Close stops pending retries and waits for in-flight deliveries.
func (n *WebhookNotifier) Close() {
	n.cancel()
	n.inflight.Wait()
}

// Wait blocks until every delivery started so far has finished.
func (n *WebhookNotifier) Wait() {
	n.inflight.Wait()
}
