package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shorttrack/internal/config"
)

const userAgent = "Shorttrack-Go/0.1.0"

// Event identifies a notifiable moment in the production pipeline.
type Event string

const (
	EventAssigned            Event = "assigned"
	EventCompleted           Event = "completed"
	EventValidated           Event = "validated"
	EventRejected            Event = "rejected"
	EventPublished           Event = "published"
	EventDeadlineApproaching Event = "deadline_approaching"
	EventError               Event = "error"
	EventTest                Event = "test"
)

// Payload carries the event-specific fields the formatter reads. Unknown
// keys are ignored.
type Payload map[string]string

// Service defines the notification surface exposed to the tracker.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		enabled: map[Event]bool{
			EventAssigned:            cfg.Notifications.Assigned,
			EventCompleted:           cfg.Notifications.Completed,
			EventValidated:           cfg.Notifications.Validated,
			EventRejected:            cfg.Notifications.Rejected,
			EventPublished:           cfg.Notifications.Published,
			EventDeadlineApproaching: cfg.Notifications.Deadlines,
			EventError:               cfg.Notifications.Errors,
			EventTest:                true,
		},
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	enabled  map[Event]bool
}

// Publish formats and sends the event. Events disabled in configuration are
// dropped silently.
func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	if !n.enabled[event] {
		return nil
	}
	data, ok := format(event, payload)
	if !ok {
		return fmt.Errorf("unknown notification event %q", event)
	}
	return n.send(ctx, data)
}

func format(event Event, payload Payload) (message, bool) {
	get := func(key string) string {
		return strings.TrimSpace(payload[key])
	}
	title := get("title")

	switch event {
	case EventAssigned:
		body := fmt.Sprintf("🎬 New assignment: %s → %s", title, get("channel"))
		if deadline := get("deadline"); deadline != "" {
			body = fmt.Sprintf("%s\nDue: %s", body, deadline)
		}
		return message{
			title: "Shorttrack - Assigned",
			body:  body,
			tags:  []string{"shorttrack", "assign"},
		}, true
	case EventCompleted:
		return message{
			title: "Shorttrack - Ready for Review",
			body:  fmt.Sprintf("✅ Upload ready for review: %s", title),
			tags:  []string{"shorttrack", "review", "pending"},
		}, true
	case EventValidated:
		return message{
			title: "Shorttrack - Validated",
			body:  fmt.Sprintf("👍 Validated: %s", title),
			tags:  []string{"shorttrack", "review", "validated"},
		}, true
	case EventRejected:
		body := fmt.Sprintf("❌ Rejected: %s", title)
		if feedback := get("feedback"); feedback != "" {
			body = fmt.Sprintf("%s\nFeedback: %s", body, feedback)
		}
		return message{
			title:    "Shorttrack - Rejected",
			body:     body,
			tags:     []string{"shorttrack", "review", "rejected"},
			priority: "high",
		}, true
	case EventPublished:
		return message{
			title: "Shorttrack - Published",
			body:  fmt.Sprintf("🚀 Published: %s", title),
			tags:  []string{"shorttrack", "published"},
		}, true
	case EventDeadlineApproaching:
		return message{
			title:    "Shorttrack - Deadline Approaching",
			body:     fmt.Sprintf("⏰ Deadline approaching: %s\nDue: %s", title, get("deadline")),
			tags:     []string{"shorttrack", "deadline"},
			priority: "high",
		}, true
	case EventError:
		body := "❌ Error"
		if contextLabel := get("context"); contextLabel != "" {
			body += " with " + contextLabel
		}
		detail := get("error")
		if detail == "" {
			detail = "unknown"
		}
		return message{
			title:    "Shorttrack - Error",
			body:     body + ": " + detail,
			tags:     []string{"shorttrack", "error", "alert"},
			priority: "high",
		}, true
	case EventTest:
		return message{
			title:    "Shorttrack - Test",
			body:     "🧪 Notification system test",
			tags:     []string{"shorttrack", "test"},
			priority: "low",
		}, true
	default:
		return message{}, false
	}
}

func (n *ntfyService) send(ctx context.Context, data message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
