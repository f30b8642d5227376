package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AuditConsumer reads shift events from the queue and appends one line per
// event to an audit log file.
type AuditConsumer struct {
	URL     string
	Queue   string
	LogPath string
	Logger  *slog.Logger
}

// Run connects to the broker and consumes until ctx is cancelled.  Lost
// connections are retried with exponential backoff capped at 30s.
func (c *AuditConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Logger.WarnContext(ctx, "audit consumer could not dial broker", slog.Any("error", err), slog.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Logger.WarnContext(ctx, "audit consumer loop ended, reconnecting", slog.Any("error", err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *AuditConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "channel open")
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Logger.WarnContext(ctx, "audit consumer could not set QoS", slog.Any("error", err))
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return errors.Wrap(err, "queue declare")
	}
	msgs, err := ch.ConsumeWithContext(ctx, c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "queue consume")
	}

	for d := range msgs {
		if err := c.HandleMessage(d.Body); err != nil {
			c.Logger.ErrorContext(ctx, "audit consumer could not handle message", slog.Any("error", err))
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// HandleMessage decodes one event and appends it to the audit log.
func (c *AuditConsumer) HandleMessage(body []byte) error {
	var ev ShiftEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return errors.Wrap(err, "unmarshal")
	}
	if ev.Type == "" {
		return errors.New("event without type")
	}
	if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
		return errors.Wrap(err, "mkdir audit log dir")
	}
	f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open audit log")
	}
	defer f.Close()

	if _, err := f.WriteString(FormatAuditLine(ev)); err != nil {
		return errors.Wrap(err, "write audit log")
	}
	return nil
}

// FormatAuditLine renders ev as a single human-readable line.
func FormatAuditLine(ev ShiftEvent) string {
	if ev.Type == EmployeeDeleted {
		removed := make([]string, 0, len(ev.RemovedShiftIDs))
		for _, id := range ev.RemovedShiftIDs {
			removed = append(removed, fmt.Sprint(id))
		}
		return fmt.Sprintf("[%s] %s | employee_id=%d | removed_shifts=[%s]\n",
			ev.OccurredAt, ev.Type, ev.EmployeeID, strings.Join(removed, ","))
	}
	return fmt.Sprintf("[%s] %s | shift_id=%d | employee_id=%d | date=%s | shift=%s | %s -> %s\n",
		ev.OccurredAt, ev.Type, ev.ShiftID, ev.EmployeeID, ev.ShiftDate, ev.ShiftType, ev.StartTime, ev.EndTime)
}
