package limits

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkoval-dev/tenantcore/pkg/billing"
	"github.com/mkoval-dev/tenantcore/pkg/mailer"
)

// Notifier emails workspace owners when usage crosses a nudge
// threshold. Delivery failures are logged, never surfaced: a missed
// nudge must not fail the request that triggered it.
type Notifier struct {
	engine *Engine
	mail   mailer.Mailer
	log    *slog.Logger
}

// NewNotifier creates a usage-nudge notifier.
func NewNotifier(engine *Engine, mail mailer.Mailer, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{engine: engine, mail: mail, log: log}
}

// Notify checks the current usage of a resource and, when it sits in a
// nudge bucket, emails the given address. Returns the level observed.
func (n *Notifier) Notify(ctx context.Context, tenantID uuid.UUID, res billing.Resource, email string) Level {
	info, err := n.engine.Usage(ctx, tenantID, res)
	if err != nil {
		n.log.ErrorContext(ctx, "usage lookup for nudge failed",
			slog.String("tenant_id", tenantID.String()),
			slog.Any("error", err))
		return LevelNone
	}

	level := info.NudgeLevel()
	if level == LevelNone {
		return level
	}

	msg := mailer.Message{
		To:       email,
		Subject:  nudgeSubject(level, res),
		BodyHTML: nudgeBody(level, res, info),
		Tag:      "usage-nudge",
	}
	if err := n.mail.Send(ctx, msg); err != nil {
		n.log.ErrorContext(ctx, "nudge email failed",
			slog.String("tenant_id", tenantID.String()),
			slog.String("level", string(level)),
			slog.Any("error", err))
	}
	return level
}

func nudgeSubject(level Level, res billing.Resource) string {
	switch level {
	case LevelLimit:
		return fmt.Sprintf("You've reached your %s limit", res)
	case LevelCritical:
		return fmt.Sprintf("You're almost out of %s", res)
	default:
		return fmt.Sprintf("Heads up: %s usage is growing", res)
	}
}

func nudgeBody(level Level, res billing.Resource, info *UsageInfo) string {
	return fmt.Sprintf(
		"<p>Your workspace is using %d of %d %s (%d%%).</p><p>Upgrade your plan to raise the limit.</p>",
		info.Current, info.Limit, res, info.Percentage())
}
