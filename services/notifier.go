package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/metrics"
	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/scheduling"
)

type MatchScheduledPayload struct {
	Match models.Match `json:"match"`
	Court string       `json:"court"`
	PairA string       `json:"pair_a"`
	PairB string       `json:"pair_b"`
}

// HubNotifier pushes MATCH_SCHEDULED to the tournament room.
type HubNotifier struct {
	events EventPublisher
}

func NewHubNotifier(events EventPublisher) *HubNotifier {
	return &HubNotifier{events: events}
}

func (n *HubNotifier) NotifyMatchScheduled(_ context.Context, p scheduling.Placement) error {
	n.events.Publish(p.Match.TournamentID, brackets.MessageMatchScheduled, MatchScheduledPayload{
		Match: p.Match,
		Court: p.Court,
		PairA: p.PairA.DisplayName(),
		PairB: p.PairB.DisplayName(),
	})
	return nil
}

type namedNotifier struct {
	channel  string
	notifier scheduling.Notifier
}

// MultiNotifier fans out to every channel and joins their errors.
type MultiNotifier struct {
	channels []namedNotifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewMultiNotifier(m *metrics.Metrics, logger *slog.Logger) *MultiNotifier {
	return &MultiNotifier{metrics: m, logger: logger}
}

// Add registers a channel under a name used in logs and metrics.
func (n *MultiNotifier) Add(channel string, notifier scheduling.Notifier) *MultiNotifier {
	n.channels = append(n.channels, namedNotifier{channel: channel, notifier: notifier})
	return n
}

func (n *MultiNotifier) NotifyMatchScheduled(ctx context.Context, p scheduling.Placement) error {
	var errs []error
	for _, c := range n.channels {
		outcome := "ok"
		if err := c.notifier.NotifyMatchScheduled(ctx, p); err != nil {
			outcome = "error"
			n.logger.WarnContext(ctx, "notification channel failed",
				slog.String("channel", c.channel), slog.String("match_id", p.Match.ID), slog.Any("error", err))
			errs = append(errs, err)
		}
		if n.metrics != nil {
			n.metrics.Notifications.WithLabelValues(c.channel, outcome).Inc()
		}
	}
	return errors.Join(errs...)
}
