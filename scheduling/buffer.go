package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
)

var ErrUnknownMatch = errors.New("match not found for buffered change")

// Change is an edit to one match's placement. Nil fields keep the stored value.
type Change struct {
	MatchID   string  `json:"match_id"`
	Day       *string `json:"day,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	CourtID   *string `json:"court_id,omitempty"`
}

func (c Change) merge(next Change) Change {
	if next.Day != nil {
		c.Day = next.Day
	}
	if next.StartTime != nil {
		c.StartTime = next.StartTime
	}
	if next.CourtID != nil {
		c.CourtID = next.CourtID
	}
	return c
}

// Apply returns m with the change's fields written over it.
func (c Change) Apply(m models.Match) models.Match {
	if c.Day != nil {
		m.Day = *c.Day
	}
	if c.StartTime != nil {
		m.StartTime = *c.StartTime
	}
	if c.CourtID != nil {
		m.CourtID = *c.CourtID
	}
	return m
}

// ChangeBuffer collects the edits of one save and flushes them as one write per
// match, in the order each match was first touched. It is built per request and
// is not safe for concurrent use.
type ChangeBuffer struct {
	order   []string
	changes map[string]Change
}

func NewChangeBuffer() *ChangeBuffer {
	return &ChangeBuffer{changes: make(map[string]Change)}
}

// Stage merges c into any edit already buffered for the same match.
func (b *ChangeBuffer) Stage(c Change) {
	prev, ok := b.changes[c.MatchID]
	if !ok {
		b.order = append(b.order, c.MatchID)
		prev = Change{MatchID: c.MatchID}
	}
	b.changes[c.MatchID] = prev.merge(c)
}

func (b *ChangeBuffer) Len() int {
	return len(b.order)
}

// Flush writes buffered changes one at a time. lookup supplies the stored match
// so untouched fields are rewritten as they are. The first failure stops the
// flush: the matches written before it are returned with the error and nothing
// after it is attempted.
func (b *ChangeBuffer) Flush(ctx context.Context, writer MatchScheduleWriter, lookup func(matchID string) (models.Match, bool)) ([]models.Match, error) {
	written := make([]models.Match, 0, len(b.order))
	for _, id := range b.order {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		current, ok := lookup(id)
		if !ok {
			return written, fmt.Errorf("%w: %s", ErrUnknownMatch, id)
		}
		updated := b.changes[id].Apply(current)
		if err := writer.UpdateMatchSchedule(ctx, id, updated.Day, updated.StartTime, updated.CourtID); err != nil {
			return written, fmt.Errorf("failed to flush change for match %s: %w", id, err)
		}
		written = append(written, updated)
	}
	return written, nil
}
