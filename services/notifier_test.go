package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/config"
	"github.com/Dosada05/padel-tournament/metrics"
	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/scheduling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      []string
	subject string
	body    string
}

func scheduledPlacement(pairA, pairB *models.Pair) scheduling.Placement {
	return scheduling.Placement{
		Match: models.Match{
			ID: "m1", TournamentID: "t1", CategoryID: "c6", PairAID: "p1", PairBID: "p2",
			Day: "2025-05-10", StartTime: "09:30", CourtID: "court1", Status: models.MatchStatusScheduled,
		},
		Court: "Central",
		PairA: pairA,
		PairB: pairB,
	}
}

func TestHubNotifierPublishesToTournament(t *testing.T) {
	events := &fakeEvents{}
	pairA := &models.Pair{ID: "p1", Player1: "Ana", Player2: "Bea"}

	require.NoError(t, NewHubNotifier(events).NotifyMatchScheduled(context.Background(), scheduledPlacement(pairA, nil)))

	require.Len(t, events.events, 1)
	ev := events.events[0]
	assert.Equal(t, "t1", ev.tournamentID)
	assert.Equal(t, brackets.MessageMatchScheduled, ev.msgType)
	payload, ok := ev.payload.(MatchScheduledPayload)
	require.True(t, ok)
	assert.Equal(t, "Central", payload.Court)
	assert.Equal(t, "Ana / Bea", payload.PairA)
	assert.Equal(t, "TBD", payload.PairB)
}

func TestMultiNotifierJoinsErrors(t *testing.T) {
	m := metrics.New()
	ok := &recordingNotifier{}
	broken := &recordingNotifier{err: errors.New("smtp down")}
	n := NewMultiNotifier(m, discardLogger()).Add("websocket", ok).Add("email", broken)

	err := n.NotifyMatchScheduled(context.Background(), scheduledPlacement(nil, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
	assert.Equal(t, []string{"m1"}, ok.matches)
	assert.Equal(t, []string{"m1"}, broken.matches)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `padel_notifications_total{channel="email",outcome="error"} 1`)
	assert.Contains(t, body, `padel_notifications_total{channel="websocket",outcome="ok"} 1`)
}

func TestEmailNotifierMailsPairsWithAddress(t *testing.T) {
	var sent []sentMail
	n := NewEmailNotifier(&config.Config{PublicURL: "https://padel.example"})
	n.send = func(to []string, subject, body string) error {
		sent = append(sent, sentMail{to, subject, body})
		return nil
	}
	email := "ana@example.com"
	pairA := &models.Pair{ID: "p1", Player1: "Ana", Player2: "Bea", Email: &email}
	pairB := &models.Pair{ID: "p2", Player1: "Caro", Player2: "Dani"}

	require.NoError(t, n.NotifyMatchScheduled(context.Background(), scheduledPlacement(pairA, pairB)))

	require.Len(t, sent, 1)
	assert.Equal(t, []string{"ana@example.com"}, sent[0].to)
	assert.Equal(t, "Partido programado: 2025-05-10 09:30", sent[0].subject)
	assert.Contains(t, sent[0].body, "Caro / Dani")
	assert.Contains(t, sent[0].body, "Cancha: Central")
	assert.NotContains(t, sent[0].body, "court1")
	assert.Contains(t, sent[0].body, "https://padel.example/public/tournaments/t1/schedule?day=2025-05-10")
}

func TestEmailNotifierReportsSendFailure(t *testing.T) {
	n := NewEmailNotifier(&config.Config{})
	n.send = func([]string, string, string) error { return errors.New("connection refused") }
	email := "caro@example.com"

	err := n.NotifyMatchScheduled(context.Background(), scheduledPlacement(nil, &models.Pair{ID: "p2", Player1: "Caro", Email: &email}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
