package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/Dosada05/padel-tournament/config"
	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/scheduling"
)

var matchScheduledTemplate = template.Must(template.New("match_scheduled").Parse(`<p>Hola {{.PairName}},</p>
<p>Tu partido contra <strong>{{.Opponent}}</strong> fue programado.</p>
<ul>
  <li>Día: {{.Day}}</li>
  <li>Hora: {{.StartTime}}</li>
  <li>Cancha: {{.Court}}</li>
</ul>
{{if .Link}}<p><a href="{{.Link}}">Ver el cronograma</a></p>{{end}}
`))

type matchScheduledEmail struct {
	PairName  string
	Opponent  string
	Day       string
	StartTime string
	Court     string
	Link      string
}

// mailSender delivers one message; tests replace it.
type mailSender func(to []string, subject, body string) error

// EmailNotifier mails both pairs when their match is placed.
type EmailNotifier struct {
	cfg  *config.Config
	send mailSender
}

func NewEmailNotifier(cfg *config.Config) *EmailNotifier {
	n := &EmailNotifier{cfg: cfg}
	n.send = n.sendSMTP
	return n
}

func (n *EmailNotifier) NotifyMatchScheduled(_ context.Context, p scheduling.Placement) error {
	match := p.Match
	link := ""
	if n.cfg.PublicURL != "" {
		link = fmt.Sprintf("%s/public/tournaments/%s/schedule?day=%s", n.cfg.PublicURL, match.TournamentID, match.Day)
	}

	var errs []string
	for _, side := range []struct{ self, opponent *models.Pair }{{p.PairA, p.PairB}, {p.PairB, p.PairA}} {
		if side.self == nil || side.self.Email == nil || *side.self.Email == "" {
			continue
		}
		var body bytes.Buffer
		err := matchScheduledTemplate.Execute(&body, matchScheduledEmail{
			PairName:  side.self.DisplayName(),
			Opponent:  side.opponent.DisplayName(),
			Day:       match.Day,
			StartTime: match.StartTime,
			Court:     p.Court,
			Link:      link,
		})
		if err != nil {
			return fmt.Errorf("failed to render match scheduled email: %w", err)
		}
		subject := fmt.Sprintf("Partido programado: %s %s", match.Day, match.StartTime)
		if err := n.send([]string{*side.self.Email}, subject, body.String()); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to email match %s: %s", match.ID, strings.Join(errs, "; "))
	}
	return nil
}

func (n *EmailNotifier) sendSMTP(to []string, subject string, body string) error {
	cfg := n.cfg
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)

	msg := []byte("To: " + strings.Join(to, ", ") + "\r\n" +
		"From: " + cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	tlsConfig := &tls.Config{ServerName: cfg.SMTPHost}

	var client *smtp.Client
	if cfg.SMTPPort == 465 {
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("smtp tls dial: %w", err)
		}
		client, err = smtp.NewClient(conn, cfg.SMTPHost)
		if err != nil {
			conn.Close()
			return fmt.Errorf("smtp client: %w", err)
		}
	} else {
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("smtp dial: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	defer client.Quit()

	if cfg.SMTPUser != "" {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(cfg.SMTPFrom); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp RCPT TO %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	return w.Close()
}
