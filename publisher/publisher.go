package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/padel-tournament/services"
	"github.com/Dosada05/padel-tournament/storage"
	"github.com/robfig/cron/v3"
)

const publishTimeout = 2 * time.Minute

type ScheduleSource interface {
	PublicSchedule(ctx context.Context, tournamentID, day string) (*services.PublicSchedule, error)
}

type Config struct {
	CronSpec    string
	Tournaments []string
}

// Publisher periodically uploads the public schedule of each configured
// tournament as a JSON object.
type Publisher struct {
	c        *cron.Cron
	config   Config
	source   ScheduleSource
	uploader storage.FileUploader
	logger   *slog.Logger
}

func New(cfg Config, source ScheduleSource, uploader storage.FileUploader, logger *slog.Logger) (*Publisher, error) {
	p := &Publisher{
		c:        cron.New(),
		config:   cfg,
		source:   source,
		uploader: uploader,
		logger:   logger,
	}
	_, err := p.c.AddFunc(cfg.CronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.PublishAll(ctx); err != nil {
			p.logger.Error("schedule snapshot run failed", slog.Any("error", err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot cron spec %q: %w", cfg.CronSpec, err)
	}
	return p, nil
}

// SnapshotKey is the object key a tournament's schedule is stored under.
func SnapshotKey(tournamentID string) string {
	return "schedules/" + tournamentID + ".json"
}

// PublishAll uploads every configured tournament. One failing tournament does
// not stop the others.
func (p *Publisher) PublishAll(ctx context.Context) error {
	var errs []error
	for _, id := range p.config.Tournaments {
		res, err := p.Publish(ctx, id)
		if err != nil {
			p.logger.WarnContext(ctx, "schedule snapshot failed",
				slog.String("tournament_id", id), slog.Any("error", err))
			errs = append(errs, err)
			continue
		}
		p.logger.InfoContext(ctx, "schedule snapshot uploaded",
			slog.String("tournament_id", id), slog.String("location", res.Location))
	}
	return errors.Join(errs...)
}

func (p *Publisher) Publish(ctx context.Context, tournamentID string) (*storage.UploadResult, error) {
	schedule, err := p.source.PublicSchedule(ctx, tournamentID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule of tournament %s: %w", tournamentID, err)
	}
	body, err := json.Marshal(schedule)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schedule of tournament %s: %w", tournamentID, err)
	}
	res, err := p.uploader.Upload(ctx, SnapshotKey(tournamentID), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to upload schedule of tournament %s: %w", tournamentID, err)
	}
	return res, nil
}

func (p *Publisher) Start() {
	p.logger.Info("starting schedule snapshot publisher",
		slog.String("cron", p.config.CronSpec), slog.Int("tournaments", len(p.config.Tournaments)))
	p.c.Start()
}

// Stop halts the cron and returns a context that is done once a running job finishes.
func (p *Publisher) Stop() context.Context {
	return p.c.Stop()
}
