package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"adsboard/internal/aggregate"
	"adsboard/internal/config"
	"adsboard/internal/log"
	"adsboard/internal/report"
	"adsboard/internal/worker"
)

// MessageSender is the slice of the Telegram client the reporter needs.
type MessageSender interface {
	SendHTML(text string) error
	SendDocument(path, caption string) error
}

// Reporter assembles and sends the scheduled KPI reports.
type Reporter struct {
	loader *Loader
	store  *report.Store
	sender MessageSender
	cfg    *config.Config
	logger *log.Logger
	now    func() time.Time
}

var _ worker.Jobs = (*Reporter)(nil)

func NewReporter(loader *Loader, store *report.Store, sender MessageSender, cfg *config.Config, logger *log.Logger) *Reporter {
	return &Reporter{
		loader: loader,
		store:  store,
		sender: sender,
		cfg:    cfg,
		logger: logger.WithComponent(log.ComponentReport),
		now:    time.Now,
	}
}

// SendRealtime sends the intraday KPI report and saves the snapshot the next
// run diffs against.
func (r *Reporter) SendRealtime(ctx context.Context) error {
	return r.sendReport(ctx, false)
}

// SendDaily sends the end-of-day report with the workbook export attached.
func (r *Reporter) SendDaily(ctx context.Context) error {
	return r.sendReport(ctx, true)
}

func (r *Reporter) sendReport(ctx context.Context, withWorkbook bool) error {
	records, day, ok := r.loader.LatestKPIDay(ctx)
	if !ok {
		r.logger.WarnContext(ctx, "no KPI data, skipping report")
		return nil
	}

	snap := report.BuildSnapshot(day, records)
	prev, err := r.store.Load()
	if err != nil {
		r.logger.WarnContext(ctx, "snapshot load failed, reporting without deltas", log.FieldError, err.Error())
	}
	deltas := report.Compare(prev, snap)

	msg := report.FormatReport(day, r.now().In(r.cfg.Location()), records, deltas,
		r.cfg.LowSpendThreshold, r.cfg.Mentions)
	for _, chunk := range report.Chunk(msg) {
		if err := r.sender.SendHTML(chunk); err != nil {
			return fmt.Errorf("send report: %w", err)
		}
	}

	if withWorkbook {
		if err := r.sendWorkbook(ctx, day); err != nil {
			// The report text already went out; the attachment failing
			// should not abort the snapshot.
			r.logger.ErrorContext(ctx, "workbook send failed", log.FieldError, err.Error())
		}
	}

	if err := r.store.Save(snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	r.logger.InfoContext(ctx, "report sent", "date", snap.Date, "agents", len(snap.Agents))
	return nil
}

func (r *Reporter) sendWorkbook(ctx context.Context, day time.Time) error {
	channel := aggregate.Channel(r.loader.Channel(ctx), aggregate.ByDay)
	agents := aggregate.Agents(r.loader.KPI(ctx))

	path := filepath.Join(os.TempDir(), fmt.Sprintf("kpi-export-%s.xlsx", day.Format("2006-01-02")))
	if err := report.WriteWorkbook(path, channel, agents); err != nil {
		return err
	}
	defer os.Remove(path)

	caption := fmt.Sprintf("KPI export %s", day.Format("January 2, 2006"))
	return r.sender.SendDocument(path, caption)
}

// SendReminder sends the countdown notice before the daily report.
func (r *Reporter) SendReminder(ctx context.Context, minutesBefore int) error {
	msg := report.FormatReminder(minutesBefore, r.cfg.Mentions)
	if err := r.sender.SendHTML(msg); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	r.logger.InfoContext(ctx, "reminder sent", "minutes_before", minutesBefore)
	return nil
}
