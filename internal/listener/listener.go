package listener

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"adsboard/internal/log"
	"adsboard/internal/storage"
)

// pollTimeoutSeconds is the long-poll timeout handed to getUpdates.
const pollTimeoutSeconds = 30

// UpdateSource is the slice of the Telegram client the listener needs.
type UpdateSource interface {
	Updates(offset int, timeoutSeconds int) ([]tgbotapi.Update, error)
}

// Listener long-polls Telegram and stores every group message. The update
// offset is persisted so a restart resumes where it stopped.
type Listener struct {
	repo     *storage.Repository
	source   UpdateSource
	loc      *time.Location
	interval time.Duration
	logger   *log.Logger
}

func New(repo *storage.Repository, source UpdateSource, loc *time.Location, interval time.Duration, logger *log.Logger) *Listener {
	return &Listener{
		repo:     repo,
		source:   source,
		loc:      loc,
		interval: interval,
		logger:   logger.WithComponent(log.ComponentListener),
	}
}

// Run polls until ctx is cancelled. Poll errors are logged and retried on
// the next tick; only ctx cancellation ends the loop.
func (l *Listener) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		if err := l.poll(ctx); err != nil {
			l.logger.WarnContext(ctx, "poll failed", log.FieldError, err.Error())
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *Listener) poll(ctx context.Context) error {
	last, err := l.repo.LastUpdateID(ctx)
	if err != nil {
		return err
	}

	updates, err := l.source.Updates(last+1, pollTimeoutSeconds)
	if err != nil {
		return err
	}

	for _, u := range updates {
		if u.Message != nil {
			rec := toRecord(u.Message, l.loc)
			stored, err := l.repo.SaveMessage(ctx, rec)
			if err != nil {
				l.logger.ErrorContext(ctx, "store message failed",
					log.FieldMessageID, rec.MessageID, log.FieldChatID, rec.ChatID, log.FieldError, err.Error())
				continue
			}
			if stored {
				l.logger.DebugContext(ctx, "message stored",
					log.FieldMessageID, rec.MessageID, log.FieldChatID, rec.ChatID, "type", rec.Type)
			}
		}
		if u.UpdateID > last {
			last = u.UpdateID
		}
	}

	if len(updates) > 0 {
		if err := l.repo.SetLastUpdateID(ctx, last); err != nil {
			return err
		}
	}
	return nil
}

// MinuteInLocation returns the minute-of-hour of a unix timestamp in loc,
// the accessor ScoreDay expects.
func MinuteInLocation(loc *time.Location) func(int64) int {
	return func(unix int64) int {
		return time.Unix(unix, 0).In(loc).Minute()
	}
}
