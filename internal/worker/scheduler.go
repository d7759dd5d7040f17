// Package worker schedules the Telegram sends: intraday reports at fixed
// wall-clock times, the daily report, and the countdown reminders before it.
package worker

import (
	"context"
	"fmt"
	"time"

	"adsboard/internal/config"
	"adsboard/internal/log"
)

// SlotKind names what a matched minute should trigger.
type SlotKind string

const (
	SlotRealtime SlotKind = "realtime"
	SlotDaily    SlotKind = "daily"
	SlotReminder SlotKind = "reminder"
)

// Slot is one scheduled action at a specific minute. MinutesBefore is set
// only for reminders.
type Slot struct {
	Kind          SlotKind
	At            config.SendTime
	MinutesBefore int
}

// Schedule resolves the configured send times into the full minute table,
// including the reminder minutes derived from the daily send time.
type Schedule struct {
	slots []Slot
	loc   *time.Location
}

func NewSchedule(cfg *config.Config) *Schedule {
	s := &Schedule{loc: cfg.Location()}
	for _, t := range cfg.RealtimeSendTimes {
		s.slots = append(s.slots, Slot{Kind: SlotRealtime, At: t})
	}
	s.slots = append(s.slots, Slot{Kind: SlotDaily, At: cfg.DailySendTime})
	for _, offset := range cfg.ReminderOffsets {
		s.slots = append(s.slots, Slot{
			Kind:          SlotReminder,
			At:            minusMinutes(cfg.DailySendTime, offset),
			MinutesBefore: offset,
		})
	}
	return s
}

func minusMinutes(t config.SendTime, offset int) config.SendTime {
	total := t.Hour*60 + t.Minute - offset
	for total < 0 {
		total += 24 * 60
	}
	return config.SendTime{Hour: total / 60 % 24, Minute: total % 60}
}

// Due returns the slots matching now's wall-clock minute in the schedule's
// timezone.
func (s *Schedule) Due(now time.Time) []Slot {
	local := now.In(s.loc)
	var out []Slot
	for _, slot := range s.slots {
		if slot.At.Hour == local.Hour() && slot.At.Minute == local.Minute() {
			out = append(out, slot)
		}
	}
	return out
}

// Jobs are the actions the scheduler can fire.
type Jobs interface {
	SendRealtime(ctx context.Context) error
	SendDaily(ctx context.Context) error
	SendReminder(ctx context.Context, minutesBefore int) error
}

// Runner drives a Schedule against the clock. Each slot fires at most once
// per minute.
type Runner struct {
	schedule *Schedule
	jobs     Jobs
	logger   *log.Logger

	lastFired map[string]string // slot key -> yyyy-mm-dd hh:mm it last fired
}

func NewRunner(schedule *Schedule, jobs Jobs, logger *log.Logger) *Runner {
	return &Runner{
		schedule:  schedule,
		jobs:      jobs,
		logger:    logger.WithComponent(log.ComponentScheduler),
		lastFired: make(map[string]string),
	}
}

// Run ticks until ctx is cancelled. The tick is shorter than a minute so no
// slot minute is skipped under clock drift.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(20 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			r.Tick(ctx, now)
		}
	}
}

// Tick fires every due slot that has not already fired this minute.
func (r *Runner) Tick(ctx context.Context, now time.Time) {
	minute := now.In(r.schedule.loc).Format("2006-01-02 15:04")
	for _, slot := range r.schedule.Due(now) {
		key := fmt.Sprintf("%s@%s", slot.Kind, slot.At)
		if r.lastFired[key] == minute {
			continue
		}
		r.lastFired[key] = minute

		var err error
		switch slot.Kind {
		case SlotRealtime:
			err = r.jobs.SendRealtime(ctx)
		case SlotDaily:
			err = r.jobs.SendDaily(ctx)
		case SlotReminder:
			err = r.jobs.SendReminder(ctx, slot.MinutesBefore)
		}
		if err != nil {
			r.logger.ErrorContext(ctx, "scheduled send failed",
				log.FieldReportKind, string(slot.Kind), "slot", slot.At.String(), log.FieldError, err.Error())
			continue
		}
		r.logger.InfoContext(ctx, "scheduled send completed",
			log.FieldReportKind, string(slot.Kind), "slot", slot.At.String())
	}
}
