package worker

import (
	"context"
	"testing"
	"time"

	"adsboard/internal/config"
	"adsboard/internal/log"
)

func testSchedule(t *testing.T) (*Schedule, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	cfg := config.Load()
	cfg.RealtimeSendTimes = []config.SendTime{{Hour: 9}, {Hour: 20, Minute: 30}}
	cfg.DailySendTime = config.SendTime{Hour: 14}
	cfg.ReminderOffsets = []int{60, 30, 15}
	return NewSchedule(cfg), loc
}

func TestScheduleDue(t *testing.T) {
	s, loc := testSchedule(t)

	tests := []struct {
		name string
		at   time.Time
		want []SlotKind
	}{
		{"realtime morning", time.Date(2025, 9, 21, 9, 0, 10, 0, loc), []SlotKind{SlotRealtime}},
		{"realtime evening", time.Date(2025, 9, 21, 20, 30, 0, 0, loc), []SlotKind{SlotRealtime}},
		{"daily", time.Date(2025, 9, 21, 14, 0, 0, 0, loc), []SlotKind{SlotDaily}},
		{"hour reminder", time.Date(2025, 9, 21, 13, 0, 0, 0, loc), []SlotKind{SlotReminder}},
		{"quarter reminder", time.Date(2025, 9, 21, 13, 45, 0, 0, loc), []SlotKind{SlotReminder}},
		{"quiet minute", time.Date(2025, 9, 21, 10, 17, 0, 0, loc), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Due(tt.at)
			if len(got) != len(tt.want) {
				t.Fatalf("Due = %+v, want kinds %v", got, tt.want)
			}
			for i, slot := range got {
				if slot.Kind != tt.want[i] {
					t.Errorf("slot %d kind = %s, want %s", i, slot.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestScheduleDueConvertsTimezone(t *testing.T) {
	s, loc := testSchedule(t)

	// 06:00 UTC is 14:00 in Manila.
	utc := time.Date(2025, 9, 21, 6, 0, 0, 0, time.UTC)
	got := s.Due(utc)
	if len(got) != 1 || got[0].Kind != SlotDaily {
		t.Errorf("Due(utc) = %+v", got)
	}
	_ = loc
}

func TestMinusMinutesWrapsMidnight(t *testing.T) {
	got := minusMinutes(config.SendTime{Hour: 0, Minute: 30}, 60)
	if got != (config.SendTime{Hour: 23, Minute: 30}) {
		t.Errorf("minusMinutes = %v", got)
	}
}

type fakeJobs struct {
	realtime  int
	daily     int
	reminders []int
}

func (f *fakeJobs) SendRealtime(context.Context) error { f.realtime++; return nil }
func (f *fakeJobs) SendDaily(context.Context) error    { f.daily++; return nil }
func (f *fakeJobs) SendReminder(_ context.Context, m int) error {
	f.reminders = append(f.reminders, m)
	return nil
}

func TestRunnerFiresOncePerMinute(t *testing.T) {
	s, loc := testSchedule(t)
	jobs := &fakeJobs{}
	r := NewRunner(s, jobs, log.New(log.DefaultConfig()))
	ctx := context.Background()

	at := time.Date(2025, 9, 21, 9, 0, 5, 0, loc)
	r.Tick(ctx, at)
	r.Tick(ctx, at.Add(20*time.Second))
	r.Tick(ctx, at.Add(40*time.Second))

	if jobs.realtime != 1 {
		t.Errorf("realtime fired %d times, want 1", jobs.realtime)
	}

	// The same slot fires again on the next day.
	r.Tick(ctx, at.AddDate(0, 0, 1))
	if jobs.realtime != 2 {
		t.Errorf("realtime fired %d times across days, want 2", jobs.realtime)
	}
}

func TestRunnerReminderOffsets(t *testing.T) {
	s, loc := testSchedule(t)
	jobs := &fakeJobs{}
	r := NewRunner(s, jobs, log.New(log.DefaultConfig()))
	ctx := context.Background()

	r.Tick(ctx, time.Date(2025, 9, 21, 13, 0, 0, 0, loc))
	r.Tick(ctx, time.Date(2025, 9, 21, 13, 30, 0, 0, loc))
	r.Tick(ctx, time.Date(2025, 9, 21, 13, 45, 0, 0, loc))
	r.Tick(ctx, time.Date(2025, 9, 21, 14, 0, 0, 0, loc))

	if len(jobs.reminders) != 3 || jobs.reminders[0] != 60 || jobs.reminders[2] != 15 {
		t.Errorf("reminders = %v", jobs.reminders)
	}
	if jobs.daily != 1 {
		t.Errorf("daily fired %d times, want 1", jobs.daily)
	}
}
