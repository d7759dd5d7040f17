package listener

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"adsboard/internal/log"
	"adsboard/internal/storage"
)

type fakeSource struct {
	updates []tgbotapi.Update
	offsets []int
}

func (f *fakeSource) Updates(offset, _ int) ([]tgbotapi.Update, error) {
	f.offsets = append(f.offsets, offset)
	out := f.updates
	f.updates = nil
	return out, nil
}

func textUpdate(updateID, messageID int, username, text string, date int64) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: updateID,
		Message: &tgbotapi.Message{
			MessageID: messageID,
			From:      &tgbotapi.User{ID: 42, UserName: username, FirstName: "Test"},
			Chat:      &tgbotapi.Chat{ID: -100123},
			Date:      int(date),
			Text:      text,
		},
	}
}

func TestPollStoresAndAdvancesOffset(t *testing.T) {
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "chatlog.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	defer repo.Close()

	date := time.Date(2025, time.September, 21, 14, 5, 0, 0, time.UTC).Unix()
	src := &fakeSource{updates: []tgbotapi.Update{
		textUpdate(100, 1, "adrian_ads", "daily report done", date),
		textUpdate(101, 2, "mika_ads", "ok", date+60),
	}}

	l := New(repo, src, time.UTC, time.Second, log.New(log.DefaultConfig()))
	ctx := context.Background()

	if err := l.poll(ctx); err != nil {
		t.Fatalf("poll: %v", err)
	}

	n, _ := repo.CountMessages(ctx)
	if n != 2 {
		t.Errorf("stored %d messages, want 2", n)
	}
	if last, _ := repo.LastUpdateID(ctx); last != 101 {
		t.Errorf("last update id = %d, want 101", last)
	}

	// The next poll must ask for updates after the stored offset.
	if err := l.poll(ctx); err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if got := src.offsets[len(src.offsets)-1]; got != 102 {
		t.Errorf("second poll offset = %d, want 102", got)
	}
}

func TestClassifyAndExtractText(t *testing.T) {
	tests := []struct {
		name     string
		msg      *tgbotapi.Message
		wantType string
		wantText string
	}{
		{"text", &tgbotapi.Message{Text: "hello"}, "text", "hello"},
		{"photo with caption", &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{}}, Caption: "screenshot"}, "photo", "screenshot"},
		{"photo bare", &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{}}}, "photo", "[Photo]"},
		{"sticker", &tgbotapi.Message{Sticker: &tgbotapi.Sticker{}}, "sticker", "[Sticker]"},
		{"document", &tgbotapi.Message{Document: &tgbotapi.Document{}}, "document", "[Document]"},
		{"member join", &tgbotapi.Message{NewChatMembers: []tgbotapi.User{{}}}, "new_member", ""},
		{"empty", &tgbotapi.Message{}, "other", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.msg); got != tt.wantType {
				t.Errorf("classify = %q, want %q", got, tt.wantType)
			}
			if got := extractText(tt.msg); got != tt.wantText {
				t.Errorf("extractText = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestScoreDay(t *testing.T) {
	mentions := map[string]string{
		"ADRIAN": "@adrian_ads",
		"MIKA":   "@mika_ads",
		"DER":    "@der_ads",
	}
	at := func(h, m int) int64 {
		return time.Date(2025, time.September, 21, h, m, 0, 0, time.UTC).Unix()
	}
	msgs := []storage.Message{
		{Username: "adrian_ads", Text: "KPI report 9am", Date: at(9, 5)},
		{Username: "adrian_ads", Text: "spend update", Date: at(13, 5)},
		{Username: "adrian_ads", Text: "lunch", Date: at(12, 50)},
		{Username: "mika_ads", Text: "report", Date: at(9, 40)},
		{Username: "der_ads", Text: "report", Date: at(9, 0)},
		{Username: "outsider", Text: "report", Date: at(9, 0)},
	}

	got := ScoreDay(msgs, mentions, []string{"DER"}, MinuteInLocation(time.UTC))
	if len(got) != 2 {
		t.Fatalf("scores = %+v", got)
	}

	adrian := got[0]
	if adrian.Agent != "ADRIAN" || adrian.Messages != 3 || adrian.ReportMessages != 2 {
		t.Errorf("adrian = %+v", adrian)
	}
	if adrian.AvgMinute != 5 || adrian.Score != 4 {
		t.Errorf("adrian punctuality = %+v", adrian)
	}

	mika := got[1]
	if mika.Agent != "MIKA" || mika.Score != 1 {
		t.Errorf("mika = %+v", mika)
	}
}

func TestPunctualityScore(t *testing.T) {
	tests := []struct {
		minute float64
		want   int
	}{
		{0, 4}, {14.9, 4}, {15, 3}, {24, 3}, {25, 2}, {34.5, 2}, {35, 1}, {59, 1},
	}
	for _, tt := range tests {
		if got := punctualityScore(tt.minute); got != tt.want {
			t.Errorf("punctualityScore(%v) = %d, want %d", tt.minute, got, tt.want)
		}
	}
}
