// Package listener records every message of the team group chat and scores
// the agents' daily reporting discipline from it.
package listener

import (
	"encoding/json"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"adsboard/internal/storage"
)

// classify buckets a message into the coarse types the activity queries
// group by.
func classify(m *tgbotapi.Message) string {
	switch {
	case m.Text != "":
		return "text"
	case m.Photo != nil:
		return "photo"
	case m.Document != nil:
		return "document"
	case m.Sticker != nil:
		return "sticker"
	case m.Video != nil:
		return "video"
	case m.Voice != nil:
		return "voice"
	case m.Audio != nil:
		return "audio"
	case m.Animation != nil:
		return "animation"
	case m.NewChatMembers != nil:
		return "new_member"
	case m.LeftChatMember != nil:
		return "left_member"
	case m.PinnedMessage != nil:
		return "pinned"
	default:
		return "other"
	}
}

// extractText returns the searchable text of a message: the text itself, the
// caption of media, or a bracket label for content with neither.
func extractText(m *tgbotapi.Message) string {
	if m.Text != "" {
		return m.Text
	}
	if m.Caption != "" {
		return m.Caption
	}
	switch classify(m) {
	case "photo":
		return "[Photo]"
	case "document":
		return "[Document]"
	case "sticker":
		return "[Sticker]"
	case "video":
		return "[Video]"
	case "voice":
		return "[Voice]"
	case "audio":
		return "[Audio]"
	case "animation":
		return "[Animation]"
	default:
		return ""
	}
}

// toRecord converts a Telegram message to its stored form. loc supplies the
// local date bucket.
func toRecord(m *tgbotapi.Message, loc *time.Location) storage.Message {
	rec := storage.Message{
		MessageID: m.MessageID,
		ChatID:    m.Chat.ID,
		Date:      int64(m.Date),
		DatePH:    time.Unix(int64(m.Date), 0).In(loc).Format("2006-01-02"),
		Text:      extractText(m),
		Type:      classify(m),
	}
	if m.From != nil {
		rec.UserID = m.From.ID
		rec.Username = m.From.UserName
		rec.FirstName = m.From.FirstName
		rec.LastName = m.From.LastName
	}
	if m.ReplyToMessage != nil {
		rec.ReplyTo = m.ReplyToMessage.MessageID
	}
	if raw, err := json.Marshal(m); err == nil {
		rec.RawJSON = string(raw)
	}
	return rec
}
