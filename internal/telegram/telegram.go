// Package telegram wraps the Bot API client used by the report sender and
// the chat listener.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client sends messages and documents to one chat and polls updates for the
// listener.
type Client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func New(token string, chatID int64) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return &Client{bot: bot, chatID: chatID}, nil
}

// Username returns the bot's own username.
func (c *Client) Username() string {
	return c.bot.Self.UserName
}

// SendHTML sends one HTML-formatted message to the configured chat.
func (c *Client) SendHTML(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendDocument uploads a file to the configured chat.
func (c *Client) SendDocument(path, caption string) error {
	doc := tgbotapi.NewDocument(c.chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	if _, err := c.bot.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// SendPhoto uploads an image to the configured chat.
func (c *Client) SendPhoto(path, caption string) error {
	photo := tgbotapi.NewPhoto(c.chatID, tgbotapi.FilePath(path))
	photo.Caption = caption
	if _, err := c.bot.Send(photo); err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

// Updates long-polls for new messages after offset. The listener persists
// the offset itself, so the plain GetUpdates call is used instead of the
// library's channel helper.
func (c *Client) Updates(offset int, timeoutSeconds int) ([]tgbotapi.Update, error) {
	u := tgbotapi.UpdateConfig{
		Offset:         offset,
		Timeout:        timeoutSeconds,
		AllowedUpdates: []string{"message"},
	}
	updates, err := c.bot.GetUpdates(u)
	if err != nil {
		return nil, fmt.Errorf("get updates: %w", err)
	}
	return updates, nil
}
