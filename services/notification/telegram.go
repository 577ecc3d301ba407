package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// TelegramClient is a minimal Bot API client covering the single method the
// bot needs: sendMessage with an optional reply keyboard.
type TelegramClient struct {
	hc      *http.Client
	baseURL string
}

const telegramAPIBase = "https://api.telegram.org"

func NewTelegramClient(token string) *TelegramClient {
	return &TelegramClient{
		hc:      &http.Client{Timeout: 10 * time.Second},
		baseURL: fmt.Sprintf("%s/bot%s", telegramAPIBase, token),
	}
}

// NewTelegramClientWithBase is used by tests to point the client at a fake
// Bot API server.
func NewTelegramClientWithBase(token, base string) *TelegramClient {
	c := NewTelegramClient(token)
	c.baseURL = fmt.Sprintf("%s/bot%s", base, token)
	return c
}

type keyboardButton struct {
	Text string `json:"text"`
}

type replyKeyboardMarkup struct {
	Keyboard        [][]keyboardButton `json:"keyboard"`
	OneTimeKeyboard bool               `json:"one_time_keyboard"`
	ResizeKeyboard  bool               `json:"resize_keyboard"`
}

type replyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
}

type sendMessageRequest struct {
	ChatID      string `json:"chat_id"`
	Text        string `json:"text"`
	ReplyMarkup any    `json:"reply_markup,omitempty"`
}

// SendMessage delivers one message to a chat.
func (c *TelegramClient) SendMessage(ctx context.Context, chatID string, msg Message) error {
	req := sendMessageRequest{ChatID: chatID, Text: msg.Text}
	switch {
	case len(msg.Keyboard) > 0:
		markup := replyKeyboardMarkup{OneTimeKeyboard: true, ResizeKeyboard: true}
		for _, row := range msg.Keyboard {
			var buttons []keyboardButton
			for _, label := range row {
				buttons = append(buttons, keyboardButton{Text: label})
			}
			markup.Keyboard = append(markup.Keyboard, buttons)
		}
		req.ReplyMarkup = markup
	case msg.RemoveKeyboard:
		req.ReplyMarkup = replyKeyboardRemove{RemoveKeyboard: true}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode sendMessage: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sendMessage", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sendMessage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// The Bot API includes a description field on failures.
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var r struct {
			Description string `json:"description"`
		}
		_ = json.Unmarshal(raw, &r)
		if r.Description != "" {
			return fmt.Errorf("sendMessage failed: %s (status=%d)", r.Description, resp.StatusCode)
		}
		return fmt.Errorf("sendMessage failed (status=%d)", resp.StatusCode)
	}
	return nil
}

// SendToChat is SendMessage for numeric chat ids (the shared group).
func (c *TelegramClient) SendToChat(ctx context.Context, chatID int64, text string) error {
	return c.SendMessage(ctx, strconv.FormatInt(chatID, 10), Message{Text: text})
}
