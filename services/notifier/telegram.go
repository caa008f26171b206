package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Kenzousimba/IphoneVintedbot/pkg/errors"
)

const defaultAPIBase = "https://api.telegram.org"

// TelegramNotifier sends alerts through the Telegram bot sendMessage
// endpoint.
type TelegramNotifier struct {
	client  *http.Client
	apiBase string
	token   string
	chatID  string
}

// NewTelegramNotifier creates a notifier for the given bot token and target
// chat.
func NewTelegramNotifier(token, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiBase: defaultAPIBase,
		token:   token,
		chatID:  chatID,
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Notify posts the message to the configured chat. Link previews are
// suppressed so a burst of alerts stays readable.
func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                n.chatID,
		Text:                  text,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return errors.NewNotification("failed to encode message", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.NewNotification("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errors.NewNotification("failed to send message", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.NewNotification(fmt.Sprintf("sendMessage returned status %d", resp.StatusCode), nil)
	}

	return nil
}
