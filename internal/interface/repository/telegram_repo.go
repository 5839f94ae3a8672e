package repository

import (
	"context"
	"fmt"
	"time"

	"farewatch-service/internal/domain/repository"
	"farewatch-service/pkg/logger"

	"github.com/go-resty/resty/v2"
)

// TelegramRepository delivers alert messages through the Telegram Bot API
type TelegramRepository struct {
	logger logger.Logger
	client *resty.Client
	token  string
}

// NewTelegramRepository creates a new Telegram messenger repository
func NewTelegramRepository(log logger.Logger, baseURL, token string) repository.MessengerRepository {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(30 * time.Second)

	return &TelegramRepository{
		logger: log,
		client: client,
		token:  token,
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type sendMessageResponse struct {
	Ok          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Send delivers one Markdown message to one chat. Link previews are
// disabled so the deep link does not expand into a page card.
func (r *TelegramRepository) Send(ctx context.Context, chatID string, text string) error {
	var result sendMessageResponse

	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(sendMessageRequest{
			ChatID:                chatID,
			Text:                  text,
			ParseMode:             "Markdown",
			DisableWebPagePreview: true,
		}).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/bot%s/sendMessage", r.token))
	if err != nil {
		return fmt.Errorf("failed to call telegram: %w", err)
	}

	if !resp.IsSuccess() || !result.Ok {
		return fmt.Errorf("telegram returned status %d: %s", resp.StatusCode(), result.Description)
	}

	r.logger.Debug("Message delivered", "chatId", chatID)
	return nil
}
