package report

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xaenox/inbox-triage/internal/models"
	"go.uber.org/zap"
)

// TelegramNotifier delivers the category summary to a chat. Delivery is
// best-effort: failures are logged and never affect the rest of the run.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &TelegramNotifier{
		api:    api,
		chatID: chatID,
		logger: logger,
	}, nil
}

func (n *TelegramNotifier) SendSummary(grouping *models.Grouping) {
	text := fmt.Sprintf("*Unread email triage* \\(%d emails\\)\n", grouping.Len())
	for _, category := range grouping.Categories() {
		text += fmt.Sprintf("%s: %d\n", escapeMarkdown(category), len(grouping.Records(category)))
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "MarkdownV2"
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Error("Failed to send summary message",
			zap.Error(err),
			zap.Int64("chat_id", n.chatID))
	}
}

// escapeMarkdown escapes special characters for MarkdownV2.
func escapeMarkdown(text string) string {
	specialChars := []string{"_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!"}
	escaped := text
	for _, char := range specialChars {
		escaped = strings.ReplaceAll(escaped, char, "\\"+char)
	}
	return escaped
}
