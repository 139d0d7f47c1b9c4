// Package notify pushes high-severity report alerts to an operations
// Telegram chat. Purely best-effort: failures are logged, never
// surfaced to the reporter.
package notify

import (
	"fmt"
	"log"

	"crimewatch/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends alert messages through a bot.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates the notifier for a bot token and target
// chat.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	log.Printf("INFO: Telegram alert bot authorized as %s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// HighSeverityReport alerts the ops chat about a newly filed report at
// or above the alert threshold.
func (n *TelegramNotifier) HighSeverityReport(report *models.CrimeReport) {
	text := fmt.Sprintf(
		"🚨 High-severity report %s\nCategory: %s\nSeverity: %d/5\nPincode: %s",
		report.ComplaintID, report.Category, report.Severity, report.Pincode,
	)

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send telegram alert for %s: %v", report.ComplaintID, err)
	}
}
