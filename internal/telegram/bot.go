package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-offer-scraper/internal/offer"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func (b *Bot) escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// SendOffer posts a scraped offer summary to the configured chat.
func (b *Bot) SendOffer(o offer.JobOffer) error {
	if o.Status != offer.StatusSuccess {
		msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ %s\n%s", o.InitialURL, o.ErrorDescription))
		_, err := b.api.Send(msg)
		return err
	}

	msgText := fmt.Sprintf("💼 *%s*\n", b.escapeMarkdown(o.Title))
	msgText += fmt.Sprintf("🏢 %s\n", b.escapeMarkdown(o.Company))
	msgText += fmt.Sprintf("🔗 [View Offer](%s)\n", o.URL)
	if o.Salary != nil {
		msgText += fmt.Sprintf("💰 %s\n", b.escapeMarkdown(*o.Salary))
	}
	if o.Location != nil {
		msgText += fmt.Sprintf("📍 %s\n", b.escapeMarkdown(*o.Location))
	}
	if o.WorkMode != nil {
		msgText += fmt.Sprintf("🏠 %s\n", b.escapeMarkdown(*o.WorkMode))
	}
	if o.ExperienceLevel != nil {
		msgText += fmt.Sprintf("📊 %s\n", b.escapeMarkdown(*o.ExperienceLevel))
	}
	msgText += fmt.Sprintf("🔖 Source: %s\n", b.escapeMarkdown(string(o.Source)))

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔗 View Offer", o.URL),
		),
	)

	msg := tgbotapi.NewMessage(b.chatID, msgText)
	msg.ParseMode = "MarkdownV2"
	msg.ReplyMarkup = keyboard

	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
