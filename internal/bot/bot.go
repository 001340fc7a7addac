package bot

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"movie-lookup-service/internal/config"
	"movie-lookup-service/internal/metrics"
	"movie-lookup-service/internal/service"
)

const maxMessageLen = 4000

// api is the subset of tgbotapi.BotAPI the bot uses.
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot is the Telegram front end. It shares the lookup and user
// services with the web front end; the chat id doubles as the
// registry user id.
type Bot struct {
	api     api
	lookup  *service.LookupService
	users   *service.UserService
	adminID int64
	log     *slog.Logger
}

// New creates the bot from the configured token.
func New(cfg config.TelegramConfig, lookup *service.LookupService, users *service.UserService, log *slog.Logger) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	botAPI.Client = &http.Client{Timeout: 30 * time.Second}

	return &Bot{
		api:     botAPI,
		lookup:  lookup,
		users:   users,
		adminID: cfg.AdminID,
		log:     log,
	}, nil
}

// Run consumes the update channel until Stop is called.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		b.handleUpdate(ctx, update)
	}
}

// Stop shuts down the update channel.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)

	case update.Message == nil:
		return

	case update.Message.IsCommand():
		b.handleCommand(ctx, update.Message.Chat.ID, update.Message.Command(),
			update.Message.CommandArguments())

	default:
		b.handleSearch(ctx, update.Message.Chat.ID, strings.TrimSpace(update.Message.Text))
	}
}

// sendText sends a plain message, truncating overlong text.
func (b *Bot) sendText(chatID int64, text string) error {
	if len(text) > maxMessageLen {
		text = text[:maxMessageLen] + "..."
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	if err != nil {
		b.log.Error("failed to send message", "chat_id", chatID, "error", err)
		return err
	}
	metrics.MessagesSent.WithLabelValues("text").Inc()
	return nil
}

func (b *Bot) answerCallback(callbackID, text string) {
	cb := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(cb); err != nil {
		b.log.Error("failed to answer callback query", "error", err)
	}
}
