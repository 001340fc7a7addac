package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"movie-lookup-service/internal/metrics"
	"movie-lookup-service/internal/models"
)

const (
	favoriteCallbackPrefix = "fav:"

	statusSuccess = "success"
	statusError   = "error"
)

const helpText = `Send me part of a movie title and I will look it up.

/search <title> - search the catalog
/favorites - your favorite movies
/history - your past searches
/help - this message`

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command, args string) {
	status := statusSuccess
	defer func() {
		metrics.CommandCounter.WithLabelValues(command, status).Inc()
	}()

	userID := strconv.FormatInt(chatID, 10)
	b.log.Info("command received", "chat_id", chatID, "command", command)

	switch command {
	case "start":
		if err := b.users.Register(ctx, userID); err != nil {
			status = statusError
			b.log.Error("failed to register user", "chat_id", chatID, "error", err)
			b.sendText(chatID, "Something went wrong, please try again.")
			return
		}
		b.sendText(chatID, "Welcome to Movie Bot! Send me a movie title to search.\n\n"+helpText)

	case "help":
		b.sendText(chatID, helpText)

	case "search":
		query := strings.TrimSpace(args)
		if query == "" {
			b.sendText(chatID, "Usage: /search <movie title>")
			return
		}
		b.handleSearch(ctx, chatID, query)

	case "favorites":
		b.handleFavorites(ctx, chatID)

	case "history":
		b.handleHistory(ctx, chatID)

	case "notify":
		b.handleNotify(ctx, chatID, strings.TrimSpace(args))

	default:
		status = statusError
		b.sendText(chatID, "Unknown command. Send /help for usage.")
	}
}

func (b *Bot) handleSearch(ctx context.Context, chatID int64, query string) {
	if query == "" {
		b.sendText(chatID, "Send me a movie title to search.")
		return
	}

	start := time.Now()
	defer func() {
		metrics.SearchDuration.WithLabelValues("bot").Observe(time.Since(start).Seconds())
	}()

	userID := strconv.FormatInt(chatID, 10)
	results, err := b.lookup.Search(ctx, userID, query)
	if err != nil {
		b.log.Error("search failed", "chat_id", chatID, "query", query, "error", err)
		b.sendText(chatID, "Search failed, please try again later.")
		return
	}

	if len(results) == 0 {
		b.sendText(chatID, fmt.Sprintf("No movies found for %q.", query))
		return
	}

	for _, rec := range results {
		b.sendMovie(chatID, rec)
	}
}

// sendMovie sends one search result with an inline "add to favorites"
// button carrying the title in the callback data.
func (b *Bot) sendMovie(chatID int64, rec models.MovieRecord) {
	text := fmt.Sprintf("%s - %s - %s\n%s", rec.Title, rec.Genre, rec.Rating, rec.DownloadLink)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Add to favorites",
				favoriteCallbackPrefix+rec.Title),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("failed to send movie", "chat_id", chatID, "title", rec.Title, "error", err)
		return
	}
	metrics.MessagesSent.WithLabelValues("movie").Inc()
}

func (b *Bot) handleFavorites(ctx context.Context, chatID int64) {
	userID := strconv.FormatInt(chatID, 10)
	favorites, err := b.users.Favorites(ctx, userID)
	if err != nil {
		b.log.Error("failed to get favorites", "chat_id", chatID, "error", err)
		b.sendText(chatID, "Could not load your favorites, please try again later.")
		return
	}

	if len(favorites) == 0 {
		b.sendText(chatID, "No favorites yet. Search for a movie and tap \"Add to favorites\".")
		return
	}
	b.sendText(chatID, "Your favorites:\n- "+strings.Join(favorites, "\n- "))
}

func (b *Bot) handleHistory(ctx context.Context, chatID int64) {
	userID := strconv.FormatInt(chatID, 10)
	history, err := b.users.History(ctx, userID)
	if err != nil {
		b.log.Error("failed to get history", "chat_id", chatID, "error", err)
		b.sendText(chatID, "Could not load your history, please try again later.")
		return
	}

	if len(history) == 0 {
		b.sendText(chatID, "No searches yet.")
		return
	}
	b.sendText(chatID, "Your search history:\n- "+strings.Join(history, "\n- "))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		b.answerCallback(cb.ID, "")
		return
	}
	chatID := cb.Message.Chat.ID

	title, ok := strings.CutPrefix(cb.Data, favoriteCallbackPrefix)
	if !ok || title == "" {
		b.answerCallback(cb.ID, "")
		return
	}

	userID := strconv.FormatInt(chatID, 10)
	if err := b.users.AddFavorite(ctx, userID, title); err != nil {
		b.log.Error("failed to add favorite", "chat_id", chatID, "title", title, "error", err)
		b.answerCallback(cb.ID, "Could not save favorite")
		return
	}

	b.log.Info("favorite added", "chat_id", chatID, "title", title)
	b.answerCallback(cb.ID, fmt.Sprintf("%s added to favorites", title))
}
