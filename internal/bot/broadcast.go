package bot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"movie-lookup-service/internal/metrics"
)

// DeliveryResult is the outcome of one broadcast delivery attempt.
type DeliveryResult struct {
	UserID string
	Err    error
}

// handleNotify broadcasts a message to every registered user. Only the
// configured admin chat may use it.
func (b *Bot) handleNotify(ctx context.Context, chatID int64, text string) {
	if b.adminID == 0 || chatID != b.adminID {
		b.sendText(chatID, "Unknown command. Send /help for usage.")
		return
	}
	if text == "" {
		b.sendText(chatID, "Usage: /notify <message>")
		return
	}

	results, err := b.Broadcast(ctx, text)
	if err != nil {
		b.log.Error("broadcast failed", "error", err)
		b.sendText(chatID, "Broadcast failed: could not list users.")
		return
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	b.sendText(chatID, fmt.Sprintf("Broadcast delivered to %d of %d users.",
		len(results)-failed, len(results)))
}

// Broadcast sends text to every registered user. Each delivery attempt
// is independent: a failure is recorded in its result and never aborts
// the remaining deliveries.
func (b *Bot) Broadcast(ctx context.Context, text string) ([]DeliveryResult, error) {
	broadcastID := uuid.New().String()

	userIDs, err := b.users.UserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	b.log.Info("starting broadcast", "broadcast_id", broadcastID, "recipients", len(userIDs))

	results := make([]DeliveryResult, 0, len(userIDs))
	for _, userID := range userIDs {
		results = append(results, DeliveryResult{
			UserID: userID,
			Err:    b.deliver(userID, text),
		})
	}

	for _, res := range results {
		if res.Err != nil {
			metrics.BroadcastFailures.Inc()
			b.log.Error("broadcast delivery failed",
				"broadcast_id", broadcastID, "user_id", res.UserID, "error", res.Err)
		}
	}
	return results, nil
}

func (b *Bot) deliver(userID, text string) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		// Users registered through the web front end may not have a
		// numeric chat id; they are unreachable over Telegram.
		return fmt.Errorf("user id is not a chat id: %w", err)
	}
	return b.sendText(chatID, text)
}
