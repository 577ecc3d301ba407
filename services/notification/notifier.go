package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"courtbot/models"
)

// TypeAnnounce is the task type for shared-channel announcements.
const TypeAnnounce = "announce:channel"

// DefaultNotifier delivers user replies directly through the Bot API and
// routes channel announcements through the asynq queue so the announce
// worker can retry them. When no queue is configured (file store deployments
// without Redis) announcements go out directly instead.
type DefaultNotifier struct {
	API         *TelegramClient
	GroupChatID int64
	Queue       *asynq.Client
}

func (n *DefaultNotifier) NotifyUser(ctx context.Context, userID string, msg Message) error {
	return n.API.SendMessage(ctx, userID, msg)
}

func (n *DefaultNotifier) NotifyChannel(ctx context.Context, text string) error {
	if n.Queue == nil {
		return n.API.SendToChat(ctx, n.GroupChatID, text)
	}
	payload, err := json.Marshal(models.AnnouncePayload{Text: text})
	if err != nil {
		return fmt.Errorf("encode announce payload: %w", err)
	}
	if _, err := n.Queue.EnqueueContext(ctx, asynq.NewTask(TypeAnnounce, payload)); err != nil {
		return fmt.Errorf("enqueue announcement: %w", err)
	}
	return nil
}
