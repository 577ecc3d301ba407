package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"courtbot/models"
	"courtbot/services/booking"
	"courtbot/services/notification"
	"courtbot/utils"
)

// telegramUpdate mirrors only the fields the bot consumes; the rest of the
// Bot API envelope is ignored.
type telegramUpdate struct {
	Message *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		From *struct {
			Username  string `json:"username"`
			FirstName string `json:"first_name"`
		} `json:"from"`
	} `json:"message"`
	MyChatMember *struct {
		OldChatMember struct {
			Status string `json:"status"`
		} `json:"old_chat_member"`
		NewChatMember struct {
			Status string `json:"status"`
		} `json:"new_chat_member"`
	} `json:"my_chat_member"`
}

// WebhookHandler receives Telegram updates, maps them to typed intents and
// delivers the dialogue engine's replies.
type WebhookHandler struct {
	Flow       booking.FlowService
	Notifier   notification.Notifier
	Token      string
	SiestaMenu bool
	Logger     *zap.Logger
}

func NewWebhookHandler(flow booking.FlowService, notifier notification.Notifier, token string, siestaMenu bool, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		Flow:       flow,
		Notifier:   notifier,
		Token:      token,
		SiestaMenu: siestaMenu,
		Logger:     logger,
	}
}

// Handle processes one webhook delivery. Telegram expects a 200 regardless
// of outcome; anything else makes it redeliver the update.
func (h *WebhookHandler) Handle(c *gin.Context) {
	if c.Param("token") != h.Token {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "webhook token mismatch")
		return
	}

	var update telegramUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.Logger.Warn("undecodable webhook payload", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	if update.MyChatMember != nil {
		h.Logger.Info("bot membership changed",
			zap.String("old", update.MyChatMember.OldChatMember.Status),
			zap.String("new", update.MyChatMember.NewChatMember.Status))
		c.Status(http.StatusOK)
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		c.Status(http.StatusOK)
		return
	}

	user := models.User{ID: strconv.FormatInt(update.Message.Chat.ID, 10)}
	if update.Message.From != nil {
		user.Handle = update.Message.From.Username
		if user.Handle == "" {
			user.Handle = update.Message.From.FirstName
		}
	}

	intent := ParseIntent(update.Message.Text)
	prompts, err := h.Flow.Handle(c.Request.Context(), user, intent)
	if err != nil {
		h.Logger.Error("dialogue handling failed",
			zap.String("user", user.ID), zap.Error(err))
	}

	for _, p := range prompts {
		msg := RenderPrompt(p, h.SiestaMenu)
		if err := h.Notifier.NotifyUser(c.Request.Context(), user.ID, msg); err != nil {
			h.Logger.Error("reply delivery failed",
				zap.String("user", user.ID), zap.Error(err))
		}
	}

	c.Status(http.StatusOK)
}
