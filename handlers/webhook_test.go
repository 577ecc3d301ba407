package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"courtbot/models"
	"courtbot/services/notification"
)

type recordingFlow struct {
	gotUser   models.User
	gotIntent models.Intent
	prompts   []models.Prompt
}

func (f *recordingFlow) Handle(ctx context.Context, user models.User, intent models.Intent) ([]models.Prompt, error) {
	f.gotUser = user
	f.gotIntent = intent
	return f.prompts, nil
}

type recordingNotifier struct {
	sent []notification.Message
	to   []string
}

func (n *recordingNotifier) NotifyUser(ctx context.Context, userID string, msg notification.Message) error {
	n.to = append(n.to, userID)
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) NotifyChannel(ctx context.Context, text string) error {
	return nil
}

func newTestRouter(flow *recordingFlow, notifier *recordingNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewWebhookHandler(flow, notifier, "secret-token", false, zap.NewNop())
	r.POST("/telegram/webhook/:token", h.Handle)
	return r
}

func TestWebhookDeliversIntentAndReplies(t *testing.T) {
	flow := &recordingFlow{prompts: []models.Prompt{{Text: "ok", MainMenu: true}}}
	notifier := &recordingNotifier{}
	router := newTestRouter(flow, notifier)

	body := `{"message":{"text":"🎾 Reservar pista","chat":{"id":1001},"from":{"username":"alex"}}}`
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook/secret-token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if flow.gotIntent.Kind != models.IntentReserve {
		t.Errorf("intent %+v", flow.gotIntent)
	}
	if flow.gotUser.ID != "1001" || flow.gotUser.Handle != "alex" {
		t.Errorf("user %+v", flow.gotUser)
	}
	if len(notifier.sent) != 1 || notifier.to[0] != "1001" {
		t.Errorf("replies %+v to %v", notifier.sent, notifier.to)
	}
	if len(notifier.sent[0].Keyboard) == 0 {
		t.Error("main menu keyboard missing")
	}
}

func TestWebhookFallsBackToFirstName(t *testing.T) {
	flow := &recordingFlow{}
	router := newTestRouter(flow, &recordingNotifier{})

	body := `{"message":{"text":"hola","chat":{"id":7},"from":{"first_name":"Alex"}}}`
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook/secret-token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if flow.gotUser.Handle != "Alex" {
		t.Errorf("handle %q, want first name fallback", flow.gotUser.Handle)
	}
}

func TestWebhookRejectsWrongToken(t *testing.T) {
	flow := &recordingFlow{}
	router := newTestRouter(flow, &recordingNotifier{})

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook/wrong", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Unauthorized") {
		t.Errorf("body %q, want JSON error payload", w.Body.String())
	}
}

func TestWebhookIgnoresNonMessageUpdates(t *testing.T) {
	flow := &recordingFlow{prompts: []models.Prompt{{Text: "should not fire"}}}
	notifier := &recordingNotifier{}
	router := newTestRouter(flow, notifier)

	for _, body := range []string{
		`{}`,
		`{"message":{"chat":{"id":1}}}`,
		`{"my_chat_member":{"old_chat_member":{"status":"member"},"new_chat_member":{"status":"kicked"}}}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/telegram/webhook/secret-token", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("body %s: status %d", body, w.Code)
		}
	}
	if len(notifier.sent) != 0 {
		t.Errorf("unexpected replies %+v", notifier.sent)
	}
}
