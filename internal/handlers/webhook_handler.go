package handlers

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"izaanhr/cv-intake-bot/internal/models"
	"izaanhr/cv-intake-bot/internal/services"
)

const menuTrigger = "1"

// Candidate-facing reply bodies.
const (
	replyMenu         = "Which position are you applying for?\n\n- Python Developer\n- AI Engineer\n- Data Scientist"
	replyHelp         = "Welcome! Reply '1' to see available roles."
	replyNoSession    = "⚠️ Please select a position first by replying '1'."
	replyNotPDF       = "⚠️ Please send only PDF files."
	replyQueueFull    = "⚠️ We're handling a lot of applications right now. Please try again in a few minutes."
	replySelectedFmt  = "Great! Upload your CV (PDF) for the *%s* role."
	replyReceivingFmt = "📥 CV received for *%s*. Logging your application now..."
)

// WebhookHandler is the inbound dispatcher: it verifies subscription
// challenges, routes each message by kind and session state, and hands
// accepted documents to the worker. It always acknowledges the delivery,
// whatever happens downstream; a non-200 here would make Meta retry and
// reprocess the same message.
type WebhookHandler struct {
	verifyToken string
	sessions    services.SessionTracker
	whatsapp    services.WhatsAppService
	worker      services.Worker
}

func NewWebhookHandler(
	verifyToken string,
	sessions services.SessionTracker,
	whatsapp services.WhatsAppService,
	worker services.Worker,
) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		sessions:    sessions,
		whatsapp:    whatsapp,
		worker:      worker,
	}
}

// HandleVerify handles GET /webhook, the subscription handshake.
func (h *WebhookHandler) HandleVerify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		return c.Status(fiber.StatusOK).SendString(challenge)
	}

	return c.Status(fiber.StatusForbidden).SendString("Forbidden")
}

// HandleWebhook handles POST /webhook. Malformed envelopes are acknowledged
// and dropped; only parsing and session bookkeeping happen here, all slow
// work runs behind the worker.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload models.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("⚠️  Ignoring malformed webhook payload: %v\n", err)
		return c.Status(fiber.StatusOK).SendString("EVENT_RECEIVED")
	}

	if message := payload.FirstMessage(); message != nil && message.From != "" {
		h.dispatch(c, message)
	}

	return c.Status(fiber.StatusOK).SendString("EVENT_RECEIVED")
}

func (h *WebhookHandler) dispatch(c *fiber.Ctx, message *models.Message) {
	switch message.Type {
	case "text":
		if message.Text != nil {
			h.handleText(c, message.From, strings.TrimSpace(message.Text.Body))
		}
	case "document":
		if message.Document != nil {
			h.handleDocument(c, message.From, message.Document)
		}
	}
}

func (h *WebhookHandler) handleText(c *fiber.Ctx, from, body string) {
	switch {
	case body == menuTrigger:
		h.reply(c, from, replyMenu)
	case models.IsOpenPosition(body):
		h.sessions.Select(from, body)
		h.reply(c, from, replySelectedFmt, body)
	default:
		h.reply(c, from, replyHelp)
	}
}

func (h *WebhookHandler) handleDocument(c *fiber.Ctx, from string, doc *models.DocumentBody) {
	if !strings.Contains(strings.ToLower(doc.MimeType), "pdf") {
		if _, ok := h.sessions.Get(from); !ok {
			h.reply(c, from, replyNoSession)
			return
		}
		// Keep the selection so the candidate can resend the right file
		h.reply(c, from, replyNotPDF)
		return
	}

	// One-shot per selection: the entry is gone the moment the job is
	// dispatched, so a rapid second upload falls back to replyNoSession.
	position, ok := h.sessions.Take(from)
	if !ok {
		h.reply(c, from, replyNoSession)
		return
	}

	job := services.Job{
		ID:       uuid.New(),
		MediaID:  doc.ID,
		From:     from,
		Position: position,
	}

	if !h.worker.Enqueue(job) {
		// Restore the selection; nothing was dispatched.
		h.sessions.Select(from, position)
		h.reply(c, from, replyQueueFull)
		return
	}

	h.reply(c, from, replyReceivingFmt, position)
}

func (h *WebhookHandler) reply(c *fiber.Ctx, to, format string, args ...any) {
	body := format
	if len(args) > 0 {
		body = fmt.Sprintf(format, args...)
	}
	if err := h.whatsapp.SendText(c.Context(), to, body); err != nil {
		log.Printf("⚠️  Failed to reply to %s: %v\n", to, err)
	}
}
