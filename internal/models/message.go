package models

// WebhookPayload is the envelope Meta posts to the webhook. Only the fields
// the dispatcher cares about are declared; everything else is ignored during
// decoding, and any of these may be absent in a given delivery.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

type Value struct {
	MessagingProduct string    `json:"messaging_product"`
	Messages         []Message `json:"messages"`
}

type Message struct {
	From     string        `json:"from"`
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Text     *TextBody     `json:"text,omitempty"`
	Document *DocumentBody `json:"document,omitempty"`
}

type TextBody struct {
	Body string `json:"body"`
}

type DocumentBody struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	Filename string `json:"filename"`
}

// FirstMessage digs the first inbound message out of the envelope. It returns
// nil for malformed or partially absent payloads so the dispatcher can
// acknowledge them without doing anything.
func (p *WebhookPayload) FirstMessage() *Message {
	if p.Object != "whatsapp_business_account" {
		return nil
	}
	if len(p.Entry) == 0 || len(p.Entry[0].Changes) == 0 {
		return nil
	}

	value := p.Entry[0].Changes[0].Value
	if len(value.Messages) == 0 {
		return nil
	}

	return &value.Messages[0]
}
