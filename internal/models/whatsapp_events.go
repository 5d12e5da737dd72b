package models

// WhatsApp Cloud API webhook payload shapes. These mirror the JSON Meta
// delivers to the webhook endpoint; everything is parsed once at the boundary
// and then classified into a tagged InboundEvent so the pipeline never digs
// through nested maps.

// WebhookPayload is the top-level body of a webhook POST delivery.
type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

// WebhookEntry groups changes for one WhatsApp Business Account.
type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

// WebhookChange carries one value object per changed field.
type WebhookChange struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

// ChangeValue is the payload of a single change. Exactly one of Messages or
// Statuses is normally populated.
type ChangeValue struct {
	MessagingProduct string            `json:"messaging_product"`
	Metadata         ChangeMetadata    `json:"metadata"`
	Contacts         []WebhookContact  `json:"contacts,omitempty"`
	Messages         []IncomingMessage `json:"messages,omitempty"`
	Statuses         []MessageStatus   `json:"statuses,omitempty"`
}

// ChangeMetadata identifies the receiving business phone number.
type ChangeMetadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// WebhookContact describes the sender of an inbound message.
type WebhookContact struct {
	WaID    string         `json:"wa_id"`
	Profile ContactProfile `json:"profile"`
}

// ContactProfile holds the sender's WhatsApp display name.
type ContactProfile struct {
	Name string `json:"name"`
}

// IncomingMessage is one inbound message record. Only type "text" is
// processed; Text is nil for other kinds.
type IncomingMessage struct {
	From      string    `json:"from"`
	ID        string    `json:"id"`
	Timestamp string    `json:"timestamp"`
	Type      string    `json:"type"`
	Text      *TextBody `json:"text,omitempty"`
}

// TextBody wraps the text content of a message.
type TextBody struct {
	Body string `json:"body"`
}

// MessageStatus is a delivery/read status callback record.
type MessageStatus struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	RecipientID string `json:"recipient_id"`
}

// EventKind discriminates the classified webhook event variants.
type EventKind int

const (
	// EventIgnored covers everything the pipeline takes no action on:
	// malformed payloads, non-text messages, missing sender or body.
	EventIgnored EventKind = iota
	// EventText is an inbound text message to be processed.
	EventText
	// EventStatus is a delivery/read status callback; acknowledged, no writes.
	EventStatus
)

// TextEvent carries the fields the pipeline needs from an inbound text
// message.
type TextEvent struct {
	WaID        string
	From        string
	MessageID   string
	Body        string
	ProfileName string
}

// InboundEvent is the classified form of a webhook payload.
type InboundEvent struct {
	Kind   EventKind
	Text   TextEvent // valid when Kind == EventText
	Reason string    // set when Kind == EventIgnored
}

// ClassifyPayload reduces a webhook payload to a single tagged event.
//
// Known limitation: only the first entry, first change and first message of
// the nested arrays are examined. Batched deliveries carrying more than one
// message per callback are not iterated.
func ClassifyPayload(p WebhookPayload) InboundEvent {
	if len(p.Entry) == 0 || len(p.Entry[0].Changes) == 0 {
		return InboundEvent{Kind: EventIgnored, Reason: "not a message or status update"}
	}

	value := p.Entry[0].Changes[0].Value

	if len(value.Messages) > 0 {
		msg := value.Messages[0]
		if msg.Type != "text" || msg.Text == nil {
			return InboundEvent{Kind: EventIgnored, Reason: "non-text message"}
		}

		ev := TextEvent{
			From:      msg.From,
			MessageID: msg.ID,
			Body:      msg.Text.Body,
		}
		if len(value.Contacts) > 0 {
			ev.WaID = value.Contacts[0].WaID
			ev.ProfileName = value.Contacts[0].Profile.Name
		}
		// Contacts may be absent; fall back to the sender phone number for
		// both identity and display name.
		if ev.WaID == "" {
			ev.WaID = msg.From
		}
		if ev.ProfileName == "" {
			ev.ProfileName = msg.From
		}

		if ev.Body == "" || ev.WaID == "" {
			return InboundEvent{Kind: EventIgnored, Reason: "missing body or user ID"}
		}
		return InboundEvent{Kind: EventText, Text: ev}
	}

	if len(value.Statuses) > 0 {
		return InboundEvent{Kind: EventStatus}
	}

	return InboundEvent{Kind: EventIgnored, Reason: "not a message or status update"}
}
