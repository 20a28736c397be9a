package live

import (
	"encoding/json"
	"fmt"
	"time"

	"classroom/internal/pkg/randx"
)

// MessageType names the kind of a live message.
type MessageType string

const (
	TypeInitData          MessageType = "INIT_DATA"
	TypeRosterUpdate      MessageType = "ROSTER_UPDATE"
	TypeConsoleUpdate     MessageType = "CONSOLE_UPDATE"
	TypeCompetitionUpdate MessageType = "COMPETITION_UPDATE"
	TypeUserJoined        MessageType = "USER_JOINED"
	TypeUserLeft          MessageType = "USER_LEFT"
	TypeText              MessageType = "TEXT"
	TypeConfirm           MessageType = "CONFIRM"
	TypeError             MessageType = "ERROR"
)

// Sender identifies who produced a message.
type Sender struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// SystemSender marks messages produced by the server itself.
var SystemSender = Sender{Name: "system", Role: "system"}

// Message is the envelope for everything sent over a live connection.
type Message struct {
	ID        string          `json:"id"`
	Type      MessageType     `json:"type"`
	Sender    Sender          `json:"sender"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// NewMessage wraps payload in an envelope with a fresh id and a millisecond timestamp.
func NewMessage(msgType MessageType, sender Sender, payload any) (Message, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return Message{}, fmt.Errorf("marshal %s payload: %w", msgType, err)
		}
		raw = b
	}

	return Message{
		ID:        randx.MessageID(),
		Type:      msgType,
		Sender:    sender,
		Payload:   raw,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// TextPayload is a classroom chat line.
type TextPayload struct {
	Content string `json:"content"`
}

// ErrorPayload reports a failed client request.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PresencePayload announces a connection joining or leaving.
type PresencePayload struct {
	User Sender `json:"user"`
}

// InitDataPayload is sent once to every new connection.
type InitDataPayload struct {
	CurrentUser Sender   `json:"currentUser"`
	OnlineUsers []Sender `json:"onlineUsers"`
	State       any      `json:"state,omitempty"`
}

// ConfirmPayload acknowledges a client message by its temporary id.
type ConfirmPayload struct {
	TempID    string `json:"tempId"`
	MessageID string `json:"id"`
	Timestamp int64  `json:"timestamp"`
}
