package live

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"classroom/internal/pkg/errs"
	"classroom/internal/pkg/logx"
	"classroom/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the client.
	maxMessageSize = 8192

	// MaxContentBytes caps the text of a chat line.
	MaxContentBytes = 5000

	// WsCloseCodeSessionKicked tells the browser its session was replaced by another connection.
	WsCloseCodeSessionKicked = 4001

	sendBuffer = 256
)

// Client is one WebSocket connection of a participant.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	sender Sender

	// queued outbound frames; closed exactly once through closeSend.
	send      chan []byte
	closeOnce sync.Once

	// close frame written when send is closed; set before the close.
	closeFrame []byte

	logger zerolog.Logger
}

// NewClient constructs a client for conn. Start WritePump, then Register, then ReadPump.
func NewClient(hub *Hub, conn *websocket.Conn, sender Sender) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		sender: sender,
		send:   make(chan []byte, sendBuffer),
		logger: logx.Logger().With().
			Str("component", "live_client").
			Str("conn_id", randx.ConnectionID()).
			Str("name", sender.Name).
			Str("role", sender.Role).
			Logger(),
	}
}

// ReadPump reads client frames until the connection fails, then unregisters the client.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		c.processInboundMessage(messageBytes)
	}
}

func (c *Client) cleanupOnDisconnect() {
	c.logger.Debug().Msg("Client connection cleanup starting.")

	c.hub.leave(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

func (c *Client) processInboundMessage(messageBytes []byte) {
	var inboundMsg struct {
		Type    MessageType     `json:"type"`
		Payload json.RawMessage `json:"payload,omitempty"`
		TempID  string          `json:"tempId,omitempty"`
	}

	if err := json.Unmarshal(messageBytes, &inboundMsg); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid JSON")
		c.SendError(errs.NewError(errs.ErrInvalidJSONFormat))
		return
	}

	switch inboundMsg.Type {
	case TypeText:
		c.handleText(inboundMsg.Payload, inboundMsg.TempID)

	default:
		c.logger.Warn().Str("msg_type", string(inboundMsg.Type)).Msg("Client sent unsupported message type")
		c.SendError(errs.NewError(errs.ErrInvalidParams))
	}
}

func (c *Client) handleText(payloadBytes json.RawMessage, tempID string) {
	var textPayload TextPayload
	if err := json.Unmarshal(payloadBytes, &textPayload); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid TEXT payload")
		c.SendError(errs.NewError(errs.ErrInvalidParams))
		return
	}

	if len(textPayload.Content) > MaxContentBytes {
		c.SendError(errs.NewError(errs.ErrMessageContentTooLong))
		return
	}

	broadcastMsg, err := NewMessage(TypeText, c.sender, textPayload)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to create text message for broadcast")
		return
	}

	c.sendConfirmation(tempID, broadcastMsg)
	c.hub.send(broadcastMsg)
}

// WritePump drains the send queue into the connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage reports whether the write loop should continue.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		frame := c.closeFrame
		if frame == nil {
			frame = []byte{}
		}
		if err := c.conn.WriteMessage(websocket.CloseMessage, frame); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

func (c *Client) sendMessage(data any) (err error) {
	messageBytes, err := json.Marshal(data)
	if err != nil {
		c.logger.Error().Err(err).Msg("Error marshaling data for client")
		return err
	}

	defer func() {
		// send may already be closed by a concurrent kick.
		if recover() != nil {
			err = fmt.Errorf("client connection closed")
		}
	}()

	select {
	case c.send <- messageBytes:
		return nil
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send channel full, dropping message")
		return fmt.Errorf("client send queue full")
	}
}

// SendError queues an ERROR message for this client only.
func (c *Client) SendError(err error) {
	var customErr *errs.CustomError
	if !errors.As(err, &customErr) {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	errorMsg, msgErr := NewMessage(TypeError, SystemSender, ErrorPayload{
		Code:    customErr.Code,
		Message: customErr.Message,
	})
	if msgErr != nil {
		c.logger.Error().Err(msgErr).Msg("Failed to build error message")
		return
	}

	if err := c.sendMessage(errorMsg); err != nil {
		c.logger.Error().Err(err).Msg("Failed to queue error message")
	}
}

// SendInitData queues the INIT_DATA message.
func (c *Client) SendInitData(payload InitDataPayload) error {
	initMsg, err := NewMessage(TypeInitData, SystemSender, payload)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build INIT_DATA message.")
		return err
	}

	if err := c.sendMessage(initMsg); err != nil {
		c.logger.Error().Err(err).Msg("Failed to send INIT_DATA message.")
		return err
	}

	return nil
}

func (c *Client) sendConfirmation(tempID string, authoritative Message) {
	if tempID == "" {
		return
	}

	ackMsg, err := NewMessage(TypeConfirm, c.sender, ConfirmPayload{
		TempID:    tempID,
		MessageID: authoritative.ID,
		Timestamp: authoritative.Timestamp,
	})
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build ACK message")
		return
	}

	if err := c.sendMessage(ackMsg); err != nil {
		c.logger.Error().Err(err).Msg("Failed to queue ACK message")
	}
}

// Kick closes the connection with WsCloseCodeSessionKicked and reason.
func (c *Client) Kick(reason string) {
	c.logger.Warn().
		Int("close_code", WsCloseCodeSessionKicked).
		Str("reason", reason).
		Msg("Kicking client.")

	c.closeOnce.Do(func() {
		c.closeFrame = websocket.FormatCloseMessage(WsCloseCodeSessionKicked, reason)
		close(c.send)
	})
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}
