/*
Package live pushes classroom changes to connected browsers over WebSocket.

A single Hub owns every connection. Its Run loop serializes registration,
removal and broadcasting; each Client runs a read pump and a write pump.
*/
package live

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"classroom/internal/pkg/errs"
	"classroom/internal/pkg/logx"
)

const broadcastChannelBuffer = 1024

// InitSource supplies the state snapshot sent to a new connection.
type InitSource interface {
	InitData(viewer Sender) any
}

// Hub fans messages out to every connected client.
type Hub struct {
	// connected clients keyed by participant name.
	clients map[string]*Client

	broadcast  chan Message
	register   chan *Client
	unregister chan *Client

	// closed to stop the Run loop.
	stopChan chan struct{}
	stopOnce sync.Once

	// closed once the Run loop has returned.
	done chan struct{}

	source InitSource

	// mu protects clients.
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Message, broadcastChannelBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopChan:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logx.Component("live_hub"),
	}
}

// SetInitSource sets where INIT_DATA state comes from. It must be called before Run.
func (h *Hub) SetInitSource(src InitSource) {
	h.source = src
}

// Stop terminates the Run loop and closes every connection.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		h.logger.Info().Msg("Received stop signal. Stopping hub.")
		close(h.stopChan)
	})
}

// Done is closed after the Run loop exits.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Run is the hub event loop. It returns when ctx is cancelled or Stop is called.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for name, client := range h.clients {
			client.closeSend()
			delete(h.clients, name)
		}
		h.mu.Unlock()

		close(h.done)
		h.logger.Info().Msg("Hub Run loop finished.")
	}()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.fanOut(message)

		case <-ctx.Done():
			h.logger.Info().Msg("Context cancelled. Shutting down hub.")
			return

		case <-h.stopChan:
			h.logger.Info().Msg("Hub forced stop initiated.")
			return
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()

	if existing, ok := h.clients[client.sender.Name]; ok {
		h.logger.Warn().
			Str("name", client.sender.Name).
			Msg("Participant already connected. Closing old connection for replacement.")

		existing.SendError(errs.NewError(errs.ErrSessionKicked))
		existing.Kick("Session replaced by new connection. Check other tabs.")
	}

	h.clients[client.sender.Name] = client
	online := h.onlineLocked()

	h.logger.Info().
		Str("name", client.sender.Name).
		Int("total_connections", len(h.clients)).
		Msg("Client connected.")

	h.mu.Unlock()

	payload := InitDataPayload{
		CurrentUser: client.sender,
		OnlineUsers: online,
	}
	if h.source != nil {
		payload.State = h.source.InitData(client.sender)
	}

	if err := client.SendInitData(payload); err != nil {
		h.removeClient(client)
		return
	}

	h.enqueue(TypeUserJoined, SystemSender, PresencePayload{User: client.sender})
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	current, ok := h.clients[client.sender.Name]
	if !ok || current != client {
		h.mu.Unlock()
		h.logger.Debug().
			Str("name", client.sender.Name).
			Msg("Ignoring unregister for stale or unknown connection.")
		return
	}

	delete(h.clients, client.sender.Name)
	total := len(h.clients)
	h.mu.Unlock()

	client.closeSend()

	h.logger.Info().
		Str("name", client.sender.Name).
		Int("total_connections", total).
		Msg("Client disconnected.")

	h.enqueue(TypeUserLeft, SystemSender, PresencePayload{User: client.sender})
}

func (h *Hub) fanOut(message Message) {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Str("message_id", message.ID).
			Err(err).
			Msg("Error marshaling message for broadcast.")
		return
	}

	var slow []*Client

	h.mu.RLock()
	for _, client := range h.clients {
		if message.Type == TypeText && client.sender.Name == message.Sender.Name {
			continue
		}

		select {
		case client.send <- messageBytes:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn().
			Str("name", client.sender.Name).
			Msg("Client send channel full, dropping connection.")
		h.removeClient(client)
	}
}

// Publish broadcasts a server message to every connection. It never blocks.
func (h *Hub) Publish(msgType MessageType, payload any) {
	h.enqueue(msgType, SystemSender, payload)
}

func (h *Hub) enqueue(msgType MessageType, sender Sender, payload any) {
	msg, err := NewMessage(msgType, sender, payload)
	if err != nil {
		h.logger.Error().Err(err).Str("msg_type", string(msgType)).Msg("Failed to build message.")
		return
	}
	h.send(msg)
}

func (h *Hub) send(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn().Str("msg_type", string(msg.Type)).Msg("Broadcast channel full. Dropping message.")
	}
}

// Register hands a client to the Run loop. It returns false if the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		h.logger.Warn().Str("name", client.sender.Name).Msg("Hub stopped. Rejecting client.")
		client.closeSend()
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Online lists connected participants sorted by name.
func (h *Hub) Online() []Sender {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.onlineLocked()
}

func (h *Hub) onlineLocked() []Sender {
	online := make([]Sender, 0, len(h.clients))
	for _, c := range h.clients {
		online = append(online, c.sender)
	}
	slices.SortFunc(online, func(a, b Sender) int { return strings.Compare(a.Name, b.Name) })

	return online
}
