package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classroom/internal/pkg/errs"
)

type staticSource struct{}

func (staticSource) InitData(viewer Sender) any {
	return map[string]string{"viewer": viewer.Name}
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	hub.SetInitSource(staticSource{})
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, Sender{Name: r.URL.Query().Get("name"), Role: "student"})
		go client.WritePump()
		if hub.Register(client) {
			client.ReadPump()
		}
	}))

	t.Cleanup(func() {
		cancel()
		<-hub.Done()
		srv.Close()
	})

	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, name string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?name=" + name
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

// readUntil skips presence noise until a message of type want arrives.
func readUntil(t *testing.T, conn *websocket.Conn, want MessageType) Message {
	t.Helper()

	for range 10 {
		msg := readMessage(t, conn)
		if msg.Type == want {
			return msg
		}
	}
	t.Fatalf("no %s message received", want)
	return Message{}
}

func TestHub_SendsInitData(t *testing.T) {
	_, srv := startHub(t)

	conn := dial(t, srv, "Alice")
	msg := readMessage(t, conn)

	require.Equal(t, TypeInitData, msg.Type)
	assert.Equal(t, SystemSender, msg.Sender)

	var payload struct {
		CurrentUser Sender            `json:"currentUser"`
		OnlineUsers []Sender          `json:"onlineUsers"`
		State       map[string]string `json:"state"`
	}
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "Alice", payload.CurrentUser.Name)
	assert.Equal(t, "Alice", payload.State["viewer"])
	assert.Len(t, payload.OnlineUsers, 1)
}

func TestHub_PublishReachesEveryone(t *testing.T) {
	hub, srv := startHub(t)

	alice := dial(t, srv, "Alice")
	readUntil(t, alice, TypeInitData)
	bob := dial(t, srv, "Bob")
	readUntil(t, bob, TypeInitData)

	hub.Publish(TypeRosterUpdate, map[string]int{"rooms": 5})

	for _, conn := range []*websocket.Conn{alice, bob} {
		msg := readUntil(t, conn, TypeRosterUpdate)
		assert.JSONEq(t, `{"rooms":5}`, string(msg.Payload))
	}
}

func TestHub_TextIsRebroadcastAndConfirmed(t *testing.T) {
	_, srv := startHub(t)

	alice := dial(t, srv, "Alice")
	readUntil(t, alice, TypeInitData)
	bob := dial(t, srv, "Bob")
	readUntil(t, bob, TypeInitData)

	require.NoError(t, alice.WriteJSON(map[string]any{
		"type":    TypeText,
		"tempId":  "tmp-1",
		"payload": TextPayload{Content: "hello room"},
	}))

	ack := readUntil(t, alice, TypeConfirm)
	var confirm ConfirmPayload
	require.NoError(t, json.Unmarshal(ack.Payload, &confirm))
	assert.Equal(t, "tmp-1", confirm.TempID)

	text := readUntil(t, bob, TypeText)
	assert.Equal(t, "Alice", text.Sender.Name)
	assert.Equal(t, confirm.MessageID, text.ID)
}

func TestHub_RejectsLongText(t *testing.T) {
	_, srv := startHub(t)

	alice := dial(t, srv, "Alice")
	readUntil(t, alice, TypeInitData)

	require.NoError(t, alice.WriteJSON(map[string]any{
		"type":    TypeText,
		"payload": TextPayload{Content: strings.Repeat("x", MaxContentBytes+1)},
	}))

	msg := readUntil(t, alice, TypeError)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, errs.ErrMessageContentTooLong, payload.Code)
}

func TestHub_SecondConnectionKicksFirst(t *testing.T) {
	hub, srv := startHub(t)

	first := dial(t, srv, "Alice")
	readUntil(t, first, TypeInitData)
	second := dial(t, srv, "Alice")
	readUntil(t, second, TypeInitData)

	require.NoError(t, first.SetReadDeadline(time.Now().Add(2*time.Second)))
	var closeErr *websocket.CloseError
	for {
		_, _, err := first.ReadMessage()
		if err != nil {
			require.ErrorAs(t, err, &closeErr)
			break
		}
	}
	assert.Equal(t, WsCloseCodeSessionKicked, closeErr.Code)

	assert.Eventually(t, func() bool { return len(hub.Online()) == 1 }, time.Second, 10*time.Millisecond)
}

func TestHub_StopRejectsNewClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run(ctx)
	hub.Stop()
	<-hub.Done()

	client := &Client{hub: hub, sender: Sender{Name: "late"}, send: make(chan []byte, 1)}
	assert.False(t, hub.Register(client))

	_, open := <-client.send
	assert.False(t, open)
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(TypeText, Sender{Name: "Alice", Role: "student"}, TextPayload{Content: "hi"})
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.Positive(t, msg.Timestamp)
	assert.JSONEq(t, `{"content":"hi"}`, string(msg.Payload))

	_, err = NewMessage(TypeText, SystemSender, make(chan int))
	assert.Error(t, err)
}
