package realtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/app/services"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// wsEvent mirrors the wire envelope for both directions
type wsEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func dialWS(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendWS(t *testing.T, conn *websocket.Conn, event string, data interface{}) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(wsEvent{Event: event, Data: raw}))
}

func readWS(t *testing.T, conn *websocket.Conn) wsEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var env wsEvent
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

// assertNoEvent verifies that nothing arrives within a short window
func assertNoEvent(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var env wsEvent
	err := conn.ReadJSON(&env)
	require.Error(t, err, "unexpected event %q", env.Event)
}

type fakeChatService struct {
	mu      sync.Mutex
	history []*models.Chat
	saved   []*models.Chat
	reply   string
	nextID  int64
}

func (f *fakeChatService) History(_ context.Context, classroomID int64) ([]*models.Chat, error) {
	chats := make([]*models.Chat, 0, len(f.history))
	for _, chat := range f.history {
		if chat.PrivateClassroomID == classroomID {
			chats = append(chats, chat)
		}
	}
	return chats, nil
}

func (f *fakeChatService) FetchChats(ctx context.Context, classroomID int64) ([]*models.Chat, error) {
	return f.History(ctx, classroomID)
}

func (f *fakeChatService) SaveMessage(_ context.Context, email string, classroomID int64, message string) (*models.Chat, error) {
	if email == "" || classroomID == 0 || message == "" {
		return nil, apperrors.ErrChatFieldsRequired
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	chat := &models.Chat{
		ID:                 f.nextID,
		PrivateClassroomID: classroomID,
		Email:              email,
		Message:            message,
	}
	f.saved = append(f.saved, chat)
	return chat, nil
}

func (f *fakeChatService) HasTrigger(message string) bool {
	return strings.Contains(message, "@AI-Gen")
}

func (f *fakeChatService) GenerateReply(_ context.Context, classroomID int64, _ string) (*models.Chat, error) {
	return &models.Chat{
		PrivateClassroomID: classroomID,
		Email:              models.AISender,
		Message:            f.reply,
	}, nil
}

func startChatServer(t *testing.T, svc services.ChatService) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ns := NewChatNamespace(svc, zerolog.Nop())
	go ns.Run()
	router := gin.New()
	router.GET("/ws/chat", ns.HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func joinChatRoom(t *testing.T, conn *websocket.Conn, classroomID int64) []*models.Chat {
	t.Helper()
	sendWS(t, conn, "joinRoom", classroomID)
	env := readWS(t, conn)
	require.Equal(t, "chatHistory", env.Event)
	var history []*models.Chat
	require.NoError(t, json.Unmarshal(env.Data, &history))
	return history
}

func TestChatNamespaceJoinRoomHistory(t *testing.T) {
	svc := &fakeChatService{history: []*models.Chat{
		{ID: 1, PrivateClassroomID: 5, Email: "alice@test.com", Message: "hello"},
		{ID: 2, PrivateClassroomID: 5, Email: "bob@test.com", Message: "hi"},
		{ID: 3, PrivateClassroomID: 9, Email: "carol@test.com", Message: "elsewhere"},
	}}
	srv := startChatServer(t, svc)

	conn := dialWS(t, srv, "/ws/chat")
	history := joinChatRoom(t, conn, 5)

	require.Len(t, history, 2)
	assert.Equal(t, "hello", history[0].Message)
	assert.Equal(t, "hi", history[1].Message)
}

func TestChatNamespaceSendMessageOrdering(t *testing.T) {
	svc := &fakeChatService{reply: "Photosynthesis converts light into energy."}
	srv := startChatServer(t, svc)

	alice := dialWS(t, srv, "/ws/chat")
	bob := dialWS(t, srv, "/ws/chat")
	joinChatRoom(t, alice, 5)
	joinChatRoom(t, bob, 5)

	sendWS(t, alice, "sendMessage", dto.SendMessageRequest{
		Email:              "alice@test.com",
		PrivateClassroomID: 5,
		Message:            "@AI-Gen what is photosynthesis",
	})

	// both room members see the original, then the placeholder, then
	// the generated reply, in that order
	for _, conn := range []*websocket.Conn{alice, bob} {
		env := readWS(t, conn)
		require.Equal(t, "newMessage", env.Event)
		var chat models.Chat
		require.NoError(t, json.Unmarshal(env.Data, &chat))
		assert.Equal(t, "alice@test.com", chat.Email)
		assert.Equal(t, "@AI-Gen what is photosynthesis", chat.Message)

		env = readWS(t, conn)
		require.Equal(t, "newMessage", env.Event)
		require.NoError(t, json.Unmarshal(env.Data, &chat))
		assert.Equal(t, models.AISender, chat.Email)
		assert.Equal(t, "Generating response...", chat.Message)

		env = readWS(t, conn)
		require.Equal(t, "newMessage", env.Event)
		require.NoError(t, json.Unmarshal(env.Data, &chat))
		assert.Equal(t, models.AISender, chat.Email)
		assert.Equal(t, "Photosynthesis converts light into energy.", chat.Message)
	}
}

func TestChatNamespaceNoTriggerNoPlaceholder(t *testing.T) {
	svc := &fakeChatService{}
	srv := startChatServer(t, svc)

	conn := dialWS(t, srv, "/ws/chat")
	joinChatRoom(t, conn, 5)

	sendWS(t, conn, "sendMessage", dto.SendMessageRequest{
		Email:              "alice@test.com",
		PrivateClassroomID: 5,
		Message:            "just a regular message",
	})

	env := readWS(t, conn)
	require.Equal(t, "newMessage", env.Event)
	assertNoEvent(t, conn)
}

func TestChatNamespaceSendMessageMissingFields(t *testing.T) {
	svc := &fakeChatService{}
	srv := startChatServer(t, svc)

	conn := dialWS(t, srv, "/ws/chat")
	joinChatRoom(t, conn, 5)

	sendWS(t, conn, "sendMessage", dto.SendMessageRequest{
		PrivateClassroomID: 5,
		Message:            "no sender",
	})

	env := readWS(t, conn)
	require.Equal(t, "error", env.Event)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "All fields are required", resp.Message)
	assert.Empty(t, svc.saved)
}

func TestDecodeID(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    int64
		wantErr bool
	}{
		{name: "json number", data: `7`, want: 7},
		{name: "numeric string", data: `"7"`, want: 7},
		{name: "non-numeric string", data: `"abc"`, wantErr: true},
		{name: "object", data: `{"id":7}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeID(json.RawMessage(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoomKey(t *testing.T) {
	assert.Equal(t, "7", roomKey(7))
	assert.Equal(t, "1234567890123", roomKey(1234567890123))
}
