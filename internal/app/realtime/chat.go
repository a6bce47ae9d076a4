package realtime

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/app/services"
	"github.com/edunet/edunet/internal/pkg/apperrors"
	"github.com/edunet/edunet/internal/pkg/ws"
)

// aiReplyTimeout bounds the detached generation call so an unresponsive
// gateway cannot leak goroutines forever
const aiReplyTimeout = 2 * time.Minute

// ChatNamespace relays classroom chat over websocket. Rooms are keyed
// by private classroom ID.
type ChatNamespace struct {
	hub    *ws.Hub
	chats  services.ChatService
	logger zerolog.Logger
}

// NewChatNamespace creates the chat namespace with its own hub
func NewChatNamespace(chats services.ChatService, logger zerolog.Logger) *ChatNamespace {
	return &ChatNamespace{
		hub:    ws.NewHub(logger),
		chats:  chats,
		logger: logger,
	}
}

// Run starts the namespace hub. Blocks; run in a goroutine.
func (n *ChatNamespace) Run() {
	n.hub.Run()
}

// HandleConnection upgrades the request and serves chat events
func (n *ChatNamespace) HandleConnection(c *gin.Context) {
	ws.Serve(n.hub, c, n.dispatch, nil, n.logger)
}

func (n *ChatNamespace) dispatch(client *ws.Client, event string, data json.RawMessage) {
	switch event {
	case "joinRoom":
		n.handleJoinRoom(client, data)
	case "sendMessage":
		n.handleSendMessage(client, data)
	default:
		n.logger.Debug().
			Str("event", event).
			Msg("Ignoring unknown chat event")
	}
}

// handleJoinRoom subscribes the client and replies with the room's
// history, oldest first. History errors go to the caller only.
func (n *ChatNamespace) handleJoinRoom(client *ws.Client, data json.RawMessage) {
	classroomID, err := decodeID(data)
	if err != nil {
		client.Emit("error", dto.NewError("Invalid classroom ID"))
		return
	}

	n.hub.Join(client, roomKey(classroomID))

	history, err := n.chats.History(context.Background(), classroomID)
	if err != nil {
		n.logger.Error().Err(err).
			Int64("classroomID", classroomID).
			Msg("Failed to fetch chat history")
		client.Emit("error", dto.NewErrorWithCause("Error fetching chat history", err))
		return
	}

	client.Emit("chatHistory", history)
}

// handleSendMessage persists the message and broadcasts it to the room,
// including the sender. A trigger in the message text starts the AI
// reply flow: a placeholder goes out immediately, the generated reply
// follows when it is ready.
func (n *ChatNamespace) handleSendMessage(client *ws.Client, data json.RawMessage) {
	var req dto.SendMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		client.Emit("error", dto.NewError("All fields are required"))
		return
	}

	chat, err := n.chats.SaveMessage(context.Background(), req.Email, req.PrivateClassroomID, req.Message)
	if err != nil {
		if err == apperrors.ErrChatFieldsRequired {
			client.Emit("error", dto.NewError("All fields are required"))
			return
		}
		n.logger.Error().Err(err).
			Int64("classroomID", req.PrivateClassroomID).
			Msg("Failed to save chat message")
		client.Emit("error", dto.NewErrorWithCause("Error saving message", err))
		return
	}

	room := roomKey(req.PrivateClassroomID)
	n.hub.BroadcastToRoom(room, "newMessage", chat, nil)

	if !n.chats.HasTrigger(req.Message) {
		return
	}

	placeholder := &models.Chat{
		PrivateClassroomID: req.PrivateClassroomID,
		Email:              models.AISender,
		Message:            "Generating response...",
	}
	n.hub.BroadcastToRoom(room, "newMessage", placeholder, nil)

	go n.generateReply(req.PrivateClassroomID, req.Message)
}

func (n *ChatNamespace) generateReply(classroomID int64, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), aiReplyTimeout)
	defer cancel()

	reply, err := n.chats.GenerateReply(ctx, classroomID, message)
	if err != nil {
		n.logger.Error().Err(err).
			Int64("classroomID", classroomID).
			Msg("Failed to persist AI reply")
		return
	}

	n.hub.BroadcastToRoom(roomKey(classroomID), "newMessage", reply, nil)
}

// roomKey names the hub room for a classroom
func roomKey(classroomID int64) string {
	return strconv.FormatInt(classroomID, 10)
}

// decodeID accepts an ID sent as a JSON number or string
func decodeID(data json.RawMessage) (int64, error) {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		return id, nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, 64)
}
