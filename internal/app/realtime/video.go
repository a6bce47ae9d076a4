package realtime

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/services"
	"github.com/edunet/edunet/internal/pkg/ws"
)

// VideoNamespace coordinates video meeting rooms: creation, admission,
// roster tracking and ephemeral in-meeting chat. Media never flows
// through the server; peers connect directly.
type VideoNamespace struct {
	hub    *ws.Hub
	rooms  services.RoomService
	logger zerolog.Logger
}

// NewVideoNamespace creates the video namespace with its own hub
func NewVideoNamespace(rooms services.RoomService, logger zerolog.Logger) *VideoNamespace {
	return &VideoNamespace{
		hub:    ws.NewHub(logger),
		rooms:  rooms,
		logger: logger,
	}
}

// Run starts the namespace hub. Blocks; run in a goroutine.
func (n *VideoNamespace) Run() {
	n.hub.Run()
}

// HandleConnection upgrades the request and serves video room events
func (n *VideoNamespace) HandleConnection(c *gin.Context) {
	ws.Serve(n.hub, c, n.dispatch, n.handleDisconnect, n.logger)
}

// handleDisconnect drops a vanished client from its room's live
// roster, the same cleanup user-left-room performs for an orderly exit
func (n *VideoNamespace) handleDisconnect(client *ws.Client) {
	roomID, err := strconv.ParseInt(client.Get("roomId"), 10, 64)
	if err != nil {
		return
	}
	userID, err := strconv.ParseInt(client.Get("userId"), 10, 64)
	if err != nil {
		return
	}

	if err := n.rooms.LeaveRoom(context.Background(), roomID, userID); err != nil {
		n.logger.Error().Err(err).
			Int64("roomID", roomID).
			Int64("userID", userID).
			Msg("Failed to remove disconnected user from room")
	}
}

func (n *VideoNamespace) dispatch(client *ws.Client, event string, data json.RawMessage) {
	switch event {
	case "create-room":
		n.handleCreateRoom(client, data)
	case "user-code-join":
		n.handleUserCodeJoin(client, data)
	case "request-to-join-room":
		n.handleRequestToJoin(client, data)
	case "join-room":
		n.handleJoinRoom(client, data)
	case "user-left-room":
		n.handleUserLeftRoom(client, data)
	case "get-participants":
		n.handleGetParticipants(client, data)
	case "new-chat":
		n.handleNewChat(client, data)
	default:
		n.logger.Debug().
			Str("event", event).
			Msg("Ignoring unknown video event")
	}
}

type createRoomPayload struct {
	UserID      int64  `json:"userId"`
	RoomName    string `json:"roomName"`
	MeetType    string `json:"newMeetType"`
	MeetDate    string `json:"newMeetDate"`
	MeetTime    string `json:"newMeetTime"`
	ClassroomID *int64 `json:"classroomId"`
}

func (n *VideoNamespace) handleCreateRoom(client *ws.Client, data json.RawMessage) {
	var req createRoomPayload
	if err := json.Unmarshal(data, &req); err != nil {
		n.logger.Warn().Err(err).Msg("Malformed create-room payload")
		return
	}

	room, err := n.rooms.CreateRoom(context.Background(), req.UserID, req.RoomName, req.MeetType, req.MeetDate, req.MeetTime, req.ClassroomID)
	if err != nil {
		n.logger.Error().Err(err).
			Int64("host", req.UserID).
			Msg("Failed to create room")
		return
	}

	client.Emit("room-created", gin.H{"roomId": room.ID, "meetType": room.MeetType})
}

type roomUserPayload struct {
	RoomID int64 `json:"roomId"`
	UserID int64 `json:"userId"`
}

func (n *VideoNamespace) handleUserCodeJoin(client *ws.Client, data json.RawMessage) {
	var req roomUserPayload
	if err := json.Unmarshal(data, &req); err != nil {
		client.Emit("room-not-exist", nil)
		return
	}

	exists, err := n.rooms.RoomExists(context.Background(), req.RoomID)
	if err != nil {
		n.logger.Error().Err(err).
			Int64("roomID", req.RoomID).
			Msg("Failed to look up room")
		client.Emit("room-not-exist", nil)
		return
	}

	if exists {
		client.Emit("room-exists", gin.H{"roomId": req.RoomID})
	} else {
		client.Emit("room-not-exist", nil)
	}
}

// handleRequestToJoin admits the host directly; everyone else is
// announced to the room so the host can let them in
func (n *VideoNamespace) handleRequestToJoin(client *ws.Client, data json.RawMessage) {
	var req roomUserPayload
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	room, err := n.rooms.GetRoom(context.Background(), req.RoomID)
	if err != nil {
		n.logger.Error().Err(err).
			Int64("roomID", req.RoomID).
			Msg("Failed to look up room for join request")
		return
	}

	if room.Host == req.UserID {
		client.Emit("join-room", gin.H{"roomId": req.RoomID, "userId": req.UserID})
		return
	}

	n.hub.BroadcastToRoom(roomKey(req.RoomID), "user-requested-to-join", gin.H{
		"participantId": req.UserID,
		"hostId":        room.Host,
	}, client)
}

func (n *VideoNamespace) handleJoinRoom(client *ws.Client, data json.RawMessage) {
	var req roomUserPayload
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	if _, err := n.rooms.JoinRoom(context.Background(), req.RoomID, req.UserID); err != nil {
		n.logger.Error().Err(err).
			Int64("roomID", req.RoomID).
			Int64("userID", req.UserID).
			Msg("Failed to join room")
		return
	}

	n.hub.Join(client, roomKey(req.RoomID))
	client.Set("roomId", strconv.FormatInt(req.RoomID, 10))
	client.Set("userId", strconv.FormatInt(req.UserID, 10))
	n.hub.BroadcastToRoom(roomKey(req.RoomID), "user-joined", gin.H{"userId": req.UserID}, client)
}

func (n *VideoNamespace) handleUserLeftRoom(client *ws.Client, data json.RawMessage) {
	var req roomUserPayload
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	if err := n.rooms.LeaveRoom(context.Background(), req.RoomID, req.UserID); err != nil {
		n.logger.Error().Err(err).
			Int64("roomID", req.RoomID).
			Int64("userID", req.UserID).
			Msg("Failed to leave room")
	}

	n.hub.Leave(client, roomKey(req.RoomID))
	client.Set("roomId", "")
}

func (n *VideoNamespace) handleGetParticipants(client *ws.Client, data json.RawMessage) {
	var req roomUserPayload
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	roomName, usernames, err := n.rooms.Participants(context.Background(), req.RoomID)
	if err != nil {
		n.logger.Error().Err(err).
			Int64("roomID", req.RoomID).
			Msg("Failed to fetch participants")
		return
	}

	client.Emit("participants-list", gin.H{"usernames": usernames, "roomName": roomName})
}

type newChatPayload struct {
	Msg    string `json:"msg"`
	RoomID int64  `json:"roomId"`
}

// handleNewChat relays in-meeting chat to the other room members.
// These messages are never persisted.
func (n *VideoNamespace) handleNewChat(client *ws.Client, data json.RawMessage) {
	var req newChatPayload
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	n.hub.BroadcastToRoom(roomKey(req.RoomID), "new-chat-arrived", gin.H{
		"msg":  req.Msg,
		"room": req.RoomID,
	}, client)
}
