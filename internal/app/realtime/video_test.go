package realtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/app/services"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

type fakeRoomService struct {
	mu         sync.Mutex
	rooms      map[int64]*models.Room
	names      map[string]string
	namesErr   error
	leaveCalls int
	nextID     int64
}

func newFakeRoomService() *fakeRoomService {
	return &fakeRoomService{rooms: make(map[int64]*models.Room)}
}

func (f *fakeRoomService) CreateRoom(_ context.Context, host int64, roomName, meetType, meetDate, meetTime string, classroomID *int64) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	room := &models.Room{
		ID:                  f.nextID,
		RoomName:            roomName,
		Host:                host,
		MeetType:            meetType,
		MeetDate:            meetDate,
		MeetTime:            meetTime,
		ClassroomID:         classroomID,
		Participants:        []int64{},
		CurrentParticipants: []int64{},
	}
	f.rooms[room.ID] = room
	return room, nil
}

func (f *fakeRoomService) RoomExists(_ context.Context, roomID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rooms[roomID]
	return ok, nil
}

func (f *fakeRoomService) GetRoom(_ context.Context, roomID int64) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	return room, nil
}

func (f *fakeRoomService) JoinRoom(_ context.Context, roomID, userID int64) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	room.Participants = addUnique(room.Participants, userID)
	room.CurrentParticipants = addUnique(room.CurrentParticipants, userID)
	return room, nil
}

func (f *fakeRoomService) LeaveRoom(_ context.Context, roomID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leaveCalls++
	room, ok := f.rooms[roomID]
	if !ok {
		return apperrors.ErrRoomNotFound
	}
	remaining := room.CurrentParticipants[:0]
	for _, id := range room.CurrentParticipants {
		if id != userID {
			remaining = append(remaining, id)
		}
	}
	room.CurrentParticipants = remaining
	return nil
}

func (f *fakeRoomService) Participants(_ context.Context, roomID int64) (string, map[string]string, error) {
	if f.namesErr != nil {
		return "", nil, f.namesErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[roomID]
	if !ok {
		return "", nil, apperrors.ErrRoomNotFound
	}
	return room.RoomName, f.names, nil
}

func addUnique(ids []int64, id int64) []int64 {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func (f *fakeRoomService) leaveCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.leaveCalls
}

func (f *fakeRoomService) rosterOf(t *testing.T, roomID int64) ([]int64, []int64) {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[roomID]
	require.True(t, ok)
	return append([]int64(nil), room.Participants...), append([]int64(nil), room.CurrentParticipants...)
}

// awaitDispatch round-trips a get-participants request. Events from one
// connection are dispatched in order, so the reply proves every earlier
// event was fully handled.
func awaitDispatch(t *testing.T, conn *websocket.Conn, roomID int64) {
	t.Helper()
	sendWS(t, conn, "get-participants", map[string]int64{"roomId": roomID})
	require.Equal(t, "participants-list", readWS(t, conn).Event)
}

func startVideoServer(t *testing.T, svc services.RoomService) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ns := NewVideoNamespace(svc, zerolog.Nop())
	go ns.Run()
	router := gin.New()
	router.GET("/ws/video", ns.HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestVideoNamespaceCreateRoom(t *testing.T) {
	svc := newFakeRoomService()
	srv := startVideoServer(t, svc)

	conn := dialWS(t, srv, "/ws/video")
	sendWS(t, conn, "create-room", map[string]interface{}{
		"userId":      int64(7),
		"roomName":    "Study Group",
		"newMeetType": "instant",
	})

	env := readWS(t, conn)
	require.Equal(t, "room-created", env.Event)
	var created struct {
		RoomID   int64  `json:"roomId"`
		MeetType string `json:"meetType"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, int64(1), created.RoomID)
	assert.Equal(t, "instant", created.MeetType)

	sendWS(t, conn, "user-code-join", map[string]int64{"roomId": created.RoomID})
	assert.Equal(t, "room-exists", readWS(t, conn).Event)

	sendWS(t, conn, "user-code-join", map[string]int64{"roomId": 999})
	assert.Equal(t, "room-not-exist", readWS(t, conn).Event)
}

func TestVideoNamespaceJoinRoom(t *testing.T) {
	svc := newFakeRoomService()
	svc.rooms[1] = &models.Room{ID: 1, RoomName: "Study Group", Host: 7}
	srv := startVideoServer(t, svc)

	alice := dialWS(t, srv, "/ws/video")
	sendWS(t, alice, "join-room", map[string]int64{"roomId": 1, "userId": 7})
	// the joiner itself gets no user-joined echo, so the next event is
	// the barrier reply
	awaitDispatch(t, alice, 1)

	bob := dialWS(t, srv, "/ws/video")
	sendWS(t, bob, "join-room", map[string]int64{"roomId": 1, "userId": 8})

	env := readWS(t, alice)
	require.Equal(t, "user-joined", env.Event)
	var joined struct {
		UserID int64 `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &joined))
	assert.Equal(t, int64(8), joined.UserID)
	assertNoEvent(t, bob)

	// rejoining keeps the rosters deduplicated
	sendWS(t, bob, "join-room", map[string]int64{"roomId": 1, "userId": 8})
	require.Equal(t, "user-joined", readWS(t, alice).Event)

	participants, current := svc.rosterOf(t, 1)
	assert.Equal(t, []int64{7, 8}, participants)
	assert.Equal(t, []int64{7, 8}, current)
}

func TestVideoNamespaceLeaveAndDisconnect(t *testing.T) {
	svc := newFakeRoomService()
	svc.rooms[1] = &models.Room{ID: 1, RoomName: "Study Group", Host: 7}
	srv := startVideoServer(t, svc)

	alice := dialWS(t, srv, "/ws/video")
	sendWS(t, alice, "join-room", map[string]int64{"roomId": 1, "userId": 7})
	awaitDispatch(t, alice, 1)
	bob := dialWS(t, srv, "/ws/video")
	sendWS(t, bob, "join-room", map[string]int64{"roomId": 1, "userId": 8})
	require.Equal(t, "user-joined", readWS(t, alice).Event)

	// an orderly exit leaves the historical roster intact
	sendWS(t, bob, "user-left-room", map[string]int64{"roomId": 1, "userId": 8})
	awaitDispatch(t, bob, 1)
	participants, current := svc.rosterOf(t, 1)
	assert.Equal(t, []int64{7, 8}, participants)
	assert.Equal(t, []int64{7}, current)

	// a dropped connection is removed from the live roster too
	alice.Close()
	assert.Eventually(t, func() bool {
		_, current := svc.rosterOf(t, 1)
		return len(current) == 0
	}, 2*time.Second, 10*time.Millisecond)

	// bob already left the room, so closing is not another leave
	leavesBefore := svc.leaveCallCount()
	bob.Close()
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, leavesBefore, svc.leaveCallCount())
}

func TestVideoNamespaceParticipants(t *testing.T) {
	svc := newFakeRoomService()
	svc.rooms[1] = &models.Room{ID: 1, RoomName: "Study Group", Host: 7}
	svc.names = map[string]string{"7": "Alice", "8": "Bob"}
	srv := startVideoServer(t, svc)

	conn := dialWS(t, srv, "/ws/video")
	sendWS(t, conn, "get-participants", map[string]int64{"roomId": 1})

	env := readWS(t, conn)
	require.Equal(t, "participants-list", env.Event)
	var resp struct {
		Usernames map[string]string `json:"usernames"`
		RoomName  string            `json:"roomName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "Study Group", resp.RoomName)
	assert.Equal(t, map[string]string{"7": "Alice", "8": "Bob"}, resp.Usernames)

	// a failed lookup is logged, not answered
	svc.namesErr = assert.AnError
	sendWS(t, conn, "get-participants", map[string]int64{"roomId": 1})
	assertNoEvent(t, conn)
}

func TestVideoNamespaceNewChat(t *testing.T) {
	svc := newFakeRoomService()
	svc.rooms[1] = &models.Room{ID: 1, RoomName: "Study Group", Host: 7}
	srv := startVideoServer(t, svc)

	alice := dialWS(t, srv, "/ws/video")
	sendWS(t, alice, "join-room", map[string]int64{"roomId": 1, "userId": 7})
	awaitDispatch(t, alice, 1)
	bob := dialWS(t, srv, "/ws/video")
	sendWS(t, bob, "join-room", map[string]int64{"roomId": 1, "userId": 8})
	require.Equal(t, "user-joined", readWS(t, alice).Event)

	sendWS(t, bob, "new-chat", map[string]interface{}{"msg": "hello all", "roomId": int64(1)})

	env := readWS(t, alice)
	require.Equal(t, "new-chat-arrived", env.Event)
	var chat struct {
		Msg  string `json:"msg"`
		Room int64  `json:"room"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &chat))
	assert.Equal(t, "hello all", chat.Msg)
	assert.Equal(t, int64(1), chat.Room)
	assertNoEvent(t, bob)
}
