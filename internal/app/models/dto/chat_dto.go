package dto

// SendMessageRequest is the payload for POST /sendMessage and for the
// websocket sendMessage event
type SendMessageRequest struct {
	Email              string `json:"email"`
	PrivateClassroomID int64  `json:"privateclassroomid"`
	Message            string `json:"message"`
}

// FetchChatsRequest is the payload for POST /fetchChats
type FetchChatsRequest struct {
	PrivateClassroomID int64 `json:"privateclassroomid"`
}

// SendMessageResponse carries the id of the persisted chat message
type SendMessageResponse struct {
	Message string `json:"message"`
	ChatID  int64  `json:"chatId"`
}

// CreateAnnouncementRequest is the payload for POST /createAnnouncement
type CreateAnnouncementRequest struct {
	PrivateClassroomID int64  `json:"privateclassroomid"`
	AnnouncementData   string `json:"announcementdata"`
	Email              string `json:"email"`
}

// GetAnnouncementsRequest is the payload for POST /getAnnouncements
type GetAnnouncementsRequest struct {
	PrivateClassroomID int64 `json:"privateclassroomid"`
}
