package dto

// UploadNoteRequest carries a note upload through the moderation-gated
// pipeline. The controller fills the file fields from the multipart part.
type UploadNoteRequest struct {
	Title       string
	Content     string
	ClassroomID int64
	Email       string
	FileName    string
	FileType    string
	FileSize    int64
	FileData    []byte
}

// GetNotesRequest is the payload for POST /getnotes
type GetNotesRequest struct {
	ClassroomID int64 `json:"classroomid"`
}

// UploadNoteResponse is the 201 body for POST /notes
type UploadNoteResponse struct {
	Message string      `json:"message"`
	Note    interface{} `json:"note"`
	Status  string      `json:"status"`
}

// RejectedNoteResponse is the 400 body when moderation rejects content
type RejectedNoteResponse struct {
	Message string `json:"message"`
	Reason  string `json:"reason"`
	Details string `json:"details"`
}
