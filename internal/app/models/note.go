package models

import "time"

// Note represents an uploaded study note. Notes are created only after
// the upload pipeline approves the content; they are never updated.
type Note struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	FileURL     string    `json:"fileUrl" db:"file_url"`
	FileType    string    `json:"fileType" db:"file_type"`
	ClassroomID int64     `json:"classroomid" db:"classroom_id"`
	Email       string    `json:"email" db:"email"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
