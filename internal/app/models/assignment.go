package models

import "time"

// Assignment represents an assignment created by a teacher
type Assignment struct {
	ID                 int64     `json:"id" db:"id"`
	PrivateClassroomID int64     `json:"privateclassroomid" db:"private_classroom_id"`
	Email              string    `json:"email" db:"email"`
	Title              string    `json:"title" db:"title"`
	Desc               string    `json:"desc" db:"description"`
	DueDate            time.Time `json:"duedate" db:"due_date"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

// AssignmentSubmission holds a student's submission. The file payload is
// stored base64-encoded as text, matching the existing data format.
type AssignmentSubmission struct {
	ID           int64     `json:"id" db:"id"`
	AssignmentID int64     `json:"assignmentid" db:"assignment_id"`
	Email        string    `json:"email" db:"email"`
	Description  string    `json:"description" db:"description"`
	Base64String string    `json:"base64string" db:"base64_string"`
	FileType     string    `json:"filetype" db:"file_type"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
}
