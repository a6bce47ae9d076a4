package models

import "time"

// AISender is the reserved sender identity for generated chat replies
const AISender = "AI-Gen"

// Chat represents a single message in a private classroom chat.
// Rows are append-only.
type Chat struct {
	ID                 int64     `json:"id" db:"id"`
	PrivateClassroomID int64     `json:"privateclassroomid" db:"private_classroom_id"`
	Email              string    `json:"email" db:"email"`
	Message            string    `json:"message" db:"message"`
	Timestamp          time.Time `json:"timestamp" db:"timestamp"`
}

// Announcement represents a classroom announcement, posted either by a
// user or by the system (e.g. when a meeting transcript is ready).
type Announcement struct {
	ID                 int64     `json:"id" db:"id"`
	PrivateClassroomID int64     `json:"privateclassroomid" db:"private_classroom_id"`
	Email              string    `json:"email" db:"email"`
	AnnouncementData   string    `json:"announcementdata" db:"announcement_data"`
	Timestamp          time.Time `json:"timestamp" db:"timestamp"`
}
