package models

import "time"

// Room is an ephemeral video meeting session tied to a classroom.
// Participants is a historical roster that only grows;
// CurrentParticipants tracks who is live and shrinks on leave. The two
// are intentionally not reconciled.
type Room struct {
	ID                  int64     `json:"id" db:"id"`
	RoomName            string    `json:"roomName" db:"room_name"`
	Host                int64     `json:"host" db:"host"`
	MeetType            string    `json:"meetType" db:"meet_type"`
	MeetDate            string    `json:"meetDate" db:"meet_date"`
	MeetTime            string    `json:"meetTime" db:"meet_time"`
	ClassroomID         *int64    `json:"classroomId,omitempty" db:"classroom_id"`
	Participants        []int64   `json:"participants" db:"participants"`
	CurrentParticipants []int64   `json:"currentParticipants" db:"current_participants"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time `json:"updatedAt" db:"updated_at"`
}

// Meeting records the artifacts of a recorded-and-uploaded session
type Meeting struct {
	ID                        int64     `json:"id" db:"id"`
	RoomID                    int64     `json:"roomId" db:"room_id"`
	AudioURL                  string    `json:"audioUrl" db:"audio_url"`
	TranscriptionURL          string    `json:"transcriptionUrl" db:"transcription_url"`
	ProcessedTranscriptionURL *string   `json:"processedTranscriptionUrl,omitempty" db:"processed_transcription_url"`
	CreatedAt                 time.Time `json:"createdAt" db:"created_at"`
}
