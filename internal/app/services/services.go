package services

import (
	"fmt"
	"time"
)

// Services defined in this package:
// - AuthService: signup, login, email verification, profile updates
// - ClassService: class catalog
// - ClassroomService: private classroom creation and lookup
// - ChatService: classroom chat persistence and AI replies
// - AnnouncementService: classroom announcements
// - AssignmentService: assignments and submissions
// - ModerationService: content appropriateness checks
// - NoteService: moderation-gated note uploads
// - RoomService: video meeting rooms
// - MeetingService: recorded meeting processing

// dateLayouts are the accepted wire formats for date fields
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02T15:04:05.000Z",
}

// parseDate parses a date string in any accepted layout
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}
