package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	ClassRepository        *ClassRepository
	ClassroomRepository    *ClassroomRepository
	ChatRepository         *ChatRepository
	AnnouncementRepository *AnnouncementRepository
	AssignmentRepository   *AssignmentRepository
	NoteRepository         *NoteRepository
	RoomRepository         *RoomRepository
	MeetingRepository      *MeetingRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		ClassRepository:        NewClassRepository(db),
		ClassroomRepository:    NewClassroomRepository(db),
		ChatRepository:         NewChatRepository(db),
		AnnouncementRepository: NewAnnouncementRepository(db),
		AssignmentRepository:   NewAssignmentRepository(db),
		NoteRepository:         NewNoteRepository(db),
		RoomRepository:         NewRoomRepository(db),
		MeetingRepository:      NewMeetingRepository(db),
	}
}
