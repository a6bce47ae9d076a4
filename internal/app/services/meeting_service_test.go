package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunet/edunet/internal/app/models"
)

type fakeMeetingStore struct {
	meetings []*models.Meeting
}

func (f *fakeMeetingStore) Create(_ context.Context, meeting *models.Meeting) (int64, error) {
	meeting.ID = int64(len(f.meetings) + 1)
	f.meetings = append(f.meetings, meeting)
	return meeting.ID, nil
}

type fakeAnnouncer struct {
	posted []*models.Announcement
	err    error
}

func (f *fakeAnnouncer) CreateAnnouncement(_ context.Context, classroomID int64, email, data string) (*models.Announcement, error) {
	if f.err != nil {
		return nil, f.err
	}
	announcement := &models.Announcement{
		PrivateClassroomID: classroomID,
		Email:              email,
		AnnouncementData:   data,
	}
	f.posted = append(f.posted, announcement)
	return announcement, nil
}

func (f *fakeAnnouncer) GetAnnouncements(_ context.Context, _ int64) ([]*models.Announcement, error) {
	return f.posted, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type meetingFixture struct {
	meetings    *fakeMeetingStore
	rooms       *fakeRoomStore
	announcer   *fakeAnnouncer
	transcriber *fakeTranscriber
	generator   *fakeGenerator
	storage     *fakeStorage
	svc         MeetingService
}

func newMeetingFixture(transcriber *fakeTranscriber, generator *fakeGenerator) *meetingFixture {
	f := &meetingFixture{
		meetings:    &fakeMeetingStore{},
		rooms:       newFakeRoomStore(),
		announcer:   &fakeAnnouncer{},
		transcriber: transcriber,
		generator:   generator,
		storage:     &fakeStorage{},
	}
	classroomID := int64(5)
	f.rooms.rooms[1] = &models.Room{ID: 1, ClassroomID: &classroomID}
	f.svc = NewMeetingService(f.meetings, f.rooms, f.announcer, transcriber, generator, f.storage, zerolog.Nop())
	return f
}

func TestMeetingServiceProcessAudio(t *testing.T) {
	f := newMeetingFixture(
		&fakeTranscriber{text: "we agreed to meet friday"},
		&fakeGenerator{reply: "Meet on Friday."},
	)

	resp, err := f.svc.ProcessAudio(context.Background(), 1, []byte("webm-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "Success", resp.Message)
	assert.Equal(t, "we agreed to meet friday", resp.Transcription)
	require.NotNil(t, resp.ProcessedTranscriptionURL)

	require.Len(t, f.storage.keys, 3)
	assert.True(t, strings.HasPrefix(f.storage.keys[0], "audio_"))
	assert.True(t, strings.HasSuffix(f.storage.keys[0], ".webm"))
	assert.True(t, strings.HasPrefix(f.storage.keys[1], "transcription_"))
	assert.True(t, strings.HasPrefix(f.storage.keys[2], "summary_"))
	assert.True(t, strings.HasSuffix(f.storage.keys[2], "_1.txt"))

	require.Len(t, f.meetings.meetings, 1)
	meeting := f.meetings.meetings[0]
	assert.Equal(t, int64(1), meeting.RoomID)
	assert.NotNil(t, meeting.ProcessedTranscriptionURL)

	// the summary link lands in the room's classroom as a system post
	require.Len(t, f.announcer.posted, 1)
	post := f.announcer.posted[0]
	assert.Equal(t, int64(5), post.PrivateClassroomID)
	assert.Equal(t, "system@edunetwork.com", post.Email)
	assert.Contains(t, post.AnnouncementData, "Meeting transcription available: ")
	assert.Contains(t, post.AnnouncementData, *resp.ProcessedTranscriptionURL)
}

func TestMeetingServiceProcessAudioEmptyTranscript(t *testing.T) {
	f := newMeetingFixture(&fakeTranscriber{text: ""}, &fakeGenerator{reply: "Nothing discussed."})

	resp, err := f.svc.ProcessAudio(context.Background(), 1, []byte("webm-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "No transcription available", resp.Transcription)
}

func TestMeetingServiceProcessAudioSummaryFailure(t *testing.T) {
	f := newMeetingFixture(
		&fakeTranscriber{text: "we agreed to meet friday"},
		&fakeGenerator{err: errors.New("model overloaded")},
	)

	resp, err := f.svc.ProcessAudio(context.Background(), 1, []byte("webm-bytes"))
	require.NoError(t, err)

	assert.Nil(t, resp.ProcessedTranscriptionURL)
	require.Len(t, f.meetings.meetings, 1)
	assert.Nil(t, f.meetings.meetings[0].ProcessedTranscriptionURL)

	// no summary means no classroom announcement
	assert.Empty(t, f.announcer.posted)
}

func TestMeetingServiceProcessAudioNoClassroom(t *testing.T) {
	f := newMeetingFixture(
		&fakeTranscriber{text: "we agreed to meet friday"},
		&fakeGenerator{reply: "Meet on Friday."},
	)
	f.rooms.rooms[1].ClassroomID = nil

	resp, err := f.svc.ProcessAudio(context.Background(), 1, []byte("webm-bytes"))
	require.NoError(t, err)
	assert.NotNil(t, resp.ProcessedTranscriptionURL)
	assert.Empty(t, f.announcer.posted)
}

func TestMeetingServiceProcessAudioTranscribeFailure(t *testing.T) {
	f := newMeetingFixture(
		&fakeTranscriber{err: errors.New("deepgram unavailable")},
		&fakeGenerator{reply: "unused"},
	)

	_, err := f.svc.ProcessAudio(context.Background(), 1, []byte("webm-bytes"))
	require.Error(t, err)
	assert.Empty(t, f.meetings.meetings)
}

func TestMeetingServiceProcessAudioAnnouncementFailureIsSwallowed(t *testing.T) {
	f := newMeetingFixture(
		&fakeTranscriber{text: "we agreed to meet friday"},
		&fakeGenerator{reply: "Meet on Friday."},
	)
	f.announcer.err = errors.New("insert failed")

	resp, err := f.svc.ProcessAudio(context.Background(), 1, []byte("webm-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "Success", resp.Message)
}
