package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/pkg/storage"
)

// systemSender posts automated classroom announcements
const systemSender = "system@edunetwork.com"

// noTranscription stands in when speech-to-text yields nothing
const noTranscription = "No transcription available"

// summaryPrompt frames the transcript for summarization
const summaryPrompt = `Please provide a concise summary of the following meeting transcript. Focus on key points, decisions made, and action items:

%s

Summary:`

// SpeechTranscriber converts recorded audio into text
type SpeechTranscriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}

// MeetingStore is the data access surface the meeting service needs
type MeetingStore interface {
	Create(ctx context.Context, meeting *models.Meeting) (int64, error)
}

// MeetingService processes uploaded meeting recordings
type MeetingService interface {
	ProcessAudio(ctx context.Context, roomID int64, audio []byte) (*dto.UploadAudioResponse, error)
}

// meetingServiceImpl implements MeetingService
type meetingServiceImpl struct {
	meetingRepo  MeetingStore
	roomRepo     RoomStore
	announcement AnnouncementService
	transcriber  SpeechTranscriber
	generator    TextGenerator
	storage      storage.ObjectStorage
	logger       zerolog.Logger
}

// NewMeetingService creates a new MeetingService
func NewMeetingService(
	meetingRepo MeetingStore,
	roomRepo RoomStore,
	announcement AnnouncementService,
	transcriber SpeechTranscriber,
	generator TextGenerator,
	objectStorage storage.ObjectStorage,
	logger zerolog.Logger,
) MeetingService {
	return &meetingServiceImpl{
		meetingRepo:  meetingRepo,
		roomRepo:     roomRepo,
		announcement: announcement,
		transcriber:  transcriber,
		generator:    generator,
		storage:      objectStorage,
		logger:       logger,
	}
}

// ProcessAudio stores the recording, transcribes it, summarizes the
// transcript and records the meeting. Summarization failures are
// swallowed: the meeting is saved without a processed transcript. The
// classroom announcement at the end is best effort.
func (s *meetingServiceImpl) ProcessAudio(ctx context.Context, roomID int64, audio []byte) (*dto.UploadAudioResponse, error) {
	now := time.Now().UnixMilli()

	audioKey := fmt.Sprintf("audio_%d.webm", now)
	audioURL, err := s.storage.UploadBytes(ctx, audioKey, audio, "audio/webm")
	if err != nil {
		return nil, fmt.Errorf("error storing audio: %w", err)
	}

	transcription, err := s.transcriber.Transcribe(ctx, audio, "audio/webm")
	if err != nil {
		return nil, fmt.Errorf("error transcribing audio: %w", err)
	}
	if transcription == "" {
		transcription = noTranscription
	}

	transcriptionKey := fmt.Sprintf("transcription_%d.txt", now)
	transcriptionURL, err := s.storage.UploadBytes(ctx, transcriptionKey, []byte(transcription), "text/plain")
	if err != nil {
		return nil, fmt.Errorf("error storing transcription: %w", err)
	}

	var processedURL *string
	summary, err := s.generator.GenerateText(ctx, fmt.Sprintf(summaryPrompt, transcription))
	if err != nil {
		s.logger.Error().Err(err).
			Int64("roomID", roomID).
			Msg("Summary generation failed, saving meeting without summary")
	} else {
		summaryKey := fmt.Sprintf("summary_%d_%d.txt", now, roomID)
		url, err := s.storage.UploadBytes(ctx, summaryKey, []byte(summary), "text/plain")
		if err != nil {
			s.logger.Error().Err(err).
				Int64("roomID", roomID).
				Msg("Summary upload failed, saving meeting without summary")
		} else {
			processedURL = &url
		}
	}

	meeting := &models.Meeting{
		RoomID:                    roomID,
		AudioURL:                  audioURL,
		TranscriptionURL:          transcriptionURL,
		ProcessedTranscriptionURL: processedURL,
	}
	if _, err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("error saving meeting: %w", err)
	}

	s.announceTranscript(ctx, roomID, processedURL)

	return &dto.UploadAudioResponse{
		Message:                   "Success",
		Transcription:             transcription,
		TranscriptionURL:          transcriptionURL,
		AudioURL:                  audioURL,
		ProcessedTranscriptionURL: processedURL,
	}, nil
}

// announceTranscript posts the summary link to the room's classroom.
// Failures are logged and never fail the upload.
func (s *meetingServiceImpl) announceTranscript(ctx context.Context, roomID int64, processedURL *string) {
	if processedURL == nil {
		return
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		s.logger.Error().Err(err).
			Int64("roomID", roomID).
			Msg("Could not load room for transcript announcement")
		return
	}
	if room.ClassroomID == nil {
		return
	}

	data := fmt.Sprintf("Meeting transcription available: %q", *processedURL)
	if _, err := s.announcement.CreateAnnouncement(ctx, *room.ClassroomID, systemSender, data); err != nil {
		s.logger.Error().Err(err).
			Int64("roomID", roomID).
			Msg("Could not post transcript announcement")
	}
}
