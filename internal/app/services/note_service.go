package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/pkg/apperrors"
	"github.com/edunet/edunet/internal/pkg/storage"
)

// maxNoteFileSize caps uploads at 10MB
const maxNoteFileSize = 10 * 1024 * 1024

// NoteStore is the data access surface the note service needs
type NoteStore interface {
	Create(ctx context.Context, note *models.Note) (int64, error)
	GetByClassroomID(ctx context.Context, classroomID int64) ([]*models.Note, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
}

// PDFTextExtractor extracts plain text from PDF bytes
type PDFTextExtractor interface {
	ExtractText(content []byte) (string, error)
}

// NoteService defines the interface for the note upload pipeline
type NoteService interface {
	UploadNote(ctx context.Context, req *dto.UploadNoteRequest) (*models.Note, error)
	GetNotes(ctx context.Context, classroomID int64) ([]*models.Note, error)
	GetNoteFile(ctx context.Context, noteID int64) (*models.Note, error)
}

// noteServiceImpl implements NoteService
type noteServiceImpl struct {
	noteRepo      NoteStore
	extractor     PDFTextExtractor
	moderation    ModerationService
	storage       storage.ObjectStorage
	filterEnabled bool
	logger        zerolog.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(
	noteRepo NoteStore,
	extractor PDFTextExtractor,
	moderation ModerationService,
	objectStorage storage.ObjectStorage,
	filterEnabled bool,
	logger zerolog.Logger,
) NoteService {
	return &noteServiceImpl{
		noteRepo:      noteRepo,
		extractor:     extractor,
		moderation:    moderation,
		storage:       objectStorage,
		filterEnabled: filterEnabled,
		logger:        logger,
	}
}

// UploadNote runs the gated pipeline: validate, extract text, moderate,
// store, persist. Uploads stop at the first failing stage; storage is
// never reached for rejected content.
func (s *noteServiceImpl) UploadNote(ctx context.Context, req *dto.UploadNoteRequest) (*models.Note, error) {
	if req.Title == "" || req.ClassroomID == 0 || req.Email == "" {
		return nil, apperrors.NewBadRequestError("Title, classroom ID, and email are required")
	}
	if len(req.FileData) == 0 {
		return nil, apperrors.NewBadRequestError("No file uploaded")
	}
	if req.FileSize > maxNoteFileSize {
		return nil, apperrors.NewBadRequestError("File size too large. Maximum size is 10MB")
	}
	if req.FileType != "application/pdf" {
		return nil, apperrors.NewBadRequestError("Only PDF files are allowed for note uploads.")
	}

	// Extraction is best effort; moderation falls back to title and
	// description when the PDF cannot be parsed
	fileText, err := s.extractor.ExtractText(req.FileData)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("file", req.FileName).
			Msg("Could not extract PDF text, checking title and description only")
		fileText = ""
	}

	if s.filterEnabled {
		fullContent := fmt.Sprintf("%s\n\nFile content:\n%s", req.Content, fileText)
		result := s.moderation.CheckContent(ctx, req.Title, fullContent)
		if !result.Appropriate {
			s.logger.Info().
				Str("title", req.Title).
				Str("verdict", result.Code).
				Msg("Note rejected by content filter")
			return nil, &apperrors.ContentRejectedError{
				Reason:  result.Code,
				Details: "Please review your content and ensure it meets educational standards before resubmitting.",
			}
		}
	} else {
		s.logger.Warn().Msg("Content filter disabled")
	}

	key := fmt.Sprintf("note_%d_%s", time.Now().UnixMilli(), req.FileName)
	fileURL, err := s.storage.UploadBytes(ctx, key, req.FileData, req.FileType)
	if err != nil {
		return nil, fmt.Errorf("error uploading note file: %w", err)
	}

	note := &models.Note{
		Title:       req.Title,
		Content:     req.Content,
		FileURL:     fileURL,
		FileType:    req.FileType,
		ClassroomID: req.ClassroomID,
		Email:       req.Email,
	}

	if _, err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// GetNotes returns a classroom's notes, newest first
func (s *noteServiceImpl) GetNotes(ctx context.Context, classroomID int64) ([]*models.Note, error) {
	notes, err := s.noteRepo.GetByClassroomID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, apperrors.NewNotFoundError("No notes found")
	}
	return notes, nil
}

// GetNoteFile returns a note that has a stored file, for serving
func (s *noteServiceImpl) GetNoteFile(ctx context.Context, noteID int64) (*models.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.FileURL == "" {
		return nil, apperrors.ErrFileNotFound
	}
	return note, nil
}
