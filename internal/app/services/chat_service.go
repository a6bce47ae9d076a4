package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// AITrigger is the substring that requests a generated reply
const AITrigger = "@AI-Gen"

// aiPromptSuffix keeps generated replies short enough for a chat bubble
const aiPromptSuffix = " Keep your answer under 50 words"

// aiFallbackReply is persisted when generation fails
const aiFallbackReply = "Unable to generate response."

// ChatStore is the data access surface the chat service needs
type ChatStore interface {
	Create(ctx context.Context, chat *models.Chat) (int64, error)
	GetByClassroomID(ctx context.Context, classroomID int64) ([]*models.Chat, error)
}

// TextGenerator produces text completions for a prompt
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ChatService defines the interface for chat operations
type ChatService interface {
	History(ctx context.Context, classroomID int64) ([]*models.Chat, error)
	FetchChats(ctx context.Context, classroomID int64) ([]*models.Chat, error)
	SaveMessage(ctx context.Context, email string, classroomID int64, message string) (*models.Chat, error)
	HasTrigger(message string) bool
	GenerateReply(ctx context.Context, classroomID int64, message string) (*models.Chat, error)
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	chatRepo  ChatStore
	generator TextGenerator
	logger    zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(chatRepo ChatStore, generator TextGenerator, logger zerolog.Logger) ChatService {
	return &chatServiceImpl{
		chatRepo:  chatRepo,
		generator: generator,
		logger:    logger,
	}
}

// History returns all messages for a classroom, oldest first. An empty
// room yields an empty history, not an error.
func (s *chatServiceImpl) History(ctx context.Context, classroomID int64) ([]*models.Chat, error) {
	chats, err := s.chatRepo.GetByClassroomID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if chats == nil {
		chats = []*models.Chat{}
	}
	return chats, nil
}

// FetchChats returns a classroom's messages for the REST endpoint,
// reporting not-found when there are none
func (s *chatServiceImpl) FetchChats(ctx context.Context, classroomID int64) ([]*models.Chat, error) {
	chats, err := s.chatRepo.GetByClassroomID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if len(chats) == 0 {
		return nil, apperrors.NewNotFoundError("No chats found for the given PrivateClassroomID")
	}
	return chats, nil
}

// SaveMessage validates and persists a user message
func (s *chatServiceImpl) SaveMessage(ctx context.Context, email string, classroomID int64, message string) (*models.Chat, error) {
	if email == "" || classroomID == 0 || message == "" {
		return nil, apperrors.ErrChatFieldsRequired
	}

	chat := &models.Chat{
		PrivateClassroomID: classroomID,
		Email:              email,
		Message:            message,
	}

	if _, err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

// HasTrigger reports whether a message asks for a generated reply
func (s *chatServiceImpl) HasTrigger(message string) bool {
	return strings.Contains(message, AITrigger)
}

// GenerateReply produces an AI reply for a triggering message and
// persists it under the reserved sender. Generation failures fall back
// to a fixed reply; the reply record is always written.
func (s *chatServiceImpl) GenerateReply(ctx context.Context, classroomID int64, message string) (*models.Chat, error) {
	prompt := strings.TrimSpace(strings.ReplaceAll(message, AITrigger, ""))
	prompt += aiPromptSuffix

	reply, err := s.generator.GenerateText(ctx, prompt)
	if err != nil || reply == "" {
		s.logger.Error().Err(err).
			Int64("classroomID", classroomID).
			Msg("AI reply generation failed, using fallback")
		reply = aiFallbackReply
	}

	chat := &models.Chat{
		PrivateClassroomID: classroomID,
		Email:              models.AISender,
		Message:            reply,
	}

	if _, err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}
