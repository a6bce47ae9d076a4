package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Moderation result codes
const (
	ModerationAppropriate   = "APPROPRIATE"
	ModerationInappropriate = "INAPPROPRIATE"
	// ModerationAPIErrorAllowed is recorded when the gateway is
	// unreachable and content is allowed through
	ModerationAPIErrorAllowed = "API_ERROR_ALLOWED"
)

// moderationPrompt instructs the model to answer with a single verdict token
const moderationPrompt = `You are reviewing content for an educational platform. Allow educational content but block scams and inappropriate material.

Title: %q
Content: %q

Respond with ONLY one word:
- "APPROPRIATE" for legitimate educational content: study materials, course notes, assignments, academic topics, research, textbooks, lecture notes, etc.

- "INAPPROPRIATE" for harmful content including:
  * SCAMS: "You've won", "congratulations you've been selected", "claim your prize", "click this link", "limited time offer", "act now", "100%% guaranteed", "once in a lifetime opportunity", fake giveaways, suspicious links
  * SPAM: Promotional content, advertisements, marketing schemes, MLM content
  * EXPLICIT: Adult/sexual content, graphic violence
  * HATE SPEECH: Content targeting individuals or groups
  * FRAUD: Fake certificates, cheating services, academic dishonesty

Educational content should be APPROPRIATE, but be strict about scams, spam, and promotional content.

Your response must be exactly one word: APPROPRIATE or INAPPROPRIATE`

// ModerationResult carries the verdict and the raw result code
type ModerationResult struct {
	Appropriate bool
	Code        string
}

// ModerationService classifies uploaded content
type ModerationService interface {
	CheckContent(ctx context.Context, title, content string) ModerationResult
}

// moderationServiceImpl implements ModerationService over a text generator
type moderationServiceImpl struct {
	generator TextGenerator
	logger    zerolog.Logger
}

// NewModerationService creates a new ModerationService
func NewModerationService(generator TextGenerator, logger zerolog.Logger) ModerationService {
	return &moderationServiceImpl{
		generator: generator,
		logger:    logger,
	}
}

// CheckContent asks the gateway for a verdict. Transport errors and
// unrecognized verdict tokens fail open: the content is allowed and the
// code records what happened.
func (s *moderationServiceImpl) CheckContent(ctx context.Context, title, content string) ModerationResult {
	prompt := fmt.Sprintf(moderationPrompt, title, content)

	response, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("title", title).
			Msg("Moderation gateway unavailable, allowing content")
		return ModerationResult{Appropriate: true, Code: ModerationAPIErrorAllowed}
	}

	code := strings.ToUpper(strings.TrimSpace(response))
	switch code {
	case ModerationAppropriate:
		return ModerationResult{Appropriate: true, Code: code}
	case ModerationInappropriate:
		return ModerationResult{Appropriate: false, Code: code}
	default:
		s.logger.Warn().
			Str("title", title).
			Str("verdict", code).
			Msg("Unrecognized moderation verdict, allowing content")
		return ModerationResult{Appropriate: true, Code: code}
	}
}
