package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/app/services"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// ChatController handles chat and announcement REST operations
type ChatController struct {
	chatService         services.ChatService
	announcementService services.AnnouncementService
	logger              zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, announcementService services.AnnouncementService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService:         chatService,
		announcementService: announcementService,
		logger:              logger,
	}
}

// SendMessage persists a chat message over REST. A trigger in the text
// also produces and persists an AI reply before the response returns,
// so clients fetching afterwards see both records.
func (c *ChatController) SendMessage(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewError("All fields are required"))
		return
	}

	chat, err := c.chatService.SaveMessage(ctx.Request.Context(), req.Email, req.PrivateClassroomID, req.Message)
	if err != nil {
		if errors.Is(err, apperrors.ErrChatFieldsRequired) {
			ctx.JSON(http.StatusBadRequest, dto.NewError("All fields are required"))
			return
		}
		c.logger.Error().Err(err).
			Int64("classroomID", req.PrivateClassroomID).
			Msg("Failed to save chat message")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("Error saving chat message", err))
		return
	}

	if c.chatService.HasTrigger(req.Message) {
		if _, err := c.chatService.GenerateReply(ctx.Request.Context(), req.PrivateClassroomID, req.Message); err != nil {
			c.logger.Error().Err(err).
				Int64("classroomID", req.PrivateClassroomID).
				Msg("Failed to persist AI reply")
		}
	}

	ctx.JSON(http.StatusCreated, dto.SendMessageResponse{
		Message: "Message sent successfully",
		ChatID:  chat.ID,
	})
}

// FetchChats returns a classroom's chat history
func (c *ChatController) FetchChats(ctx *gin.Context) {
	var req dto.FetchChatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewError("Invalid request"))
		return
	}

	chats, err := c.chatService.FetchChats(ctx.Request.Context(), req.PrivateClassroomID)
	if err != nil {
		respondServiceError(ctx, err, "Error fetching chats")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageWithData("Chats fetched successfully", chats))
}

// CreateAnnouncement posts an announcement to a classroom
func (c *ChatController) CreateAnnouncement(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.PrivateClassroomID == 0 || req.AnnouncementData == "" || req.Email == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewError("All fields are required: privateclassroomid, announcementdata, email"))
		return
	}

	announcement, err := c.announcementService.CreateAnnouncement(ctx.Request.Context(), req.PrivateClassroomID, req.Email, req.AnnouncementData)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("Error creating announcement", err))
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageWithData("Announcement created successfully", announcement))
}

// GetAnnouncements returns a classroom's announcements
func (c *ChatController) GetAnnouncements(ctx *gin.Context) {
	var req dto.GetAnnouncementsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.PrivateClassroomID == 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewError("Private Classroom ID is required"))
		return
	}

	announcements, err := c.announcementService.GetAnnouncements(ctx.Request.Context(), req.PrivateClassroomID)
	if err != nil {
		respondServiceError(ctx, err, "Error fetching announcements")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageWithData("Announcements fetched successfully", announcements))
}
