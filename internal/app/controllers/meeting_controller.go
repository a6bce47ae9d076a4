package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/app/services"
)

// MeetingController handles recorded meeting uploads
type MeetingController struct {
	meetingService services.MeetingService
	logger         zerolog.Logger
}

// NewMeetingController creates a new MeetingController
func NewMeetingController(meetingService services.MeetingService, logger zerolog.Logger) *MeetingController {
	return &MeetingController{
		meetingService: meetingService,
		logger:         logger,
	}
}

// UploadAudio accepts a recorded meeting and runs the store, transcribe
// and summarize flow
func (c *MeetingController) UploadAudio(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("audio")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewError("No file uploaded"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("Transcription failed", err))
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("Transcription failed", err))
		return
	}

	var roomID int64
	if raw := ctx.PostForm("roomId"); raw != "" {
		roomID, _ = strconv.ParseInt(raw, 10, 64)
	}

	resp, err := c.meetingService.ProcessAudio(ctx.Request.Context(), roomID, audio)
	if err != nil {
		c.logger.Error().Err(err).
			Int64("roomID", roomID).
			Msg("Audio processing failed")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("Transcription failed", err))
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
