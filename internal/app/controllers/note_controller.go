package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/app/services"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// serveFileTimeout bounds the upstream fetch when proxying a stored file
const serveFileTimeout = 30 * time.Second

// NoteController handles the note upload pipeline and file serving
type NoteController struct {
	noteService services.NoteService
	fileClient  *http.Client
	logger      zerolog.Logger
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, logger zerolog.Logger) *NoteController {
	return &NoteController{
		noteService: noteService,
		fileClient:  &http.Client{Timeout: serveFileTimeout},
		logger:      logger,
	}
}

// UploadNote accepts a multipart note upload and runs it through the
// moderation-gated pipeline
func (c *NoteController) UploadNote(ctx *gin.Context) {
	req := &dto.UploadNoteRequest{
		Title:   ctx.PostForm("title"),
		Content: ctx.PostForm("content"),
		Email:   ctx.PostForm("email"),
	}
	if raw := ctx.PostForm("classroomid"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewError("Title, classroom ID, and email are required"))
			return
		}
		req.ClassroomID = id
	}

	fileHeader, err := ctx.FormFile("file")
	if err == nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("File upload failed", openErr))
			return
		}
		defer file.Close()

		data, readErr := io.ReadAll(file)
		if readErr != nil {
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("File upload failed", readErr))
			return
		}

		req.FileName = fileHeader.Filename
		req.FileType = fileHeader.Header.Get("Content-Type")
		req.FileSize = fileHeader.Size
		req.FileData = data
	}

	note, err := c.noteService.UploadNote(ctx.Request.Context(), req)
	if err != nil {
		if rejected, ok := apperrors.IsContentRejected(err); ok {
			ctx.JSON(http.StatusBadRequest, dto.RejectedNoteResponse{
				Message: rejected.Error(),
				Reason:  rejected.Reason,
				Details: rejected.Details,
			})
			return
		}
		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			ctx.JSON(http.StatusBadRequest, dto.NewError(custom.Message))
			return
		}
		c.logger.Error().Err(err).Str("title", req.Title).Msg("Note upload failed")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("File upload failed", err))
		return
	}

	ctx.JSON(http.StatusCreated, dto.UploadNoteResponse{
		Message: "Note uploaded successfully! Content approved for educational use.",
		Note:    note,
		Status:  "APPROVED",
	})
}

// GetNotes returns a classroom's notes as a bare array
func (c *NoteController) GetNotes(ctx *gin.Context) {
	var req dto.GetNotesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewError("Invalid request"))
		return
	}

	notes, err := c.noteService.GetNotes(ctx.Request.Context(), req.ClassroomID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to fetch notes")
		return
	}

	ctx.JSON(http.StatusOK, notes)
}

// ServeFile proxies a note's stored file with inline or attachment
// disposition. When the upstream fetch fails the client is redirected
// to the stored URL instead.
func (c *NoteController) ServeFile(ctx *gin.Context) {
	noteID, err := strconv.ParseInt(ctx.Param("noteId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.NewError("File not found"))
		return
	}

	note, err := c.noteService.GetNoteFile(ctx.Request.Context(), noteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoteNotFound) || errors.Is(err, apperrors.ErrFileNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewError("File not found"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("Error serving file", err))
		return
	}

	req, err := http.NewRequestWithContext(ctx.Request.Context(), http.MethodGet, note.FileURL, nil)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("Error serving file", err))
		return
	}

	resp, err := c.fileClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).
			Int64("noteID", noteID).
			Msg("Upstream fetch failed, redirecting to stored URL")
		ctx.Redirect(http.StatusFound, note.FileURL)
		return
	}
	defer resp.Body.Close()

	disposition := "inline"
	if ctx.Query("download") == "true" {
		disposition = "attachment"
	}

	ctx.Header("Content-Type", "application/pdf")
	ctx.Header("Cache-Control", "public, max-age=3600")
	ctx.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, note.Title+".pdf"))

	ctx.Status(http.StatusOK)
	if _, err := io.Copy(ctx.Writer, resp.Body); err != nil {
		c.logger.Debug().Err(err).
			Int64("noteID", noteID).
			Msg("File stream interrupted")
	}
}
