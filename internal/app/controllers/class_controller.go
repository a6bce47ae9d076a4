package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/app/services"
	"github.com/edunet/edunet/internal/middleware"
	"github.com/edunet/edunet/internal/pkg/apperrors"
)

// ClassController handles class and private classroom operations
type ClassController struct {
	classService     services.ClassService
	classroomService services.ClassroomService
	logger           zerolog.Logger
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService, classroomService services.ClassroomService, logger zerolog.Logger) *ClassController {
	return &ClassController{
		classService:     classService,
		classroomService: classroomService,
		logger:           logger,
	}
}

// AddClass creates a new class
func (c *ClassController) AddClass(ctx *gin.Context) {
	var req dto.AddClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Classname == "" || req.Desc == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewError("Classname and description are required"))
		return
	}

	class, err := c.classService.AddClass(ctx.Request.Context(), req.Classname, req.Desc)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("Error creating class", err))
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageWithData("Class created successfully", class))
}

// FetchClasses returns every class as a bare array
func (c *ClassController) FetchClasses(ctx *gin.Context) {
	classes, err := c.classService.GetClasses(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("Error fetching classes", err))
		return
	}

	ctx.JSON(http.StatusOK, classes)
}

// CreatePrivateClassroom creates a private classroom with a globally
// unique name
func (c *ClassController) CreatePrivateClassroom(ctx *gin.Context) {
	var req dto.CreatePrivateClassroomRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	classroom, err := c.classroomService.CreatePrivateClassroom(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrClassroomAlreadyExists) {
			ctx.JSON(http.StatusBadRequest, dto.NewError("Private classroom already exists"))
			return
		}
		respondServiceError(ctx, err, "Error creating private classroom")
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageWithData("Private classroom created successfully", classroom))
}

// GetPrivateClassrooms returns classrooms under a class owned by other users
func (c *ClassController) GetPrivateClassrooms(ctx *gin.Context) {
	var req dto.GetPrivateClassroomsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	classrooms, err := c.classroomService.GetPrivateClassrooms(ctx.Request.Context(), req.ClassroomID, req.UserID)
	if err != nil {
		respondServiceError(ctx, err, "Error fetching private classrooms")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageWithData("Private classrooms fetched successfully", classrooms))
}

// GetUserPrivateClassrooms returns the caller's own classrooms under a class
func (c *ClassController) GetUserPrivateClassrooms(ctx *gin.Context) {
	var req dto.GetPrivateClassroomsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	classrooms, err := c.classroomService.GetUserPrivateClassrooms(ctx.Request.Context(), req.ClassroomID, req.UserID)
	if err != nil {
		respondServiceError(ctx, err, "Error fetching private classrooms")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageWithData("Private classrooms fetched successfully", classrooms))
}
