package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edunet/edunet/internal/app/models/dto"
	"github.com/edunet/edunet/internal/app/services"
)

// AssignmentController handles assignment and submission operations
type AssignmentController struct {
	assignmentService services.AssignmentService
	logger            zerolog.Logger
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService, logger zerolog.Logger) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// CreateAssignment creates an assignment in a classroom
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil ||
		req.PrivateClassroomID == 0 || req.Email == "" || req.Title == "" || req.Desc == "" || req.DueDate == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewError("All fields are required: privateclassroomid, email, title, desc, duedate"))
		return
	}

	assignment, err := c.assignmentService.CreateAssignment(ctx.Request.Context(), &req)
	if err != nil {
		respondServiceError(ctx, err, "Error creating assignment")
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageWithData("Assignment created successfully", assignment))
}

// GetAssignments returns a classroom's assignments
func (c *AssignmentController) GetAssignments(ctx *gin.Context) {
	var req dto.GetAssignmentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.PrivateClassroomID == 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewError("Private Classroom ID is required"))
		return
	}

	assignments, err := c.assignmentService.GetAssignments(ctx.Request.Context(), req.PrivateClassroomID)
	if err != nil {
		respondServiceError(ctx, err, "Error fetching assignments")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageWithData("Assignments fetched successfully", assignments))
}

// SubmitAssignment records a student's submission
func (c *AssignmentController) SubmitAssignment(ctx *gin.Context) {
	var req dto.SubmitAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil ||
		req.Base64String == "" || req.Email == "" || req.Description == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewError("Missing required fields"))
		return
	}

	if err := c.assignmentService.SubmitAssignment(ctx.Request.Context(), &req); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorWithCause("Error saving assignment", err))
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessage("Assignment submitted successfully"))
}

// GetSubmissions returns every submission for an assignment
func (c *AssignmentController) GetSubmissions(ctx *gin.Context) {
	var req dto.GetSubmissionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.AssignmentID == 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewError("Assignment ID is required"))
		return
	}

	submissions, err := c.assignmentService.GetSubmissions(ctx.Request.Context(), req.AssignmentID)
	if err != nil {
		respondServiceError(ctx, err, "Error fetching submissions")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageWithData("Submissions fetched successfully", submissions))
}

// DeleteSubmission removes a submission
func (c *AssignmentController) DeleteSubmission(ctx *gin.Context) {
	var req dto.DeleteSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.AssignmentSubmissionID == 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewError("Assignment Submission ID is required"))
		return
	}

	if err := c.assignmentService.DeleteSubmission(ctx.Request.Context(), req.AssignmentSubmissionID); err != nil {
		respondServiceError(ctx, err, "Error deleting assignment submission")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessage("Assignment submission deleted successfully"))
}
