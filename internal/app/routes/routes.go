package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edunet/edunet/internal/app/controllers"
	"github.com/edunet/edunet/internal/app/realtime"
)

// SetupRouter configures all application routes. Paths live at the
// root, matching what the frontend already calls.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	classController *controllers.ClassController,
	chatController *controllers.ChatController,
	assignmentController *controllers.AssignmentController,
	noteController *controllers.NoteController,
	meetingController *controllers.MeetingController,
	chatNamespace *realtime.ChatNamespace,
	videoNamespace *realtime.VideoNamespace,
) {
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "EduNet Backend Server is running!"})
	})

	// Auth
	router.POST("/signup", authController.Signup)
	router.GET("/verify-email/:token", authController.VerifyEmail)
	router.POST("/manual-verify", authController.ManualVerify)
	router.POST("/login", authController.Login)
	router.PUT("/updateUserDetails", authController.UpdateUserDetails)

	// Classes and private classrooms
	router.POST("/addClass", classController.AddClass)
	router.POST("/fetchClass", classController.FetchClasses)
	router.POST("/createPrivateClassroom", classController.CreatePrivateClassroom)
	router.POST("/getPrivateClassrooms", classController.GetPrivateClassrooms)
	router.POST("/getUserPrivateClassrooms", classController.GetUserPrivateClassrooms)

	// Chat and announcements
	router.POST("/sendMessage", chatController.SendMessage)
	router.POST("/fetchChats", chatController.FetchChats)
	router.POST("/createAnnouncement", chatController.CreateAnnouncement)
	router.POST("/getAnnouncements", chatController.GetAnnouncements)

	// Assignments
	router.POST("/createAssignment", assignmentController.CreateAssignment)
	router.POST("/getAssignments", assignmentController.GetAssignments)
	router.POST("/submitAssignment", assignmentController.SubmitAssignment)
	router.POST("/getSubmissions", assignmentController.GetSubmissions)
	router.DELETE("/deleteAssignmentSubmission", assignmentController.DeleteSubmission)

	// Notes
	router.POST("/notes", noteController.UploadNote)
	router.POST("/getnotes", noteController.GetNotes)
	router.GET("/serve-file/:noteId", noteController.ServeFile)

	// Meetings
	router.POST("/uploadAudio", meetingController.UploadAudio)

	// Websocket namespaces
	router.GET("/ws/chat", chatNamespace.HandleConnection)
	router.GET("/ws/video", videoNamespace.HandleConnection)
}
