package dto

// CreateAssignmentRequest is the payload for POST /createAssignment
type CreateAssignmentRequest struct {
	PrivateClassroomID int64  `json:"privateclassroomid"`
	Email              string `json:"email"`
	Title              string `json:"title"`
	Desc               string `json:"desc"`
	DueDate            string `json:"duedate"`
}

// GetAssignmentsRequest is the payload for POST /getAssignments
type GetAssignmentsRequest struct {
	PrivateClassroomID int64 `json:"privateclassroomid"`
}

// SubmitAssignmentRequest is the payload for POST /submitAssignment
type SubmitAssignmentRequest struct {
	AssignmentID int64  `json:"assignmentid"`
	Email        string `json:"email"`
	Description  string `json:"description"`
	Base64String string `json:"base64string"`
	FileType     string `json:"filetype"`
}

// GetSubmissionsRequest is the payload for POST /getSubmissions
type GetSubmissionsRequest struct {
	AssignmentID int64 `json:"assignmentid"`
}

// DeleteSubmissionRequest is the payload for DELETE /deleteAssignmentSubmission
type DeleteSubmissionRequest struct {
	AssignmentSubmissionID int64 `json:"assignmentSubmissionId"`
}
