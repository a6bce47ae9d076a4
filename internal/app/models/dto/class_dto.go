package dto

// AddClassRequest is the payload for POST /addClass. Field presence is
// checked by the handler so the legacy error message is preserved.
type AddClassRequest struct {
	Classname string `json:"classname"`
	Desc      string `json:"desc"`
}

// CreatePrivateClassroomRequest is the payload for POST /createPrivateClassroom
type CreatePrivateClassroomRequest struct {
	UserID      int64  `json:"userid" binding:"required"`
	UserEmail   string `json:"useremail" binding:"required"`
	ClassroomID int64  `json:"classroomid" binding:"required"`
	Name        string `json:"privateclassroomname" binding:"required"`
	Password    string `json:"privateclassroompassword" binding:"required"`
}

// GetPrivateClassroomsRequest selects classrooms by class and caller.
// Used by both /getPrivateClassrooms (exclude caller's own rooms) and
// /getUserPrivateClassrooms (only caller's own rooms).
type GetPrivateClassroomsRequest struct {
	ClassroomID int64 `json:"classroomid" binding:"required"`
	UserID      int64 `json:"userid" binding:"required"`
}
