package models

// Class represents a top-level class with an auto-incrementing join code
type Class struct {
	ID        int64  `json:"id" db:"id"`
	Classname string `json:"classname" db:"classname"`
	Desc      string `json:"desc" db:"description"`
	Classcode int64  `json:"classcode" db:"classcode"`
}

// PrivateClassroom is a password-protected sub-space within a Class.
// The password is stored in plaintext for compatibility with existing
// records; see DESIGN.md.
type PrivateClassroom struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"userid" db:"user_id"`
	UserEmail   string `json:"useremail" db:"user_email"`
	ClassroomID int64  `json:"classroomid" db:"classroom_id"`
	Name        string `json:"privateclassroomname" db:"name"`
	Password    string `json:"privateclassroompassword" db:"password"`
}
