package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID         int64     `json:"id" db:"id"`
	Fullname   string    `json:"fullname" db:"fullname"`
	Email      string    `json:"email" db:"email"`
	DOB        time.Time `json:"dob" db:"dob"`
	Password   string    `json:"-" db:"password"` // hashed, excluded from JSON
	IsVerified bool      `json:"isVerified" db:"is_verified"`
}
