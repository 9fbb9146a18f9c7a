package models

import "time"

// Employee is one row of the admin directory as served by the members feed.
type Employee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type User struct {
	ID           int64
	Login        string
	PasswordHash string
}

type Calculation struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	CreatedAt  time.Time `json:"created_at"`
}
