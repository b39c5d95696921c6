package models

import "time"

// Admin defines the administrator model based on the 'admins' table
type Admin struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Site Admin"`
	Email     string    `json:"email" db:"email" example:"admin@moderncollege.edu"`
	Password  string    `json:"-" db:"password"` // Hashed password (excluded from JSON)
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
