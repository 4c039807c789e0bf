package models

import "time"

// User mirrors the auth service's users table. The backend never writes
// this table; it only resolves ids for transcript association.
type User struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"column:email;type:text" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (User) TableName() string { return "users" }
