package models

import "time"

type User struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	WhatsappNumber *string   `json:"whatsapp_number"`
	IsAdmin        bool      `gorm:"default:false" json:"is_admin"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
