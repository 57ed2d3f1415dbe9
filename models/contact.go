package models

import "time"

type ContactMessage struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	FullName       string    `gorm:"not null" json:"full_name"`
	WhatsappNumber string    `gorm:"not null" json:"whatsapp_number"`
	Email          *string   `json:"email"`
	Message        string    `gorm:"not null" json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}
