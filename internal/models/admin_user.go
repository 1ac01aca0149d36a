package models

import (
	"gorm.io/gorm"
)

// AdminUser is an organiser allowed into the ticket admin.
type AdminUser struct {
	gorm.Model
	DiscordID string `gorm:"uniqueIndex"`
	Username  string
	Email     string
	Avatar    string
}
