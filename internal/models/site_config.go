package models

import (
	"gorm.io/gorm"
)

type Image struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// SiteConfig holds site-wide settings. There is a single row.
type SiteConfig struct {
	gorm.Model
	Title              string   `json:"title"`
	SuccessMessage     HTMLText `json:"success_message"`
	SuccessMessageMail HTMLText `json:"success_message_mail"`
	TicketLogo         Image    `json:"ticket_logo" gorm:"embedded;embeddedPrefix:ticket_logo_"`
}

// CurrentSiteConfig returns the site config, creating it on first use.
func CurrentSiteConfig(db *gorm.DB) (*SiteConfig, error) {
	var sc SiteConfig
	if err := db.Order("id").FirstOrCreate(&sc).Error; err != nil {
		return nil, err
	}
	return &sc, nil
}
