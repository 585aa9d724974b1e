package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // never serialized
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the owner document created right after sign-up.
type Profile struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"` // same as User.ID
	Email     string    `gorm:"not null" json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SocialMedia struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ContactEntry is one typed email address or phone number ("work", "home", "mobile"...).
type ContactEntry struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type BusinessCard struct {
	ID                  string                            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID              string                            `gorm:"not null;index" json:"user_id"`
	Slug                string                            `gorm:"not null;index" json:"slug"`
	FullName            string                            `gorm:"not null" json:"full_name"`
	Title               string                            `json:"title"`
	Company             string                            `json:"company"`
	Bio                 string                            `gorm:"type:text" json:"bio"`
	AvatarURL           string                            `json:"avatar_url"`
	BannerURL           string                            `json:"banner_url"`
	Email               string                            `json:"email"`
	Phone               string                            `json:"phone"`
	Website             string                            `json:"website"`
	Address             string                            `json:"address"`
	Emails              datatypes.JSONSlice[ContactEntry] `json:"emails"`
	Phones              datatypes.JSONSlice[ContactEntry] `json:"phones"`
	SocialMedia         datatypes.JSONSlice[SocialMedia]  `json:"social_media"`
	ThemeID             string                            `json:"theme_id"`
	IsActive            bool                              `gorm:"index" json:"is_active"`
	AllowContactSharing bool                              `json:"allow_contact_sharing"`
	CreatedAt           time.Time                         `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time                         `json:"updated_at"`
}

type ContactShare struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CardID         string    `gorm:"not null;index" json:"card_id"`
	VisitorName    string    `gorm:"not null" json:"visitor_name"`
	VisitorEmail   string    `gorm:"not null" json:"visitor_email"`
	VisitorPhone   string    `json:"visitor_phone,omitempty"`
	VisitorCompany string    `json:"visitor_company,omitempty"`
	VisitorNotes   string    `gorm:"type:text" json:"visitor_notes,omitempty"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

// TelegramSettings holds the owner's bot used to push contact-share notifications.
type TelegramSettings struct {
	UserID    string    `gorm:"primaryKey;type:varchar(36)" json:"user_id"`
	BotToken  string    `json:"bot_token"`
	ChatID    int64     `json:"chat_id"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}
