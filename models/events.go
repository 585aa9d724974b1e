package models

import "time"

type EventKind string

const (
	EventVisit         EventKind = "visit"
	EventVCardDownload EventKind = "vcard_download"
	EventEmailClick    EventKind = "email_click"
	EventPhoneClick    EventKind = "phone_click"
	EventWebsiteClick  EventKind = "website_click"
)

// Valid reports whether k belongs to the closed set of trackable kinds.
func (k EventKind) Valid() bool {
	switch k {
	case EventVisit, EventVCardDownload, EventEmailClick, EventPhoneClick, EventWebsiteClick:
		return true
	}
	return false
}

type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceDesktop DeviceType = "desktop"
	DeviceUnknown DeviceType = "unknown"
)

// AnalyticsEvent is one interaction on a public card page. Written once, never updated.
type AnalyticsEvent struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CardID      string     `gorm:"not null;index" json:"card_id"`
	Kind        EventKind  `gorm:"column:event_type;not null" json:"event_type"`
	Timestamp   time.Time  `gorm:"not null;index" json:"timestamp"`
	Device      DeviceType `gorm:"column:device_type;not null" json:"device_type"`
	UserAgent   string     `gorm:"type:text" json:"user_agent"`
	Browser     string     `json:"browser,omitempty"`
	Country     *string    `json:"country,omitempty"`
	UTMSource   *string    `gorm:"column:utm_source" json:"utm_source,omitempty"`
	UTMMedium   *string    `gorm:"column:utm_medium" json:"utm_medium,omitempty"`
	UTMCampaign *string    `gorm:"column:utm_campaign" json:"utm_campaign,omitempty"`
	UTMTerm     *string    `gorm:"column:utm_term" json:"utm_term,omitempty"`
	UTMContent  *string    `gorm:"column:utm_content" json:"utm_content,omitempty"`
}
