package models

import "time"

// PauseMode is the notification pause window.
type PauseMode string

const (
	PauseOff  PauseMode = "off"
	PauseDay  PauseMode = "day"
	PauseWeek PauseMode = "week"
)

// Valid reports whether p is a known pause mode.
func (p PauseMode) Valid() bool {
	return p == PauseOff || p == PauseDay || p == PauseWeek
}

// Notifications holds the notification preferences.
type Notifications struct {
	EmailNotifications bool       `json:"email_notifications"`
	ProductUpdates     bool       `json:"product_updates"`
	NewFollowerAlerts  bool       `json:"new_follower_alerts"`
	WeeklyDigest       bool       `json:"weekly_digest"`
	PauseNotifications PauseMode  `json:"pause_notifications"`
	PauseUntil         *time.Time `json:"pause_until,omitempty"`
}

// NotificationsUpdate is the PATCH body for notification preferences.
type NotificationsUpdate struct {
	EmailNotifications bool      `json:"email_notifications"`
	ProductUpdates     bool      `json:"product_updates"`
	NewFollowerAlerts  bool      `json:"new_follower_alerts"`
	WeeklyDigest       bool      `json:"weekly_digest"`
	PauseNotifications PauseMode `json:"pause_notifications"`
}

// DefaultNotifications mirrors the server defaults for a new account.
func DefaultNotifications() Notifications {
	return Notifications{
		EmailNotifications: true,
		ProductUpdates:     true,
		PauseNotifications: PauseOff,
	}
}
