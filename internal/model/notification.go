package model

import "time"

type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelWarning NotificationLevel = "warning"
	LevelError   NotificationLevel = "error"
)

// Notification is a transient toast shown to the user.
type Notification struct {
	ID        string            `json:"id"`
	Level     NotificationLevel `json:"level"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"createdAt"`
}
