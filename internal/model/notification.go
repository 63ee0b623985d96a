package model

// Level is the kind of a user notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient message for the user. Report optionally
// carries a longer multi-line body for channels that can show it.
type Notification struct {
	Level   Level
	Message string
	Report  string
}
