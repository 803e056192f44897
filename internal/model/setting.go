package model

// Setting keys interpreted by the core. Other keys are stored as-is.
const (
	SettingNotifications = "notifications"
	SettingLanguage      = "language"
	SettingTheme         = "theme"
)

// Setting is a persisted key/value pair.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

func (Setting) TableName() string { return "settings" }
