package models

// ToolCard is an entry on the dashboard home page.
type ToolCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

// BackendHealth is the indicator shown on the home page.
type BackendHealth string

const (
	HealthHealthy   BackendHealth = "healthy"
	HealthUnhealthy BackendHealth = "unhealthy"
)

// HomeView is the dashboard landing page.
type HomeView struct {
	Username string        `json:"username"`
	Health   BackendHealth `json:"health"`
	Demo     bool          `json:"demo"`
	Tools    []ToolCard    `json:"tools"`
}

// Language is a selectable interface language.
type Language struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// SettingsView is the settings page.
type SettingsView struct {
	Username  string     `json:"username"`
	Language  string     `json:"language"`
	Languages []Language `json:"languages"`
}
