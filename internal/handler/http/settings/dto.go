package settings

// DTO is the JSON shape of stored user settings.
type DTO struct {
	UserID    string          `json:"userId"`
	Providers map[string]bool `json:"providers"`
}

// SaveRequest is the POST body for saving settings. Each known provider
// name appears as a top-level boolean flag; missing flags default to false.
type SaveRequest map[string]any
