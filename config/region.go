package config

// RegionConfig holds region-specific search parameters
type RegionConfig struct {
	Gl string // Country code
	Hl string // Host language, also sent as Accept-Language
}

// RegionConfigs maps region codes to their configurations
var RegionConfigs = map[string]RegionConfig{
	"in-en": {"in", "en-IN"}, // India (English)
	"in-hi": {"in", "hi-IN"}, // India (Hindi)
	"us":    {"us", "en-US"}, // United States
	"uk":    {"gb", "en-GB"}, // United Kingdom
}
