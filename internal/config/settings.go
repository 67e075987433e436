package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/parcours/internal/platform"
	"github.com/ytget/parcours/internal/tiles"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL         = "api_base_url"
	KeyTileURLTemplate    = "tile_url_template"
	KeyDownloadDir        = "download_directory"
	KeyLanguage           = "app_language"
	KeyAutoRevealOnExport = "auto_reveal_on_export"
	KeyLogLevel           = "log_level"
)

// Default values
const (
	DefaultAPIBaseURL         = "http://localhost:8000"
	DefaultTileURLTemplate    = tiles.DefaultTemplate
	DefaultLanguage           = "system"
	DefaultAutoRevealOnExport = false
	DefaultLogLevel           = "info"
)

// ErrInvalidBaseURL is returned for service addresses that are not absolute http(s) URLs
var ErrInvalidBaseURL = errors.New("invalid service address")

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetAPIBaseURL returns the root URL of the route generation service
func (s *Settings) GetAPIBaseURL() string {
	value := s.app.Preferences().String(KeyAPIBaseURL)
	if value == "" {
		s.SetAPIBaseURL(DefaultAPIBaseURL)
		return DefaultAPIBaseURL
	}
	return value
}

// SetAPIBaseURL sets the root URL of the route generation service
func (s *Settings) SetAPIBaseURL(value string) {
	value = strings.TrimRight(strings.TrimSpace(value), "/")
	if value == "" {
		value = DefaultAPIBaseURL
	}
	s.app.Preferences().SetString(KeyAPIBaseURL, value)
}

// ValidateBaseURL checks that value is an absolute http or https URL
func ValidateBaseURL(value string) error {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https", ErrInvalidBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}
	return nil
}

// GetTileURLTemplate returns the slippy map tile URL template
func (s *Settings) GetTileURLTemplate() string {
	value := s.app.Preferences().String(KeyTileURLTemplate)
	if value == "" {
		s.SetTileURLTemplate(DefaultTileURLTemplate)
		return DefaultTileURLTemplate
	}
	return value
}

// SetTileURLTemplate sets the slippy map tile URL template
func (s *Settings) SetTileURLTemplate(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = DefaultTileURLTemplate
	}
	s.app.Preferences().SetString(KeyTileURLTemplate, value)
}

// GetDownloadDirectory returns the directory exported routes are written to
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the export directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"fr":     "Français",
		"en":     "English",
	}
}

// GetAutoRevealOnExport returns whether exported files are shown in the file manager
func (s *Settings) GetAutoRevealOnExport() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealOnExport, DefaultAutoRevealOnExport)
}

// SetAutoRevealOnExport sets whether exported files are shown in the file manager
func (s *Settings) SetAutoRevealOnExport(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealOnExport, autoReveal)
}

// GetLogLevel returns the configured log level
func (s *Settings) GetLogLevel() string {
	level := s.app.Preferences().String(KeyLogLevel)
	if level == "" {
		return DefaultLogLevel
	}
	return level
}

// SetLogLevel sets the log level used on next start
func (s *Settings) SetLogLevel(level string) {
	s.app.Preferences().SetString(KeyLogLevel, strings.ToLower(strings.TrimSpace(level)))
}

// ApplyFile copies the values of f into preferences that have not been set yet
func (s *Settings) ApplyFile(f *File) {
	if f == nil {
		return
	}
	prefs := s.app.Preferences()

	setString := func(key, value string, set func(string)) {
		if value != "" && prefs.String(key) == "" {
			set(value)
		}
	}
	setString(KeyAPIBaseURL, f.APIBaseURL, s.SetAPIBaseURL)
	setString(KeyTileURLTemplate, f.TileURLTemplate, s.SetTileURLTemplate)
	setString(KeyDownloadDir, f.DownloadDirectory, s.SetDownloadDirectory)
	setString(KeyLanguage, f.Language, s.SetLanguage)
	setString(KeyLogLevel, f.LogLevel, s.SetLogLevel)

	if f.AutoRevealOnExport != nil && !s.isBoolSet(KeyAutoRevealOnExport) {
		s.SetAutoRevealOnExport(*f.AutoRevealOnExport)
	}
}

// isBoolSet reports whether key holds a stored bool; an unset key returns
// whichever fallback it is given
func (s *Settings) isBoolSet(key string) bool {
	prefs := s.app.Preferences()
	return prefs.BoolWithFallback(key, false) == prefs.BoolWithFallback(key, true)
}
