package domain

// LanguageKind is the source language derived from a file suffix.
type LanguageKind string

const (
	LanguageTypeScript LanguageKind = "typescript"
	LanguageJavaScript LanguageKind = "javascript"
	LanguagePHP        LanguageKind = "php"
	LanguageOther      LanguageKind = "other"
)

// Zone is the project area a path belongs to.
type Zone string

const (
	ZoneFrontend     Zone = "frontend"
	ZoneBackend      Zone = "backend"
	ZoneUnclassified Zone = "unclassified"
)

// PathFacts is everything the check policy knows about a file. It is computed
// from the path string alone.
type PathFacts struct {
	Path           string       `json:"path"`
	Language       LanguageKind `json:"language"`
	Zone           Zone         `json:"zone"`
	IsTestFile     bool         `json:"is_test_file"`
	IsSensitive    bool         `json:"is_sensitive"`
	SensitiveMatch string       `json:"sensitive_match,omitempty"`
}

// IsScript reports whether the file belongs to the JavaScript toolchain.
func (f PathFacts) IsScript() bool {
	return f.Language == LanguageTypeScript || f.Language == LanguageJavaScript
}

// IsBackendPHP reports whether the file is PHP inside the backend zone.
func (f PathFacts) IsBackendPHP() bool {
	return f.Language == LanguagePHP && f.Zone == ZoneBackend
}

// InZone reports whether the file sits in the frontend or backend zone.
func (f PathFacts) InZone() bool {
	return f.Zone == ZoneFrontend || f.Zone == ZoneBackend
}
