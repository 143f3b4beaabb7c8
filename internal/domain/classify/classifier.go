// Package classify derives PathFacts from a file path using suffix, segment and
// substring tests only. It never touches the file system.
package classify

import (
	"strings"

	"github.com/abdidvp/editgate/internal/domain"
)

var (
	typeScriptSuffixes = []string{".ts", ".tsx"}
	javaScriptSuffixes = []string{".js", ".jsx"}
	phpSuffixes        = []string{".php"}
	testMarkers        = []string{".test.", ".spec."}
	testSuffixes       = []string{"Test.php"}
)

// Classifier holds the zone markers and sensitive keywords of a project.
type Classifier struct {
	frontendDir string
	backendDir  string
	keywords    []string
}

// New creates a Classifier from cfg. Empty fields fall back to the defaults.
func New(cfg domain.Config) *Classifier {
	defaults := domain.DefaultConfig()
	c := &Classifier{
		frontendDir: cfg.FrontendDir,
		backendDir:  cfg.BackendDir,
	}
	if c.frontendDir == "" {
		c.frontendDir = defaults.FrontendDir
	}
	if c.backendDir == "" {
		c.backendDir = defaults.BackendDir
	}
	keywords := cfg.SensitiveKeywords
	if len(keywords) == 0 {
		keywords = defaults.SensitiveKeywords
	}
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			c.keywords = append(c.keywords, k)
		}
	}
	return c
}

// Classify derives PathFacts for filePath with the default markers.
func Classify(filePath string) domain.PathFacts {
	return New(domain.DefaultConfig()).Classify(filePath)
}

// Classify derives PathFacts for filePath. An empty path yields facts for which
// no check applies.
func (c *Classifier) Classify(filePath string) domain.PathFacts {
	facts := domain.PathFacts{
		Path:     filePath,
		Language: domain.LanguageOther,
		Zone:     domain.ZoneUnclassified,
	}
	if filePath == "" {
		return facts
	}

	facts.Language = languageOf(filePath)
	facts.Zone = c.zoneOf(filePath)
	facts.IsTestFile = containsAny(filePath, testMarkers) || hasAnySuffix(filePath, testSuffixes)
	facts.SensitiveMatch = c.sensitiveMatch(filePath)
	facts.IsSensitive = facts.SensitiveMatch != ""
	return facts
}

func languageOf(p string) domain.LanguageKind {
	switch {
	case hasAnySuffix(p, typeScriptSuffixes):
		return domain.LanguageTypeScript
	case hasAnySuffix(p, javaScriptSuffixes):
		return domain.LanguageJavaScript
	case hasAnySuffix(p, phpSuffixes):
		return domain.LanguagePHP
	default:
		return domain.LanguageOther
	}
}

// zoneOf tests the directory segments of p against the zone markers. The file
// name itself never counts as a marker.
func (c *Classifier) zoneOf(p string) domain.Zone {
	segments := strings.Split(strings.ReplaceAll(p, `\`, "/"), "/")
	dirs := segments[:len(segments)-1]

	isFrontend, isBackend := false, false
	for _, s := range dirs {
		isFrontend = isFrontend || s == c.frontendDir
		isBackend = isBackend || s == c.backendDir
	}

	switch {
	case isFrontend:
		return domain.ZoneFrontend
	case isBackend:
		return domain.ZoneBackend
	default:
		return domain.ZoneUnclassified
	}
}

// sensitiveMatch returns the first keyword contained in p, ignoring case.
// There is no word-boundary requirement: "keyboard.ts" matches "key".
func (c *Classifier) sensitiveMatch(p string) string {
	lower := strings.ToLower(p)
	for _, k := range c.keywords {
		if strings.Contains(lower, k) {
			return k
		}
	}
	return ""
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
