package classify_test

import (
	"testing"

	"github.com/abdidvp/editgate/internal/domain"
	"github.com/abdidvp/editgate/internal/domain/classify"
	"github.com/stretchr/testify/assert"
)

func TestClassify_Language(t *testing.T) {
	tests := []struct {
		path string
		want domain.LanguageKind
	}{
		{"frontend/src/utils/math.ts", domain.LanguageTypeScript},
		{"frontend/src/App.tsx", domain.LanguageTypeScript},
		{"frontend/src/legacy.js", domain.LanguageJavaScript},
		{"frontend/src/Button.jsx", domain.LanguageJavaScript},
		{"backend/app/Services/Pay.php", domain.LanguagePHP},
		{"README.md", domain.LanguageOther},
		{"frontend/src/styles.css", domain.LanguageOther},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.Classify(tt.path).Language)
		})
	}
}

func TestClassify_Zone(t *testing.T) {
	tests := []struct {
		path string
		want domain.Zone
	}{
		{"frontend/src/app.ts", domain.ZoneFrontend},
		{"/home/dev/project/frontend/src/app.ts", domain.ZoneFrontend},
		{"backend/app/Services/Pay.php", domain.ZoneBackend},
		{"backend/.env", domain.ZoneBackend},
		{`backend\app\Models\User.php`, domain.ZoneBackend},
		{"scripts/build.js", domain.ZoneUnclassified},
		{"my-frontend/src/app.ts", domain.ZoneUnclassified},
		{"frontend", domain.ZoneUnclassified},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.Classify(tt.path).Zone)
		})
	}
}

func TestClassify_TestFile(t *testing.T) {
	assert.True(t, classify.Classify("frontend/src/auth/login.test.ts").IsTestFile)
	assert.True(t, classify.Classify("frontend/src/auth/login.spec.tsx").IsTestFile)
	assert.True(t, classify.Classify("backend/tests/Feature/PaymentTest.php").IsTestFile)
	assert.False(t, classify.Classify("frontend/src/auth/login.ts").IsTestFile)
	assert.False(t, classify.Classify("frontend/src/testing/helpers.ts").IsTestFile)
}

func TestClassify_SensitiveIsCaseInsensitiveSubstring(t *testing.T) {
	tests := []struct {
		path  string
		match string
	}{
		{"config/SECRET_KEY", "secret"},
		{"docs/my-secret-value.txt", "secret"},
		{"backend/.env", ".env"},
		{"backend/.env.production", ".env"},
		{"frontend/src/keyboard.ts", "key"},
		{"backend/app/PasswordReset.php", "password"},
		{"frontend/src/auth/TokenStore.ts", "token"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			facts := classify.Classify(tt.path)
			assert.True(t, facts.IsSensitive)
			assert.Equal(t, tt.match, facts.SensitiveMatch)
		})
	}

	assert.False(t, classify.Classify("frontend/src/utils/math.ts").IsSensitive)
}

func TestClassify_EmptyPath(t *testing.T) {
	facts := classify.Classify("")
	assert.Equal(t, domain.LanguageOther, facts.Language)
	assert.Equal(t, domain.ZoneUnclassified, facts.Zone)
	assert.False(t, facts.IsTestFile)
	assert.False(t, facts.IsSensitive)
}

func TestClassify_Idempotent(t *testing.T) {
	c := classify.New(domain.DefaultConfig())
	for _, p := range []string{"frontend/src/auth/login.test.ts", "backend/.env", "x"} {
		assert.Equal(t, c.Classify(p), c.Classify(p))
	}
}

func TestClassifier_CustomMarkersAndKeywords(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.FrontendDir = "web"
	cfg.BackendDir = "api"
	cfg.SensitiveKeywords = []string{"Vault"}
	c := classify.New(cfg)

	assert.Equal(t, domain.ZoneFrontend, c.Classify("web/src/app.ts").Zone)
	assert.Equal(t, domain.ZoneBackend, c.Classify("api/app/User.php").Zone)
	assert.Equal(t, domain.ZoneUnclassified, c.Classify("frontend/src/app.ts").Zone)

	assert.True(t, c.Classify("api/config/vault.php").IsSensitive)
	assert.False(t, c.Classify("api/config/secret.php").IsSensitive)
}
