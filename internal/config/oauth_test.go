package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOAuthClient() *OAuthClientConfig {
	return &OAuthClientConfig{
		Installed: OAuthInstalled{
			ClientID:                "test-client-id.apps.googleusercontent.com",
			ProjectID:               "scrub-in",
			AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
			TokenURI:                "https://oauth2.googleapis.com/token",
			AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
			ClientSecret:            "test-secret",
			RedirectURIs:            []string{"http://localhost"},
		},
	}
}

func TestValidateOAuthClient_ValidConfig(t *testing.T) {
	assert.NoError(t, ValidateOAuthClient(validOAuthClient()))
}

func TestValidateOAuthClient_InvalidFields(t *testing.T) {
	missingID := validOAuthClient()
	missingID.Installed.ClientID = ""

	badURL := validOAuthClient()
	badURL.Installed.AuthURI = "not-a-valid-url"

	noRedirects := validOAuthClient()
	noRedirects.Installed.RedirectURIs = []string{}

	badRedirect := validOAuthClient()
	badRedirect.Installed.RedirectURIs = []string{"not a valid uri"}

	for name, cfg := range map[string]*OAuthClientConfig{
		"missing client id":    missingID,
		"invalid auth uri":     badURL,
		"empty redirect uris":  noRedirects,
		"invalid redirect uri": badRedirect,
	} {
		t.Run(name, func(t *testing.T) {
			err := ValidateOAuthClient(cfg)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestLoadOAuthClientFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	oauthPath := filepath.Join(tmpDir, "oauthClient.json")

	validOAuth := `{
  "installed": {
    "client_id": "test-client-id.apps.googleusercontent.com",
    "project_id": "scrub-in",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
    "client_secret": "test-secret",
    "redirect_uris": ["http://localhost"]
  }
}`

	err := os.WriteFile(oauthPath, []byte(validOAuth), 0644)
	require.NoError(t, err)

	cfg, err := LoadOAuthClientFromPath(oauthPath)
	require.NoError(t, err)

	assert.Equal(t, validOAuthClient(), cfg)
}

func TestLoadOAuthClientFromPath_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	oauthPath := filepath.Join(tmpDir, "invalid_oauth.json")

	err := os.WriteFile(oauthPath, []byte(`{"installed": {"client_id": "test" "project_id": "x"}}`), 0644)
	require.NoError(t, err)

	_, err = LoadOAuthClientFromPath(oauthPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse oauth client file")
}

func TestLoadOAuthClientFromPath_FileNotFound(t *testing.T) {
	_, err := LoadOAuthClientFromPath("/nonexistent/path/oauthClient.json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read oauth client file")
}

func TestOAuthClientConfig_RawJSON(t *testing.T) {
	data, err := validOAuthClient().RawJSON()
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "test-secret", decoded["installed"]["client_secret"])
	assert.Equal(t, "https://oauth2.googleapis.com/token", decoded["installed"]["token_uri"])
}
