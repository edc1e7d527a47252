package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignexport/internal/shared/testutil"
)

// clearCredentialEnv removes every GOOGLE_ADS_* override for the test
func clearCredentialEnv(t *testing.T) {
	t.Helper()
	testutil.UnsetEnv(t, testutil.AdsEnvVars...)
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "google-ads.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadAdsCredentials(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		env         map[string]string
		missingFile bool
		wantErr     string
		validate    func(*testing.T, *AdsCredentials)
	}{
		{
			name: "oauth refresh token file",
			yaml: `developer_token: DEV
client_id: cid.apps.googleusercontent.com
client_secret: secret
refresh_token: 1//refresh
login_customer_id: 123-456-7890
use_proto_plus: True
`,
			validate: func(t *testing.T, c *AdsCredentials) {
				assert.Equal(t, "DEV", c.DeveloperToken)
				assert.Equal(t, "cid.apps.googleusercontent.com", c.ClientID)
				assert.Equal(t, "1//refresh", c.RefreshToken)
				assert.Equal(t, "1234567890", c.LoginCustomerID)
				assert.False(t, c.UsesServiceAccount())
			},
		},
		{
			name: "numeric login customer id",
			yaml: `developer_token: DEV
client_id: cid
client_secret: secret
refresh_token: rt
login_customer_id: 1234567890
`,
			validate: func(t *testing.T, c *AdsCredentials) {
				assert.Equal(t, "1234567890", c.LoginCustomerID)
			},
		},
		{
			name: "service account key file",
			yaml: `developer_token: DEV
json_key_file_path: /keys/sa.json
impersonated_email: ads@example.com
`,
			validate: func(t *testing.T, c *AdsCredentials) {
				assert.True(t, c.UsesServiceAccount())
				assert.Equal(t, "/keys/sa.json", c.JSONKeyFilePath)
				assert.Equal(t, "ads@example.com", c.ImpersonatedEmail)
			},
		},
		{
			name: "environment overrides file",
			yaml: `developer_token: FILE
client_id: cid
client_secret: secret
refresh_token: rt
`,
			env: map[string]string{
				"GOOGLE_ADS_DEVELOPER_TOKEN":   "ENV",
				"GOOGLE_ADS_LOGIN_CUSTOMER_ID": "9876543210",
			},
			validate: func(t *testing.T, c *AdsCredentials) {
				assert.Equal(t, "ENV", c.DeveloperToken)
				assert.Equal(t, "9876543210", c.LoginCustomerID)
				assert.Equal(t, "cid", c.ClientID)
			},
		},
		{
			name:        "environment only",
			missingFile: true,
			env: map[string]string{
				"GOOGLE_ADS_DEVELOPER_TOKEN": "DEV",
				"GOOGLE_ADS_CLIENT_ID":       "cid",
				"GOOGLE_ADS_CLIENT_SECRET":   "secret",
				"GOOGLE_ADS_REFRESH_TOKEN":   "rt",
			},
			validate: func(t *testing.T, c *AdsCredentials) {
				assert.Equal(t, "DEV", c.DeveloperToken)
			},
		},
		{
			name:    "missing developer token",
			yaml:    "client_id: cid\nclient_secret: s\nrefresh_token: r\n",
			wantErr: "developer_token is required",
		},
		{
			name:    "no oauth and no key file",
			yaml:    "developer_token: DEV\n",
			wantErr: "refresh_token is required unless json_key_file_path is set",
		},
		{
			name:    "bad login customer id",
			yaml:    "developer_token: DEV\njson_key_file_path: k.json\nlogin_customer_id: abc\n",
			wantErr: "login_customer_id must contain only digits",
		},
		{
			name:    "malformed yaml",
			yaml:    "developer_token: [unterminated\n",
			wantErr: "failed to parse credentials file",
		},
		{
			name:        "missing file and empty environment",
			missingFile: true,
			wantErr:     "developer_token is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearCredentialEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "absent.yaml")
			if !tt.missingFile {
				path = writeYAML(t, tt.yaml)
			}

			creds, err := LoadAdsCredentials(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.validate(t, creds)
		})
	}
}

func TestLoadAdsCredentials_ExpandsKeyFilePath(t *testing.T) {
	clearCredentialEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeYAML(t, "developer_token: DEV\njson_key_file_path: ~/sa.json\n")
	creds, err := LoadAdsCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sa.json"), creds.JSONKeyFilePath)
}
