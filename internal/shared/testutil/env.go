package testutil

import (
	"os"
	"testing"
)

// AdsEnvVars are the GOOGLE_ADS_* variables read by the credential loader
var AdsEnvVars = []string{
	"GOOGLE_ADS_CONFIGURATION_FILE_PATH",
	"GOOGLE_ADS_DEVELOPER_TOKEN",
	"GOOGLE_ADS_CLIENT_ID",
	"GOOGLE_ADS_CLIENT_SECRET",
	"GOOGLE_ADS_REFRESH_TOKEN",
	"GOOGLE_ADS_JSON_KEY_FILE_PATH",
	"GOOGLE_ADS_IMPERSONATED_EMAIL",
	"GOOGLE_ADS_LOGIN_CUSTOMER_ID",
}

// UnsetEnv removes keys for the duration of the test.
// Unlike t.Setenv(k, "") the variables are absent, so defaults apply.
func UnsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s: %v", k, err)
		}
	}
}

// Chdir switches into dir until the test ends
func Chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}
