package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// AdsCredentials holds the account credentials read from google-ads.yaml.
// Either the OAuth refresh-token trio or a service account key file must be present.
type AdsCredentials struct {
	DeveloperToken    string `yaml:"developer_token" envconfig:"DEVELOPER_TOKEN" validate:"required"`
	ClientID          string `yaml:"client_id" envconfig:"CLIENT_ID" validate:"required_without=JSONKeyFilePath"`
	ClientSecret      string `yaml:"client_secret" envconfig:"CLIENT_SECRET" validate:"required_without=JSONKeyFilePath"`
	RefreshToken      string `yaml:"refresh_token" envconfig:"REFRESH_TOKEN" validate:"required_without=JSONKeyFilePath"`
	JSONKeyFilePath   string `yaml:"json_key_file_path" envconfig:"JSON_KEY_FILE_PATH"`
	ImpersonatedEmail string `yaml:"impersonated_email" envconfig:"IMPERSONATED_EMAIL" validate:"omitempty,email"`
	LoginCustomerID   string `yaml:"login_customer_id" envconfig:"LOGIN_CUSTOMER_ID" validate:"omitempty,numeric"`
}

// UsesServiceAccount reports whether credentials come from a service account key file
func (c *AdsCredentials) UsesServiceAccount() bool {
	return c.JSONKeyFilePath != ""
}

// LoadAdsCredentials reads credentials from the YAML file at path, applies
// GOOGLE_ADS_* environment overrides and validates the result.
// A missing file is not an error when the environment supplies everything.
func LoadAdsCredentials(path string) (*AdsCredentials, error) {
	var creds AdsCredentials

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &creds); err != nil {
			return nil, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to environment-only credentials
	default:
		return nil, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}

	var fromEnv AdsCredentials
	if err := envconfig.Process(CredentialsEnvPrefix, &fromEnv); err != nil {
		return nil, fmt.Errorf("failed to load credentials from env: %w", err)
	}
	creds.merge(fromEnv)
	creds.normalize()

	if err := ValidateAdsCredentials(&creds); err != nil {
		return nil, err
	}

	if creds.JSONKeyFilePath != "" {
		expanded, err := ExpandHome(creds.JSONKeyFilePath)
		if err != nil {
			return nil, err
		}
		creds.JSONKeyFilePath = expanded
	}

	return &creds, nil
}

// ValidateAdsCredentials checks required fields and formats
func ValidateAdsCredentials(creds *AdsCredentials) error {
	v := validator.New()
	if err := v.Struct(creds); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("credentials validation failed: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, formatCredentialError(fe))
		}
		return fmt.Errorf("invalid credentials: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// merge overlays non-empty values from other
func (c *AdsCredentials) merge(other AdsCredentials) {
	overlay := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	overlay(&c.DeveloperToken, other.DeveloperToken)
	overlay(&c.ClientID, other.ClientID)
	overlay(&c.ClientSecret, other.ClientSecret)
	overlay(&c.RefreshToken, other.RefreshToken)
	overlay(&c.JSONKeyFilePath, other.JSONKeyFilePath)
	overlay(&c.ImpersonatedEmail, other.ImpersonatedEmail)
	overlay(&c.LoginCustomerID, other.LoginCustomerID)
}

// normalize strips whitespace and the dashes of the 123-456-7890 display form
func (c *AdsCredentials) normalize() {
	c.DeveloperToken = strings.TrimSpace(c.DeveloperToken)
	c.LoginCustomerID = strings.ReplaceAll(strings.TrimSpace(c.LoginCustomerID), "-", "")
}

// formatCredentialError maps a validator field error onto the YAML key name
func formatCredentialError(fe validator.FieldError) string {
	key := yamlKeys[fe.StructField()]
	if key == "" {
		key = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "required_without":
		return fmt.Sprintf("%s is required unless json_key_file_path is set", key)
	case "email":
		return fmt.Sprintf("%s must be an email address", key)
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", key)
	default:
		return fmt.Sprintf("%s failed %s validation", key, fe.Tag())
	}
}

var yamlKeys = map[string]string{
	"DeveloperToken":    "developer_token",
	"ClientID":          "client_id",
	"ClientSecret":      "client_secret",
	"RefreshToken":      "refresh_token",
	"JSONKeyFilePath":   "json_key_file_path",
	"ImpersonatedEmail": "impersonated_email",
	"LoginCustomerID":   "login_customer_id",
}
