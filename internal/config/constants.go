package config

// Application constants
const (
	AppName    = "get-campaigns"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces application environment variables (CAMPAIGNS_LOGGING_LEVEL, ...)
	EnvPrefix = "CAMPAIGNS"
	// DotEnvFile is loaded from the working directory when present
	DotEnvFile = ".env"

	// Export defaults
	DefaultCustomerID = "3265367567"
	DefaultDirectory  = "./campaigns"

	// Google Ads API
	DefaultAdsEndpoint = "https://googleads.googleapis.com"
	DefaultAPIVersion  = "v20"
	AdsScope           = "https://www.googleapis.com/auth/adwords"

	// Credentials file resolution, matching the Google Ads client libraries
	CredentialsEnvPrefix   = "GOOGLE_ADS"
	CredentialsPathEnv     = "GOOGLE_ADS_CONFIGURATION_FILE_PATH"
	DefaultCredentialsFile = "google-ads.yaml"
)
