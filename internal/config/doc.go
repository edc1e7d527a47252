// Package config provides configuration and credential loading for get-campaigns.
//
// # Configuration Sources
//
// Application configuration is loaded in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A .env file in the working directory
//	3. Default values from struct tags (lowest priority)
//
// All application variables use the CAMPAIGNS_ prefix:
//
//	CAMPAIGNS_LOGGING_LEVEL=debug
//	CAMPAIGNS_LOGGING_OUTPUT=both
//	CAMPAIGNS_ADS_API_VERSION=v20
//	CAMPAIGNS_TELEMETRY_TRACE_EXPORTER=stdout
//	CAMPAIGNS_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/campaigns.prom
//
// # Credentials
//
// Google Ads credentials live in google-ads.yaml, located through
// CredentialsPath:
//
//	1. An explicit path (the --config flag)
//	2. GOOGLE_ADS_CONFIGURATION_FILE_PATH
//	3. $HOME/google-ads.yaml
//
// Any key may be overridden with a GOOGLE_ADS_* variable, for example
// GOOGLE_ADS_DEVELOPER_TOKEN or GOOGLE_ADS_LOGIN_CUSTOMER_ID.
//
//	path, err := config.CredentialsPath(flagValue)
//	creds, err := config.LoadAdsCredentials(path)
package config
