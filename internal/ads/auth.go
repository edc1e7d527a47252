package ads

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"

	"campaignexport/internal/config"
)

// NewClient builds a Client from stored credentials and endpoint configuration
func NewClient(ctx context.Context, creds *config.AdsCredentials, cfg config.AdsConfig) (*Client, error) {
	ts, err := tokenSource(ctx, creds)
	if err != nil {
		return nil, err
	}

	userAgent := fmt.Sprintf("%s/%s", config.AppName, config.AppVersion)
	httpClient, _, err := htransport.NewClient(ctx,
		option.WithTokenSource(ts),
		option.WithUserAgent(userAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated http client: %w", err)
	}

	return New(httpClient, Options{
		Endpoint:        cfg.Endpoint,
		APIVersion:      cfg.APIVersion,
		DeveloperToken:  creds.DeveloperToken,
		LoginCustomerID: creds.LoginCustomerID,
		UserAgent:       userAgent,
	}), nil
}

// tokenSource selects the service account or the refresh token flow
func tokenSource(ctx context.Context, creds *config.AdsCredentials) (oauth2.TokenSource, error) {
	if creds.UsesServiceAccount() {
		data, err := os.ReadFile(creds.JSONKeyFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account key: %w", err)
		}
		jwtCfg, err := google.JWTConfigFromJSON(data, config.AdsScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service account key: %w", err)
		}
		jwtCfg.Subject = creds.ImpersonatedEmail
		return jwtCfg.TokenSource(ctx), nil
	}

	oauthCfg := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{config.AdsScope},
	}
	return oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken}), nil
}
