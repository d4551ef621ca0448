package sfcore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/natserract/sfcli/pkg/config"
	httpclient "github.com/natserract/sfcli/pkg/http"
	"go.uber.org/zap"
)

// SecretReader supplies a secret collected at runtime (password, security
// token). Implementations must not echo or persist what they read.
type SecretReader func(prompt string) (string, error)

// Authenticator produces a Session from configuration. Implementations map
// to the platform's OAuth grant types.
type Authenticator interface {
	Authenticate(ctx context.Context) (*Session, error)
}

// NewAuthenticator selects the auth variant from config. The secret reader
// is only consulted by the password variant.
func NewAuthenticator(cfg *config.Config, secrets SecretReader, httpClient *httpclient.Client, logger *zap.Logger) (Authenticator, error) {
	switch cfg.AuthMode {
	case config.AuthModeClientCredentials:
		return &clientCredentialsAuth{cfg: cfg, httpClient: httpClient, logger: logger}, nil
	case config.AuthModePassword:
		if secrets == nil {
			return nil, fmt.Errorf("password auth requires a secret reader")
		}
		return &passwordAuth{cfg: cfg, secrets: secrets, httpClient: httpClient, logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported auth mode: %s", cfg.AuthMode)
	}
}

// clientCredentialsAuth exchanges the configured consumer key/secret for a
// session without user interaction.
type clientCredentialsAuth struct {
	cfg        *config.Config
	httpClient *httpclient.Client
	logger     *zap.Logger
}

func (a *clientCredentialsAuth) Authenticate(ctx context.Context) (*Session, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.cfg.ClientID)
	form.Set("client_secret", a.cfg.ClientSecret)

	return exchangeToken(ctx, a.httpClient, a.cfg.InstanceURL, form, a.logger)
}

// passwordAuth prompts for the password and security token at runtime and
// posts username + concatenated secret. Secrets live only for the duration
// of this call and are never logged.
type passwordAuth struct {
	cfg        *config.Config
	secrets    SecretReader
	httpClient *httpclient.Client
	logger     *zap.Logger
}

func (a *passwordAuth) Authenticate(ctx context.Context) (*Session, error) {
	password, err := a.secrets("Enter Salesforce password: ")
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	securityToken, err := a.secrets("Enter security token: ")
	if err != nil {
		return nil, fmt.Errorf("failed to read security token: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", a.cfg.Username)
	form.Set("password", password+securityToken)
	if a.cfg.ClientID != "" {
		form.Set("client_id", a.cfg.ClientID)
	}
	if a.cfg.ClientSecret != "" {
		form.Set("client_secret", a.cfg.ClientSecret)
	}

	return exchangeToken(ctx, a.httpClient, a.cfg.InstanceURL, form, a.logger)
}

// exchangeToken posts the grant to the token endpoint and validates the
// resulting session. A session missing either field is rejected outright.
func exchangeToken(ctx context.Context, client *httpclient.Client, instanceURL string, form url.Values, logger *zap.Logger) (*Session, error) {
	tokenURL := fmt.Sprintf("%s/services/oauth2/token", instanceURL)
	logger.Info("Authenticating with Salesforce",
		zap.String("url", tokenURL),
		zap.String("grant_type", form.Get("grant_type")))

	headers := map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	}

	resp, err := client.Post(ctx, tokenURL, headers, form)
	if err != nil {
		logger.Error("Authentication request failed", zap.Error(err), zap.String("url", tokenURL))
		return nil, &AuthError{Description: err.Error()}
	}

	if resp.StatusCode != 200 {
		logger.Error("Authentication failed",
			zap.Int("status_code", resp.StatusCode))
		var oauthErr oauthErrorBody
		if err := json.Unmarshal(resp.Body, &oauthErr); err == nil && oauthErr.Error != "" {
			return nil, &AuthError{
				StatusCode:  resp.StatusCode,
				Code:        oauthErr.Error,
				Description: oauthErr.ErrorDescription,
			}
		}
		return nil, &AuthError{
			StatusCode:  resp.StatusCode,
			Description: fmt.Sprintf("token endpoint returned status %d", resp.StatusCode),
		}
	}

	var authResp AuthResponse
	if err := json.Unmarshal(resp.Body, &authResp); err != nil {
		logger.Error("Failed to parse authentication response", zap.Error(err))
		return nil, &AuthError{Description: fmt.Sprintf("failed to parse token response: %v", err)}
	}

	if authResp.AccessToken == "" || authResp.InstanceURL == "" {
		logger.Error("Token response missing required fields")
		return nil, &AuthError{Description: "token response missing access_token or instance_url"}
	}

	logger.Info("Successfully authenticated",
		zap.String("token_type", authResp.TokenType),
		zap.String("instance_url", authResp.InstanceURL))

	return &Session{
		AccessToken: authResp.AccessToken,
		InstanceURL: authResp.InstanceURL,
	}, nil
}
