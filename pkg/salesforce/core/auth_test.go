package sfcore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/natserract/sfcli/pkg/config"
	httpclient "github.com/natserract/sfcli/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func staticSecrets(values ...string) SecretReader {
	i := 0
	return func(prompt string) (string, error) {
		v := values[i]
		i++
		return v, nil
	}
}

func newAuthTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/services/oauth2/token", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestPasswordAuthenticate(t *testing.T) {
	var gotForm map[string]string
	server := newAuthTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"grant_type": r.PostForm.Get("grant_type"),
			"username":   r.PostForm.Get("username"),
			"password":   r.PostForm.Get("password"),
		}
		w.Write([]byte(`{"access_token":"00Dtoken","instance_url":"https://example.my.salesforce.com","token_type":"Bearer"}`))
	})

	cfg := &config.Config{
		InstanceURL: server.URL,
		AuthMode:    config.AuthModePassword,
		Username:    "user@example.com",
	}

	auth, err := NewAuthenticator(cfg, staticSecrets("hunter2", "TOKEN123"), httpclient.NewClientWithLogger(zap.NewNop()), zap.NewNop())
	require.NoError(t, err)

	session, err := auth.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "00Dtoken", session.AccessToken)
	assert.Equal(t, "https://example.my.salesforce.com", session.InstanceURL)

	// Password and security token are concatenated into a single field.
	assert.Equal(t, "password", gotForm["grant_type"])
	assert.Equal(t, "user@example.com", gotForm["username"])
	assert.Equal(t, "hunter2TOKEN123", gotForm["password"])
}

func TestClientCredentialsAuthenticate(t *testing.T) {
	server := newAuthTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "consumer-key", r.PostForm.Get("client_id"))
		assert.Equal(t, "consumer-secret", r.PostForm.Get("client_secret"))
		w.Write([]byte(`{"access_token":"00Dtoken","instance_url":"https://example.my.salesforce.com"}`))
	})

	cfg := &config.Config{
		InstanceURL:  server.URL,
		AuthMode:     config.AuthModeClientCredentials,
		ClientID:     "consumer-key",
		ClientSecret: "consumer-secret",
	}

	auth, err := NewAuthenticator(cfg, nil, httpclient.NewClientWithLogger(zap.NewNop()), zap.NewNop())
	require.NoError(t, err)

	session, err := auth.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "00Dtoken", session.AccessToken)
}

func TestAuthenticateBadCredentials(t *testing.T) {
	server := newAuthTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"authentication failure"}`))
	})

	cfg := &config.Config{
		InstanceURL: server.URL,
		AuthMode:    config.AuthModePassword,
		Username:    "user@example.com",
	}

	auth, err := NewAuthenticator(cfg, staticSecrets("wrong", "wrong"), httpclient.NewClientWithLogger(zap.NewNop()), zap.NewNop())
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "invalid_grant", authErr.Code)
	assert.Equal(t, "authentication failure", authErr.Description)
	assert.Equal(t, 400, authErr.StatusCode)
}

func TestAuthenticateMalformedResponse(t *testing.T) {
	t.Run("missing access_token", func(t *testing.T) {
		server := newAuthTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"instance_url":"https://example.my.salesforce.com"}`))
		})

		cfg := &config.Config{
			InstanceURL: server.URL,
			AuthMode:    config.AuthModePassword,
			Username:    "user@example.com",
		}
		auth, err := NewAuthenticator(cfg, staticSecrets("p", "t"), httpclient.NewClientWithLogger(zap.NewNop()), zap.NewNop())
		require.NoError(t, err)

		session, err := auth.Authenticate(context.Background())
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Nil(t, session)
	})

	t.Run("non-JSON body", func(t *testing.T) {
		server := newAuthTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>maintenance</html>`))
		})

		cfg := &config.Config{
			InstanceURL: server.URL,
			AuthMode:    config.AuthModePassword,
			Username:    "user@example.com",
		}
		auth, err := NewAuthenticator(cfg, staticSecrets("p", "t"), httpclient.NewClientWithLogger(zap.NewNop()), zap.NewNop())
		require.NoError(t, err)

		_, err = auth.Authenticate(context.Background())
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
	})
}

func TestNewAuthenticatorPasswordRequiresSecretReader(t *testing.T) {
	cfg := &config.Config{
		InstanceURL: "https://example.my.salesforce.com",
		AuthMode:    config.AuthModePassword,
		Username:    "user@example.com",
	}
	_, err := NewAuthenticator(cfg, nil, httpclient.NewClientWithLogger(zap.NewNop()), zap.NewNop())
	require.Error(t, err)
}
