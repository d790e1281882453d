package gauth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// writeKeyFile writes a syntactically valid service-account key file
// with a throwaway RSA key.
func writeKeyFile(t *testing.T, projectID string) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyBytes, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})

	content, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   projectID,
		"client_email": "bot@" + projectID + ".iam.gserviceaccount.com",
		"private_key":  string(keyPEM),
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestProjectIDFromKeyFile(t *testing.T) {
	t.Parallel()
	p := New(writeKeyFile(t, "bike-shop"), "https://www.googleapis.com/auth/dialogflow")

	got, err := p.ProjectID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bike-shop", got)
}

// TestConcurrentFirstUse exercises the single-initialization guarantee:
// many goroutines racing on a cold provider all succeed and agree.
func TestConcurrentFirstUse(t *testing.T) {
	t.Parallel()
	p := New(writeKeyFile(t, "bike-shop"), "https://www.googleapis.com/auth/dialogflow")

	const workers = 16
	results := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = p.ProjectID(context.Background())
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, "bike-shop", results[i])
	}
}

func TestMissingKeyFile(t *testing.T) {
	t.Parallel()
	p := New(filepath.Join(t.TempDir(), "absent.json"), "scope")

	_, err := p.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read service account key")
}

func TestMalformedKeyFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	p := New(path, "scope")

	_, err := p.ProjectID(context.Background())
	require.Error(t, err)
}

func TestAuthorizeInjection(t *testing.T) {
	t.Parallel()
	p := New("never-read.json", "scope")
	p.Authorize(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "injected"}), "injected-project")

	token, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "injected", token.AccessToken)

	projectID, err := p.ProjectID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "injected-project", projectID)
}

func TestSetAuthHeader(t *testing.T) {
	t.Parallel()
	p := New("never-read.json", "scope")
	p.Authorize(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "injected"}), "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(srv.Close)

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	require.NoError(t, p.SetAuthHeader(context.Background(), req))
	assert.Equal(t, "Bearer injected", req.Header.Get("Authorization"))
}
