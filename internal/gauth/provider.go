// Package gauth provides lazily initialized service-account credentials
// for Google APIs. A provider is constructed from a JSON key file and a
// permission scope; the first caller triggers authorization and every
// subsequent caller reuses the cached token source.
package gauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"
)

// Provider issues bearer tokens for one Google API scope.
// It is safe for concurrent use: first-time credential loading is
// deduplicated with singleflight so parallel webhook deliveries do not
// race to authorize, and token refresh is handled by oauth2.ReuseTokenSource.
type Provider struct {
	keyPath string
	scope   string

	group singleflight.Group

	mu        sync.RWMutex
	source    oauth2.TokenSource
	projectID string
}

// keyFile holds the fields we read out of a service-account key file.
type keyFile struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	ProjectID   string `json:"project_id"`
}

// New creates a provider for the given service-account key file and scope.
// The key file is not read until the first Token or ProjectID call.
func New(keyPath, scope string) *Provider {
	return &Provider{
		keyPath: keyPath,
		scope:   scope,
	}
}

// Token returns a valid bearer token, authorizing on first use.
func (p *Provider) Token(ctx context.Context) (*oauth2.Token, error) {
	source, err := p.tokenSource(ctx)
	if err != nil {
		return nil, err
	}
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("fetch token for scope %s: %w", p.scope, err)
	}
	return token, nil
}

// ProjectID returns the project_id field of the key file.
// It is used to address the Dialogflow agent.
func (p *Provider) ProjectID(ctx context.Context) (string, error) {
	if _, err := p.tokenSource(ctx); err != nil {
		return "", err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.projectID, nil
}

// tokenSource returns the cached token source, initializing it once.
func (p *Provider) tokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	p.mu.RLock()
	source := p.source
	p.mu.RUnlock()
	if source != nil {
		return source, nil
	}

	// Deduplicate concurrent first-time initialization.
	result, err, _ := p.group.Do("init", func() (any, error) {
		p.mu.RLock()
		cached := p.source
		p.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		data, err := os.ReadFile(p.keyPath)
		if err != nil {
			return nil, fmt.Errorf("read service account key %s: %w", p.keyPath, err)
		}

		var key keyFile
		if err := json.Unmarshal(data, &key); err != nil {
			return nil, fmt.Errorf("parse service account key %s: %w", p.keyPath, err)
		}

		conf, err := google.JWTConfigFromJSON(data, p.scope)
		if err != nil {
			return nil, fmt.Errorf("build JWT config for scope %s: %w", p.scope, err)
		}

		created := oauth2.ReuseTokenSource(nil, conf.TokenSource(ctx))

		p.mu.Lock()
		p.source = created
		p.projectID = key.ProjectID
		p.mu.Unlock()

		return created, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(oauth2.TokenSource), nil
}

// Authorize injects a pre-built token source and project ID.
// Intended for tests that should not touch the OAuth endpoint.
func (p *Provider) Authorize(source oauth2.TokenSource, projectID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source = source
	p.projectID = projectID
}

// SetAuthHeader adds the bearer token to an outbound request.
func (p *Provider) SetAuthHeader(ctx context.Context, req *http.Request) error {
	token, err := p.Token(ctx)
	if err != nil {
		return err
	}
	token.SetAuthHeader(req)
	return nil
}
