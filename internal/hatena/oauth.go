// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hatena

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hateclip/pkg/types"
)

// OAuth 1.0a endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	requestTokenURL = "https://www.hatena.com/oauth/initiate"
	authorizeURL    = "https://www.hatena.ne.jp/oauth/authorize"
	accessTokenURL  = "https://www.hatena.com/oauth/token"
)

// oauthScope requests read and write access to public and private
// bookmarks; write is needed for deletion.
const oauthScope = "read_public,read_private,write_public,write_private"

// Token is a long-lived Hatena access token, persisted between runs.
// It is invalidated only by external revocation.
type Token struct {
	AccessToken  string `yaml:"access_token"`
	AccessSecret string `yaml:"access_secret"`
}

// LoadToken reads a persisted token from path. It returns (nil, nil) when
// the file does not exist.
func LoadToken(path string) (*Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading token file %s: %w", path, err)
	}

	var tok Token
	if err := yaml.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parsing token file %s: %w", path, err)
	}
	if tok.AccessToken == "" || tok.AccessSecret == "" {
		return nil, fmt.Errorf("token file %s is missing access token or secret", path)
	}
	return &tok, nil
}

// SaveToken persists tok to path with owner-only permissions.
func SaveToken(path string, tok *Token) error {
	data, err := yaml.Marshal(tok)
	if err != nil {
		return fmt.Errorf("marshaling token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing token file %s: %w", path, err)
	}
	return nil
}

// AuthState tracks progress through the interactive authorization flow.
type AuthState string

const (
	StateUnauthenticated       AuthState = "unauthenticated"
	StateAwaitingAuthorization AuthState = "awaiting_authorization"
	StateAuthenticated         AuthState = "authenticated"
)

// Authorizer runs the one-time interactive OAuth 1.0a flow: fetch a
// request token, send the operator to the authorization URL, collect the
// PIN, and exchange it for an access token. The prompt reader/writer are
// injected so the flow can be driven from tests.
type Authorizer struct {
	config *oauth1.Config
	state  AuthState
	in     io.Reader
	out    io.Writer
}

// NewAuthorizer builds an Authorizer for the given application credentials.
func NewAuthorizer(cfg types.AuthConfig, in io.Reader, out io.Writer) *Authorizer {
	return &Authorizer{
		config: &oauth1.Config{
			ConsumerKey:    cfg.ConsumerKey,
			ConsumerSecret: cfg.ConsumerSecret,
			CallbackURL:    "oob",
			Endpoint: oauth1.Endpoint{
				// Hatena takes the scope as a query parameter on the
				// initiate endpoint.
				RequestTokenURL: requestTokenURL + "?scope=" + url.QueryEscape(oauthScope),
				AuthorizeURL:    authorizeURL,
				AccessTokenURL:  accessTokenURL,
			},
		},
		state: StateUnauthenticated,
		in:    in,
		out:   out,
	}
}

// State returns the current position in the authorization flow.
func (a *Authorizer) State() AuthState {
	return a.state
}

// Authorize runs the full flow and returns the access token. Any failure
// leaves the flow unauthenticated; there is no automatic retry.
func (a *Authorizer) Authorize() (*Token, error) {
	requestToken, requestSecret, err := a.config.RequestToken()
	if err != nil {
		a.state = StateUnauthenticated
		return nil, fmt.Errorf("fetching request token: %w", err)
	}

	authURL, err := a.config.AuthorizationURL(requestToken)
	if err != nil {
		a.state = StateUnauthenticated
		return nil, fmt.Errorf("building authorization URL: %w", err)
	}
	a.state = StateAwaitingAuthorization

	fmt.Fprintln(a.out, strings.Repeat("-", 50))
	fmt.Fprintln(a.out, "Open the following URL and authorize the application:")
	fmt.Fprintln(a.out, authURL.String())
	fmt.Fprintln(a.out, strings.Repeat("-", 50))
	fmt.Fprint(a.out, "Enter the PIN code (verifier): ")

	verifier, err := readLine(a.in)
	if err != nil {
		a.state = StateUnauthenticated
		return nil, fmt.Errorf("reading verifier: %w", err)
	}
	if verifier == "" {
		a.state = StateUnauthenticated
		return nil, fmt.Errorf("empty verifier")
	}

	accessToken, accessSecret, err := a.config.AccessToken(requestToken, requestSecret, verifier)
	if err != nil {
		a.state = StateUnauthenticated
		return nil, fmt.Errorf("exchanging for access token: %w", err)
	}

	a.state = StateAuthenticated
	return &Token{AccessToken: accessToken, AccessSecret: accessSecret}, nil
}

// EnsureToken returns the persisted token from cfg.TokenFile, or runs the
// interactive flow and persists the result when no token exists yet.
func EnsureToken(cfg types.AuthConfig, in io.Reader, out io.Writer) (*Token, error) {
	tok, err := LoadToken(cfg.TokenFile)
	if err != nil {
		return nil, err
	}
	if tok != nil {
		return tok, nil
	}

	fmt.Fprintf(out, "No token found at %s, starting authorization.\n", cfg.TokenFile)
	tok, err = NewAuthorizer(cfg, in, out).Authorize()
	if err != nil {
		return nil, err
	}
	if err := SaveToken(cfg.TokenFile, tok); err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Access token saved to %s.\n", cfg.TokenFile)
	return tok, nil
}

// NewSession returns an *http.Client that signs every request with the
// application credentials and the given access token.
func NewSession(cfg types.AuthConfig, tok *Token, timeout time.Duration) *http.Client {
	config := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	client := config.Client(oauth1.NoContext, oauth1.NewToken(tok.AccessToken, tok.AccessSecret))
	client.Timeout = timeout
	return client
}

// readLine reads one trimmed line from r.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
