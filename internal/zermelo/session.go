package zermelo

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds each HTTP call when no client is supplied.
const DefaultTimeout = 30 * time.Second

// BaseURL returns the tenant API root for a school identifier. The
// identifier is used verbatim.
func BaseURL(school string) string {
	return fmt.Sprintf("https://%s.zportal.nl/api/v3", school)
}

// Session is an authenticated handle on one school's API. It is created
// once per run and only lives in memory.
type Session struct {
	school      string
	baseURL     string
	accessToken string
	client      *http.Client
	clock       Clock
}

type options struct {
	baseURL string
	client  *http.Client
	clock   Clock
}

// Option customizes a Session.
type Option func(*options)

// WithBaseURL overrides the API root derived from the school identifier.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets the transport used for every request.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

// WithClock sets the source of "now" used for the day window.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

func buildOptions(school string, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.baseURL == "" {
		o.baseURL = BaseURL(school)
	}
	if o.client == nil {
		o.client = &http.Client{Timeout: DefaultTimeout}
	}
	if o.clock == nil {
		o.clock = SystemClock{}
	}
	return o
}

// FromAccessToken builds a Session around an existing access token. It
// never touches the network and does not validate the token.
func FromAccessToken(token, school string, opts ...Option) *Session {
	o := buildOptions(school, opts)
	return newSession(school, token, o)
}

func newSession(school, token string, o options) *Session {
	return &Session{
		school:      school,
		baseURL:     o.baseURL,
		accessToken: token,
		client:      o.client,
		clock:       o.clock,
	}
}

// AccessToken returns the token this session authenticates with.
func (s *Session) AccessToken() string { return s.accessToken }

// BaseURL returns the API root this session talks to.
func (s *Session) BaseURL() string { return s.baseURL }

// School returns the school identifier the session was created for.
func (s *Session) School() string { return s.school }
