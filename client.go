package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// ErrUnauthorized marks a 401 from the backend. The UI treats it as an
// authentication signal and shows the login prompt instead of a generic
// error.
var ErrUnauthorized = errors.New("unauthorized")

// Client talks to the postcard backend. It holds the session cookie the
// login call establishes, so one client instance spans the whole program.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(cfg *Config, log zerolog.Logger) *Client {
	jar := newCookieJar()
	return &Client{
		baseURL: strings.TrimSuffix(cfg.ServerURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeout) * time.Second,
			Jar:     jar,
		},
		log: log,
	}
}

// Session resolves the current user, or nil when nobody is logged in. It
// gates the whole UI, so transient failures are retried briefly before the
// composer degrades to the login prompt.
func (c *Client) Session(ctx context.Context) (*User, error) {
	var user *User
	op := func() error {
		u, err := c.fetchSession(ctx)
		if err != nil {
			c.log.Warn().Err(err).Msg("session fetch failed, retrying")
			return err
		}
		user = u
		return nil
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) fetchSession(ctx context.Context) (*User, error) {
	var user User
	err := c.doJSON(ctx, http.MethodGet, "/user/me", nil, &user, nil)
	if errors.Is(err, ErrUnauthorized) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	body := map[string]string{"username": username, "password": password}
	var user User
	if err := c.doJSON(ctx, http.MethodPost, "/user/login", body, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

// Users returns every known user for the recipients multi-select. Callers
// treat a failure as non-critical: the composer proceeds with an empty
// recipient list.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.doJSON(ctx, http.MethodGet, "/user/all", nil, &users, nil); err != nil {
		return nil, err
	}
	return users, nil
}

// CreatePostcard submits a finished draft. The draft's submission id rides
// along as an Idempotency-Key header so a retry after a perceived failure
// cannot create a duplicate.
func (c *Client) CreatePostcard(ctx context.Context, d *Draft) (*StoredPostcard, error) {
	header := http.Header{}
	if d.SubmissionID != "" {
		header.Set("Idempotency-Key", d.SubmissionID)
	}
	var card StoredPostcard
	if err := c.doJSON(ctx, http.MethodPost, "/postcard", d, &card, header); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, header http.Header) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%s %s: server returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// newCookieJar backs the session cookie the login call sets.
func newCookieJar() http.CookieJar {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil
	}
	return jar
}
