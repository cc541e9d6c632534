// Package source fetches raw user records from the upstream directory API
// and turns them into enriched employees.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/rcliao/staff-directory/internal/model"
)

// DefaultURL is the public user listing the directory is seeded from.
const DefaultURL = "https://dummyjson.com/users"

// DefaultLimit is the number of users requested when none is configured.
const DefaultLimit = 20

// RawUser is a user as returned by the upstream API.
type RawUser struct {
	ID        int        `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Age       int        `json:"age"`
	Image     string     `json:"image"`
	Address   RawAddress `json:"address"`
}

// RawAddress is the upstream address shape. Street is named "address".
type RawAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Fetcher retrieves raw users.
type Fetcher interface {
	Fetch(ctx context.Context) ([]RawUser, error)
}

// Enricher fills in the synthesized fields of an employee.
type Enricher interface {
	Enrich(u RawUser) model.Employee
}

// HTTPFetcher reads users from a dummyjson-style endpoint.
type HTTPFetcher struct {
	baseURL string
	limit   int
	client  *http.Client
	log     zerolog.Logger
}

type usersResponse struct {
	Users []RawUser `json:"users"`
}

// NewHTTPFetcher creates a fetcher for baseURL. A zero limit or timeout
// falls back to the defaults.
func NewHTTPFetcher(baseURL string, limit int, timeout time.Duration, log zerolog.Logger) *HTTPFetcher {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFetcher{
		baseURL: baseURL,
		limit:   limit,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// URL returns the request URL including the limit parameter.
func (f *HTTPFetcher) URL() (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse source url: %w", err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(f.limit))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch performs a single GET. There is no retry.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]RawUser, error) {
	target, err := f.URL()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch users: status %d: %s", resp.StatusCode, string(b))
	}

	var result usersResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	f.log.Debug().
		Str("url", target).
		Int("users", len(result.Users)).
		Dur("elapsed", time.Since(start)).
		Msg("fetched users")
	return result.Users, nil
}

// Pipeline fetches and enriches users. It implements records.Loader.
type Pipeline struct {
	Fetcher  Fetcher
	Enricher Enricher
}

// LoadEmployees fetches every raw user and enriches it, preserving the
// upstream order.
func (p Pipeline) LoadEmployees(ctx context.Context) ([]model.Employee, error) {
	users, err := p.Fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	employees := make([]model.Employee, 0, len(users))
	for _, u := range users {
		employees = append(employees, p.Enricher.Enrich(u))
	}
	return employees, nil
}
