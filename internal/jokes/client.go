package jokes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/squadmakers/chistes/internal/config"
	"golang.org/x/sync/errgroup"
)

// Source identifies an external joke provider.
type Source string

const (
	SourceChuck Source = "Chuck"
	SourceDad   Source = "Dad"
)

// PairedCount is the fixed number of pairs FetchPaired produces.
const PairedCount = 5

const combineConnective = " Also, "

var ErrInvalidSource = errors.New("invalid source: must be 'Chuck' or 'Dad'")

// SourceError wraps an upstream failure. Its message identifies the source
// but never carries the transport error text; that stays behind Unwrap.
type SourceError struct {
	Source Source
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to fetch %s joke", e.Source)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Pair is one Chuck joke matched with one Dad joke by request index.
type Pair struct {
	Chuck     string `json:"chuck"`
	Dad       string `json:"dad"`
	Combinado string `json:"combinado"`
}

// Client fetches jokes from the two external sources. It is stateless and
// safe for concurrent use.
type Client struct {
	httpClient *http.Client
	chuckURL   string
	dadURL     string
	userAgent  string
}

func NewClient(cfg config.SourcesConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		chuckURL:   cfg.ChuckURL,
		dadURL:     cfg.DadURL,
		userAgent:  cfg.UserAgent,
	}
}

type chuckResponse struct {
	Value string `json:"value"`
}

type dadResponse struct {
	Joke string `json:"joke"`
}

// FetchChuck returns one random joke from the Chuck Norris API.
func (c *Client) FetchChuck(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.chuckURL, nil)
	if err != nil {
		return "", &SourceError{Source: SourceChuck, Err: err}
	}

	var payload chuckResponse
	if err := c.do(req, &payload); err != nil {
		return "", &SourceError{Source: SourceChuck, Err: err}
	}
	return payload.Value, nil
}

// FetchDad returns one random joke from the Dad Jokes API, which requires an
// identifying User-Agent and an explicit Accept header to reply with JSON.
func (c *Client) FetchDad(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.dadURL, nil)
	if err != nil {
		return "", &SourceError{Source: SourceDad, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	var payload dadResponse
	if err := c.do(req, &payload); err != nil {
		return "", &SourceError{Source: SourceDad, Err: err}
	}
	return payload.Joke, nil
}

// FetchRandom dispatches to the source's fetch. Unknown tags fail even though
// callers are expected to validate first.
func (c *Client) FetchRandom(ctx context.Context, source Source) (string, error) {
	switch source {
	case SourceChuck:
		return c.FetchChuck(ctx)
	case SourceDad:
		return c.FetchDad(ctx)
	default:
		return "", ErrInvalidSource
	}
}

// FetchPaired issues 5 Chuck and 5 Dad requests concurrently and pairs the
// results by request index, not completion order. A single failed call fails
// the whole operation; no partial pairing is returned.
func (c *Client) FetchPaired(ctx context.Context) ([]Pair, error) {
	chuck := make([]string, PairedCount)
	dad := make([]string, PairedCount)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < PairedCount; i++ {
		g.Go(func() error {
			joke, err := c.FetchChuck(ctx)
			if err != nil {
				return err
			}
			chuck[i] = joke
			return nil
		})
		g.Go(func() error {
			joke, err := c.FetchDad(ctx)
			if err != nil {
				return err
			}
			dad[i] = joke
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pairs := make([]Pair, PairedCount)
	for i := range pairs {
		pairs[i] = Pair{
			Chuck:     chuck[i],
			Dad:       dad[i],
			Combinado: chuck[i] + combineConnective + strings.ToLower(dad[i]),
		}
	}
	return pairs, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("unexpected status code: " + resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
