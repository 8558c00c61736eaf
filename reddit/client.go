package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	DefaultTokenURL = "https://www.reddit.com/api/v1/access_token"
	DefaultAPIBase  = "https://oauth.reddit.com"
)

// ErrPostNotFound is returned by Post when the id matches nothing.
var ErrPostNotFound = errors.New("reddit: post not found")

// Config holds the Reddit script-app credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Username     string
	Password     string

	// TokenURL and APIBase default to the public endpoints.
	TokenURL string
	APIBase  string
	Timeout  time.Duration
}

// Post is a submission (t3) as seen by the bot.
type Post struct {
	ID        string
	FullName  string
	Title     string
	Body      string
	Author    string
	Permalink string
	URL       string
	Created   time.Time
}

// Comment is a reply the bot created.
type Comment struct {
	ID        string
	FullName  string
	Permalink string
}

type listing struct {
	Data struct {
		Children []struct {
			Kind string   `json:"kind"`
			Data postData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type postData struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Author     string  `json:"author"`
	Permalink  string  `json:"permalink"`
	URL        string  `json:"url"`
	CreatedUTC float64 `json:"created_utc"`
}

type commentResp struct {
	JSON struct {
		Errors [][]any `json:"errors"`
		Data   struct {
			Things []struct {
				Kind string `json:"kind"`
				Data struct {
					ID        string `json:"id"`
					Name      string `json:"name"`
					Permalink string `json:"permalink"`
				} `json:"data"`
			} `json:"things"`
		} `json:"data"`
	} `json:"json"`
}

// Client talks to the Reddit OAuth API on behalf of one account.
type Client struct {
	cfg     Config
	client  *http.Client
	apiBase string
	logger  *zap.Logger
}

// New creates a Client and fetches the access token immediately so it can be reused.
func New(ctx context.Context, cfg Config, base *http.Client, logger *zap.Logger) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("reddit: client id and client secret are required")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("reddit: username and password are required")
	}
	if cfg.UserAgent == "" {
		return nil, errors.New("reddit: user agent is required")
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if base == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		base = &http.Client{Timeout: timeout}
	}
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	uaClient := &http.Client{
		Timeout:   base.Timeout,
		Transport: &userAgentTransport{userAgent: cfg.UserAgent, base: transport},
	}

	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, uaClient)
	tok, err := oc.PasswordCredentialsToken(tokenCtx, cfg.Username, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("reddit: fetching access token: %w", err)
	}
	logger.Debug("reddit access token acquired", zap.Time("expiry", tok.Expiry))

	client := oc.Client(tokenCtx, tok)
	client.Timeout = uaClient.Timeout

	return &Client{
		cfg:     cfg,
		client:  client,
		apiBase: strings.TrimRight(cfg.APIBase, "/"),
		logger:  logger,
	}, nil
}

// NewPosts lists the newest posts of a subreddit, newest first.
func (c *Client) NewPosts(ctx context.Context, subreddit string, limit int) ([]Post, error) {
	return c.listPosts(ctx, subreddit, "new", limit)
}

// HotPosts lists the subreddit's hot posts in Reddit's ranking order.
func (c *Client) HotPosts(ctx context.Context, subreddit string, limit int) ([]Post, error) {
	return c.listPosts(ctx, subreddit, "hot", limit)
}

func (c *Client) listPosts(ctx context.Context, subreddit, sort string, limit int) ([]Post, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("raw_json", "1")
	endpoint := fmt.Sprintf("%s/r/%s/%s?%s", c.apiBase, url.PathEscape(subreddit), sort, q.Encode())

	var l listing
	if err := c.getJSON(ctx, endpoint, &l); err != nil {
		return nil, fmt.Errorf("listing r/%s/%s: %w", subreddit, sort, err)
	}
	posts := l.posts()
	c.logger.Debug("listed posts",
		zap.String("subreddit", subreddit),
		zap.String("sort", sort),
		zap.Int("count", len(posts)))
	return posts, nil
}

// Post fetches a single submission by id ("abc123" or "t3_abc123").
func (c *Client) Post(ctx context.Context, id string) (Post, error) {
	id = strings.TrimPrefix(id, "t3_")
	endpoint := fmt.Sprintf("%s/by_id/t3_%s?raw_json=1", c.apiBase, url.PathEscape(id))

	var l listing
	if err := c.getJSON(ctx, endpoint, &l); err != nil {
		return Post{}, fmt.Errorf("fetching post %s: %w", id, err)
	}
	posts := l.posts()
	if len(posts) == 0 {
		return Post{}, fmt.Errorf("%w: %s", ErrPostNotFound, id)
	}
	return posts[0], nil
}

// Reply submits text as a top-level comment on the post.
func (c *Client) Reply(ctx context.Context, postID, text string) (Comment, error) {
	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("thing_id", "t3_"+strings.TrimPrefix(postID, "t3_"))
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/api/comment", strings.NewReader(form.Encode()))
	if err != nil {
		return Comment{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var data commentResp
	if err := c.do(req, &data); err != nil {
		return Comment{}, fmt.Errorf("replying to %s: %w", postID, err)
	}
	if len(data.JSON.Errors) > 0 {
		return Comment{}, fmt.Errorf("replying to %s: %s", postID, formatAPIErrors(data.JSON.Errors))
	}
	for _, th := range data.JSON.Data.Things {
		if th.Kind == "t1" && th.Data.ID != "" {
			return Comment{ID: th.Data.ID, FullName: th.Data.Name, Permalink: th.Data.Permalink}, nil
		}
	}
	return Comment{}, fmt.Errorf("replying to %s: response contained no comment", postID)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("reddit API %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (l listing) posts() []Post {
	posts := make([]Post, 0, len(l.Data.Children))
	for _, ch := range l.Data.Children {
		if ch.Kind != "t3" {
			continue
		}
		d := ch.Data
		posts = append(posts, Post{
			ID:        d.ID,
			FullName:  d.Name,
			Title:     d.Title,
			Body:      d.Selftext,
			Author:    d.Author,
			Permalink: d.Permalink,
			URL:       d.URL,
			Created:   time.Unix(int64(d.CreatedUTC), 0).UTC(),
		})
	}
	return posts
}

// Reddit reports API errors as [code, message, field] triples.
func formatAPIErrors(errs [][]any) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		fields := make([]string, 0, len(e))
		for _, f := range e {
			if s := fmt.Sprint(f); s != "" {
				fields = append(fields, s)
			}
		}
		parts = append(parts, strings.Join(fields, ": "))
	}
	return strings.Join(parts, "; ")
}

type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}
