// Package e621 is a typed client for the e621 image-board REST API.
//
// A Client translates four logical operations (list posts, get by id, get
// by md5, edit) into single HTTP round trips and decodes the JSON bodies
// onto Post records. It holds no mutable state beyond its immutable
// configuration, so concurrent calls on one Client are independent.
package e621

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/e6kit/e6go/pkg/httpclient"
)

const (
	// DefaultHost is the API host used when Config.Host is empty.
	DefaultHost = "e621.net"

	// DefaultUserAgent identifies this client when Config.UserAgent is empty.
	// The API bans generic agents, so callers should set their own.
	DefaultUserAgent = "e6go/1.0 (github.com/e6kit/e6go)"

	// API-side caps enforced locally before any request is sent.
	maxSearchTags = 40
	maxPageLimit  = 320

	defaultEditReason = "edited via e6go"

	defaultTimeout = 30 * time.Second
)

// Config is the immutable configuration of a Client. Credentials are only
// used when both Username and APIKey are set.
type Config struct {
	Username  string
	APIKey    string
	UserAgent string
	Host      string
	ForceHost bool // send an explicit Host header on every request
	FixURLs   bool // reconstruct nil media URLs on every returned post
	Blacklist []string
}

// Client issues requests against a single API host. Construct with
// NewClient; the zero value is not usable.
type Client struct {
	http       httpclient.Client
	host       string
	userAgent  string
	authHeader string
	forceHost  bool
	fixURLs    bool
	blacklist  map[string]struct{}
}

// NewClient builds a Client from cfg. A nil transport selects the default
// resty-backed one; tests inject a fake httpclient.Client instead.
func NewClient(cfg Config, transport httpclient.Client) *Client {
	if transport == nil {
		transport = httpclient.NewRestyClient(defaultTimeout)
	}
	c := &Client{
		http:      transport,
		host:      cfg.Host,
		userAgent: cfg.UserAgent,
		forceHost: cfg.ForceHost,
		fixURLs:   cfg.FixURLs,
		blacklist: make(map[string]struct{}, len(cfg.Blacklist)),
	}
	if c.host == "" {
		c.host = DefaultHost
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if cfg.Username != "" && cfg.APIKey != "" {
		token := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.APIKey))
		c.authHeader = "Basic " + token
	}
	for _, tag := range cfg.Blacklist {
		c.blacklist[tag] = struct{}{}
	}
	return c
}

// Authenticated reports whether the client carries credentials.
func (c *Client) Authenticated() bool { return c.authHeader != "" }

// ListOptions select and page the results of ListPosts. Zero values omit
// the corresponding query parameter.
type ListOptions struct {
	Tags  string // free text, split on whitespace
	Limit int
	Page  int
}

// ListPosts fetches posts matching opts, drops any post carrying a
// blacklisted tag in any category, and (when configured) reconstructs nil
// media URLs on the survivors.
func (c *Client) ListPosts(ctx context.Context, opts ListOptions) ([]Post, error) {
	tags := strings.Fields(opts.Tags)
	if len(tags) > maxSearchTags {
		return nil, fmt.Errorf("%w: %d search tags exceeds the maximum of %d", ErrInvalidArgument, len(tags), maxSearchTags)
	}
	if opts.Limit > maxPageLimit {
		return nil, fmt.Errorf("%w: limit %d exceeds the maximum of %d", ErrInvalidArgument, opts.Limit, maxPageLimit)
	}

	params := url.Values{}
	if len(tags) > 0 {
		params.Set("tags", strings.Join(tags, " "))
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Page > 0 {
		params.Set("page", strconv.Itoa(opts.Page))
	}
	endpoint := "/posts.json"
	if q := params.Encode(); q != "" {
		endpoint += "?" + q
	}

	resp, err := c.http.Get(ctx, c.endpointURL(endpoint), c.headers())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, c.apiError(resp, http.MethodGet, endpoint)
	}

	var body postsResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode posts response: %w", err)
	}

	posts := make([]Post, 0, len(body.Posts))
	for _, p := range body.Posts {
		if c.blacklisted(p) {
			continue
		}
		if c.fixURLs {
			p = FixPostURLs(p)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// GetPostByID fetches a single post. No blacklist filtering is applied to
// direct lookups.
func (c *Client) GetPostByID(ctx context.Context, id int) (*Post, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: post id must be positive, got %d", ErrInvalidArgument, id)
	}
	endpoint := fmt.Sprintf("/posts/%d.json", id)
	return c.getSinglePost(ctx, endpoint)
}

// GetPostByMD5 fetches a single post by its content hash. The endpoint is
// nominally a list endpoint, but the response is read through the singular
// "post" field — that is the upstream contract this client preserves.
func (c *Client) GetPostByMD5(ctx context.Context, md5 string) (*Post, error) {
	if len(md5) != 32 {
		return nil, fmt.Errorf("%w: md5 must be exactly 32 characters, got %d", ErrInvalidArgument, len(md5))
	}
	endpoint := "/posts.json?md5=" + url.QueryEscape(md5)
	return c.getSinglePost(ctx, endpoint)
}

// PostEdit carries the changes for EditPost. Zero-valued fields are omitted
// from the request; Reason falls back to a fixed default.
type PostEdit struct {
	Reason           string
	TagChanges       string // tag diff, e.g. "+wolf -cat"
	SourceChanges    string
	ParentID         int
	Description      string
	Rating           string // s, q or e
	RatingLocked     bool
	NoteLocked       bool
	HasEmbeddedNotes bool
}

// EditPost updates a post. It first fetches the current record to supply
// the old_* diff fields, then sends the PATCH. The two requests are not
// atomic: a concurrent edit landing between them is not detected.
func (c *Client) EditPost(ctx context.Context, id int, edit PostEdit) (*Post, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: post id must be positive, got %d", ErrInvalidArgument, id)
	}
	if !c.Authenticated() {
		return nil, ErrAuthenticationRequired
	}

	prior, err := c.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	reason := edit.Reason
	if reason == "" {
		reason = defaultEditReason
	}
	form.Set("post[edit_reason]", reason)
	if edit.TagChanges != "" {
		form.Set("post[tag_string_diff]", edit.TagChanges)
	}
	if edit.SourceChanges != "" {
		form.Set("post[source_diff]", edit.SourceChanges)
	}
	if edit.ParentID != 0 {
		form.Set("post[parent_id]", strconv.Itoa(edit.ParentID))
		if prior.Relationships.ParentID != nil {
			form.Set("post[old_parent_id]", strconv.Itoa(*prior.Relationships.ParentID))
		}
	}
	if edit.Description != "" {
		form.Set("post[description]", edit.Description)
		form.Set("post[old_description]", prior.Description)
	}
	if edit.Rating != "" {
		form.Set("post[rating]", edit.Rating)
		form.Set("post[old_rating]", prior.Rating)
	}
	if edit.RatingLocked {
		form.Set("post[is_rating_locked]", "true")
	}
	if edit.NoteLocked {
		form.Set("post[is_note_locked]", "true")
	}
	if edit.HasEmbeddedNotes {
		form.Set("post[has_embedded_notes]", "true")
	}

	endpoint := fmt.Sprintf("/posts/%d.json", id)
	resp, err := c.http.PatchForm(ctx, c.endpointURL(endpoint), form, c.headers())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, c.apiError(resp, http.MethodPatch, endpoint)
	}
	return c.decodeSinglePost(resp.Body())
}

// getSinglePost performs a GET and decodes the singular "post" envelope.
func (c *Client) getSinglePost(ctx context.Context, endpoint string) (*Post, error) {
	resp, err := c.http.Get(ctx, c.endpointURL(endpoint), c.headers())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, c.apiError(resp, http.MethodGet, endpoint)
	}
	return c.decodeSinglePost(resp.Body())
}

func (c *Client) decodeSinglePost(body []byte) (*Post, error) {
	var envelope postResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode post response: %w", err)
	}
	post := envelope.Post
	if c.fixURLs {
		post = FixPostURLs(post)
	}
	return &post, nil
}

func (c *Client) endpointURL(endpoint string) string {
	return "https://" + c.host + endpoint
}

// headers builds the per-request header set. The Host header is only forced
// when configured; resty applies it to the outgoing request's Host field.
func (c *Client) headers() map[string]string {
	h := map[string]string{"User-Agent": c.userAgent}
	if c.authHeader != "" {
		h["Authorization"] = c.authHeader
	}
	if c.forceHost {
		h["Host"] = c.host
	}
	return h
}

func (c *Client) blacklisted(p Post) bool {
	if len(c.blacklist) == 0 {
		return false
	}
	for _, tag := range p.Tags.All() {
		if _, ok := c.blacklist[tag]; ok {
			return true
		}
	}
	return false
}

// apiError maps a non-2xx response onto an *APIError, preferring the
// server's JSON error envelope over the bare status line.
func (c *Client) apiError(resp httpclient.Response, method, endpoint string) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode(),
		Message:    serverMessage(resp),
		Method:     method,
		Endpoint:   endpoint,
	}
}

func serverMessage(resp httpclient.Response) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	if s := strings.TrimSpace(resp.Status()); s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode())
}
