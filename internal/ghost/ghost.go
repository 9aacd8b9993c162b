// Package ghost publishes recipes as posts on a Ghost blog through the Admin API.
package ghost

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"recipe-box/internal/recipe"
)

// Post is the subset of a Ghost post we read back.
type Post struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// PostsResponse is the top-level structure of the Ghost API response for posts.
type PostsResponse struct {
	Posts []Post `json:"posts"`
}

// Client talks to the Ghost Admin API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	adminKey   string
	log        *zap.Logger
}

// NewClient creates a new Ghost API client. adminKey has the form "id:hexsecret".
func NewClient(baseURL, adminKey string, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		adminKey:   adminKey,
		log:        log.Named("ghost"),
	}
}

// PublishRecipe renders r and creates a post for it, as a draft unless publish is set.
func (c *Client) PublishRecipe(ctx context.Context, r recipe.Recipe, publish bool) (*Post, error) {
	html, err := RenderRecipe(r)
	if err != nil {
		return nil, err
	}
	post, err := c.CreatePost(ctx, r.Title, html, r.Tags, publish)
	if err != nil {
		return nil, err
	}
	c.log.Info("recipe posted",
		zap.String("recipe_id", r.ID),
		zap.String("post_id", post.ID),
		zap.String("status", post.Status))
	return post, nil
}

// CreatePost creates a new post using the Ghost Admin API.
func (c *Client) CreatePost(ctx context.Context, title, html string, tags []string, publish bool) (*Post, error) {
	token, err := c.createAdminToken(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to create admin token: %w", err)
	}

	status := "draft"
	if publish {
		status = "published"
	}

	post := map[string]any{
		"title":  title,
		"html":   html,
		"status": status,
	}
	if len(tags) > 0 {
		post["tags"] = tags
	}
	body, err := json.Marshal(map[string]any{"posts": []map[string]any{post}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode post: %w", err)
	}

	url := c.baseURL + "/ghost/api/admin/posts/?source=html"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Ghost "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var errResp any
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("admin api error: status %d, body: %v", resp.StatusCode, errResp)
	}

	var response PostsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(response.Posts) == 0 {
		return nil, fmt.Errorf("no post returned from api")
	}
	return &response.Posts[0], nil
}

// createAdminToken generates a short-lived JWT for the Admin API.
func (c *Client) createAdminToken(now time.Time) (string, error) {
	id, secretHex, ok := strings.Cut(c.adminKey, ":")
	if !ok || id == "" {
		return "", fmt.Errorf("invalid admin key format: expected id:secret")
	}

	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return "", fmt.Errorf("failed to decode secret hex: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
		"aud": "/admin/",
	})
	token.Header["kid"] = id

	return token.SignedString(secret)
}
