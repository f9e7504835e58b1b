// Package client provides an HTTP client for the homebase REST API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/evcraddock/homebase/internal/auth"
	"github.com/evcraddock/homebase/internal/listing"
	"github.com/evcraddock/homebase/internal/message"
	"github.com/evcraddock/homebase/internal/user"
)

// Client is an HTTP client for the homebase API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client. An empty token makes anonymous requests.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Image is a listing photo in a create request.
type Image struct {
	URL string `json:"url"`
}

// NewListing is the body of POST /api/listings.
type NewListing struct {
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Price        float64 `json:"price"`
	LandSize     float64 `json:"land_size"`
	Bedrooms     int64   `json:"bedrooms"`
	Bathrooms    float64 `json:"bathrooms"`
	PropertyType string  `json:"property_type"`
	Images       []Image `json:"images,omitempty"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Signup registers an account with the given role and returns its token.
func (c *Client) Signup(role user.Role, p auth.SignupParams) (string, error) {
	var resp tokenResponse
	if err := c.post("/auth/signup/"+url.PathEscape(string(role)), p, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Signin exchanges credentials for a token.
func (c *Client) Signin(email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := c.post("/auth/signin", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ProductKey asks the server for a registration key (admin only).
func (c *Client) ProductKey(email string, role user.Role) (string, error) {
	body := map[string]string{"email": email, "role": string(role)}
	var resp struct {
		ProductKey string `json:"product_key"`
	}
	if err := c.post("/auth/key", body, &resp); err != nil {
		return "", err
	}
	return resp.ProductKey, nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me() (*user.User, error) {
	var u user.User
	if err := c.get("/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Users lists every account (admin only).
func (c *Client) Users() ([]*user.User, error) {
	var users []*user.User
	if err := c.get("/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SearchListings returns listing summaries matching f.
func (c *Client) SearchListings(f listing.Filter) ([]*listing.Summary, error) {
	q := url.Values{}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.PropertyType != "" {
		q.Set("propertyType", string(f.PropertyType))
	}

	path := "/api/listings"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var summaries []*listing.Summary
	if err := c.get(path, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetListing returns a listing with images and realtor contact.
func (c *Client) GetListing(id int64) (*listing.Detail, error) {
	var d listing.Detail
	if err := c.get(fmt.Sprintf("/api/listings/%d", id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateListing creates a listing owned by the caller.
func (c *Client) CreateListing(l NewListing) (*listing.Detail, error) {
	var d listing.Detail
	if err := c.post("/api/listings", l, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateListing sends only the given fields, keyed by their JSON names.
func (c *Client) UpdateListing(id int64, changes map[string]interface{}) (*listing.Detail, error) {
	var d listing.Detail
	if err := c.put(fmt.Sprintf("/api/listings/%d", id), changes, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteListing removes a listing.
func (c *Client) DeleteListing(id int64) error {
	return c.doDelete(fmt.Sprintf("/api/listings/%d", id))
}

// Inquire sends a message to the listing's realtor.
func (c *Client) Inquire(id int64, text string) (*message.Message, error) {
	body := map[string]string{"message": text}
	var m message.Message
	if err := c.post(fmt.Sprintf("/api/listings/%d/inquire", id), body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMessages returns the inquiries on a listing.
func (c *Client) ListMessages(id int64) ([]*message.Message, error) {
	var msgs []*message.Message
	if err := c.get(fmt.Sprintf("/api/listings/%d/messages", id), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	return c.send("POST", path, body, result)
}

// put performs a PUT request with a JSON body and decodes the response.
func (c *Client) put(path string, body interface{}, result interface{}) error {
	return c.send("PUT", path, body, result)
}

func (c *Client) send(method, path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(path string) error {
	req, err := http.NewRequest("DELETE", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// do executes an HTTP request with auth header and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "server error: " + http.StatusText(resp.StatusCode)}
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
