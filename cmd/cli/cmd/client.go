package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"itemplane/pkg/api"
	"net/http"
	"strings"
	"time"
)

// ItemClient handles API calls to the itemplane controller.
type ItemClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewItemClient creates a new client with the given base URL.
func NewItemClient(baseURL string) *ItemClient {
	return &ItemClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// ListItems sends GET /items/ or GET /read/ depending on source.
func (c *ItemClient) ListItems(source string) ([]api.Item, error) {
	path, err := collectionPath(source, "items", "read")
	if err != nil {
		return nil, err
	}

	var result []api.Item
	if err := c.do(http.MethodGet, path, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetItem sends GET /items/{id}/.
func (c *ItemClient) GetItem(id int64) (*api.Item, error) {
	var result api.Item
	if err := c.do(http.MethodGet, itemPath(id), nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateItem sends POST /items/ or POST /write/ depending on via.
func (c *ItemClient) CreateItem(via string, req api.ItemRequest) (*api.Item, error) {
	path, err := collectionPath(via, "items", "write")
	if err != nil {
		return nil, err
	}

	var result api.Item
	if err := c.do(http.MethodPost, path, req, http.StatusCreated, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateItem sends PUT /items/{id}/ when replace is set, PATCH otherwise.
func (c *ItemClient) UpdateItem(id int64, req api.ItemRequest, replace bool) (*api.Item, error) {
	method := http.MethodPatch
	if replace {
		method = http.MethodPut
	}

	var result api.Item
	if err := c.do(method, itemPath(id), req, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteItem sends DELETE /items/{id}/.
func (c *ItemClient) DeleteItem(id int64) error {
	return c.do(http.MethodDelete, itemPath(id), nil, http.StatusNoContent, nil)
}

func (c *ItemClient) do(method, path string, body interface{}, wantStatus int, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Add("Accept", "application/json")
	if body != nil {
		httpReq.Header.Add("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func itemPath(id int64) string {
	return fmt.Sprintf("/items/%d/", id)
}

// collectionPath maps a source name to its collection path.
// The empty name selects the generic resource.
func collectionPath(name string, allowed ...string) (string, error) {
	if name == "" {
		name = allowed[0]
	}
	for _, a := range allowed {
		if name == a {
			return "/" + name + "/", nil
		}
	}
	return "", fmt.Errorf("unknown endpoint %q (expected one of: %s)", name, strings.Join(allowed, ", "))
}
