package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client wraps HTTP calls to the Joti REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL, token string, timeout ...time.Duration) *Client {
	httpTimeout := 30 * time.Second
	if len(timeout) > 0 && timeout[0] > 0 {
		httpTimeout = timeout[0]
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

// SetToken updates the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// WithTimeout clones the client with a different HTTP timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	return NewClient(c.baseURL, c.token, timeout)
}

// do executes an HTTP request and returns the raw response body.
func (c *Client) do(method, path string, body any) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if msg, ok := extractErrorBody(respBody); ok {
			return nil, resp.StatusCode, fmt.Errorf("%s", msg)
		}
		return nil, resp.StatusCode, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, resp.StatusCode, nil
}

// get performs a GET request.
func (c *Client) get(path string) ([]byte, error) {
	body, _, err := c.do(http.MethodGet, path, nil)
	return body, err
}

// post performs a POST request.
func (c *Client) post(path string, body any) ([]byte, error) {
	b, _, err := c.do(http.MethodPost, path, body)
	return b, err
}

// put performs a PUT request.
func (c *Client) put(path string, body any) ([]byte, error) {
	b, _, err := c.do(http.MethodPut, path, body)
	return b, err
}

// patch performs a PATCH request.
func (c *Client) patch(path string, body any) ([]byte, error) {
	b, _, err := c.do(http.MethodPatch, path, body)
	return b, err
}

// del performs a DELETE request.
func (c *Client) del(path string) ([]byte, error) {
	b, _, err := c.do(http.MethodDelete, path, nil)
	return b, err
}

// unwrap strips the {"data": ...} envelope when present. The backend wraps
// some responses and not others, so normalization happens once here and the
// rest of the client only ever sees the bare payload.
func unwrap(data []byte) []byte {
	var probe struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && len(probe.Data) > 0 {
		return probe.Data
	}
	return data
}

// decodeOne decodes a single-item response, wrapped or bare.
func decodeOne[T any](data []byte) (*T, error) {
	var item T
	if err := json.Unmarshal(unwrap(data), &item); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &item, nil
}

// decodeList decodes a list response, wrapped or bare.
func decodeList[T any](data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(unwrap(data), &items); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return items, nil
}

// extractErrorBody pulls a human-readable message out of an error payload.
// The backend is inconsistent here too: plain strings under "error" or
// "detail", or nested {code, message} objects.
func extractErrorBody(body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}

	if msg, ok := parseErrorValue(payload["error"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["detail"]); ok {
		return msg, true
	}
	if msg, ok := parseErrorValue(payload["message"]); ok {
		return msg, true
	}
	return "", false
}

func parseErrorValue(raw any) (string, bool) {
	switch value := raw.(type) {
	case string:
		msg := strings.TrimSpace(value)
		if msg == "" {
			return "", false
		}
		return msg, true
	case map[string]any:
		if nested, ok := parseErrorValue(value["error"]); ok {
			return nested, true
		}
		code, _ := value["code"].(string)
		message, _ := value["message"].(string)
		return formatError(code, message)
	}
	return "", false
}

func formatError(code, message string) (string, bool) {
	code = strings.TrimSpace(code)
	message = strings.TrimSpace(message)
	switch {
	case code != "" && message != "":
		return fmt.Sprintf("%s: %s", code, message), true
	case code != "":
		return code, true
	case message != "":
		return message, true
	default:
		return "", false
	}
}
