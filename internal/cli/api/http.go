package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// StatusResponse is the JSON body returned by both token routes.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Get sends a GET request and returns the response with its fully read body.
func Get(ctx context.Context, endpoint string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	return resp, body, nil
}

// ValidateURL builds the link that marks token validated.
func ValidateURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/auth/" + url.PathEscape(token)
}

// StatusURL builds the polling URL for token.
func StatusURL(baseURL, token string) string {
	return ValidateURL(baseURL, token) + "/status"
}

// Validate visits the validation link. Any status other than 200 is an error.
func Validate(ctx context.Context, baseURL, token string) (StatusResponse, error) {
	resp, body, err := Get(ctx, ValidateURL(baseURL, token))
	if err != nil {
		return StatusResponse{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return StatusResponse{}, fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return decode(body)
}

// Status asks the server for the token status. validated is true only on 200;
// 400 with a pending body is a normal answer, not an error.
func Status(ctx context.Context, baseURL, token string) (res StatusResponse, validated bool, err error) {
	resp, body, err := Get(ctx, StatusURL(baseURL, token))
	if err != nil {
		return StatusResponse{}, false, err
	}
	switch resp.StatusCode {
	case http.StatusOK, http.StatusBadRequest:
		res, err = decode(body)
		if err != nil {
			return StatusResponse{}, false, err
		}
		return res, resp.StatusCode == http.StatusOK, nil
	default:
		return StatusResponse{}, false, fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

func decode(body []byte) (StatusResponse, error) {
	var sr StatusResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return StatusResponse{}, fmt.Errorf("decode: %w", err)
	}
	return sr, nil
}
