package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx answer from the shop API. Data holds the raw JSON
// payload; a non-JSON body is kept as a JSON string.
type APIError struct {
	Status int
	Data   json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shop api returned status %d: %s", e.Status, string(e.Data))
}

func newAPIError(resp *http.Response) *APIError {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		body = []byte(err.Error())
	}
	return &APIError{Status: resp.StatusCode, Data: rawPayload(body)}
}

func rawPayload(body []byte) json.RawMessage {
	if len(body) > 0 && json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}

// StatusOf returns the HTTP status carried by err, or 0 when the request
// never got an answer.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Payload renders err the way the page shell shows it in an alert: the raw
// server payload for API errors, a JSON string otherwise.
func Payload(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return string(apiErr.Data)
	}
	quoted, _ := json.Marshal(err.Error())
	return string(quoted)
}
