package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"storefront-bff/internal/config"
)

const (
	csrfCookie     = "csrftoken"
	csrfHeader     = "X-CSRFToken"
	maxErrorBody   = 1 << 20
	contentTypeKey = "Content-Type"
)

// FormFile is a POST body sent as multipart/form-data with a single file part.
type FormFile struct {
	Field    string
	Filename string
	Content  io.Reader
}

// ShopClient calls the shop REST API on behalf of the browser that owns the
// session found in the request context.
type ShopClient struct {
	baseURL string
	client  *http.Client
}

func NewShopClient(cfg *config.Config) *ShopClient {
	return &ShopClient{
		baseURL: strings.TrimRight(cfg.ShopAPIURL, "/"),
		client: &http.Client{
			Timeout: cfg.UpstreamTimeout,
		},
	}
}

// GetData issues a GET and decodes the response body into target.
func (s *ShopClient) GetData(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create GET request: %w", err)
	}
	_, err = s.do(ctx, req, target)
	return err
}

// PostData issues a POST and decodes the response body into target. The body
// is sent as JSON unless it is a FormFile.
func (s *ShopClient) PostData(ctx context.Context, path string, body any, target any) (int, error) {
	return s.send(ctx, http.MethodPost, path, body, target)
}

// DeleteData issues a DELETE carrying a JSON body, as the shop's basket
// removal expects, and decodes the response body into target.
func (s *ShopClient) DeleteData(ctx context.Context, path string, body any, target any) error {
	_, err := s.send(ctx, http.MethodDelete, path, body, target)
	return err
}

func (s *ShopClient) send(ctx context.Context, method, path string, body any, target any) (int, error) {
	var (
		payload     io.Reader
		contentType string
	)

	switch b := body.(type) {
	case *FormFile:
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		part, err := mw.CreateFormFile(b.Field, b.Filename)
		if err != nil {
			return 0, fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, b.Content); err != nil {
			return 0, fmt.Errorf("copy form file: %w", err)
		}
		if err := mw.Close(); err != nil {
			return 0, fmt.Errorf("close multipart writer: %w", err)
		}
		payload, contentType = buf, mw.FormDataContentType()
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request body: %w", err)
		}
		payload, contentType = bytes.NewReader(data), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, payload)
	if err != nil {
		return 0, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set(contentTypeKey, contentType)

	if sess := SessionFrom(ctx); sess != nil {
		if token := sess.Cookie(csrfCookie); token != "" {
			req.Header.Set(csrfHeader, token)
		}
	}

	return s.do(ctx, req, target)
}

func (s *ShopClient) do(ctx context.Context, req *http.Request, target any) (int, error) {
	req.Header.Set("Accept", "application/json")

	sess := SessionFrom(ctx)
	if sess != nil {
		for _, c := range sess.Cookies() {
			req.AddCookie(c)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if sess != nil {
		sess.Store(resp.Cookies())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, newAPIError(resp)
	}

	if target == nil {
		return resp.StatusCode, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return resp.StatusCode, nil
}
