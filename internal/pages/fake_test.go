package pages

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"storefront-bff/internal/services"
)

type reply struct {
	body string
	err  error
}

type call struct {
	method string
	path   string
	body   any
}

// fakeAPI answers GET and POST calls from canned replies keyed by path and
// records every call it receives.
type fakeAPI struct {
	mu    sync.Mutex
	gets  map[string]reply
	posts map[string]reply
	calls []call
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{gets: map[string]reply{}, posts: map[string]reply{}}
}

func (f *fakeAPI) onGet(path, body string) *fakeAPI {
	f.gets[path] = reply{body: body}
	return f
}

func (f *fakeAPI) onPost(path, body string) *fakeAPI {
	f.posts[path] = reply{body: body}
	return f
}

func (f *fakeAPI) failGet(path string, status int, payload string) *fakeAPI {
	f.gets[path] = reply{err: apiError(status, payload)}
	return f
}

func (f *fakeAPI) failPost(path string, status int, payload string) *fakeAPI {
	f.posts[path] = reply{err: apiError(status, payload)}
	return f
}

func apiError(status int, payload string) error {
	return &services.APIError{Status: status, Data: json.RawMessage(payload)}
}

func (f *fakeAPI) GetData(_ context.Context, path string, target any) error {
	f.mu.Lock()
	f.calls = append(f.calls, call{method: http.MethodGet, path: path})
	r, ok := f.gets[path]
	f.mu.Unlock()

	if !ok {
		return apiError(http.StatusNotFound, `{"detail":"Not found."}`)
	}
	if r.err != nil {
		return r.err
	}
	return json.Unmarshal([]byte(r.body), target)
}

func (f *fakeAPI) PostData(_ context.Context, path string, body any, target any) (int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{method: http.MethodPost, path: path, body: body})
	r, ok := f.posts[path]
	f.mu.Unlock()

	if !ok {
		return http.StatusNotFound, apiError(http.StatusNotFound, `{"detail":"Not found."}`)
	}
	if r.err != nil {
		return services.StatusOf(r.err), r.err
	}
	if r.body == "" {
		return http.StatusOK, nil
	}
	return http.StatusOK, json.Unmarshal([]byte(r.body), target)
}

func (f *fakeAPI) posted() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.method == http.MethodPost {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// bodyJSON re-encodes a recorded request body for comparison.
func bodyJSON(c call) string {
	data, _ := json.Marshal(c.body)
	return string(data)
}
