// Package transport is the single point of egress for REST calls to the HR backend.
package transport

import (
	"net/http"
	"net/url"
	"strings"
)

// Request is a request descriptor: one REST operation relative to the API root.
// Build it with Get, Post, Put or Delete; the constructors copy params so a
// descriptor does not change after construction.
type Request struct {
	Method string
	URL    string
	Params url.Values
	Body   any
}

// Get describes a GET request.
func Get(path string, params url.Values) Request {
	return newRequest(http.MethodGet, path, params, nil)
}

// Post describes a POST request with optional query params and JSON body.
func Post(path string, params url.Values, body any) Request {
	return newRequest(http.MethodPost, path, params, body)
}

// Put describes a PUT request with a JSON body.
func Put(path string, body any) Request {
	return newRequest(http.MethodPut, path, nil, body)
}

// Delete describes a DELETE request.
func Delete(path string) Request {
	return newRequest(http.MethodDelete, path, nil, nil)
}

func newRequest(method, path string, params url.Values, body any) Request {
	var p url.Values
	if len(params) > 0 {
		p = make(url.Values, len(params))
		for k, vs := range params {
			p[k] = append([]string(nil), vs...)
		}
	}
	return Request{Method: method, URL: path, Params: p, Body: body}
}

// Resource returns the first path segment, used as a metrics label.
func (r Request) Resource() string {
	seg := strings.TrimPrefix(r.URL, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	if seg == "" {
		return "root"
	}
	return seg
}

func (r Request) validate() error {
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return ErrInvalidRequest
	}
	if !strings.HasPrefix(r.URL, "/") {
		return ErrInvalidRequest
	}
	return nil
}

// Reply is the raw server reply of a successful (2xx) attempt.
type Reply struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}
