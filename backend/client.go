// Package backend is the typed HTTP client for the portal's backend REST API.
// The backend is the source of truth for every entity and state transition;
// this package is request/response glue only.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	apperrors "github.com/campushub/admission-portal/internal/errors"
)

const contentTypeJSON = "application/json"

// Client issues plain (unauthenticated) requests against the backend.
// Authenticated requests go through a Doer, which attaches the bearer token
// and owns the refresh-and-retry cycle.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a backend client for the given API base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

// Doer issues an authenticated request against a relative backend path.
// Implementations attach credentials; callers own the response body.
type Doer interface {
	Do(ctx context.Context, method, path string, header http.Header, body []byte) (*http.Response, error)
}

// APIError carries a backend rejection (4xx/5xx) with its human-readable
// detail message.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
}

// NewRequest builds a request against a relative backend path
func (c *Client) NewRequest(ctx context.Context, method, path string, header http.Header, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("[NewRequest] %s %s: %w", method, path, err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return req, nil
}

// Do issues the request, normalizing transport failures (network unreachable,
// DNS, timeouts) to ErrConnection.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrConnection, "%s %s (%v)", req.Method, req.URL.Path, err)
	}
	return resp, nil
}

// postJSON posts a JSON body to an unauthenticated endpoint and decodes the
// response into out (if non-nil). Backend rejections come back as *APIError.
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("[postJSON] marshal %s: %w", path, err)
	}

	header := http.Header{}
	header.Set("Content-Type", contentTypeJSON)
	req, err := c.NewRequest(ctx, http.MethodPost, path, header, payload)
	if err != nil {
		return err
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}
	return decodeBody(resp.Body, out)
}

func decodeBody(body io.Reader, out any) error {
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return apperrors.Wrapf(apperrors.ErrMalformedResponse, "decode (%v)", err)
	}
	return nil
}

// errorFromResponse turns a 4xx/5xx response into an *APIError. The backend
// reports errors either as {"detail": "..."}, {"error": "..."} or as a
// field -> messages validation map; field messages are concatenated into one
// string so forms can show a single line.
func errorFromResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return apiErr
	}

	if detail, ok := payload["detail"].(string); ok && detail != "" {
		apiErr.Detail = detail
		return apiErr
	}
	if msg, ok := payload["error"].(string); ok && msg != "" {
		apiErr.Detail = msg
		return apiErr
	}

	// Validation error map: values are strings or lists of strings. Keys are
	// sorted so the message is stable.
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var messages []string
	for _, k := range keys {
		switch v := payload[k].(type) {
		case string:
			messages = append(messages, v)
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					messages = append(messages, s)
				}
			}
		}
	}
	apiErr.Detail = strings.Join(messages, ", ")
	return apiErr
}

// doJSON issues an authenticated JSON request through the Doer and decodes
// the response into out (if non-nil).
func doJSON(ctx context.Context, d Doer, method, path string, in, out any) error {
	var payload []byte
	header := http.Header{}
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("[doJSON] marshal %s: %w", path, err)
		}
		header.Set("Content-Type", contentTypeJSON)
	}

	resp, err := d.Do(ctx, method, path, header, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	return decodeBody(resp.Body, out)
}

// FilePart is one file of a multipart upload
type FilePart struct {
	Field    string
	Filename string
	Content  io.Reader
}

// doMultipart issues an authenticated multipart/form-data request (payment
// proofs, re-enrollment dossiers, graduate imports).
func doMultipart(ctx context.Context, d Doer, method, path string, fields map[string]string, files []FilePart, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("[doMultipart] field %s: %w", key, err)
		}
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return fmt.Errorf("[doMultipart] file %s: %w", file.Field, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("[doMultipart] copy %s: %w", file.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("[doMultipart] close writer: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", writer.FormDataContentType())
	resp, err := d.Do(ctx, method, path, header, buf.Bytes())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	return decodeBody(resp.Body, out)
}

// checkStatus maps authenticated-request failures onto the portal's error
// taxonomy. A 401 here means the Doer's single refresh-and-retry already
// failed, so the session is gone.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.ErrSessionExpired
	case resp.StatusCode == http.StatusForbidden:
		return apperrors.ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.ErrNotFound
	case resp.StatusCode >= 400:
		return errorFromResponse(resp)
	}
	return nil
}
