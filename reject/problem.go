// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reject

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Formatter renders a rejection as HTTP response components. The default
// is [RFC9457]; [Text] produces bare text/plain responses. Custom
// formatters plug into the dispatch adapter without touching filters.
type Formatter interface {
	Format(req *http.Request, rej *Rejection) Response
}

// Response is the rendered form of a rejection, ready to write.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is the response body. A []byte or string is written verbatim;
	// anything else is JSON-encoded.
	Body any

	// Headers contains additional headers to set (optional).
	Headers http.Header
}

// RFC9457 renders rejections as RFC 9457 problem documents with
// Content-Type "application/problem+json". The document is built from
// the preferred cause: its status, the status text as title, the cause
// message as detail, and the cause code (when the cause declares one) as
// the problem type slug.
type RFC9457 struct {
	// BaseURL is prepended to cause codes to form problem type URIs,
	// for example "https://api.example.com/problems" + "/missing_header".
	// Empty leaves the bare code as the type.
	BaseURL string

	// Logger receives the warning for unhandled causes. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// NewRFC9457 returns the default problem-document formatter.
func NewRFC9457(baseURL string) *RFC9457 {
	return &RFC9457{BaseURL: baseURL}
}

// Problem is an RFC 9457 problem detail with inline extensions.
type Problem struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"-"`
}

// MarshalJSON merges extensions into the problem object, protecting the
// reserved member names.
func (p Problem) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":   p.Type,
		"title":  p.Title,
		"status": p.Status,
	}
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	for k, v := range p.Extensions {
		if k != "type" && k != "title" && k != "status" && k != "detail" && k != "instance" {
			m[k] = v
		}
	}

	return json.Marshal(m)
}

// Format implements [Formatter].
func (f *RFC9457) Format(req *http.Request, rej *Rejection) Response {
	cause := rej.Preferred()
	status := rej.Status()
	warnUnhandled(f.Logger, cause)

	p := Problem{
		Type:       f.problemType(cause),
		Title:      http.StatusText(status),
		Status:     status,
		Extensions: make(map[string]any),
	}
	if req != nil {
		p.Instance = req.URL.Path
	}
	if cause != nil {
		p.Detail = cause.Error()
		if code := causeCode(cause); code != "" {
			p.Extensions["code"] = code
		}
		var detailed detailsCapable
		if errors.As(cause, &detailed) {
			p.Extensions["errors"] = detailed.Details()
		}
	}

	return Response{
		Status:      status,
		ContentType: "application/problem+json; charset=utf-8",
		Body:        p,
	}
}

// problemType maps a cause to a problem type URI: BaseURL + "/" + code
// when the cause declares a code, "about:blank" otherwise.
func (f *RFC9457) problemType(cause error) string {
	code := causeCode(cause)
	if code == "" {
		return "about:blank"
	}
	if f.BaseURL != "" {
		return f.BaseURL + "/" + code
	}

	return code
}

// Text renders rejections as bare text/plain responses: the preferred
// cause message and nothing else.
type Text struct {
	// Logger receives the warning for unhandled causes. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// NewText returns the plain-text formatter.
func NewText() *Text {
	return &Text{}
}

// Format implements [Formatter].
func (f *Text) Format(_ *http.Request, rej *Rejection) Response {
	cause := rej.Preferred()
	warnUnhandled(f.Logger, cause)

	detail := "Not Found"
	if cause != nil {
		detail = cause.Error()
	}

	return Response{
		Status:      rej.Status(),
		ContentType: "text/plain; charset=utf-8",
		Body:        detail,
	}
}

// Write renders rej through f and writes the result. Fatal rejections
// bypass the formatter and write their carried reply. A nil formatter
// means the package default.
func Write(w http.ResponseWriter, req *http.Request, rej *Rejection, f Formatter) {
	if rej.fatalReply != nil {
		rej.fatalReply.Respond(w, req)

		return
	}
	if f == nil {
		f = defaultFormatter
	}
	writeResponse(w, f.Format(req, rej))
}

var defaultFormatter Formatter = &RFC9457{}

// writeResponse writes a formatted Response. The body is encoded to a
// buffer first so an encoding failure cannot corrupt an already-started
// response.
func writeResponse(w http.ResponseWriter, resp Response) {
	h := w.Header()
	for k, vs := range resp.Headers {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	if resp.ContentType != "" {
		h.Set("Content-Type", resp.ContentType)
	}

	switch body := resp.Body.(type) {
	case nil:
		w.WriteHeader(resp.Status)
	case []byte:
		w.WriteHeader(resp.Status)
		_, _ = w.Write(body)
	case string:
		w.WriteHeader(resp.Status)
		_, _ = io.WriteString(w, body)
	default:
		buf, err := json.Marshal(body)
		if err != nil {
			slog.Default().Error("reject: encoding formatted rejection failed",
				slog.String("type", fmt.Sprintf("%T", body)),
				slog.String("error", err.Error()),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

			return
		}
		w.WriteHeader(resp.Status)
		_, _ = w.Write(buf)
	}
}

// warnUnhandled logs causes that declared no status of their own. Those
// reach the client as opaque 500s, which nearly always means a rejection
// leaked past the recover filter that should have translated it.
func warnUnhandled(logger *slog.Logger, cause error) {
	if cause == nil {
		return
	}
	var sc statusCapable
	if errors.As(cause, &sc) {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("unhandled rejection cause",
		slog.String("type", fmt.Sprintf("%T", cause)),
		slog.String("error", cause.Error()),
	)
}
