package middleware

import (
	"bytes"
	"net/http"
)

// bufferedWriter delays the response body and status line until the session
// has been persisted, so cookie directives and 5xx failures can still be
// emitted after the handler returns. Headers are shared with the underlying
// writer, which means they stay mutable until flush.
type bufferedWriter struct {
	w    http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func newBufferedWriter(w http.ResponseWriter) *bufferedWriter {
	return &bufferedWriter{w: w}
}

func (b *bufferedWriter) Header() http.Header {
	return b.w.Header()
}

func (b *bufferedWriter) WriteHeader(code int) {
	if b.code == 0 {
		b.code = code
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.code == 0 {
		b.code = http.StatusOK
	}
	return b.buf.Write(p)
}

// flush forwards the buffered status and body to the client.
func (b *bufferedWriter) flush() error {
	if b.code == 0 {
		b.code = http.StatusOK
	}
	b.w.WriteHeader(b.code)
	_, err := b.w.Write(b.buf.Bytes())
	return err
}
