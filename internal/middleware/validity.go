package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// bufferedResponse captures a downstream response so it can be rewritten
// before anything reaches the client.
type bufferedResponse struct {
	header http.Header
	buf    bytes.Buffer
	status int
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.buf.Write(p)
}

// ValidityEnvelope rewrites 401 responses from the auth middleware into a
// token-introspection shape with an explicit valid flag. Used on the
// validate_token route, whose clients branch on the flag rather than the
// status code. All other responses pass through untouched.
func ValidityEnvelope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bw := &bufferedResponse{header: make(http.Header)}
		next.ServeHTTP(bw, r)

		if bw.status == http.StatusUnauthorized {
			var body map[string]any
			if err := json.Unmarshal(bw.buf.Bytes(), &body); err == nil && body != nil {
				body["valid"] = false
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(body)
				return
			}
		}

		for k, vs := range bw.header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		if bw.status == 0 {
			bw.status = http.StatusOK
		}
		w.WriteHeader(bw.status)
		_, _ = w.Write(bw.buf.Bytes())
	})
}
