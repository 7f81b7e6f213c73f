package middleware

import "net/http"

// BodyLimit caps how much request body a mutating route may read.
// Reads beyond the cap fail inside the JSON decoders downstream, which
// report the payload as invalid. GET routes, the SSE stream included,
// carry no body and pass through untouched.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 && mutating(r.Method) && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
