package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLoggingMiddleware logs one line per request with the response status
func requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: res, status: http.StatusOK}

		next.ServeHTTP(recorder, req)

		log.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(started)).
			Msg("request")
	})
}
