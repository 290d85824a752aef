package system

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(err error) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Message:    err.Error(),
	}
}

func NewHTTPError400(message string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

func NewHTTPError401(message string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	}
}

func NewHTTPError404(message string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

func NewHTTPError500(message string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusInternalServerError,
		Message:    message,
	}
}

// functions that understand they need to return a http error
type httpWrapper[T any] func(res http.ResponseWriter, req *http.Request) (T, *HTTPError)

// normal functions that return just an error
// which will be translated into a 500
type defaultWrapper[T any] func(res http.ResponseWriter, req *http.Request) (T, error)

// wrap a http handler with some error handling
// so if it returns an error we handle it
func Wrapper[T any](handler httpWrapper[T]) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		data, err := handler(res, req)
		if err != nil {
			log.Error().Msgf("error for route %s: %s", req.URL.Path, err.Error())
			statusCode := err.StatusCode
			if statusCode == 0 {
				statusCode = http.StatusInternalServerError
			}
			http.Error(res, err.Error(), statusCode)
			return
		}
		writeJSON(res, req, data)
	}
}

// this is a wrapper for any function that just returns some data and a normal
// error - if we get one of these we just do a 500
func DefaultWrapper[T any](handler defaultWrapper[T]) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		data, err := handler(res, req)
		if err != nil {
			log.Error().Msgf("error for route %s: %s", req.URL.Path, err.Error())
			http.Error(res, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(res, req, data)
	}
}

func writeJSON(res http.ResponseWriter, req *http.Request, data any) {
	res.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(res).Encode(data); err != nil {
		log.Ctx(req.Context()).Error().Msgf("error for json encoding: %s", err.Error())
		http.Error(res, err.Error(), http.StatusInternalServerError)
	}
}
