package osu

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound = errors.New("not found")
	// la web devuelve html (ddos protection / archivo todavía no disponible)
	errNotReady = errors.New("resource not ready")
)

type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed with status code %d when requesting %s", e.Status, e.URL)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type ParseError struct {
	Kind string
	Body string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to deserialize %s: %v; body: %s", e.Kind, e.Err, e.Body)
}

func (e *ParseError) Unwrap() error { return e.Err }

func isTransient(err error) bool {
	if errors.Is(err, errNotReady) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusTooManyRequests
}
