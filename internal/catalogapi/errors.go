package catalogapi

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError reports a failed catalog service call.
type NetworkError struct {
	Op     string // fetch products, trigger scrape, fetch scrape status
	Path   string
	Status int // zero when no response was received
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NetworkError for a 404 or 405 response,
// i.e. the service does not implement the endpoint.
func IsNotFound(err error) bool {
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		return false
	}
	return netErr.Status == http.StatusNotFound || netErr.Status == http.StatusMethodNotAllowed
}
