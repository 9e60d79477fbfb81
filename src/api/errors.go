package api

import "fmt"

// HTTPError is returned when the attempt budget is exhausted against a
// transient failure, or when the server accepted the request but rejected the
// query itself. It carries the last observed response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("API request failed: %s", e.Body)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}
