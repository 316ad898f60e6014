package providers

import (
	"errors"
	"fmt"
)

// UpstreamStatusError captures a non-2xx response from the league site.
// The aggregator treats it as "this team contributed zero fixtures".
type UpstreamStatusError struct {
	URL        string
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d for %s", e.StatusCode, e.URL)
}

// AsUpstreamStatusError attempts to unwrap an error into an UpstreamStatusError.
func AsUpstreamStatusError(err error) (*UpstreamStatusError, bool) {
	var statusErr *UpstreamStatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
