package activity

import "fmt"

// Default messages used when the server gives no usable one.
const (
	DefaultRecommendMessage     = "failed to load recommendations"
	DefaultEstimatedTimeMessage = "failed to load estimated charge time"
)

// APIError reports a non-success HTTP status. Error returns Message
// unchanged so it can be shown to the user as-is.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Detail includes the operation and status for logs.
func (e *APIError) Detail() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
}
