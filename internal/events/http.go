package events

import (
	"net/http"
	"time"
)

// HTTPStart is emitted when a request reaches the handler.
// Context carries the request context.
type HTTPStart struct {
	Request *http.Request
}

// HTTPFinish is emitted after the handler writes its response.
type HTTPFinish struct {
	Request  *http.Request
	Status   int
	Duration time.Duration
}

// RequestRejected is emitted when a request fails at the protocol level
// (bad method, bad media type, malformed body, missing query) before any
// GraphQL execution happens. The handler itself does not log; subscribers
// observe rejections through this event.
type RequestRejected struct {
	Code    string
	Status  int
	Message string
}
