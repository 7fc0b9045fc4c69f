package response

import "net/http"

// NotificationKind is the outcome category of an operation, used by the
// transport boundary to pick a status code.
type NotificationKind string

const (
	KindSuccess    NotificationKind = "Success"
	KindBadRequest NotificationKind = "BadRequest"
	KindNotFound   NotificationKind = "NotFound"
	KindConflict   NotificationKind = "Conflict"
)

// Result is the polymorphic response envelope returned by the application
// services. The constructors keep success-without-data and failure-with-data
// combinations unrepresentable.
type Result[T any] struct {
	Data       *T               `json:"data"`
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Kind       NotificationKind `json:"notificationKind"`
	TotalCount *int             `json:"totalCount,omitempty"`
}

// OK builds a success result carrying data.
func OK[T any](data T, message string) Result[T] {
	return Result[T]{Data: &data, Success: true, Message: message, Kind: KindSuccess}
}

// OKList builds a success result for paginated payloads, with the unfiltered
// total count alongside the page.
func OKList[T any](data T, totalCount int, message string) Result[T] {
	r := OK(data, message)
	r.TotalCount = &totalCount
	return r
}

// Fail builds a failure result. Data is always absent on failure.
func Fail[T any](kind NotificationKind, message string) Result[T] {
	return Result[T]{Success: false, Message: message, Kind: kind}
}

// HTTPStatus maps the notification kind to the transport status code.
func (r Result[T]) HTTPStatus() int {
	switch r.Kind {
	case KindSuccess:
		return http.StatusOK
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
