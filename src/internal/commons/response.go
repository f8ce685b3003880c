package commons

// Response is the envelope every service operation returns to the gateway.
// ErrorKind carries the taxonomy value for failed operations so the caller can
// map it to a transport status without parsing messages.
type Response[T any] struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	ErrorKind string   `json:"errorKind,omitempty"`
	Data      *T       `json:"data,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](kind string, message string, errors ...string) Response[T] {
	return Response[T]{
		Success:   false,
		Message:   message,
		ErrorKind: kind,
		Errors:    errors,
	}
}
