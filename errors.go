package inkwell

import "fmt"

// The API communicates failures as JSON bodies of the shape
// {"message": "..."}. Each error type below corresponds to one class of
// failure and one HTTP response code. The SDK client decodes error response
// bodies back into these same types so that callers on either side of the
// wire can switch on them.

// ErrAuthentication represents a request that could not be authenticated--
// the credential was missing, malformed, expired, or revoked.
type ErrAuthentication struct {
	Message string `json:"message"`
}

func NewErrAuthentication(message string) *ErrAuthentication {
	return &ErrAuthentication{Message: message}
}

func (e *ErrAuthentication) Error() string {
	return fmt.Sprintf("could not authenticate the request: %s", e.Message)
}

// Expired indicates whether this authentication failure was caused by an
// expired credential, as opposed to a missing or otherwise invalid one.
func (e *ErrAuthentication) Expired() bool {
	return e.Message == TokenExpiredMessage
}

// TokenExpiredMessage is the distinguished message carried by a 401 response
// whose cause was credential expiry. Clients key off this exact string to
// discard their stored credential, so both sides MUST agree on it.
const TokenExpiredMessage = "Token expired"

// ErrAuthorization represents a request that was authenticated, but whose
// subject is not permitted to perform the requested mutation-- e.g. it edits
// a blog the subject does not own.
type ErrAuthorization struct {
	Message string `json:"message"`
}

func NewErrAuthorization() *ErrAuthorization {
	return &ErrAuthorization{Message: "Unauthorized"}
}

func (e *ErrAuthorization) Error() string {
	return e.Message
}

// ErrNotFound represents a request involving a resource that does not exist.
type ErrNotFound struct {
	// Type identifies the kind of resource that was not found. It informs the
	// message, but is not itself serialized.
	Type    string `json:"-"`
	Message string `json:"message"`
}

func NewErrNotFound(resourceType string) *ErrNotFound {
	return &ErrNotFound{
		Type:    resourceType,
		Message: fmt.Sprintf("%s not found", resourceType),
	}
}

func (e *ErrNotFound) Error() string {
	return e.Message
}

// ErrBadRequest represents a request the server declined to process because
// its body or parameters were invalid.
type ErrBadRequest struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func NewErrBadRequest(message string, details ...string) *ErrBadRequest {
	return &ErrBadRequest{Message: message, Details: details}
}

func (e *ErrBadRequest) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	msg := fmt.Sprintf("%s:", e.Message)
	for i, detail := range e.Details {
		msg = fmt.Sprintf("%s\n  %d. %s", msg, i+1, detail)
	}
	return msg
}

// ErrConflict represents an attempt to create a resource that collides with
// one that already exists-- e.g. registering a username that is taken.
type ErrConflict struct {
	Type    string `json:"-"`
	Message string `json:"message"`
}

func NewErrConflict(resourceType, message string) *ErrConflict {
	return &ErrConflict{Type: resourceType, Message: message}
}

func (e *ErrConflict) Error() string {
	return e.Message
}

// ErrInternalServer represents an unanticipated server-side failure. Details
// are deliberately withheld from clients.
type ErrInternalServer struct {
	Message string `json:"message"`
}

func NewErrInternalServer() *ErrInternalServer {
	return &ErrInternalServer{Message: "Server error"}
}

func (e *ErrInternalServer) Error() string {
	return e.Message
}
