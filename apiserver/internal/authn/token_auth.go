package authn

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/inkwellhq/inkwell"
	"github.com/inkwellhq/inkwell/apiserver/internal/lib/restmachinery"
	"github.com/pkg/errors"
)

// ValidateTokenFn validates a raw bearer token and returns the subject (user
// ID) it authenticates. Validation failures are reported as
// *inkwell.ErrAuthentication; in particular, expiry is reported with the
// distinguished "Token expired" message.
type ValidateTokenFn func(ctx context.Context, token string) (string, error)

type tokenAuthFilter struct {
	validateToken ValidateTokenFn
}

// NewTokenAuthFilter returns a restmachinery.Filter that rejects any request
// lacking a valid bearer credential before domain logic runs and attaches
// the validated subject to the request context otherwise.
func NewTokenAuthFilter(validateToken ValidateTokenFn) restmachinery.Filter {
	return &tokenAuthFilter{
		validateToken: validateToken,
	}
}

func (t *tokenAuthFilter) Decorate(handle http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		headerValue := r.Header.Get("Authorization")
		if headerValue == "" {
			t.writeResponse(
				w,
				http.StatusUnauthorized,
				inkwell.NewErrAuthentication("Authorization header is missing"),
			)
			return
		}
		headerValueParts := strings.SplitN(headerValue, " ", 2)
		if len(headerValueParts) != 2 || headerValueParts[0] != "Bearer" {
			t.writeResponse(
				w,
				http.StatusUnauthorized,
				inkwell.NewErrAuthentication("Authorization header is malformed"),
			)
			return
		}
		token := headerValueParts[1]

		subject, err := t.validateToken(r.Context(), token)
		if err != nil {
			if authErr, ok :=
				errors.Cause(err).(*inkwell.ErrAuthentication); ok {
				t.writeResponse(w, http.StatusUnauthorized, authErr)
				return
			}
			log.Println(err)
			t.writeResponse(
				w,
				http.StatusInternalServerError,
				inkwell.NewErrInternalServer(),
			)
			return
		}

		// Success! Add the subject to the context.
		ctx := ContextWithSubject(r.Context(), subject)
		handle(w, r.WithContext(ctx))
	}
}

func (t *tokenAuthFilter) writeResponse(
	w http.ResponseWriter,
	statusCode int,
	response interface{},
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	responseBody, err := json.Marshal(response)
	if err != nil {
		log.Println(errors.Wrap(err, "error marshaling response body"))
	}
	if _, err := w.Write(responseBody); err != nil {
		log.Println(errors.Wrap(err, "error writing response body"))
	}
}
