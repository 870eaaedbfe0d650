package authn

import "context"

type subjectContextKey struct{}

// ContextWithSubject returns a context carrying the authenticated subject's
// user ID. It is derived from a validated credential at the start of gate
// validation and lives only as long as the request.
func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectContextKey{}, subject)
}

// SubjectFromContext returns the authenticated subject's user ID from the
// given context or the empty string if the request never passed through the
// token auth filter.
func SubjectFromContext(ctx context.Context) string {
	subject := ctx.Value(subjectContextKey{})
	if subject == nil {
		return ""
	}
	return subject.(string)
}
