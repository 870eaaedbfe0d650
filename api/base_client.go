package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/inkwellhq/inkwell"
	"github.com/pkg/errors"
)

// BaseClient provides the machinery common to all API clients: request
// construction, bearer credential attachment, and symmetric decoding of the
// server's error taxonomy.
type BaseClient struct {
	APIAddress string
	HTTPClient *http.Client
	// OnUnauthenticated, if non-nil, is invoked whenever any exchange is
	// rejected with an authentication failure. The session state machine
	// registers itself here so that a rejected or expired credential forces a
	// transition to anonymous no matter which operation observed it.
	OnUnauthenticated func(*inkwell.ErrAuthentication)

	mu       sync.RWMutex
	apiToken string
}

// SetToken replaces the bearer credential attached to subsequent requests.
// An empty token detaches the credential entirely.
func (b *BaseClient) SetToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.apiToken = token
}

// Token returns the bearer credential currently attached to requests.
func (b *BaseClient) Token() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.apiToken
}

// BearerTokenAuthHeaders returns the Authorization header carrying the
// client's current credential.
func (b *BaseClient) BearerTokenAuthHeaders() map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", b.Token()),
	}
}

// ExecuteRequest issues the given request and, if a response object was
// provided, unmarshals the response body into it.
func (b *BaseClient) ExecuteRequest(
	ctx context.Context,
	apiReq OutboundRequest,
) error {
	resp, err := b.SubmitRequest(ctx, apiReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close() // nolint: errcheck
	if apiReq.RespObj != nil {
		respBodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "error reading response body")
		}
		if err := json.Unmarshal(respBodyBytes, apiReq.RespObj); err != nil {
			return errors.Wrap(err, "error unmarshaling response body")
		}
	}
	return nil
}

// SubmitRequest issues the given request and returns the raw response,
// having already converted any non-success status into the corresponding
// typed error.
func (b *BaseClient) SubmitRequest(
	ctx context.Context,
	apiReq OutboundRequest,
) (*http.Response, error) {
	var reqBodyReader io.Reader
	if apiReq.ReqBodyObj != nil {
		switch rb := apiReq.ReqBodyObj.(type) {
		case []byte:
			reqBodyReader = bytes.NewBuffer(rb)
		default:
			reqBodyBytes, err := json.Marshal(apiReq.ReqBodyObj)
			if err != nil {
				return nil, errors.Wrap(err, "error marshaling request body")
			}
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequestWithContext(
		ctx,
		apiReq.Method,
		fmt.Sprintf("%s/%s", b.APIAddress, apiReq.Path),
		reqBodyReader,
	)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating request %s %s",
			apiReq.Method,
			apiReq.Path,
		)
	}
	if len(apiReq.QueryParams) > 0 {
		q := req.URL.Query()
		for k, v := range apiReq.QueryParams {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	if reqBodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range apiReq.AuthHeaders {
		req.Header.Add(k, v)
	}
	for k, v := range apiReq.Headers {
		req.Header.Add(k, v)
	}

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "error invoking API")
	}

	if (apiReq.SuccessCode == 0 && resp.StatusCode != http.StatusOK) ||
		(apiReq.SuccessCode != 0 && resp.StatusCode != apiReq.SuccessCode) {
		// HTTP response code hints at what sort of error is in the body of the
		// response
		var apiErr error
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			apiErr = &inkwell.ErrAuthentication{}
		case http.StatusForbidden:
			apiErr = &inkwell.ErrAuthorization{}
		case http.StatusBadRequest:
			apiErr = &inkwell.ErrBadRequest{}
		case http.StatusNotFound:
			apiErr = &inkwell.ErrNotFound{}
		case http.StatusConflict:
			apiErr = &inkwell.ErrConflict{}
		case http.StatusInternalServerError:
			apiErr = &inkwell.ErrInternalServer{}
		default:
			return nil, errors.Errorf(
				"received %d from API server",
				resp.StatusCode,
			)
		}
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "error reading error response body")
		}
		if err = json.Unmarshal(bodyBytes, apiErr); err != nil {
			return nil, errors.Wrap(err, "error unmarshaling error response body")
		}
		if authErr, ok := apiErr.(*inkwell.ErrAuthentication); ok &&
			b.OnUnauthenticated != nil {
			b.OnUnauthenticated(authErr)
		}
		return nil, apiErr
	}
	return resp, nil
}
