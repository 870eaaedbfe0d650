package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell"
)

func TestSubmitRequestDecodesTypedErrors(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		responseBody  string
		expectedError error
	}{
		{
			name:          "unauthenticated",
			statusCode:    http.StatusUnauthorized,
			responseBody:  `{"message":"Token expired"}`,
			expectedError: &inkwell.ErrAuthentication{},
		},
		{
			name:          "forbidden",
			statusCode:    http.StatusForbidden,
			responseBody:  `{"message":"Unauthorized"}`,
			expectedError: &inkwell.ErrAuthorization{},
		},
		{
			name:          "bad request",
			statusCode:    http.StatusBadRequest,
			responseBody:  `{"message":"Validation failed"}`,
			expectedError: &inkwell.ErrBadRequest{},
		},
		{
			name:          "not found",
			statusCode:    http.StatusNotFound,
			responseBody:  `{"message":"Blog not found"}`,
			expectedError: &inkwell.ErrNotFound{},
		},
		{
			name:          "conflict",
			statusCode:    http.StatusConflict,
			responseBody:  `{"message":"A user with that username or email already exists"}`, // nolint: lll
			expectedError: &inkwell.ErrConflict{},
		},
		{
			name:          "internal server error",
			statusCode:    http.StatusInternalServerError,
			responseBody:  `{"message":"Server error"}`,
			expectedError: &inkwell.ErrInternalServer{},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(
				http.HandlerFunc(
					func(w http.ResponseWriter, r *http.Request) {
						w.Header().Set("Content-Type", "application/json")
						w.WriteHeader(testCase.statusCode)
						w.Write([]byte(testCase.responseBody)) // nolint: errcheck
					},
				),
			)
			defer server.Close()
			baseClient := &BaseClient{
				APIAddress: server.URL,
				HTTPClient: http.DefaultClient,
			}
			err := baseClient.ExecuteRequest(
				context.Background(),
				OutboundRequest{
					Method:      http.MethodGet,
					Path:        "blogs",
					SuccessCode: http.StatusOK,
				},
			)
			require.Error(t, err)
			require.IsType(t, testCase.expectedError, err)
		})
	}
}

func TestSubmitRequestInvokesUnauthenticatedHook(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			// nolint: errcheck
			w.Write([]byte(`{"message":"Token expired"}`))
		}),
	)
	defer server.Close()
	var observed *inkwell.ErrAuthentication
	baseClient := &BaseClient{
		APIAddress: server.URL,
		HTTPClient: http.DefaultClient,
		OnUnauthenticated: func(err *inkwell.ErrAuthentication) {
			observed = err
		},
	}
	err := baseClient.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method:      http.MethodGet,
			Path:        "auth/verify",
			SuccessCode: http.StatusOK,
		},
	)
	require.Error(t, err)
	require.NotNil(t, observed)
	require.True(t, observed.Expired())
}
