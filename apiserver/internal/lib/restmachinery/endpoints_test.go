package restmachinery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"

	"github.com/inkwellhq/inkwell"
)

func TestServeRequestMapsErrorsToStatusCodes(t *testing.T) {
	testCases := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "unauthenticated",
			err:             inkwell.NewErrAuthentication(inkwell.TokenExpiredMessage),
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Token expired",
		},
		{
			name:            "forbidden",
			err:             inkwell.NewErrAuthorization(),
			expectedStatus:  http.StatusForbidden,
			expectedMessage: "Unauthorized",
		},
		{
			name:            "bad request",
			err:             inkwell.NewErrBadRequest("Invalid credentials"),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid credentials",
		},
		{
			name:            "not found",
			err:             inkwell.NewErrNotFound("Blog"),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Blog not found",
		},
		{
			name: "conflict",
			err: inkwell.NewErrConflict(
				"User",
				"A user with that username or email already exists",
			),
			expectedStatus:  http.StatusConflict,
			expectedMessage: "A user with that username or email already exists",
		},
		{
			name:            "wrapped typed error",
			err:             errors.Wrap(inkwell.NewErrNotFound("Blog"), "store"),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Blog not found",
		},
		{
			name:           "unanticipated error",
			err:            errors.New("the database is on fire"),
			expectedStatus: http.StatusInternalServerError,
			// Internal details must never leak to clients
			expectedMessage: "Server error",
		},
	}
	baseEndpoints := &BaseEndpoints{}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req, err := http.NewRequest(http.MethodGet, "/", nil)
			require.NoError(t, err)
			baseEndpoints.ServeRequest(
				InboundRequest{
					W: rr,
					R: req,
					EndpointLogic: func() (interface{}, error) {
						return nil, testCase.err
					},
					SuccessCode: http.StatusOK,
				},
			)
			require.Equal(t, testCase.expectedStatus, rr.Code)
			responseBody := map[string]interface{}{}
			require.NoError(
				t,
				json.Unmarshal(rr.Body.Bytes(), &responseBody),
			)
			require.Equal(t, testCase.expectedMessage, responseBody["message"])
		})
	}
}

func TestServeRequestWritesEndpointLogicResult(t *testing.T) {
	baseEndpoints := &BaseEndpoints{}
	rr := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	baseEndpoints.ServeRequest(
		InboundRequest{
			W: rr,
			R: req,
			EndpointLogic: func() (interface{}, error) {
				return inkwell.MessageResponse{
					Message: "Logged out successfully",
				}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(
		t,
		`{"message":"Logged out successfully"}`,
		rr.Body.String(),
	)
}

func TestServeRequestValidatesRequestBody(t *testing.T) {
	schemaLoader := gojsonschema.NewStringLoader(`
		{
			"type": "object",
			"required": ["title"],
			"additionalProperties": false,
			"properties": {
				"title": {
					"type": "string",
					"minLength": 1
				}
			}
		}`,
	)
	baseEndpoints := &BaseEndpoints{}

	testCases := []struct {
		name           string
		requestBody    string
		expectedStatus int
	}{
		{
			name:           "valid body",
			requestBody:    `{"title":"First post"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing required field",
			requestBody:    `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unexpected field",
			requestBody:    `{"title":"First post","author":"forged"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not JSON at all",
			requestBody:    `title=First post`,
			expectedStatus: http.StatusBadRequest,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req, err := http.NewRequest(
				http.MethodPost,
				"/",
				bytes.NewBufferString(testCase.requestBody),
			)
			require.NoError(t, err)
			endpointLogicCalled := false
			bodyObj := map[string]interface{}{}
			baseEndpoints.ServeRequest(
				InboundRequest{
					W:                   rr,
					R:                   req,
					ReqBodySchemaLoader: schemaLoader,
					ReqBodyObj:          &bodyObj,
					EndpointLogic: func() (interface{}, error) {
						endpointLogicCalled = true
						return bodyObj, nil
					},
					SuccessCode: http.StatusOK,
				},
			)
			require.Equal(t, testCase.expectedStatus, rr.Code)
			require.Equal(
				t,
				testCase.expectedStatus == http.StatusOK,
				endpointLogicCalled,
			)
		})
	}
}
