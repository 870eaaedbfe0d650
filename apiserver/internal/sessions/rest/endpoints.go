package rest

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/inkwellhq/inkwell"
	"github.com/inkwellhq/inkwell/apiserver/internal/authn"
	"github.com/inkwellhq/inkwell/apiserver/internal/lib/restmachinery"
	"github.com/inkwellhq/inkwell/apiserver/internal/sessions"
	"github.com/xeipuuv/gojsonschema"
)

const registrationSchema = `
{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["username", "email", "password", "fullName"],
	"additionalProperties": false,
	"properties": {
		"username": {
			"type": "string",
			"minLength": 3,
			"maxLength": 30
		},
		"email": {
			"type": "string",
			"format": "email",
			"minLength": 3,
			"maxLength": 254
		},
		"password": {
			"type": "string",
			"minLength": 6,
			"maxLength": 72
		},
		"fullName": {
			"type": "string",
			"minLength": 1,
			"maxLength": 100
		}
	}
}`

const credentialsSchema = `
{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["email", "password"],
	"additionalProperties": false,
	"properties": {
		"email": {
			"type": "string",
			"minLength": 1
		},
		"password": {
			"type": "string",
			"minLength": 1
		}
	}
}`

const passwordChangeSchema = `
{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["currentPassword", "newPassword"],
	"additionalProperties": false,
	"properties": {
		"currentPassword": {
			"type": "string",
			"minLength": 1
		},
		"newPassword": {
			"type": "string",
			"minLength": 6,
			"maxLength": 72
		}
	}
}`

type endpoints struct {
	*restmachinery.BaseEndpoints
	registrationSchemaLoader   gojsonschema.JSONLoader
	credentialsSchemaLoader    gojsonschema.JSONLoader
	passwordChangeSchemaLoader gojsonschema.JSONLoader
	service                    sessions.Service
}

// NewEndpoints returns the REST endpoint collection for the authentication
// lifecycle.
func NewEndpoints(
	baseEndpoints *restmachinery.BaseEndpoints,
	service sessions.Service,
) restmachinery.Endpoints {
	return &endpoints{
		BaseEndpoints:              baseEndpoints,
		registrationSchemaLoader:   gojsonschema.NewStringLoader(registrationSchema),
		credentialsSchemaLoader:    gojsonschema.NewStringLoader(credentialsSchema),
		passwordChangeSchemaLoader: gojsonschema.NewStringLoader(passwordChangeSchema),
		service:                    service,
	}
}

func (e *endpoints) Register(router *mux.Router) {
	// Register a new user
	router.HandleFunc(
		"/auth/register",
		e.register, // No filters applied to this request
	).Methods(http.MethodPost)

	// Log in
	router.HandleFunc(
		"/auth/login",
		e.login, // No filters applied to this request
	).Methods(http.MethodPost)

	// Verify the caller's credential
	router.HandleFunc(
		"/auth/verify",
		e.TokenAuthFilter.Decorate(e.verify),
	).Methods(http.MethodGet)

	// Log out
	router.HandleFunc(
		"/auth/logout",
		e.TokenAuthFilter.Decorate(e.logout),
	).Methods(http.MethodPost)

	// Change password
	router.HandleFunc(
		"/auth/change-password",
		e.TokenAuthFilter.Decorate(e.changePassword),
	).Methods(http.MethodPost)
}

func (e *endpoints) register(w http.ResponseWriter, r *http.Request) {
	registration := inkwell.Registration{}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: e.registrationSchemaLoader,
			ReqBodyObj:          &registration,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Register(r.Context(), registration)
			},
			SuccessCode: http.StatusCreated,
		},
	)
}

func (e *endpoints) login(w http.ResponseWriter, r *http.Request) {
	credentials := inkwell.Credentials{}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: e.credentialsSchemaLoader,
			ReqBodyObj:          &credentials,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Login(r.Context(), credentials)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) verify(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Verify(
					r.Context(),
					authn.SubjectFromContext(r.Context()),
				)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) logout(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				if err := e.service.Logout(
					r.Context(),
					bearerToken(r),
				); err != nil {
					return nil, err
				}
				return inkwell.MessageResponse{
					Message: "Logged out successfully",
				}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) changePassword(w http.ResponseWriter, r *http.Request) {
	change := inkwell.PasswordChange{}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: e.passwordChangeSchemaLoader,
			ReqBodyObj:          &change,
			EndpointLogic: func() (interface{}, error) {
				if err := e.service.ChangePassword(
					r.Context(),
					authn.SubjectFromContext(r.Context()),
					change,
				); err != nil {
					return nil, err
				}
				return inkwell.MessageResponse{
					Message: "Password changed successfully",
				}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}

// bearerToken re-extracts the raw credential from a request that has already
// passed the token auth filter.
func bearerToken(r *http.Request) string {
	headerValueParts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(headerValueParts) != 2 {
		return ""
	}
	return headerValueParts[1]
}
