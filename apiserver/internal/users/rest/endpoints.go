package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/inkwellhq/inkwell"
	"github.com/inkwellhq/inkwell/apiserver/internal/authn"
	"github.com/inkwellhq/inkwell/apiserver/internal/lib/restmachinery"
	"github.com/inkwellhq/inkwell/apiserver/internal/users"
	"github.com/xeipuuv/gojsonschema"
)

const userUpdateSchema = `
{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"fullName": {
			"type": "string",
			"minLength": 1,
			"maxLength": 100
		},
		"bio": {
			"type": "string",
			"maxLength": 500
		},
		"avatar": {
			"type": "string",
			"maxLength": 500
		}
	}
}`

type endpoints struct {
	*restmachinery.BaseEndpoints
	userUpdateSchemaLoader gojsonschema.JSONLoader
	service                users.Service
}

// NewEndpoints returns the REST endpoint collection for user profiles.
func NewEndpoints(
	baseEndpoints *restmachinery.BaseEndpoints,
	service users.Service,
) restmachinery.Endpoints {
	return &endpoints{
		BaseEndpoints:          baseEndpoints,
		userUpdateSchemaLoader: gojsonschema.NewStringLoader(userUpdateSchema),
		service:                service,
	}
}

func (e *endpoints) Register(router *mux.Router) {
	// Get user profile
	router.HandleFunc(
		"/users/{id}",
		e.get, // No filters applied to this request
	).Methods(http.MethodGet)

	// Update user profile
	router.HandleFunc(
		"/users/{id}",
		e.TokenAuthFilter.Decorate(e.update),
	).Methods(http.MethodPut)
}

func (e *endpoints) get(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Get(r.Context(), mux.Vars(r)["id"])
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) update(w http.ResponseWriter, r *http.Request) {
	update := inkwell.UserUpdate{}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: e.userUpdateSchemaLoader,
			ReqBodyObj:          &update,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Update(
					r.Context(),
					authn.SubjectFromContext(r.Context()),
					mux.Vars(r)["id"],
					update,
				)
			},
			SuccessCode: http.StatusOK,
		},
	)
}
