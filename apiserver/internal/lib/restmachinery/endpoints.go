package restmachinery

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/inkwellhq/inkwell"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// Endpoints is an interface to be implemented by all REST API endpoint
// collections so that they may register their routes with the server's
// router.
type Endpoints interface {
	Register(router *mux.Router)
}

// BaseEndpoints provides the request-handling machinery shared by all
// endpoint collections: request body validation, endpoint logic invocation,
// and centralized mapping of the error taxonomy onto HTTP response codes.
type BaseEndpoints struct {
	TokenAuthFilter Filter
}

// InboundRequest bundles everything needed to serve one API request.
type InboundRequest struct {
	W                   http.ResponseWriter
	R                   *http.Request
	ReqBodySchemaLoader gojsonschema.JSONLoader
	ReqBodyObj          interface{}
	EndpointLogic       func() (interface{}, error)
	SuccessCode         int
}

func (b *BaseEndpoints) readAndValidateRequestBody(
	w http.ResponseWriter,
	r *http.Request,
	bodySchemaLoader gojsonschema.JSONLoader,
	bodyObj interface{},
) bool {
	defer r.Body.Close() // nolint: errcheck
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		// Log it in case something is actually wrong...
		log.Println(errors.Wrap(err, "error reading request body"))
		// But we're going to assume this is because the request body is missing,
		// so we'll treat it as a bad request.
		b.WriteAPIResponse(
			w,
			http.StatusBadRequest,
			inkwell.NewErrBadRequest("Could not read request body"),
		)
		return false
	}
	if bodySchemaLoader != nil {
		var validationResult *gojsonschema.Result
		validationResult, err = gojsonschema.Validate(
			bodySchemaLoader,
			gojsonschema.NewBytesLoader(bodyBytes),
		)
		if err != nil {
			// Log it in case something is actually wrong...
			log.Println(errors.Wrap(err, "error validating request body"))
			// But as long as the schema itself was valid, the most likely scenario
			// here is that the request body wasn't valid JSON, so we'll treat this
			// as a bad request.
			b.WriteAPIResponse(
				w,
				http.StatusBadRequest,
				inkwell.NewErrBadRequest("Could not validate request body"),
			)
			return false
		}
		if !validationResult.Valid() {
			// We don't bother to log this because this is DEFINITELY a bad request.
			verrStrs := make([]string, len(validationResult.Errors()))
			for i, verr := range validationResult.Errors() {
				verrStrs[i] = verr.String()
			}
			b.WriteAPIResponse(
				w,
				http.StatusBadRequest,
				inkwell.NewErrBadRequest(
					"Request body failed validation",
					verrStrs...,
				),
			)
			return false
		}
	}
	if bodyObj != nil {
		if err = json.Unmarshal(bodyBytes, bodyObj); err != nil {
			log.Println(errors.Wrap(err, "error unmarshaling request body"))
			// We were already able to validate the request body, which means it was
			// valid JSON. If something went wrong with unmarshaling, it's NOT
			// because of a bad request-- it's a real, internal problem.
			b.WriteAPIResponse(
				w,
				http.StatusInternalServerError,
				inkwell.NewErrInternalServer(),
			)
			return false
		}
	}
	return true
}

// ServeRequest validates the request body if a schema was provided, invokes
// the endpoint logic, and writes either its result or the appropriate error
// response. Domain handlers never write to the ResponseWriter themselves.
func (b *BaseEndpoints) ServeRequest(req InboundRequest) {
	if req.ReqBodySchemaLoader != nil || req.ReqBodyObj != nil {
		if !b.readAndValidateRequestBody(
			req.W,
			req.R,
			req.ReqBodySchemaLoader,
			req.ReqBodyObj,
		) {
			return
		}
	}
	respBodyObj, err := req.EndpointLogic()
	if err != nil {
		switch e := errors.Cause(err).(type) {
		case *inkwell.ErrAuthentication:
			b.WriteAPIResponse(req.W, http.StatusUnauthorized, e)
		case *inkwell.ErrAuthorization:
			b.WriteAPIResponse(req.W, http.StatusForbidden, e)
		case *inkwell.ErrBadRequest:
			b.WriteAPIResponse(req.W, http.StatusBadRequest, e)
		case *inkwell.ErrNotFound:
			b.WriteAPIResponse(req.W, http.StatusNotFound, e)
		case *inkwell.ErrConflict:
			b.WriteAPIResponse(req.W, http.StatusConflict, e)
		case *inkwell.ErrInternalServer:
			b.WriteAPIResponse(req.W, http.StatusInternalServerError, e)
		default:
			log.Println(err)
			b.WriteAPIResponse(
				req.W,
				http.StatusInternalServerError,
				inkwell.NewErrInternalServer(),
			)
		}
		return
	}
	b.WriteAPIResponse(req.W, req.SuccessCode, respBodyObj)
}

// WriteAPIResponse marshals the given response object and writes it along
// with the given status code.
func (b *BaseEndpoints) WriteAPIResponse(
	w http.ResponseWriter,
	statusCode int,
	response interface{},
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	responseBody, ok := response.([]byte)
	if !ok {
		var err error
		if responseBody, err = json.Marshal(response); err != nil {
			log.Println(errors.Wrap(err, "error marshaling response body"))
		}
	}
	if _, err := w.Write(responseBody); err != nil {
		log.Println(errors.Wrap(err, "error writing response body"))
	}
}
