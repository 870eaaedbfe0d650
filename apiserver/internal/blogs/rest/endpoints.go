package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/inkwellhq/inkwell"
	"github.com/inkwellhq/inkwell/apiserver/internal/authn"
	"github.com/inkwellhq/inkwell/apiserver/internal/blogs"
	"github.com/inkwellhq/inkwell/apiserver/internal/lib/restmachinery"
	"github.com/xeipuuv/gojsonschema"
)

const blogUpsertSchema = `
{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["title", "content"],
	"additionalProperties": false,
	"properties": {
		"title": {
			"type": "string",
			"minLength": 1,
			"maxLength": 200
		},
		"content": {
			"type": "string",
			"minLength": 10
		},
		"image": {
			"type": "string",
			"maxLength": 500
		},
		"tags": {
			"type": "array",
			"items": {
				"type": "string",
				"minLength": 1,
				"maxLength": 50
			}
		}
	}
}`

const commentCreateSchema = `
{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["content"],
	"additionalProperties": false,
	"properties": {
		"content": {
			"type": "string",
			"minLength": 1,
			"maxLength": 1000
		}
	}
}`

type endpoints struct {
	*restmachinery.BaseEndpoints
	blogUpsertSchemaLoader    gojsonschema.JSONLoader
	commentCreateSchemaLoader gojsonschema.JSONLoader
	service                   blogs.Service
}

// NewEndpoints returns the REST endpoint collection for blogs.
func NewEndpoints(
	baseEndpoints *restmachinery.BaseEndpoints,
	service blogs.Service,
) restmachinery.Endpoints {
	return &endpoints{
		BaseEndpoints:             baseEndpoints,
		blogUpsertSchemaLoader:    gojsonschema.NewStringLoader(blogUpsertSchema),
		commentCreateSchemaLoader: gojsonschema.NewStringLoader(commentCreateSchema),
		service:                   service,
	}
}

func (e *endpoints) Register(router *mux.Router) {
	// List blogs with pagination and search
	router.HandleFunc(
		"/blogs",
		e.list, // No filters applied to this request
	).Methods(http.MethodGet)

	// Create blog
	router.HandleFunc(
		"/blogs",
		e.TokenAuthFilter.Decorate(e.create),
	).Methods(http.MethodPost)

	// Get a user's blogs
	router.HandleFunc(
		"/blogs/user/{id}",
		e.listByAuthor, // No filters applied to this request
	).Methods(http.MethodGet)

	// Get single blog
	router.HandleFunc(
		"/blogs/{id}",
		e.get, // No filters applied to this request
	).Methods(http.MethodGet)

	// Update blog
	router.HandleFunc(
		"/blogs/{id}",
		e.TokenAuthFilter.Decorate(e.update),
	).Methods(http.MethodPut)

	// Delete blog
	router.HandleFunc(
		"/blogs/{id}",
		e.TokenAuthFilter.Decorate(e.delete),
	).Methods(http.MethodDelete)

	// Like/unlike blog
	router.HandleFunc(
		"/blogs/{id}/like",
		e.TokenAuthFilter.Decorate(e.toggleLike),
	).Methods(http.MethodPost)

	// Add comment
	router.HandleFunc(
		"/blogs/{id}/comments",
		e.TokenAuthFilter.Decorate(e.addComment),
	).Methods(http.MethodPost)
}

func (e *endpoints) list(w http.ResponseWriter, r *http.Request) {
	opts := blogs.ListOptions{}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		var err error
		if opts.Page, err = strconv.ParseInt(pageStr, 10, 64); err != nil ||
			opts.Page < 1 {
			e.WriteAPIResponse(
				w,
				http.StatusBadRequest,
				inkwell.NewErrBadRequest(
					fmt.Sprintf(
						`Invalid value %q for "page" query parameter`,
						pageStr,
					),
				),
			)
			return
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		if opts.Limit, err = strconv.ParseInt(limitStr, 10, 64); err != nil ||
			opts.Limit < 1 || opts.Limit > 100 {
			e.WriteAPIResponse(
				w,
				http.StatusBadRequest,
				inkwell.NewErrBadRequest(
					fmt.Sprintf(
						`Invalid value %q for "limit" query parameter`,
						limitStr,
					),
				),
			)
			return
		}
	}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return e.service.List(
					r.Context(),
					blogs.Selector{
						Search: r.URL.Query().Get("search"),
					},
					opts,
				)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) create(w http.ResponseWriter, r *http.Request) {
	upsert := inkwell.BlogUpsert{}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: e.blogUpsertSchemaLoader,
			ReqBodyObj:          &upsert,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Create(
					r.Context(),
					authn.SubjectFromContext(r.Context()),
					upsert,
				)
			},
			SuccessCode: http.StatusCreated,
		},
	)
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

func (e *endpoints) listByAuthor(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return e.service.ListByAuthor(r.Context(), mux.Vars(r)["id"])
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) update(w http.ResponseWriter, r *http.Request) {
	upsert := inkwell.BlogUpsert{}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: e.blogUpsertSchemaLoader,
			ReqBodyObj:          &upsert,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Update(
					r.Context(),
					authn.SubjectFromContext(r.Context()),
					mux.Vars(r)["id"],
					upsert,
				)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) delete(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				if err := e.service.Delete(
					r.Context(),
					authn.SubjectFromContext(r.Context()),
					mux.Vars(r)["id"],
				); err != nil {
					return nil, err
				}
				return inkwell.MessageResponse{
					Message: "Blog deleted successfully",
				}, nil
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) toggleLike(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return e.service.ToggleLike(
					r.Context(),
					authn.SubjectFromContext(r.Context()),
					mux.Vars(r)["id"],
				)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *endpoints) addComment(w http.ResponseWriter, r *http.Request) {
	create := inkwell.CommentCreate{}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: e.commentCreateSchemaLoader,
			ReqBodyObj:          &create,
			EndpointLogic: func() (interface{}, error) {
				return e.service.AddComment(
					r.Context(),
					authn.SubjectFromContext(r.Context()),
					mux.Vars(r)["id"],
					create,
				)
			},
			SuccessCode: http.StatusOK,
		},
	)
}
