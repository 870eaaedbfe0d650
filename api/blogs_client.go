package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/inkwellhq/inkwell"
)

// BlogListOptions narrows and pages the results of a blog listing.
type BlogListOptions struct {
	// Page is the 1-indexed page to return. Zero selects the first page.
	Page int64
	// Limit is the maximum number of blogs per page. Zero selects the
	// server's default.
	Limit int64
	// Search restricts results to blogs matching a full-text query.
	Search string
}

// BlogsClient is the specialized client for Blog management.
type BlogsClient interface {
	// Create stores a new blog authored by the authenticated user.
	Create(context.Context, inkwell.BlogUpsert) (inkwell.Blog, error)
	// List returns one page of blogs, newest first.
	List(context.Context, BlogListOptions) (inkwell.BlogList, error)
	// Get retrieves a single blog by ID.
	Get(context.Context, string) (inkwell.Blog, error)
	// ListByAuthor returns all of one author's blogs.
	ListByAuthor(ctx context.Context, authorID string) ([]inkwell.Blog, error)
	// Update replaces the identified blog's mutable fields. Only the blog's
	// author may do this.
	Update(
		ctx context.Context,
		id string,
		upsert inkwell.BlogUpsert,
	) (inkwell.Blog, error)
	// Delete removes the identified blog. Only the blog's author may do this.
	Delete(context.Context, string) error
	// ToggleLike flips the authenticated user's like on the identified blog
	// and reports the resulting state.
	ToggleLike(context.Context, string) (inkwell.LikeResult, error)
	// AddComment appends a comment by the authenticated user to the
	// identified blog.
	AddComment(
		ctx context.Context,
		id string,
		create inkwell.CommentCreate,
	) (inkwell.Comment, error)
}

type blogsClient struct {
	*BaseClient
}

// NewBlogsClient returns a specialized client for Blog management.
func NewBlogsClient(baseClient *BaseClient) BlogsClient {
	return &blogsClient{
		BaseClient: baseClient,
	}
}

func (b *blogsClient) Create(
	ctx context.Context,
	upsert inkwell.BlogUpsert,
) (inkwell.Blog, error) {
	blog := inkwell.Blog{}
	return blog, b.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodPost,
			Path:        "blogs",
			AuthHeaders: b.BearerTokenAuthHeaders(),
			ReqBodyObj:  upsert,
			SuccessCode: http.StatusCreated,
			RespObj:     &blog,
		},
	)
}

func (b *blogsClient) List(
	ctx context.Context,
	opts BlogListOptions,
) (inkwell.BlogList, error) {
	queryParams := map[string]string{}
	if opts.Page > 0 {
		queryParams["page"] = strconv.FormatInt(opts.Page, 10)
	}
	if opts.Limit > 0 {
		queryParams["limit"] = strconv.FormatInt(opts.Limit, 10)
	}
	if opts.Search != "" {
		queryParams["search"] = opts.Search
	}
	blogList := inkwell.BlogList{}
	return blogList, b.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodGet,
			Path:        "blogs",
			QueryParams: queryParams,
			SuccessCode: http.StatusOK,
			RespObj:     &blogList,
		},
	)
}

func (b *blogsClient) Get(
	ctx context.Context,
	id string,
) (inkwell.Blog, error) {
	blog := inkwell.Blog{}
	return blog, b.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodGet,
			Path:        fmt.Sprintf("blogs/%s", id),
			SuccessCode: http.StatusOK,
			RespObj:     &blog,
		},
	)
}

func (b *blogsClient) ListByAuthor(
	ctx context.Context,
	authorID string,
) ([]inkwell.Blog, error) {
	blogs := []inkwell.Blog{}
	return blogs, b.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodGet,
			Path:        fmt.Sprintf("blogs/user/%s", authorID),
			SuccessCode: http.StatusOK,
			RespObj:     &blogs,
		},
	)
}

func (b *blogsClient) Update(
	ctx context.Context,
	id string,
	upsert inkwell.BlogUpsert,
) (inkwell.Blog, error) {
	blog := inkwell.Blog{}
	return blog, b.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodPut,
			Path:        fmt.Sprintf("blogs/%s", id),
			AuthHeaders: b.BearerTokenAuthHeaders(),
			ReqBodyObj:  upsert,
			SuccessCode: http.StatusOK,
			RespObj:     &blog,
		},
	)
}

func (b *blogsClient) Delete(ctx context.Context, id string) error {
	return b.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodDelete,
			Path:        fmt.Sprintf("blogs/%s", id),
			AuthHeaders: b.BearerTokenAuthHeaders(),
			SuccessCode: http.StatusOK,
		},
	)
}

func (b *blogsClient) ToggleLike(
	ctx context.Context,
	id string,
) (inkwell.LikeResult, error) {
	likeResult := inkwell.LikeResult{}
	return likeResult, b.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodPost,
			Path:        fmt.Sprintf("blogs/%s/like", id),
			AuthHeaders: b.BearerTokenAuthHeaders(),
			SuccessCode: http.StatusOK,
			RespObj:     &likeResult,
		},
	)
}

func (b *blogsClient) AddComment(
	ctx context.Context,
	id string,
	create inkwell.CommentCreate,
) (inkwell.Comment, error) {
	comment := inkwell.Comment{}
	return comment, b.ExecuteRequest(
		ctx,
		OutboundRequest{
			Method:      http.MethodPost,
			Path:        fmt.Sprintf("blogs/%s/comments", id),
			AuthHeaders: b.BearerTokenAuthHeaders(),
			ReqBodyObj:  create,
			SuccessCode: http.StatusOK,
			RespObj:     &comment,
		},
	)
}
