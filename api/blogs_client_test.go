package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell"
)

const testBlogID = "blog-123"

func TestBlogsClientList(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/blogs", r.URL.Path)
				require.Equal(t, "2", r.URL.Query().Get("page"))
				require.Equal(t, "5", r.URL.Query().Get("limit"))
				require.Equal(t, "apollo", r.URL.Query().Get("search"))
				responseBody, err := json.Marshal(
					inkwell.BlogList{
						Blogs:       []inkwell.Blog{{ID: testBlogID}},
						TotalPages:  3,
						CurrentPage: 2,
						Total:       11,
					},
				)
				require.NoError(t, err)
				w.Write(responseBody) // nolint: errcheck
			},
		),
	)
	defer server.Close()
	c := NewClient(server.URL, testAPIToken, testClientAllowInsecure)
	blogList, err := c.Blogs().List(
		context.Background(),
		BlogListOptions{
			Page:   2,
			Limit:  5,
			Search: "apollo",
		},
	)
	require.NoError(t, err)
	require.Len(t, blogList.Blogs, 1)
	require.Equal(t, int64(11), blogList.Total)
}

func TestBlogsClientCreate(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				defer r.Body.Close()
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/blogs", r.URL.Path)
				require.Equal(
					t,
					"Bearer "+testAPIToken,
					r.Header.Get("Authorization"),
				)
				upsert := inkwell.BlogUpsert{}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&upsert))
				require.Equal(t, "First post", upsert.Title)
				responseBody, err := json.Marshal(
					inkwell.Blog{
						ID:    testBlogID,
						Title: upsert.Title,
					},
				)
				require.NoError(t, err)
				w.WriteHeader(http.StatusCreated)
				w.Write(responseBody) // nolint: errcheck
			},
		),
	)
	defer server.Close()
	c := NewClient(server.URL, testAPIToken, testClientAllowInsecure)
	blog, err := c.Blogs().Create(
		context.Background(),
		inkwell.BlogUpsert{
			Title:   "First post",
			Content: "Hello.",
		},
	)
	require.NoError(t, err)
	require.Equal(t, testBlogID, blog.ID)
}

func TestBlogsClientToggleLike(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/blogs/"+testBlogID+"/like", r.URL.Path)
				responseBody, err := json.Marshal(
					inkwell.LikeResult{
						Liked:      true,
						LikesCount: 4,
					},
				)
				require.NoError(t, err)
				w.Write(responseBody) // nolint: errcheck
			},
		),
	)
	defer server.Close()
	c := NewClient(server.URL, testAPIToken, testClientAllowInsecure)
	likeResult, err := c.Blogs().ToggleLike(context.Background(), testBlogID)
	require.NoError(t, err)
	require.True(t, likeResult.Liked)
	require.Equal(t, 4, likeResult.LikesCount)
}

func TestBlogsClientDelete(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodDelete, r.Method)
				require.Equal(t, "/blogs/"+testBlogID, r.URL.Path)
				// nolint: errcheck
				w.Write([]byte(`{"message":"Blog deleted successfully"}`))
			},
		),
	)
	defer server.Close()
	c := NewClient(server.URL, testAPIToken, testClientAllowInsecure)
	require.NoError(t, c.Blogs().Delete(context.Background(), testBlogID))
}
