package blogs

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell"
)

type mockStore struct {
	records map[string]Record
}

func newMockStore() *mockStore {
	return &mockStore{
		records: map[string]Record{},
	}
}

func (m *mockStore) Create(_ context.Context, record Record) error {
	m.records[record.ID] = record
	return nil
}

func (m *mockStore) List(
	_ context.Context,
	selector Selector,
	opts ListOptions,
) ([]Record, int64, error) {
	all := make([]Record, 0, len(m.records))
	for _, record := range m.records {
		all = append(all, record)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Created.After(all[j].Created)
	})
	total := int64(len(all))
	start := (opts.Page - 1) * opts.Limit
	if start >= total {
		return nil, total, nil
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (m *mockStore) Get(_ context.Context, id string) (Record, error) {
	record, ok := m.records[id]
	if !ok {
		return Record{}, inkwell.NewErrNotFound("Blog")
	}
	return record, nil
}

func (m *mockStore) ListByAuthor(
	_ context.Context,
	authorID string,
) ([]Record, error) {
	records := []Record{}
	for _, record := range m.records {
		if record.AuthorID == authorID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Created.After(records[j].Created)
	})
	return records, nil
}

func (m *mockStore) Update(
	_ context.Context,
	id string,
	update Update,
) (Record, error) {
	record, ok := m.records[id]
	if !ok {
		return Record{}, inkwell.NewErrNotFound("Blog")
	}
	record.Title = update.Title
	record.Content = update.Content
	record.Image = update.Image
	record.Tags = update.Tags
	record.Updated = time.Now()
	m.records[id] = record
	return record, nil
}

func (m *mockStore) Delete(_ context.Context, id string) error {
	if _, ok := m.records[id]; !ok {
		return inkwell.NewErrNotFound("Blog")
	}
	delete(m.records, id)
	return nil
}

func (m *mockStore) AddLike(
	_ context.Context,
	id string,
	userID string,
) (Record, error) {
	record, ok := m.records[id]
	if !ok {
		return Record{}, inkwell.NewErrNotFound("Blog")
	}
	for _, existing := range record.Likes {
		if existing == userID {
			return record, nil
		}
	}
	record.Likes = append(record.Likes, userID)
	m.records[id] = record
	return record, nil
}

func (m *mockStore) RemoveLike(
	_ context.Context,
	id string,
	userID string,
) (Record, error) {
	record, ok := m.records[id]
	if !ok {
		return Record{}, inkwell.NewErrNotFound("Blog")
	}
	likes := make([]string, 0, len(record.Likes))
	for _, existing := range record.Likes {
		if existing != userID {
			likes = append(likes, existing)
		}
	}
	record.Likes = likes
	m.records[id] = record
	return record, nil
}

func (m *mockStore) AddComment(
	_ context.Context,
	id string,
	comment CommentRecord,
) error {
	record, ok := m.records[id]
	if !ok {
		return inkwell.NewErrNotFound("Blog")
	}
	record.Comments = append(record.Comments, comment)
	m.records[id] = record
	return nil
}

type mockUsersStore struct{}

func (m *mockUsersStore) Create(context.Context, inkwell.User) error {
	return nil
}

func (m *mockUsersStore) Get(
	context.Context,
	string,
) (inkwell.User, error) {
	return inkwell.User{}, inkwell.NewErrNotFound("User")
}

func (m *mockUsersStore) GetByEmail(
	context.Context,
	string,
) (inkwell.User, error) {
	return inkwell.User{}, inkwell.NewErrNotFound("User")
}

func (m *mockUsersStore) GetSummaries(
	_ context.Context,
	ids []string,
) (map[string]inkwell.UserSummary, error) {
	summaries := map[string]inkwell.UserSummary{}
	for _, id := range ids {
		summaries[id] = inkwell.UserSummary{
			ID:       id,
			Username: "user-" + id,
		}
	}
	return summaries, nil
}

func (m *mockUsersStore) Update(
	context.Context,
	string,
	inkwell.UserUpdate,
) (inkwell.User, error) {
	return inkwell.User{}, inkwell.NewErrNotFound("User")
}

func (m *mockUsersStore) UpdatePassword(
	context.Context,
	string,
	string,
) error {
	return nil
}

func testBlogService() (Service, *mockStore) {
	store := newMockStore()
	return NewService(store, &mockUsersStore{}), store
}

func createTestBlog(t *testing.T, service Service, author string) inkwell.Blog {
	blog, err := service.Create(
		context.Background(),
		author,
		inkwell.BlogUpsert{
			Title:   "Reflections on flight software",
			Content: "There was no second chance to get it right.",
			Tags:    []string{"Apollo", "software"},
		},
	)
	require.NoError(t, err)
	return blog
}

func TestCreate(t *testing.T) {
	service, store := testBlogService()
	blog := createTestBlog(t, service, "author-1")

	require.NotEmpty(t, blog.ID)
	require.Equal(t, "author-1", blog.Author.ID)
	require.Empty(t, blog.Likes)
	require.Empty(t, blog.Comments)
	// Tags are normalized to lower case
	require.Equal(t, []string{"apollo", "software"}, blog.Tags)

	// The author reference is stored, not the denormalized summary
	require.Equal(t, "author-1", store.records[blog.ID].AuthorID)
}

func TestListPagination(t *testing.T) {
	service, store := testBlogService()
	base := time.Now()
	for i := 0; i < 25; i++ {
		store.records[string(rune('a'+i))] = Record{
			ID:       string(rune('a' + i)),
			Title:    "Entry",
			AuthorID: "author-1",
			Created:  base.Add(time.Duration(i) * time.Minute),
		}
	}

	blogList, err := service.List(
		context.Background(),
		Selector{},
		ListOptions{Page: 3, Limit: 10},
	)
	require.NoError(t, err)
	require.Len(t, blogList.Blogs, 5)
	require.Equal(t, int64(3), blogList.TotalPages)
	require.Equal(t, int64(3), blogList.CurrentPage)
	require.Equal(t, int64(25), blogList.Total)
}

func TestListDefaultsPageAndLimit(t *testing.T) {
	service, store := testBlogService()
	base := time.Now()
	for i := 0; i < 12; i++ {
		store.records[string(rune('a'+i))] = Record{
			ID:       string(rune('a' + i)),
			AuthorID: "author-1",
			Created:  base.Add(time.Duration(i) * time.Minute),
		}
	}

	blogList, err := service.List(context.Background(), Selector{}, ListOptions{})
	require.NoError(t, err)
	require.Len(t, blogList.Blogs, 10)
	require.Equal(t, int64(1), blogList.CurrentPage)
	require.Equal(t, int64(2), blogList.TotalPages)
	// Newest first
	require.Equal(t, "l", blogList.Blogs[0].ID)
}

func TestUpdateEnforcesOwnership(t *testing.T) {
	service, _ := testBlogService()
	blog := createTestBlog(t, service, "author-1")

	_, err := service.Update(
		context.Background(),
		"someone-else",
		blog.ID,
		inkwell.BlogUpsert{
			Title:   "Hijacked",
			Content: "...",
		},
	)
	require.Error(t, err)
	require.IsType(t, &inkwell.ErrAuthorization{}, err)

	updated, err := service.Update(
		context.Background(),
		"author-1",
		blog.ID,
		inkwell.BlogUpsert{
			Title:   "Reflections, revised",
			Content: "There was no second chance.",
		},
	)
	require.NoError(t, err)
	require.Equal(t, "Reflections, revised", updated.Title)
}

func TestUpdateAbsentBlog(t *testing.T) {
	service, _ := testBlogService()
	// NotFound must win over Forbidden when the resource doesn't exist
	_, err := service.Update(
		context.Background(),
		"anyone",
		"no-such-blog",
		inkwell.BlogUpsert{
			Title:   "Ghost",
			Content: "...",
		},
	)
	require.Error(t, err)
	require.IsType(t, &inkwell.ErrNotFound{}, err)
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	service, store := testBlogService()
	blog := createTestBlog(t, service, "author-1")

	err := service.Delete(context.Background(), "someone-else", blog.ID)
	require.Error(t, err)
	require.IsType(t, &inkwell.ErrAuthorization{}, err)
	require.Contains(t, store.records, blog.ID)

	require.NoError(
		t,
		service.Delete(context.Background(), "author-1", blog.ID),
	)
	require.NotContains(t, store.records, blog.ID)
}

func TestDeleteAbsentBlog(t *testing.T) {
	service, _ := testBlogService()
	err := service.Delete(context.Background(), "author-1", "no-such-blog")
	require.Error(t, err)
	require.IsType(t, &inkwell.ErrNotFound{}, err)
}

func TestToggleLike(t *testing.T) {
	service, _ := testBlogService()
	blog := createTestBlog(t, service, "author-1")

	// Any authenticated subject may toggle; no ownership check
	likeResult, err := service.ToggleLike(
		context.Background(),
		"reader-1",
		blog.ID,
	)
	require.NoError(t, err)
	require.True(t, likeResult.Liked)
	require.Equal(t, 1, likeResult.LikesCount)

	// Toggling again undoes the like: flip-flip is identity, NOT idempotent
	// under retry
	likeResult, err = service.ToggleLike(
		context.Background(),
		"reader-1",
		blog.ID,
	)
	require.NoError(t, err)
	require.False(t, likeResult.Liked)
	require.Equal(t, 0, likeResult.LikesCount)

	fetched, err := service.Get(context.Background(), blog.ID)
	require.NoError(t, err)
	require.Empty(t, fetched.Likes)
}

func TestToggleLikeCountsOtherReaders(t *testing.T) {
	service, _ := testBlogService()
	blog := createTestBlog(t, service, "author-1")

	_, err := service.ToggleLike(context.Background(), "reader-1", blog.ID)
	require.NoError(t, err)
	likeResult, err := service.ToggleLike(
		context.Background(),
		"reader-2",
		blog.ID,
	)
	require.NoError(t, err)
	require.True(t, likeResult.Liked)
	require.Equal(t, 2, likeResult.LikesCount)
}

func TestToggleLikeAbsentBlog(t *testing.T) {
	service, _ := testBlogService()
	_, err := service.ToggleLike(
		context.Background(),
		"reader-1",
		"no-such-blog",
	)
	require.Error(t, err)
	require.IsType(t, &inkwell.ErrNotFound{}, err)
}

func TestAddComment(t *testing.T) {
	service, _ := testBlogService()
	blog := createTestBlog(t, service, "author-1")

	comment, err := service.AddComment(
		context.Background(),
		"reader-1",
		blog.ID,
		inkwell.CommentCreate{
			Content: "This still holds up.",
		},
	)
	require.NoError(t, err)
	require.NotEmpty(t, comment.ID)
	require.Equal(t, "reader-1", comment.Author.ID)

	fetched, err := service.Get(context.Background(), blog.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Comments, 1)
	require.Equal(t, "This still holds up.", fetched.Comments[0].Content)
}

func TestListByAuthor(t *testing.T) {
	service, _ := testBlogService()
	createTestBlog(t, service, "author-1")
	createTestBlog(t, service, "author-1")
	createTestBlog(t, service, "author-2")

	blogs, err := service.ListByAuthor(context.Background(), "author-1")
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	for _, blog := range blogs {
		require.Equal(t, "author-1", blog.Author.ID)
	}
}
