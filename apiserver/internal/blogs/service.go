package blogs

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkwellhq/inkwell"
	"github.com/inkwellhq/inkwell/apiserver/internal/users"
	"github.com/pkg/errors"
)

const defaultPageSize = 10

// Service is the specialized interface for managing blogs: CRUD, the like
// toggle, and comments. Every mutation requires an authenticated subject;
// update and delete additionally require the subject to be the blog's
// author.
type Service interface {
	// Create stores a new blog authored by the given subject.
	Create(
		ctx context.Context,
		subject string,
		upsert inkwell.BlogUpsert,
	) (inkwell.Blog, error)
	// List returns one page of blogs, optionally restricted by a full-text
	// search query.
	List(
		ctx context.Context,
		selector Selector,
		opts ListOptions,
	) (inkwell.BlogList, error)
	// Get retrieves a single blog by ID.
	Get(ctx context.Context, id string) (inkwell.Blog, error)
	// ListByAuthor returns all of one author's blogs.
	ListByAuthor(ctx context.Context, authorID string) ([]inkwell.Blog, error)
	// Update replaces the identified blog's mutable fields. The subject must
	// be the blog's author.
	Update(
		ctx context.Context,
		subject string,
		id string,
		upsert inkwell.BlogUpsert,
	) (inkwell.Blog, error)
	// Delete removes the identified blog. The subject must be the blog's
	// author.
	Delete(ctx context.Context, subject string, id string) error
	// ToggleLike flips the subject's membership in the identified blog's like
	// set. Any authenticated subject may toggle; the operation is NOT
	// idempotent under retry-- invoking it twice restores the original state.
	ToggleLike(
		ctx context.Context,
		subject string,
		id string,
	) (inkwell.LikeResult, error)
	// AddComment appends a comment by the subject to the identified blog.
	AddComment(
		ctx context.Context,
		subject string,
		id string,
		create inkwell.CommentCreate,
	) (inkwell.Comment, error)
}

type service struct {
	store      Store
	usersStore users.Store
}

// NewService returns a specialized interface for managing blogs.
func NewService(store Store, usersStore users.Store) Service {
	return &service{
		store:      store,
		usersStore: usersStore,
	}
}

func (s *service) Create(
	ctx context.Context,
	subject string,
	upsert inkwell.BlogUpsert,
) (inkwell.Blog, error) {
	now := time.Now()
	record := Record{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(upsert.Title),
		Content:  upsert.Content,
		AuthorID: subject,
		Image:    upsert.Image,
		Likes:    []string{},
		Comments: []CommentRecord{},
		Tags:     normalizeTags(upsert.Tags),
		Created:  now,
		Updated:  now,
	}
	if err := s.store.Create(ctx, record); err != nil {
		return inkwell.Blog{},
			errors.Wrapf(err, "error storing new blog %q", record.ID)
	}
	return s.hydrate(ctx, record)
}

func (s *service) List(
	ctx context.Context,
	selector Selector,
	opts ListOptions,
) (inkwell.BlogList, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = defaultPageSize
	}
	records, total, err := s.store.List(ctx, selector, opts)
	if err != nil {
		return inkwell.BlogList{},
			errors.Wrap(err, "error retrieving blogs from store")
	}
	blogs, err := s.hydrateAll(ctx, records)
	if err != nil {
		return inkwell.BlogList{}, err
	}
	totalPages := total / opts.Limit
	if total%opts.Limit != 0 {
		totalPages++
	}
	return inkwell.BlogList{
		Blogs:       blogs,
		TotalPages:  totalPages,
		CurrentPage: opts.Page,
		Total:       total,
	}, nil
}

func (s *service) Get(
	ctx context.Context,
	id string,
) (inkwell.Blog, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		if _, ok := errors.Cause(err).(*inkwell.ErrNotFound); ok {
			return inkwell.Blog{}, err
		}
		return inkwell.Blog{},
			errors.Wrapf(err, "error retrieving blog %q from store", id)
	}
	return s.hydrate(ctx, record)
}

func (s *service) ListByAuthor(
	ctx context.Context,
	authorID string,
) ([]inkwell.Blog, error) {
	records, err := s.store.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error retrieving blogs for author %q from store",
			authorID,
		)
	}
	return s.hydrateAll(ctx, records)
}

func (s *service) Update(
	ctx context.Context,
	subject string,
	id string,
	upsert inkwell.BlogUpsert,
) (inkwell.Blog, error) {
	if _, err := s.owned(ctx, subject, id); err != nil {
		return inkwell.Blog{}, err
	}
	record, err := s.store.Update(
		ctx,
		id,
		Update{
			Title:   strings.TrimSpace(upsert.Title),
			Content: upsert.Content,
			Image:   upsert.Image,
			Tags:    normalizeTags(upsert.Tags),
		},
	)
	if err != nil {
		if _, ok := errors.Cause(err).(*inkwell.ErrNotFound); ok {
			return inkwell.Blog{}, err
		}
		return inkwell.Blog{},
			errors.Wrapf(err, "error updating blog %q in store", id)
	}
	return s.hydrate(ctx, record)
}

func (s *service) Delete(
	ctx context.Context,
	subject string,
	id string,
) error {
	if _, err := s.owned(ctx, subject, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if _, ok := errors.Cause(err).(*inkwell.ErrNotFound); ok {
			return err
		}
		return errors.Wrapf(err, "error deleting blog %q from store", id)
	}
	return nil
}

func (s *service) ToggleLike(
	ctx context.Context,
	subject string,
	id string,
) (inkwell.LikeResult, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		if _, ok := errors.Cause(err).(*inkwell.ErrNotFound); ok {
			return inkwell.LikeResult{}, err
		}
		return inkwell.LikeResult{},
			errors.Wrapf(err, "error retrieving blog %q from store", id)
	}
	liked := false
	for _, userID := range record.Likes {
		if userID == subject {
			liked = true
			break
		}
	}
	if liked {
		record, err = s.store.RemoveLike(ctx, id, subject)
	} else {
		record, err = s.store.AddLike(ctx, id, subject)
	}
	if err != nil {
		if _, ok := errors.Cause(err).(*inkwell.ErrNotFound); ok {
			return inkwell.LikeResult{}, err
		}
		return inkwell.LikeResult{},
			errors.Wrapf(err, "error toggling like on blog %q", id)
	}
	return inkwell.LikeResult{
		Liked:      !liked,
		LikesCount: len(record.Likes),
	}, nil
}

func (s *service) AddComment(
	ctx context.Context,
	subject string,
	id string,
	create inkwell.CommentCreate,
) (inkwell.Comment, error) {
	comment := CommentRecord{
		ID:       uuid.NewString(),
		AuthorID: subject,
		Content:  create.Content,
		Created:  time.Now(),
	}
	if err := s.store.AddComment(ctx, id, comment); err != nil {
		if _, ok := errors.Cause(err).(*inkwell.ErrNotFound); ok {
			return inkwell.Comment{}, err
		}
		return inkwell.Comment{},
			errors.Wrapf(err, "error adding comment to blog %q", id)
	}
	summaries, err := s.usersStore.GetSummaries(ctx, []string{subject})
	if err != nil {
		return inkwell.Comment{},
			errors.Wrap(err, "error retrieving comment author")
	}
	return inkwell.Comment{
		ID:      comment.ID,
		Author:  summaries[subject],
		Content: comment.Content,
		Created: comment.Created,
	}, nil
}

// owned loads the identified blog and enforces the ownership edge: the
// subject must match the immutable author reference.
func (s *service) owned(
	ctx context.Context,
	subject string,
	id string,
) (Record, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		if _, ok := errors.Cause(err).(*inkwell.ErrNotFound); ok {
			return record, err
		}
		return record,
			errors.Wrapf(err, "error retrieving blog %q from store", id)
	}
	if record.AuthorID != subject {
		return record, inkwell.NewErrAuthorization()
	}
	return record, nil
}

// hydrate converts a stored record into its wire form, resolving author
// references into summaries.
func (s *service) hydrate(
	ctx context.Context,
	record Record,
) (inkwell.Blog, error) {
	blogs, err := s.hydrateAll(ctx, []Record{record})
	if err != nil {
		return inkwell.Blog{}, err
	}
	return blogs[0], nil
}

func (s *service) hydrateAll(
	ctx context.Context,
	records []Record,
) ([]inkwell.Blog, error) {
	idSet := map[string]struct{}{}
	for _, record := range records {
		idSet[record.AuthorID] = struct{}{}
		for _, comment := range record.Comments {
			idSet[comment.AuthorID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	summaries, err := s.usersStore.GetSummaries(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "error retrieving blog authors")
	}
	blogs := make([]inkwell.Blog, len(records))
	for i, record := range records {
		comments := make([]inkwell.Comment, len(record.Comments))
		for j, comment := range record.Comments {
			comments[j] = inkwell.Comment{
				ID:      comment.ID,
				Author:  summaries[comment.AuthorID],
				Content: comment.Content,
				Created: comment.Created,
			}
		}
		likes := record.Likes
		if likes == nil {
			likes = []string{}
		}
		blogs[i] = inkwell.Blog{
			ID:       record.ID,
			Title:    record.Title,
			Content:  record.Content,
			Author:   summaries[record.AuthorID],
			Image:    record.Image,
			Likes:    likes,
			Comments: comments,
			Tags:     record.Tags,
			Created:  record.Created,
			Updated:  record.Updated,
		}
	}
	return blogs, nil
}

func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			normalized = append(normalized, tag)
		}
	}
	return normalized
}
