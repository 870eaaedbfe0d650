package blogs

import (
	"context"
	"time"
)

// Record is the stored form of a blog. Authors and commenters are referenced
// by ID; the service hydrates them into summaries on the way out. The author
// reference is set at creation and never reassigned.
type Record struct {
	ID       string          `bson:"id"`
	Title    string          `bson:"title"`
	Content  string          `bson:"content"`
	AuthorID string          `bson:"author"`
	Image    string          `bson:"image"`
	Likes    []string        `bson:"likes"`
	Comments []CommentRecord `bson:"comments"`
	Tags     []string        `bson:"tags"`
	Created  time.Time       `bson:"createdAt"`
	Updated  time.Time       `bson:"updatedAt"`
}

// CommentRecord is the stored form of a comment.
type CommentRecord struct {
	ID       string    `bson:"id"`
	AuthorID string    `bson:"author"`
	Content  string    `bson:"content"`
	Created  time.Time `bson:"createdAt"`
}

// Update is the set of blog fields a mutation may replace. The author
// reference and the like/comment collections are deliberately absent.
type Update struct {
	Title   string
	Content string
	Image   string
	Tags    []string
}

// Selector narrows a blog listing.
type Selector struct {
	// Search, if non-empty, restricts results to blogs matching a full-text
	// query over title and content.
	Search string
}

// ListOptions page through a blog listing. Pages are numbered from 1.
type ListOptions struct {
	Page  int64
	Limit int64
}

// Store is an interface for components that persist blogs.
type Store interface {
	// Create stores a new blog.
	Create(ctx context.Context, record Record) error
	// List returns one page of blogs matching the selector, newest first,
	// along with the total count of matches.
	List(
		ctx context.Context,
		selector Selector,
		opts ListOptions,
	) ([]Record, int64, error)
	// Get retrieves a single blog by ID.
	Get(ctx context.Context, id string) (Record, error)
	// ListByAuthor returns all of one author's blogs, newest first.
	ListByAuthor(ctx context.Context, authorID string) ([]Record, error)
	// Update replaces the identified blog's mutable fields and returns the
	// updated record.
	Update(ctx context.Context, id string, update Update) (Record, error)
	// Delete removes the identified blog.
	Delete(ctx context.Context, id string) error
	// AddLike adds the given user to the identified blog's like set and
	// returns the updated record.
	AddLike(ctx context.Context, id string, userID string) (Record, error)
	// RemoveLike removes the given user from the identified blog's like set
	// and returns the updated record.
	RemoveLike(ctx context.Context, id string, userID string) (Record, error)
	// AddComment appends a comment to the identified blog.
	AddComment(ctx context.Context, id string, comment CommentRecord) error
}
