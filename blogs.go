package inkwell

import "time"

// Blog is a post as it appears on the wire. The author reference is set at
// creation and never reassigned; mutation and deletion require the
// requesting subject to match it.
type Blog struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Content  string      `json:"content"`
	Author   UserSummary `json:"author"`
	Image    string      `json:"image"`
	Likes    []string    `json:"likes"`
	Comments []Comment   `json:"comments"`
	Tags     []string    `json:"tags"`
	Created  time.Time   `json:"createdAt"`
	Updated  time.Time   `json:"updatedAt"`
}

// LikesCount returns the size of the blog's like set.
func (b Blog) LikesCount() int {
	return len(b.Likes)
}

// LikedBy indicates whether the given user is in the blog's like set.
func (b Blog) LikedBy(userID string) bool {
	for _, id := range b.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment is a reader response attached to a blog.
type Comment struct {
	ID      string      `json:"id"`
	Author  UserSummary `json:"author"`
	Content string      `json:"content"`
	Created time.Time   `json:"createdAt"`
}

// BlogList is one page of blogs plus the pagination envelope.
type BlogList struct {
	Blogs       []Blog `json:"blogs"`
	TotalPages  int64  `json:"totalPages"`
	CurrentPage int64  `json:"currentPage"`
	Total       int64  `json:"total"`
}

// BlogUpsert is the request body for creating or updating a blog. The image
// field carries a path produced by an external upload collaborator; this API
// treats it as an opaque string.
type BlogUpsert struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Image   string   `json:"image,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// CommentCreate is the request body for adding a comment to a blog.
type CommentCreate struct {
	Content string `json:"content"`
}

// LikeResult reports the outcome of a like toggle. Each invocation flips the
// subject's membership in the like set; retrying a toggle therefore undoes
// it rather than repeating it.
type LikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}
