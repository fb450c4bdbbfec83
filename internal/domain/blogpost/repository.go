package blogpost

import "context"

// Filter narrows and pages blogpost listings.
type Filter struct {
	Category string
	Title    string
	Limit    int
	Offset   int
}

// Repository defines persistence behaviours for blogposts and their
// nested comments and likes.
type Repository interface {
	Create(ctx context.Context, post *Blogpost) error
	GetByID(ctx context.Context, id string) (*Blogpost, error)
	List(ctx context.Context, filter Filter) ([]*Blogpost, int, error)
	Update(ctx context.Context, post *Blogpost) error
	Delete(ctx context.Context, id string) error

	AddComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, blogpostID, commentID string) (*Comment, error)
	UpdateComment(ctx context.Context, comment *Comment) error
	DeleteComment(ctx context.Context, blogpostID, commentID string) error

	AddLike(ctx context.Context, blogpostID, accountID string) error
	RemoveLike(ctx context.Context, blogpostID, accountID string) error
}
