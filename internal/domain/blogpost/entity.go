package blogpost

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a blogpost could not be located.
	ErrNotFound = errors.New("blogpost not found")
	// ErrCommentNotFound indicates a comment is missing from the post.
	ErrCommentNotFound = errors.New("comment not found")
)

// ReadTimeUnits lists the accepted units for a post's read time.
var ReadTimeUnits = []string{"seconds", "minutes", "hours"}

// ReadTime is the estimated time needed to read a post.
type ReadTime struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// ValidUnit reports whether the read time carries a supported unit.
func (rt ReadTime) ValidUnit() bool {
	for _, unit := range ReadTimeUnits {
		if rt.Unit == unit {
			return true
		}
	}
	return false
}

// Comment is a single entry in a post's append-only comment list.
type Comment struct {
	ID         string    `json:"id"`
	BlogpostID string    `json:"-"`
	Name       string    `json:"name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Blogpost captures a published post, its owners, likes and comments.
// Authors holds one or more owning account ids; Likes is a set of account
// ids (the store enforces uniqueness).
type Blogpost struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Cover     string    `json:"cover,omitempty"`
	ReadTime  ReadTime  `json:"readTime"`
	Authors   []string  `json:"authors"`
	Likes     []string  `json:"likes"`
	Content   string    `json:"content"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedBy reports whether the account is among the post's owners.
func (b *Blogpost) OwnedBy(accountID string) bool {
	for _, id := range b.Authors {
		if id == accountID {
			return true
		}
	}
	return false
}
