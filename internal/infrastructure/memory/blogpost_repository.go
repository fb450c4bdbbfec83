package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domain "blogfolio/backend/internal/domain/blogpost"
)

// BlogpostRepository stores blogposts, comments and likes in process memory.
type BlogpostRepository struct {
	mu    sync.RWMutex
	posts map[string]domain.Blogpost
}

var _ domain.Repository = (*BlogpostRepository)(nil)

// NewBlogpostRepository constructs an empty store.
func NewBlogpostRepository() *BlogpostRepository {
	return &BlogpostRepository{posts: make(map[string]domain.Blogpost)}
}

// Create inserts a new blogpost.
func (r *BlogpostRepository) Create(_ context.Context, post *domain.Blogpost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[post.ID] = clonePost(*post)
	return nil
}

// GetByID fetches a blogpost with its comments and likes.
func (r *BlogpostRepository) GetByID(_ context.Context, id string) (*domain.Blogpost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copy := clonePost(post)
	return &copy, nil
}

// List returns a page of posts matching the filter plus the total count.
func (r *BlogpostRepository) List(_ context.Context, filter domain.Filter) ([]*domain.Blogpost, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Blogpost, 0, len(r.posts))
	for _, post := range r.posts {
		if filter.Category != "" && post.Category != filter.Category {
			continue
		}
		if filter.Title != "" && !strings.Contains(strings.ToLower(post.Title), strings.ToLower(filter.Title)) {
			continue
		}
		matched = append(matched, post)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	if filter.Offset >= total {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}

	page := make([]*domain.Blogpost, 0, end-filter.Offset)
	for _, post := range matched[filter.Offset:end] {
		copy := clonePost(post)
		page = append(page, &copy)
	}
	return page, total, nil
}

// Update replaces a stored post, keeping its comments and likes.
func (r *BlogpostRepository) Update(_ context.Context, post *domain.Blogpost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.posts[post.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := clonePost(*post)
	updated.Comments = existing.Comments
	updated.Likes = existing.Likes
	r.posts[post.ID] = updated
	return nil
}

// Delete removes a post with its comments and likes.
func (r *BlogpostRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

// AddComment appends a comment to the post.
func (r *BlogpostRepository) AddComment(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[comment.BlogpostID]
	if !ok {
		return domain.ErrNotFound
	}
	post.Comments = append(post.Comments, *comment)
	r.posts[comment.BlogpostID] = post
	return nil
}

// GetComment fetches a single comment scoped to its post.
func (r *BlogpostRepository) GetComment(_ context.Context, blogpostID, commentID string) (*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[blogpostID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for _, comment := range post.Comments {
		if comment.ID == commentID {
			copy := comment
			return &copy, nil
		}
	}
	return nil, domain.ErrCommentNotFound
}

// UpdateComment replaces a stored comment.
func (r *BlogpostRepository) UpdateComment(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[comment.BlogpostID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range post.Comments {
		if post.Comments[i].ID == comment.ID {
			post.Comments[i] = *comment
			r.posts[comment.BlogpostID] = post
			return nil
		}
	}
	return domain.ErrCommentNotFound
}

// DeleteComment removes a single comment from the post.
func (r *BlogpostRepository) DeleteComment(_ context.Context, blogpostID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[blogpostID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			post.Comments = append(post.Comments[:i], post.Comments[i+1:]...)
			r.posts[blogpostID] = post
			return nil
		}
	}
	return domain.ErrCommentNotFound
}

// AddLike records a like once per account.
func (r *BlogpostRepository) AddLike(_ context.Context, blogpostID, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[blogpostID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, id := range post.Likes {
		if id == accountID {
			return nil
		}
	}
	post.Likes = append(post.Likes, accountID)
	r.posts[blogpostID] = post
	return nil
}

// RemoveLike deletes the account's like, if present.
func (r *BlogpostRepository) RemoveLike(_ context.Context, blogpostID, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[blogpostID]
	if !ok {
		return domain.ErrNotFound
	}
	for i, id := range post.Likes {
		if id == accountID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			r.posts[blogpostID] = post
			return nil
		}
	}
	return nil
}

func clonePost(post domain.Blogpost) domain.Blogpost {
	copy := post
	copy.Authors = append([]string(nil), post.Authors...)
	copy.Likes = append([]string(nil), post.Likes...)
	copy.Comments = append([]domain.Comment(nil), post.Comments...)
	if copy.Likes == nil {
		copy.Likes = []string{}
	}
	if copy.Comments == nil {
		copy.Comments = []domain.Comment{}
	}
	return copy
}
