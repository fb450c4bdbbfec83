package blogpost

import (
	"context"
	"log/slog"
	"strings"
	"time"

	authordomain "blogfolio/backend/internal/domain/author"
	domain "blogfolio/backend/internal/domain/blogpost"
	"blogfolio/backend/internal/domain/validation"

	"github.com/google/uuid"
)

// Mailer delivers the post-creation confirmation email.
type Mailer interface {
	SendPostConfirmation(ctx context.Context, to, postTitle string) error
}

// Service encapsulates blogpost use cases.
type Service struct {
	repo    domain.Repository
	mailer  Mailer
	logger  *slog.Logger
	nowFunc func() time.Time
}

// NewService constructs a blogpost service. mailer may be nil when
// confirmation mail is disabled.
func NewService(repo domain.Repository, mailer Mailer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:    repo,
		mailer:  mailer,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// CreateInput contains the payload required to publish a post.
type CreateInput struct {
	Category string          `json:"category"`
	Title    string          `json:"title"`
	Cover    string          `json:"cover"`
	ReadTime domain.ReadTime `json:"readTime"`
	Content  string          `json:"content"`
	Authors  []string        `json:"authors"`
}

// UpdateInput encapsulates partial post updates.
type UpdateInput struct {
	Category *string          `json:"category"`
	Title    *string          `json:"title"`
	Cover    *string          `json:"cover"`
	ReadTime *domain.ReadTime `json:"readTime"`
	Content  *string          `json:"content"`
	Authors  *[]string        `json:"authors"`
}

// CommentInput is the payload for creating or editing a comment.
type CommentInput struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// ListInput pages and filters the post listing.
type ListInput struct {
	Category string
	Title    string
	Limit    int
	Offset   int
}

// Create validates and stores a new post. The owner is always among the
// post's authors, and receives a confirmation email once the post is saved.
func (s *Service) Create(ctx context.Context, owner *authordomain.Account, input CreateInput) (*domain.Blogpost, error) {
	input.Category = strings.TrimSpace(input.Category)
	input.Title = strings.TrimSpace(input.Title)

	var violations []string
	if input.Category == "" {
		violations = append(violations, "category is required")
	}
	if input.Title == "" {
		violations = append(violations, "title is required")
	}
	if input.Content == "" {
		violations = append(violations, "content is required")
	}
	if input.ReadTime.Value <= 0 {
		violations = append(violations, "readTime.value must be a positive integer")
	}
	if !input.ReadTime.ValidUnit() {
		violations = append(violations, "readTime.unit must be one of 'seconds', 'minutes' or 'hours'")
	}
	if err := validation.Check(violations); err != nil {
		return nil, err
	}

	authors := []string{owner.ID}
	for _, id := range input.Authors {
		id = strings.TrimSpace(id)
		if id != "" && id != owner.ID {
			authors = append(authors, id)
		}
	}

	now := s.nowFunc().UTC()
	post := &domain.Blogpost{
		ID:        uuid.NewString(),
		Category:  input.Category,
		Title:     input.Title,
		Cover:     strings.TrimSpace(input.Cover),
		ReadTime:  input.ReadTime,
		Authors:   authors,
		Likes:     []string{},
		Content:   input.Content,
		Comments:  []domain.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.sendConfirmation(owner.Email, post.Title)
	return post, nil
}

// List retrieves a page of posts matching the filter, plus the total count.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Blogpost, int, error) {
	if input.Limit <= 0 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	if input.Offset < 0 {
		input.Offset = 0
	}

	return s.repo.List(ctx, domain.Filter{
		Category: strings.TrimSpace(input.Category),
		Title:    strings.TrimSpace(input.Title),
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
}

// Get fetches a post with its comments and likes.
func (s *Service) Get(ctx context.Context, id string) (*domain.Blogpost, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Update applies partial updates to a post.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.Blogpost, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var violations []string
	if input.Category != nil {
		if trimmed := strings.TrimSpace(*input.Category); trimmed != "" {
			post.Category = trimmed
		} else {
			violations = append(violations, "category cannot be empty")
		}
	}
	if input.Title != nil {
		if trimmed := strings.TrimSpace(*input.Title); trimmed != "" {
			post.Title = trimmed
		} else {
			violations = append(violations, "title cannot be empty")
		}
	}
	if input.Cover != nil {
		post.Cover = strings.TrimSpace(*input.Cover)
	}
	if input.Content != nil {
		if *input.Content != "" {
			post.Content = *input.Content
		} else {
			violations = append(violations, "content cannot be empty")
		}
	}
	if input.ReadTime != nil {
		if input.ReadTime.Value <= 0 {
			violations = append(violations, "readTime.value must be a positive integer")
		}
		if !input.ReadTime.ValidUnit() {
			violations = append(violations, "readTime.unit must be one of 'seconds', 'minutes' or 'hours'")
		}
		if input.ReadTime.Value > 0 && input.ReadTime.ValidUnit() {
			post.ReadTime = *input.ReadTime
		}
	}
	if input.Authors != nil {
		authors := make([]string, 0, len(*input.Authors))
		for _, id := range *input.Authors {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				authors = append(authors, trimmed)
			}
		}
		if len(authors) == 0 {
			violations = append(violations, "authors must reference at least one account")
		} else {
			post.Authors = authors
		}
	}
	if err := validation.Check(violations); err != nil {
		return nil, err
	}

	post.UpdatedAt = s.nowFunc().UTC()
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// SetCover persists the uploaded cover URL on the post.
func (s *Service) SetCover(ctx context.Context, id, url string) (*domain.Blogpost, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Cover = url
	post.UpdatedAt = s.nowFunc().UTC()
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post with its comments and likes.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// ListComments returns the post's comments in creation order.
func (s *Service) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// AddComment appends a comment to the post.
func (s *Service) AddComment(ctx context.Context, postID string, input CommentInput) (*domain.Comment, error) {
	if err := validateComment(input); err != nil {
		return nil, err
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	comment := &domain.Comment{
		ID:         uuid.NewString(),
		BlogpostID: post.ID,
		Name:       strings.TrimSpace(input.Name),
		Text:       input.Text,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment edits an existing comment in place.
func (s *Service) UpdateComment(ctx context.Context, postID, commentID string, input CommentInput) (*domain.Comment, error) {
	if err := validateComment(input); err != nil {
		return nil, err
	}

	comment, err := s.repo.GetComment(ctx, strings.TrimSpace(postID), strings.TrimSpace(commentID))
	if err != nil {
		return nil, err
	}

	comment.Name = strings.TrimSpace(input.Name)
	comment.Text = input.Text
	comment.UpdatedAt = s.nowFunc().UTC()
	if err := s.repo.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a single comment from the post.
func (s *Service) DeleteComment(ctx context.Context, postID, commentID string) error {
	return s.repo.DeleteComment(ctx, strings.TrimSpace(postID), strings.TrimSpace(commentID))
}

// Like records the account's like on the post. Liking twice is a no-op.
func (s *Service) Like(ctx context.Context, postID, accountID string) (*domain.Blogpost, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddLike(ctx, post.ID, accountID); err != nil {
		return nil, err
	}
	return s.Get(ctx, post.ID)
}

// Unlike removes the account's like from the post, if present.
func (s *Service) Unlike(ctx context.Context, postID, accountID string) (*domain.Blogpost, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RemoveLike(ctx, post.ID, accountID); err != nil {
		return nil, err
	}
	return s.Get(ctx, post.ID)
}

func validateComment(input CommentInput) error {
	var violations []string
	if strings.TrimSpace(input.Name) == "" {
		violations = append(violations, "name is required")
	}
	if input.Text == "" {
		violations = append(violations, "text is required")
	}
	return validation.Check(violations)
}

// sendConfirmation delivers the email off the request path. A failure is
// logged and never surfaces to the caller.
func (s *Service) sendConfirmation(to, title string) {
	if s.mailer == nil || to == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mailer.SendPostConfirmation(ctx, to, title); err != nil {
			s.logger.Error("confirmation email failed", "to", to, "error", err)
		}
	}()
}
