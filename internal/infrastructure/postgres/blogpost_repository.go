package postgres

import (
	"context"
	"errors"
	"fmt"

	domain "blogfolio/backend/internal/domain/blogpost"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BlogpostRepository persists blogposts with their comments and likes in
// PostgreSQL.
type BlogpostRepository struct {
	pool *pgxpool.Pool
}

// NewBlogpostRepository constructs a repository.
func NewBlogpostRepository(pool *pgxpool.Pool) *BlogpostRepository {
	return &BlogpostRepository{pool: pool}
}

// Create inserts a new blogpost.
func (r *BlogpostRepository) Create(ctx context.Context, post *domain.Blogpost) error {
	const query = `
INSERT INTO blogposts (id, category, title, cover, read_time_value, read_time_unit, authors, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Category,
		post.Title,
		post.Cover,
		post.ReadTime.Value,
		post.ReadTime.Unit,
		post.Authors,
		post.Content,
		post.CreatedAt,
		post.UpdatedAt,
	)
	return err
}

// GetByID fetches a blogpost with its comments and likes.
func (r *BlogpostRepository) GetByID(ctx context.Context, id string) (*domain.Blogpost, error) {
	const query = `
SELECT id, category, title, cover, read_time_value, read_time_unit, authors, content, created_at, updated_at
FROM blogposts WHERE id = $1
`
	row := r.pool.QueryRow(ctx, query, id)
	post, err := scanBlogpost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if post.Comments, err = r.commentsFor(ctx, post.ID); err != nil {
		return nil, err
	}
	if post.Likes, err = r.likesFor(ctx, post.ID); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns a page of blogposts matching the filter plus the total count.
// Comments and likes are loaded per post; listings stay small by pagination.
func (r *BlogpostRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Blogpost, int, error) {
	where := ""
	var args []any
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = fmt.Sprintf("WHERE category = $%d ", len(args))
	}
	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		if where == "" {
			where = fmt.Sprintf("WHERE title ILIKE $%d ", len(args))
		} else {
			where += fmt.Sprintf("AND title ILIKE $%d ", len(args))
		}
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM blogposts "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
SELECT id, category, title, cover, read_time_value, read_time_unit, authors, content, created_at, updated_at
FROM blogposts ` + where + fmt.Sprintf("ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []*domain.Blogpost
	for rows.Next() {
		post, err := scanBlogpost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, post := range posts {
		if post.Comments, err = r.commentsFor(ctx, post.ID); err != nil {
			return nil, 0, err
		}
		if post.Likes, err = r.likesFor(ctx, post.ID); err != nil {
			return nil, 0, err
		}
	}
	return posts, total, nil
}

// Update writes blogpost changes to the database.
func (r *BlogpostRepository) Update(ctx context.Context, post *domain.Blogpost) error {
	const query = `
UPDATE blogposts
SET category = $2,
    title = $3,
    cover = $4,
    read_time_value = $5,
    read_time_unit = $6,
    authors = $7,
    content = $8,
    updated_at = $9
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Category,
		post.Title,
		post.Cover,
		post.ReadTime.Value,
		post.ReadTime.Unit,
		post.Authors,
		post.Content,
		post.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a blogpost; comments and likes cascade.
func (r *BlogpostRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM blogposts WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddComment appends a comment to the post.
func (r *BlogpostRepository) AddComment(ctx context.Context, comment *domain.Comment) error {
	const query = `
INSERT INTO comments (id, blogpost_id, name, text, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.BlogpostID,
		comment.Name,
		comment.Text,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	return err
}

// GetComment fetches a single comment scoped to its post.
func (r *BlogpostRepository) GetComment(ctx context.Context, blogpostID, commentID string) (*domain.Comment, error) {
	const query = `
SELECT id, blogpost_id, name, text, created_at, updated_at
FROM comments WHERE blogpost_id = $1 AND id = $2
`
	row := r.pool.QueryRow(ctx, query, blogpostID, commentID)
	var c domain.Comment
	err := row.Scan(&c.ID, &c.BlogpostID, &c.Name, &c.Text, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

// UpdateComment writes comment edits to the database.
func (r *BlogpostRepository) UpdateComment(ctx context.Context, comment *domain.Comment) error {
	const query = `
UPDATE comments SET name = $3, text = $4, updated_at = $5
WHERE blogpost_id = $1 AND id = $2
`
	tag, err := r.pool.Exec(ctx, query,
		comment.BlogpostID,
		comment.ID,
		comment.Name,
		comment.Text,
		comment.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

// DeleteComment removes a single comment from the post.
func (r *BlogpostRepository) DeleteComment(ctx context.Context, blogpostID, commentID string) error {
	const query = `DELETE FROM comments WHERE blogpost_id = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, query, blogpostID, commentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

// AddLike records a like; the primary key makes repeats a no-op.
func (r *BlogpostRepository) AddLike(ctx context.Context, blogpostID, accountID string) error {
	const query = `
INSERT INTO blogpost_likes (blogpost_id, account_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT DO NOTHING
`
	_, err := r.pool.Exec(ctx, query, blogpostID, accountID)
	return err
}

// RemoveLike deletes the account's like, if present.
func (r *BlogpostRepository) RemoveLike(ctx context.Context, blogpostID, accountID string) error {
	const query = `DELETE FROM blogpost_likes WHERE blogpost_id = $1 AND account_id = $2`
	_, err := r.pool.Exec(ctx, query, blogpostID, accountID)
	return err
}

func (r *BlogpostRepository) commentsFor(ctx context.Context, blogpostID string) ([]domain.Comment, error) {
	const query = `
SELECT id, blogpost_id, name, text, created_at, updated_at
FROM comments WHERE blogpost_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, query, blogpostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.BlogpostID, &c.Name, &c.Text, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *BlogpostRepository) likesFor(ctx context.Context, blogpostID string) ([]string, error) {
	const query = `
SELECT account_id FROM blogpost_likes
WHERE blogpost_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, query, blogpostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		likes = append(likes, id)
	}
	return likes, rows.Err()
}

func scanBlogpost(row pgx.Row) (*domain.Blogpost, error) {
	var b domain.Blogpost
	err := row.Scan(
		&b.ID,
		&b.Category,
		&b.Title,
		&b.Cover,
		&b.ReadTime.Value,
		&b.ReadTime.Unit,
		&b.Authors,
		&b.Content,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
