package postgres

import (
	"context"

	"corp-social-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const commentSelect = `
	SELECT c.id, c.post_id, c.text, c.pub_date,
	       u.id, u.first_name, u.last_name, u.photo, u.is_staff,
	       COALESCE((SELECT array_agg(l.user_id::text ORDER BY l.user_id)
	                 FROM comment_likes l WHERE l.comment_id = c.id), '{}')
	FROM comments c
	JOIN users u ON u.id = c.author_id`

type commentRepo struct {
	db *pgxpool.Pool
}

func NewCommentRepository(db *pgxpool.Pool) domain.CommentRepository {
	return &commentRepo{db: db}
}

func scanComment(row rowScanner) (domain.Comment, error) {
	var c domain.Comment
	likes := []string{}
	err := row.Scan(
		&c.ID, &c.PostID, &c.Text, &c.PubDate,
		&c.Author.ID, &c.Author.FirstName, &c.Author.LastName, &c.Author.Photo, &c.Author.IsStaff,
		pq.Array(&likes),
	)
	c.Likes = likes
	return c, err
}

func (r *commentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	query := `INSERT INTO comments (post_id, author_id, text) VALUES ($1, $2, $3)
              RETURNING id, pub_date`
	err := r.db.QueryRow(ctx, query, comment.PostID, comment.Author.ID, comment.Text).
		Scan(&comment.ID, &comment.PubDate)
	return mapError(err, "comment")
}

func (r *commentRepo) GetByID(ctx context.Context, postID, id int64) (*domain.Comment, error) {
	c, err := scanComment(r.db.QueryRow(ctx, commentSelect+` WHERE c.id = $1 AND c.post_id = $2`, id, postID))
	if err != nil {
		return nil, mapError(err, "comment")
	}
	return &c, nil
}

func (r *commentRepo) FetchByPost(ctx context.Context, postID int64, limit, offset int) ([]domain.Comment, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&total); err != nil {
		return nil, 0, mapError(err, "comment")
	}

	rows, err := r.db.Query(ctx, commentSelect+` WHERE c.post_id = $1 ORDER BY c.pub_date, c.id LIMIT $2 OFFSET $3`,
		postID, limit, offset)
	if err != nil {
		return nil, 0, mapError(err, "comment")
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, mapError(err, "comment")
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "comment")
	}
	return comments, total, nil
}

func (r *commentRepo) Update(ctx context.Context, comment *domain.Comment) error {
	tag, err := r.db.Exec(ctx, `UPDATE comments SET text = $2 WHERE id = $1`, comment.ID, comment.Text)
	if err != nil {
		return mapError(err, "comment")
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "comment")
	}
	return nil
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "comment")
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "comment")
	}
	return nil
}

func (r *commentRepo) Like(ctx context.Context, commentID int64, userID string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, commentID, userID)
	return mapError(err, "comment")
}

func (r *commentRepo) Unlike(ctx context.Context, commentID int64, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`, commentID, userID)
	return mapError(err, "comment")
}
