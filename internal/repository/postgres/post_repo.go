package postgres

import (
	"context"

	"corp-social-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const postSelect = `
	SELECT p.id, p.text, p.pub_date, p.update_date, p.group_id,
	       u.id, u.first_name, u.last_name, u.photo, u.is_staff,
	       COALESCE((SELECT array_agg(l.user_id::text ORDER BY l.user_id)
	                 FROM post_likes l WHERE l.post_id = p.id), '{}')
	FROM posts p
	JOIN users u ON u.id = p.author_id`

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type postRepo struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) domain.PostRepository {
	return &postRepo{db: db}
}

func scanPost(row rowScanner) (domain.Post, error) {
	var p domain.Post
	likes := []string{}
	err := row.Scan(
		&p.ID, &p.Text, &p.PubDate, &p.UpdateDate, &p.GroupID,
		&p.Author.ID, &p.Author.FirstName, &p.Author.LastName, &p.Author.Photo, &p.Author.IsStaff,
		pq.Array(&likes),
	)
	p.Likes = likes
	p.Images = []domain.PostImage{}
	p.Files = []domain.PostFile{}
	p.Comments = []domain.Comment{}
	return p, err
}

func (r *postRepo) queryPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "post")
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, mapError(err, "post")
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "post")
	}

	if err := attachRelations(ctx, r.db, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// attachRelations loads images, files and comments for posts in three queries.
func attachRelations(ctx context.Context, q querier, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]int64, len(posts))
	index := make(map[int64]int, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		index[p.ID] = i
	}

	rows, err := q.Query(ctx, `SELECT id, post_id, image_link FROM post_images WHERE post_id = ANY($1::bigint[]) ORDER BY id`, pq.Array(ids))
	if err != nil {
		return mapError(err, "post image")
	}
	for rows.Next() {
		var img domain.PostImage
		var postID int64
		if err := rows.Scan(&img.ID, &postID, &img.ImageLink); err != nil {
			rows.Close()
			return mapError(err, "post image")
		}
		i := index[postID]
		posts[i].Images = append(posts[i].Images, img)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return mapError(err, "post image")
	}

	rows, err = q.Query(ctx, `SELECT id, post_id, file_link, file_title FROM post_files WHERE post_id = ANY($1::bigint[]) ORDER BY id`, pq.Array(ids))
	if err != nil {
		return mapError(err, "post file")
	}
	for rows.Next() {
		var f domain.PostFile
		var postID int64
		if err := rows.Scan(&f.ID, &postID, &f.FileLink, &f.FileTitle); err != nil {
			rows.Close()
			return mapError(err, "post file")
		}
		i := index[postID]
		posts[i].Files = append(posts[i].Files, f)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return mapError(err, "post file")
	}

	rows, err = q.Query(ctx, commentSelect+` WHERE c.post_id = ANY($1::bigint[]) ORDER BY c.pub_date, c.id`, pq.Array(ids))
	if err != nil {
		return mapError(err, "comment")
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return mapError(err, "comment")
		}
		i := index[c.PostID]
		posts[i].Comments = append(posts[i].Comments, c)
	}
	return mapError(rows.Err(), "comment")
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	posts, err := r.queryPosts(ctx, postSelect+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, mapError(pgx.ErrNoRows, "post")
	}
	return &posts[0], nil
}

func (r *postRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Post, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, mapError(err, "post")
	}
	posts, err := r.queryPosts(ctx, postSelect+` ORDER BY p.pub_date DESC, p.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepo) FetchByAuthor(ctx context.Context, authorID string, limit, offset int) ([]domain.Post, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID).Scan(&total); err != nil {
		return nil, 0, mapError(err, "post")
	}
	posts, err := r.queryPosts(ctx, postSelect+` WHERE p.author_id = $1
		ORDER BY p.pub_date DESC, p.id DESC LIMIT $2 OFFSET $3`, authorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepo) FetchByGroup(ctx context.Context, groupID int64) ([]domain.Post, error) {
	return r.queryPosts(ctx, postSelect+` WHERE p.group_id = $1 ORDER BY p.pub_date DESC, p.id DESC`, groupID)
}

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapError(err, "post")
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO posts (text, author_id, group_id) VALUES ($1, $2, $3)
              RETURNING id, pub_date, update_date`
	if err := tx.QueryRow(ctx, query, post.Text, post.Author.ID, post.GroupID).
		Scan(&post.ID, &post.PubDate, &post.UpdateDate); err != nil {
		return mapError(err, "post")
	}

	if err := insertImages(ctx, tx, post.ID, post.Images); err != nil {
		return err
	}
	if err := insertFiles(ctx, tx, post.ID, post.Files); err != nil {
		return err
	}
	return mapError(tx.Commit(ctx), "post")
}

func (r *postRepo) Update(ctx context.Context, post *domain.Post, replaceImages, replaceFiles bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapError(err, "post")
	}
	defer tx.Rollback(ctx)

	query := `UPDATE posts SET text = $2, group_id = $3, update_date = NOW()
              WHERE id = $1 RETURNING update_date`
	if err := tx.QueryRow(ctx, query, post.ID, post.Text, post.GroupID).Scan(&post.UpdateDate); err != nil {
		return mapError(err, "post")
	}

	if replaceImages {
		if _, err := tx.Exec(ctx, `DELETE FROM post_images WHERE post_id = $1`, post.ID); err != nil {
			return mapError(err, "post image")
		}
		if err := insertImages(ctx, tx, post.ID, post.Images); err != nil {
			return err
		}
	}
	if replaceFiles {
		if _, err := tx.Exec(ctx, `DELETE FROM post_files WHERE post_id = $1`, post.ID); err != nil {
			return mapError(err, "post file")
		}
		if err := insertFiles(ctx, tx, post.ID, post.Files); err != nil {
			return err
		}
	}
	return mapError(tx.Commit(ctx), "post")
}

func insertImages(ctx context.Context, tx pgx.Tx, postID int64, images []domain.PostImage) error {
	if len(images) == 0 {
		return nil
	}
	links := make([]string, len(images))
	for i, img := range images {
		links[i] = img.ImageLink
	}
	_, err := tx.Exec(ctx, `INSERT INTO post_images (post_id, image_link)
		SELECT $1, link FROM unnest($2::text[]) WITH ORDINALITY AS t(link, n) ORDER BY n`,
		postID, pq.Array(links))
	return mapError(err, "post image")
}

func insertFiles(ctx context.Context, tx pgx.Tx, postID int64, files []domain.PostFile) error {
	if len(files) == 0 {
		return nil
	}
	links := make([]string, len(files))
	titles := make([]string, len(files))
	for i, f := range files {
		links[i] = f.FileLink
		titles[i] = f.FileTitle
	}
	_, err := tx.Exec(ctx, `INSERT INTO post_files (post_id, file_link, file_title)
		SELECT $1, link, title FROM unnest($2::text[], $3::text[]) WITH ORDINALITY AS t(link, title, n) ORDER BY n`,
		postID, pq.Array(links), pq.Array(titles))
	return mapError(err, "post file")
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "post")
	}
	if tag.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "post")
	}
	return nil
}

func (r *postRepo) Like(ctx context.Context, postID int64, userID string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, postID, userID)
	return mapError(err, "post")
}

func (r *postRepo) Unlike(ctx context.Context, postID int64, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	return mapError(err, "post")
}
