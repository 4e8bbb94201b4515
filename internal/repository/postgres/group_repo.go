package postgres

import (
	"context"

	"corp-social-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const groupSelect = `
	SELECT g.id, g.title, g.description, g.created_date, g.author_id::text, g.image_link, g.resume,
	       COALESCE((SELECT array_agg(f.user_id::text ORDER BY f.user_id)
	                 FROM group_followers f WHERE f.group_id = g.id), '{}')
	FROM groups g`

type groupRepo struct {
	db *pgxpool.Pool
}

func NewGroupRepository(db *pgxpool.Pool) domain.GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) queryGroups(ctx context.Context, query string, args ...any) ([]domain.Group, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "group")
	}
	defer rows.Close()

	groups := []domain.Group{}
	var followerIDs []string
	for rows.Next() {
		var g domain.Group
		ids := []string{}
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.CreatedDate, &g.AuthorID,
			&g.ImageLink, &g.Resume, pq.Array(&ids)); err != nil {
			return nil, mapError(err, "group")
		}
		g.Followers = make([]domain.GroupFollower, len(ids))
		for i, id := range ids {
			g.Followers[i].ID = id
		}
		g.PostsGroup = []domain.Post{}
		followerIDs = append(followerIDs, ids...)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "group")
	}

	if len(followerIDs) == 0 {
		return groups, nil
	}
	photos, err := r.followerPhotos(ctx, followerIDs)
	if err != nil {
		return nil, err
	}
	for gi := range groups {
		for fi := range groups[gi].Followers {
			groups[gi].Followers[fi].Photo = photos[groups[gi].Followers[fi].ID]
		}
	}
	return groups, nil
}

func (r *groupRepo) followerPhotos(ctx context.Context, ids []string) (map[string]*string, error) {
	rows, err := r.db.Query(ctx, `SELECT id::text, photo FROM users WHERE id::text = ANY($1::text[])`, pq.Array(ids))
	if err != nil {
		return nil, mapError(err, "user")
	}
	defer rows.Close()

	photos := make(map[string]*string, len(ids))
	for rows.Next() {
		var id string
		var photo *string
		if err := rows.Scan(&id, &photo); err != nil {
			return nil, mapError(err, "user")
		}
		photos[id] = photo
	}
	return photos, mapError(rows.Err(), "user")
}

func (r *groupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	groups, err := r.queryGroups(ctx, groupSelect+` WHERE g.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, mapError(pgx.ErrNoRows, "group")
	}
	return &groups[0], nil
}

func (r *groupRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Group, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM groups`).Scan(&total); err != nil {
		return nil, 0, mapError(err, "group")
	}
	groups, err := r.queryGroups(ctx, groupSelect+` ORDER BY g.created_date DESC, g.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

func (r *groupRepo) Subscribe(ctx context.Context, groupID int64, userID string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO group_followers (group_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, groupID, userID)
	return mapError(err, "group")
}

func (r *groupRepo) Unsubscribe(ctx context.Context, groupID int64, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM group_followers WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	return mapError(err, "group")
}
