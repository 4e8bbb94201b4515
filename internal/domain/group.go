package domain

import (
	"context"
	"time"
)

type GroupFollower struct {
	ID    string  `json:"id"`
	Photo *string `json:"photo"`
}

type Group struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CreatedDate time.Time       `json:"created_date"`
	AuthorID    *string         `json:"author"`
	ImageLink   *string         `json:"image_link"`
	Resume      string          `json:"resume"`
	Followers   []GroupFollower `json:"followers"`
	PostsGroup  []Post          `json:"posts_group"`
}

type GroupRepository interface {
	GetByID(ctx context.Context, id int64) (*Group, error)
	Fetch(ctx context.Context, limit, offset int) ([]Group, int64, error)
	Subscribe(ctx context.Context, groupID int64, userID string) error
	Unsubscribe(ctx context.Context, groupID int64, userID string) error
}

type GroupUsecase interface {
	List(ctx context.Context, page Page) ([]Group, int64, error)
	Get(ctx context.Context, id int64) (*Group, error)
	Subscribe(ctx context.Context, actor Actor, id int64) (*Group, error)
	Unsubscribe(ctx context.Context, actor Actor, id int64) (*Group, error)
}
