package domain

import (
	"context"
	"time"
)

type Comment struct {
	ID      int64     `json:"id"`
	PostID  int64     `json:"-"`
	Text    string    `json:"text"`
	Author  Author    `json:"author"`
	PubDate time.Time `json:"pub_date"`
	Likes   []string  `json:"likes"`
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	// GetByID returns NotFound when the comment does not belong to postID.
	GetByID(ctx context.Context, postID, id int64) (*Comment, error)
	FetchByPost(ctx context.Context, postID int64, limit, offset int) ([]Comment, int64, error)
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id int64) error
	Like(ctx context.Context, commentID int64, userID string) error
	Unlike(ctx context.Context, commentID int64, userID string) error
}

type CommentUsecase interface {
	List(ctx context.Context, postID int64, page Page) ([]Comment, int64, error)
	Get(ctx context.Context, postID, id int64) (*Comment, error)
	Create(ctx context.Context, actor Actor, postID int64, text string) (*Comment, error)
	Update(ctx context.Context, actor Actor, postID, id int64, text string) (*Comment, error)
	Delete(ctx context.Context, actor Actor, postID, id int64) error
	Like(ctx context.Context, actor Actor, postID, id int64) (*Comment, error)
	Unlike(ctx context.Context, actor Actor, postID, id int64) (*Comment, error)
}
