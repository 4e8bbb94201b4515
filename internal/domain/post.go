package domain

import (
	"context"
	"time"
)

// MaxPostFiles bounds the number of attachments on one post.
const MaxPostFiles = 10

// MaxPostText is the longest accepted post body in characters.
const MaxPostText = 40000

// Author is the embedded user summary on posts, comments and groups.
type Author struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Photo     *string `json:"photo"`
	IsStaff   bool    `json:"is_staff"`
}

type PostImage struct {
	ID        int64  `json:"-"`
	ImageLink string `json:"image_link"`
}

type PostFile struct {
	ID        int64  `json:"-"`
	FileLink  string `json:"file_link"`
	FileTitle string `json:"file_title"`
}

type Post struct {
	ID         int64       `json:"id"`
	Text       string      `json:"text"`
	Author     Author      `json:"author"`
	PubDate    time.Time   `json:"pub_date"`
	UpdateDate time.Time   `json:"update_date"`
	Images     []PostImage `json:"images"`
	Files      []PostFile  `json:"files"`
	Likes      []string    `json:"likes"`
	GroupID    *int64      `json:"group"`
	Comments   []Comment   `json:"comments"`
}

// FileInput is an attachment submitted with a post.
type FileInput struct {
	Data  string
	Title string
}

// PostInput is a create or partial update. On update, nil Images/Files keep
// the existing set and a non-nil slice replaces it.
type PostInput struct {
	Text    *string
	Images  *[]string
	Files   *[]FileInput
	GroupID *int64
}

type PostRepository interface {
	// Create and Update persist the post together with its images and files
	// in one transaction.
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	Fetch(ctx context.Context, limit, offset int) ([]Post, int64, error)
	FetchByAuthor(ctx context.Context, authorID string, limit, offset int) ([]Post, int64, error)
	FetchByGroup(ctx context.Context, groupID int64) ([]Post, error)
	Update(ctx context.Context, post *Post, replaceImages, replaceFiles bool) error
	Delete(ctx context.Context, id int64) error
	Like(ctx context.Context, postID int64, userID string) error
	Unlike(ctx context.Context, postID int64, userID string) error
}

type PostUsecase interface {
	List(ctx context.Context, page Page) ([]Post, int64, error)
	ListByAuthor(ctx context.Context, authorID string, page Page) ([]Post, int64, error)
	Get(ctx context.Context, id int64) (*Post, error)
	Create(ctx context.Context, actor Actor, in PostInput) (*Post, error)
	Update(ctx context.Context, actor Actor, id int64, in PostInput) (*Post, error)
	Delete(ctx context.Context, actor Actor, id int64) error
	Like(ctx context.Context, actor Actor, id int64) (*Post, error)
	Unlike(ctx context.Context, actor Actor, id int64) (*Post, error)
}

// MediaUploader stores base64 payloads and returns their public URLs.
type MediaUploader interface {
	UploadImage(ctx context.Context, prefix, encoded string) (string, error)
	UploadAttachment(ctx context.Context, prefix, encoded string) (string, error)
}
