package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/apperror"
	"corp-social-backend/pkg/logger"
)

type postUsecase struct {
	postRepo domain.PostRepository
	uploader domain.MediaUploader
}

func NewPostUsecase(postRepo domain.PostRepository, uploader domain.MediaUploader) domain.PostUsecase {
	return &postUsecase{postRepo: postRepo, uploader: uploader}
}

func (u *postUsecase) List(ctx context.Context, page domain.Page) ([]domain.Post, int64, error) {
	return u.postRepo.Fetch(ctx, page.Limit, page.Offset)
}

func (u *postUsecase) ListByAuthor(ctx context.Context, authorID string, page domain.Page) ([]domain.Post, int64, error) {
	return u.postRepo.FetchByAuthor(ctx, authorID, page.Limit, page.Offset)
}

func (u *postUsecase) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return u.postRepo.GetByID(ctx, id)
}

func validatePostInput(in domain.PostInput, creating bool) error {
	if creating && in.Text == nil {
		return apperror.BadRequest("text is required")
	}
	if in.Text != nil {
		if strings.TrimSpace(*in.Text) == "" {
			return apperror.BadRequest("text must not be empty")
		}
		if utf8.RuneCountInString(*in.Text) > domain.MaxPostText {
			return apperror.BadRequest(fmt.Sprintf("text must be at most %d characters", domain.MaxPostText))
		}
	}
	if in.Files != nil && len(*in.Files) > domain.MaxPostFiles {
		return apperror.BadRequest(fmt.Sprintf("a post can have at most %d files", domain.MaxPostFiles))
	}
	return nil
}

// storeMedia uploads the submitted images and files. Nil inputs yield nil.
func (u *postUsecase) storeMedia(ctx context.Context, in domain.PostInput) ([]domain.PostImage, []domain.PostFile, error) {
	var images []domain.PostImage
	if in.Images != nil {
		images = make([]domain.PostImage, 0, len(*in.Images))
		for _, encoded := range *in.Images {
			url, err := u.uploader.UploadImage(ctx, prefixPostImages, encoded)
			if err != nil {
				return nil, nil, uploadError(err)
			}
			images = append(images, domain.PostImage{ImageLink: url})
		}
	}

	var files []domain.PostFile
	if in.Files != nil {
		files = make([]domain.PostFile, 0, len(*in.Files))
		for _, f := range *in.Files {
			url, err := u.uploader.UploadAttachment(ctx, prefixPostFiles, f.Data)
			if err != nil {
				return nil, nil, uploadError(err)
			}
			files = append(files, domain.PostFile{FileLink: url, FileTitle: strings.TrimSpace(f.Title)})
		}
	}
	return images, files, nil
}

func (u *postUsecase) Create(ctx context.Context, actor domain.Actor, in domain.PostInput) (*domain.Post, error) {
	if actor.ID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if err := validatePostInput(in, true); err != nil {
		return nil, err
	}

	images, files, err := u.storeMedia(ctx, in)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		Text:    *in.Text,
		Author:  domain.Author{ID: actor.ID},
		GroupID: in.GroupID,
		Images:  images,
		Files:   files,
	}
	if err := u.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return u.postRepo.GetByID(ctx, post.ID)
}

// ownedPost loads a post the actor may modify: its author or staff.
func (u *postUsecase) ownedPost(ctx context.Context, actor domain.Actor, id int64) (*domain.Post, error) {
	if actor.ID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	post, err := u.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Author.ID != actor.ID && !actor.IsStaff {
		return nil, apperror.Forbidden("Only the author can change this post")
	}
	return post, nil
}

func (u *postUsecase) Update(ctx context.Context, actor domain.Actor, id int64, in domain.PostInput) (*domain.Post, error) {
	if err := validatePostInput(in, false); err != nil {
		return nil, err
	}
	post, err := u.ownedPost(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	images, files, err := u.storeMedia(ctx, in)
	if err != nil {
		return nil, err
	}

	if in.Text != nil {
		post.Text = *in.Text
	}
	if in.GroupID != nil {
		post.GroupID = in.GroupID
	}
	if in.Images != nil {
		post.Images = images
	}
	if in.Files != nil {
		post.Files = files
	}

	if err := u.postRepo.Update(ctx, post, in.Images != nil, in.Files != nil); err != nil {
		return nil, err
	}
	return u.postRepo.GetByID(ctx, id)
}

func (u *postUsecase) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := u.ownedPost(ctx, actor, id); err != nil {
		return err
	}
	if err := u.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("Post deleted", "post_id", id, "actor", actor.ID)
	return nil
}

func (u *postUsecase) Like(ctx context.Context, actor domain.Actor, id int64) (*domain.Post, error) {
	if actor.ID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if _, err := u.postRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := u.postRepo.Like(ctx, id, actor.ID); err != nil {
		return nil, err
	}
	return u.postRepo.GetByID(ctx, id)
}

func (u *postUsecase) Unlike(ctx context.Context, actor domain.Actor, id int64) (*domain.Post, error) {
	if actor.ID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if _, err := u.postRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := u.postRepo.Unlike(ctx, id, actor.ID); err != nil {
		return nil, err
	}
	return u.postRepo.GetByID(ctx, id)
}
