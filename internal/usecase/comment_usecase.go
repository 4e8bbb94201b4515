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

type commentUsecase struct {
	commentRepo domain.CommentRepository
	postRepo    domain.PostRepository
}

func NewCommentUsecase(commentRepo domain.CommentRepository, postRepo domain.PostRepository) domain.CommentUsecase {
	return &commentUsecase{commentRepo: commentRepo, postRepo: postRepo}
}

func validateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return apperror.BadRequest("text must not be empty")
	}
	if utf8.RuneCountInString(text) > domain.MaxPostText {
		return apperror.BadRequest(fmt.Sprintf("text must be at most %d characters", domain.MaxPostText))
	}
	return nil
}

func (u *commentUsecase) List(ctx context.Context, postID int64, page domain.Page) ([]domain.Comment, int64, error) {
	if _, err := u.postRepo.GetByID(ctx, postID); err != nil {
		return nil, 0, err
	}
	return u.commentRepo.FetchByPost(ctx, postID, page.Limit, page.Offset)
}

func (u *commentUsecase) Get(ctx context.Context, postID, id int64) (*domain.Comment, error) {
	return u.commentRepo.GetByID(ctx, postID, id)
}

func (u *commentUsecase) Create(ctx context.Context, actor domain.Actor, postID int64, text string) (*domain.Comment, error) {
	if actor.ID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if err := validateCommentText(text); err != nil {
		return nil, err
	}
	if _, err := u.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID: postID,
		Text:   text,
		Author: domain.Author{ID: actor.ID},
	}
	if err := u.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return u.commentRepo.GetByID(ctx, postID, comment.ID)
}

// ownedComment loads a comment of postID written by the actor.
func (u *commentUsecase) ownedComment(ctx context.Context, actor domain.Actor, postID, id int64) (*domain.Comment, error) {
	if actor.ID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	comment, err := u.commentRepo.GetByID(ctx, postID, id)
	if err != nil {
		return nil, err
	}
	if comment.Author.ID != actor.ID {
		return nil, apperror.Forbidden("Only the author can change this comment")
	}
	return comment, nil
}

func (u *commentUsecase) Update(ctx context.Context, actor domain.Actor, postID, id int64, text string) (*domain.Comment, error) {
	if err := validateCommentText(text); err != nil {
		return nil, err
	}
	comment, err := u.ownedComment(ctx, actor, postID, id)
	if err != nil {
		return nil, err
	}
	comment.Text = text
	if err := u.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return u.commentRepo.GetByID(ctx, postID, id)
}

func (u *commentUsecase) Delete(ctx context.Context, actor domain.Actor, postID, id int64) error {
	if _, err := u.ownedComment(ctx, actor, postID, id); err != nil {
		return err
	}
	if err := u.commentRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("Comment deleted", "comment_id", id, "post_id", postID, "actor", actor.ID)
	return nil
}

func (u *commentUsecase) Like(ctx context.Context, actor domain.Actor, postID, id int64) (*domain.Comment, error) {
	if actor.ID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if _, err := u.commentRepo.GetByID(ctx, postID, id); err != nil {
		return nil, err
	}
	if err := u.commentRepo.Like(ctx, id, actor.ID); err != nil {
		return nil, err
	}
	return u.commentRepo.GetByID(ctx, postID, id)
}

func (u *commentUsecase) Unlike(ctx context.Context, actor domain.Actor, postID, id int64) (*domain.Comment, error) {
	if actor.ID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if _, err := u.commentRepo.GetByID(ctx, postID, id); err != nil {
		return nil, err
	}
	if err := u.commentRepo.Unlike(ctx, id, actor.ID); err != nil {
		return nil, err
	}
	return u.commentRepo.GetByID(ctx, postID, id)
}
