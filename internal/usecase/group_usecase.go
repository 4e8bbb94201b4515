package usecase

import (
	"context"

	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/apperror"
)

type groupUsecase struct {
	groupRepo domain.GroupRepository
	postRepo  domain.PostRepository
}

func NewGroupUsecase(groupRepo domain.GroupRepository, postRepo domain.PostRepository) domain.GroupUsecase {
	return &groupUsecase{groupRepo: groupRepo, postRepo: postRepo}
}

func (u *groupUsecase) withPosts(ctx context.Context, g *domain.Group) error {
	posts, err := u.postRepo.FetchByGroup(ctx, g.ID)
	if err != nil {
		return err
	}
	g.PostsGroup = posts
	return nil
}

func (u *groupUsecase) List(ctx context.Context, page domain.Page) ([]domain.Group, int64, error) {
	groups, total, err := u.groupRepo.Fetch(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range groups {
		if err := u.withPosts(ctx, &groups[i]); err != nil {
			return nil, 0, err
		}
	}
	return groups, total, nil
}

func (u *groupUsecase) Get(ctx context.Context, id int64) (*domain.Group, error) {
	group, err := u.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.withPosts(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (u *groupUsecase) Subscribe(ctx context.Context, actor domain.Actor, id int64) (*domain.Group, error) {
	if actor.ID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if _, err := u.groupRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := u.groupRepo.Subscribe(ctx, id, actor.ID); err != nil {
		return nil, err
	}
	return u.Get(ctx, id)
}

func (u *groupUsecase) Unsubscribe(ctx context.Context, actor domain.Actor, id int64) (*domain.Group, error) {
	if actor.ID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if _, err := u.groupRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := u.groupRepo.Unsubscribe(ctx, id, actor.ID); err != nil {
		return nil, err
	}
	return u.Get(ctx, id)
}
