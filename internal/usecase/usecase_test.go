package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"corp-social-backend/internal/domain"
	"corp-social-backend/internal/usecase"
	"corp-social-backend/pkg/apperror"
	"corp-social-backend/pkg/calendar"
	"corp-social-backend/pkg/clock"
	"corp-social-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) FetchByBirthdays(ctx context.Context, days []calendar.MonthDay) ([]domain.User, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) SearchAddressBook(ctx context.Context, search string, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}
func (m *MockUserRepo) CountPosts(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) Create(ctx context.Context, post *domain.Post) error {
	return m.Called(ctx, post).Error(0)
}
func (m *MockPostRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Post, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Post), args.Get(1).(int64), args.Error(2)
}
func (m *MockPostRepo) FetchByAuthor(ctx context.Context, authorID string, limit, offset int) ([]domain.Post, int64, error) {
	args := m.Called(ctx, authorID, limit, offset)
	return args.Get(0).([]domain.Post), args.Get(1).(int64), args.Error(2)
}
func (m *MockPostRepo) FetchByGroup(ctx context.Context, groupID int64) ([]domain.Post, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]domain.Post), args.Error(1)
}
func (m *MockPostRepo) Update(ctx context.Context, post *domain.Post, replaceImages, replaceFiles bool) error {
	return m.Called(ctx, post, replaceImages, replaceFiles).Error(0)
}
func (m *MockPostRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockPostRepo) Like(ctx context.Context, postID int64, userID string) error {
	return m.Called(ctx, postID, userID).Error(0)
}
func (m *MockPostRepo) Unlike(ctx context.Context, postID int64, userID string) error {
	return m.Called(ctx, postID, userID).Error(0)
}

type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	return m.Called(ctx, comment).Error(0)
}
func (m *MockCommentRepo) GetByID(ctx context.Context, postID, id int64) (*domain.Comment, error) {
	args := m.Called(ctx, postID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}
func (m *MockCommentRepo) FetchByPost(ctx context.Context, postID int64, limit, offset int) ([]domain.Comment, int64, error) {
	args := m.Called(ctx, postID, limit, offset)
	return args.Get(0).([]domain.Comment), args.Get(1).(int64), args.Error(2)
}
func (m *MockCommentRepo) Update(ctx context.Context, comment *domain.Comment) error {
	return m.Called(ctx, comment).Error(0)
}
func (m *MockCommentRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockCommentRepo) Like(ctx context.Context, commentID int64, userID string) error {
	return m.Called(ctx, commentID, userID).Error(0)
}
func (m *MockCommentRepo) Unlike(ctx context.Context, commentID int64, userID string) error {
	return m.Called(ctx, commentID, userID).Error(0)
}

type MockGroupRepo struct {
	mock.Mock
}

func (m *MockGroupRepo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}
func (m *MockGroupRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Group, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Group), args.Get(1).(int64), args.Error(2)
}
func (m *MockGroupRepo) Subscribe(ctx context.Context, groupID int64, userID string) error {
	return m.Called(ctx, groupID, userID).Error(0)
}
func (m *MockGroupRepo) Unsubscribe(ctx context.Context, groupID int64, userID string) error {
	return m.Called(ctx, groupID, userID).Error(0)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadImage(ctx context.Context, prefix, encoded string) (string, error) {
	args := m.Called(ctx, prefix, encoded)
	return args.String(0), args.Error(1)
}
func (m *MockUploader) UploadAttachment(ctx context.Context, prefix, encoded string) (string, error) {
	args := m.Called(ctx, prefix, encoded)
	return args.String(0), args.Error(1)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func int64Ptr(v int64) *int64 { return &v }

func statusOf(err error) int {
	for _, code := range []int{
		http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden,
		http.StatusNotFound, http.StatusConflict, http.StatusServiceUnavailable,
	} {
		if apperror.HasCode(err, code) {
			return code
		}
	}
	return 0
}

func TestUserUpdateOwnership(t *testing.T) {
	repo := new(MockUserRepo)
	uc := usecase.NewUserUsecase(repo, new(MockUploader), newMemoryCache(), validation.New())

	t.Run("Should fail when actor edits another profile", func(t *testing.T) {
		_, err := uc.Update(context.Background(), domain.Actor{ID: "user1"}, "user2", domain.UserUpdate{})
		assert.Equal(t, http.StatusForbidden, statusOf(err))
	})

	t.Run("Should fail safely when actor is missing", func(t *testing.T) {
		_, err := uc.Update(context.Background(), domain.Actor{}, "user1", domain.UserUpdate{})
		assert.Equal(t, http.StatusUnauthorized, statusOf(err))
	})

	t.Run("Staff cannot edit other profiles either", func(t *testing.T) {
		_, err := uc.Update(context.Background(), domain.Actor{ID: "admin", IsStaff: true}, "user2", domain.UserUpdate{})
		assert.Equal(t, http.StatusForbidden, statusOf(err))
	})
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUserUpdateBirthday(t *testing.T) {
	ctx := context.Background()
	actor := domain.Actor{ID: "u1"}

	t.Run("Stores day and month in the fixed year and invalidates cache", func(t *testing.T) {
		repo := new(MockUserRepo)
		cache := newMemoryCache()
		uc := usecase.NewUserUsecase(repo, new(MockUploader), cache, validation.New())

		repo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", FirstName: "Old"}, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.BirthdayDate != nil && u.BirthdayDate.Equal(date(2000, time.February, 29)) && u.FirstName == "Anna"
		})).Return(nil)

		user, err := uc.Update(ctx, actor, "u1", domain.UserUpdate{
			FirstName:     strPtr("  Anna "),
			BirthdayDay:   intPtr(29),
			BirthdayMonth: intPtr(2),
		})
		require.NoError(t, err)
		assert.Equal(t, "Anna", user.FirstName)
		assert.Equal(t, 1, cache.invalidated)
		repo.AssertExpectations(t)
	})

	t.Run("Rejects impossible dates", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(repo, new(MockUploader), newMemoryCache(), validation.New())
		repo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1"}, nil)

		_, err := uc.Update(ctx, actor, "u1", domain.UserUpdate{BirthdayDay: intPtr(31), BirthdayMonth: intPtr(4)})
		assert.Equal(t, http.StatusBadRequest, statusOf(err))
		assert.EqualError(t, err, "invalid birthday")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Rejects invalid fields before loading", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewUserUsecase(repo, new(MockUploader), newMemoryCache(), validation.New())

		_, err := uc.Update(ctx, actor, "u1", domain.UserUpdate{PersonalPhoneNumber: strPtr("call me")})
		assert.Equal(t, http.StatusBadRequest, statusOf(err))
		assert.Contains(t, err.Error(), "Personal phone")
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestBirthdayFromParts(t *testing.T) {
	d, err := usecase.BirthdayFromParts(nil, intPtr(3))
	require.NoError(t, err)
	assert.Equal(t, date(2000, time.March, 1), d)

	d, err = usecase.BirthdayFromParts(intPtr(15), nil)
	require.NoError(t, err)
	assert.Equal(t, date(2000, time.January, 15), d)

	_, err = usecase.BirthdayFromParts(intPtr(0), intPtr(5))
	assert.Error(t, err)
	_, err = usecase.BirthdayFromParts(intPtr(1), intPtr(13))
	assert.Error(t, err)
}

func TestUserUpdatePhoto(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepo)
	uploader := new(MockUploader)
	uc := usecase.NewUserUsecase(repo, uploader, newMemoryCache(), validation.New())

	old := "https://cdn/old.jpg"
	repo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", Photo: &old}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	uploader.On("UploadImage", ctx, "users/photos", "aGVsbG8=").Return("https://cdn/new.jpg", nil)

	user, err := uc.Update(ctx, domain.Actor{ID: "u1"}, "u1", domain.UserUpdate{Photo: strPtr("aGVsbG8=")})
	require.NoError(t, err)
	require.NotNil(t, user.Photo)
	assert.Equal(t, "https://cdn/new.jpg", *user.Photo)

	user, err = uc.Update(ctx, domain.Actor{ID: "u1"}, "u1", domain.UserUpdate{ClearPhoto: true})
	require.NoError(t, err)
	assert.Nil(t, user.Photo)
}

func TestShortInfo(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepo)
	uc := usecase.NewUserUsecase(repo, new(MockUploader), newMemoryCache(), validation.New())

	repo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", FirstName: "Ivan", MiddleName: "Petrovich", JobTitle: "QA"}, nil)
	repo.On("CountPosts", ctx, "u1").Return(int64(7), nil)

	info, err := uc.ShortInfo(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, &domain.UserShortInfo{FirstName: "Ivan", MiddleName: "Petrovich", JobTitle: "QA", PostsCount: 7}, info)
}

func TestEnsureUserExists(t *testing.T) {
	ctx := context.Background()
	now := date(2026, time.March, 1)

	t.Run("Returns existing profile", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, clock.Fixed(now))
		repo.On("GetByID", ctx, "sub").Return(&domain.User{ID: "sub", FirstName: "Kept"}, nil)

		user, err := uc.EnsureUserExists(ctx, &domain.User{ID: "sub", Email: "a@corp.io"})
		require.NoError(t, err)
		assert.Equal(t, "Kept", user.FirstName)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Creates profile on first sync", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, clock.Fixed(now))
		repo.On("GetByID", ctx, "sub").Return(nil, apperror.NotFound("User not found")).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.IsActive && u.DateJoined.Equal(now)
		})).Return(nil)
		repo.On("GetByID", ctx, "sub").Return(&domain.User{ID: "sub", IsActive: true}, nil).Once()

		user, err := uc.EnsureUserExists(ctx, &domain.User{ID: "sub", Email: "a@corp.io"})
		require.NoError(t, err)
		assert.True(t, user.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("Concurrent insert falls back to reading", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, clock.Fixed(now))
		repo.On("GetByID", ctx, "sub").Return(nil, apperror.NotFound("User not found")).Once()
		repo.On("Create", ctx, mock.Anything).Return(apperror.Conflict("User already exists"))
		repo.On("GetByID", ctx, "sub").Return(&domain.User{ID: "sub"}, nil).Once()

		user, err := uc.EnsureUserExists(ctx, &domain.User{ID: "sub"})
		require.NoError(t, err)
		assert.Equal(t, "sub", user.ID)
	})
}

func TestPostCreate(t *testing.T) {
	ctx := context.Background()
	author := domain.Actor{ID: "u1"}

	t.Run("Requires text", func(t *testing.T) {
		uc := usecase.NewPostUsecase(new(MockPostRepo), new(MockUploader))
		_, err := uc.Create(ctx, author, domain.PostInput{})
		assert.Equal(t, http.StatusBadRequest, statusOf(err))
	})

	t.Run("Rejects more than ten files", func(t *testing.T) {
		uc := usecase.NewPostUsecase(new(MockPostRepo), new(MockUploader))
		files := make([]domain.FileInput, domain.MaxPostFiles+1)
		_, err := uc.Create(ctx, author, domain.PostInput{Text: strPtr("hi"), Files: &files})
		assert.Equal(t, http.StatusBadRequest, statusOf(err))
	})

	t.Run("Uploads media and stores the post", func(t *testing.T) {
		repo := new(MockPostRepo)
		uploader := new(MockUploader)
		uc := usecase.NewPostUsecase(repo, uploader)

		uploader.On("UploadImage", ctx, "posts/images", "img").Return("https://cdn/i.jpg", nil)
		uploader.On("UploadAttachment", ctx, "posts/files", "doc").Return("https://cdn/f.pdf", nil)
		repo.On("Create", ctx, mock.MatchedBy(func(p *domain.Post) bool {
			return p.Author.ID == "u1" && len(p.Images) == 1 && p.Files[0].FileTitle == "Report" && *p.GroupID == 4
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Post).ID = 42
		}).Return(nil)
		repo.On("GetByID", ctx, int64(42)).Return(&domain.Post{ID: 42, Text: "hello"}, nil)

		images := []string{"img"}
		files := []domain.FileInput{{Data: "doc", Title: " Report "}}
		post, err := uc.Create(ctx, author, domain.PostInput{
			Text:    strPtr("hello"),
			Images:  &images,
			Files:   &files,
			GroupID: int64Ptr(4),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(42), post.ID)
		repo.AssertExpectations(t)
	})
}

func TestPostPermissions(t *testing.T) {
	ctx := context.Background()

	newRepo := func() *MockPostRepo {
		repo := new(MockPostRepo)
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Post{ID: 1, Text: "t", Author: domain.Author{ID: "owner"}}, nil)
		return repo
	}

	t.Run("Stranger cannot delete", func(t *testing.T) {
		repo := newRepo()
		uc := usecase.NewPostUsecase(repo, new(MockUploader))
		err := uc.Delete(ctx, domain.Actor{ID: "stranger"}, 1)
		assert.Equal(t, http.StatusForbidden, statusOf(err))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Staff can delete", func(t *testing.T) {
		repo := newRepo()
		repo.On("Delete", ctx, int64(1)).Return(nil)
		uc := usecase.NewPostUsecase(repo, new(MockUploader))
		assert.NoError(t, uc.Delete(ctx, domain.Actor{ID: "mod", IsStaff: true}, 1))
	})

	t.Run("Author updates text only", func(t *testing.T) {
		repo := newRepo()
		repo.On("Update", ctx, mock.MatchedBy(func(p *domain.Post) bool { return p.Text == "new" }), false, false).Return(nil)
		uc := usecase.NewPostUsecase(repo, new(MockUploader))
		_, err := uc.Update(ctx, domain.Actor{ID: "owner"}, 1, domain.PostInput{Text: strPtr("new")})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Like returns the refreshed post", func(t *testing.T) {
		repo := newRepo()
		repo.On("Like", ctx, int64(1), "fan").Return(nil)
		uc := usecase.NewPostUsecase(repo, new(MockUploader))
		post, err := uc.Like(ctx, domain.Actor{ID: "fan"}, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), post.ID)
		repo.AssertCalled(t, "Like", ctx, int64(1), "fan")
	})
}

func TestCommentPermissions(t *testing.T) {
	ctx := context.Background()
	posts := new(MockPostRepo)
	posts.On("GetByID", ctx, int64(1)).Return(&domain.Post{ID: 1}, nil)
	posts.On("GetByID", ctx, int64(2)).Return(nil, apperror.NotFound("Post not found"))

	comments := new(MockCommentRepo)
	comments.On("GetByID", ctx, int64(1), int64(9)).Return(&domain.Comment{ID: 9, PostID: 1, Author: domain.Author{ID: "owner"}}, nil)
	uc := usecase.NewCommentUsecase(comments, posts)

	_, err := uc.Create(ctx, domain.Actor{ID: "owner"}, 2, "hi")
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	_, err = uc.Create(ctx, domain.Actor{ID: "owner"}, 1, "   ")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = uc.Update(ctx, domain.Actor{ID: "other", IsStaff: true}, 1, 9, "edit")
	assert.Equal(t, http.StatusForbidden, statusOf(err))

	err = uc.Delete(ctx, domain.Actor{ID: "other"}, 1, 9)
	assert.Equal(t, http.StatusForbidden, statusOf(err))
	comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGroupSubscribe(t *testing.T) {
	ctx := context.Background()
	groups := new(MockGroupRepo)
	posts := new(MockPostRepo)
	uc := usecase.NewGroupUsecase(groups, posts)

	groups.On("GetByID", ctx, int64(3)).Return(&domain.Group{ID: 3, Title: "Runners"}, nil)
	groups.On("Subscribe", ctx, int64(3), "u1").Return(nil)
	posts.On("FetchByGroup", ctx, int64(3)).Return([]domain.Post{{ID: 10}}, nil)

	group, err := uc.Subscribe(ctx, domain.Actor{ID: "u1"}, 3)
	require.NoError(t, err)
	assert.Len(t, group.PostsGroup, 1)
	groups.AssertCalled(t, "Subscribe", ctx, int64(3), "u1")

	_, err = uc.Subscribe(ctx, domain.Actor{}, 3)
	assert.Equal(t, http.StatusUnauthorized, statusOf(err))
}

func TestHealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return assert.AnError }

	status, healthy := usecase.NewHealthUsecase(
		map[string]usecase.Probe{"database": ok},
		map[string]usecase.Probe{"redis": down, "storage": nil},
	).Check(context.Background())
	assert.True(t, healthy)
	assert.Equal(t, map[string]string{"status": "ok", "database": "ok", "redis": "down", "storage": "disabled"}, status)

	status, healthy = usecase.NewHealthUsecase(map[string]usecase.Probe{"database": down}, nil).Check(context.Background())
	assert.False(t, healthy)
	assert.Equal(t, "degraded", status["status"])
}
