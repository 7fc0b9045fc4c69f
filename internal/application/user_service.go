package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"user-access-service/internal/domain/entity"
	"user-access-service/internal/domain/repository"
	"user-access-service/pkg/response"
)

// UserService covers account administration: listing, lookup, edits,
// deletion and password rotation. The seeded super-admin account is shielded
// from edit and delete so at least one administrator always survives.
type UserService struct {
	Store  repository.Store
	Logger *logrus.Logger
	Search *SearchIndex // optional, user search index
}

func NewUserService(store repository.Store, logger *logrus.Logger, search *SearchIndex) *UserService {
	return &UserService{Store: store, Logger: logger, Search: search}
}

type ListInput struct {
	Username string
	Skip     *int
	Take     *int
}

type EditInput struct {
	FirstName string
	LastName  string
	IsActive  bool
	Role      entity.Role
}

// UserDetails is the public projection of an account, audit metadata
// included.
type UserDetails struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	IsActive       bool       `json:"isActive"`
	Created        time.Time  `json:"created"`
	CreatedBy      string     `json:"createdBy"`
	LastModified   *time.Time `json:"lastModified"`
	LastModifiedBy *string    `json:"lastModifiedBy"`
}

func toDetails(u *entity.User) UserDetails {
	return UserDetails{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Username:       u.Username,
		Email:          u.Email,
		Role:           u.Role.String(),
		IsActive:       u.IsActive,
		Created:        u.Created,
		CreatedBy:      u.CreatedBy,
		LastModified:   u.LastModified,
		LastModifiedBy: u.LastModifiedBy,
	}
}

func (s *UserService) GetUsers(ctx context.Context, input ListInput) (response.Result[[]UserDetails], error) {
	repo, _ := s.Store.NewUnitOfWork()
	users, total, err := repo.List(ctx, repository.ListFilter{
		Username: input.Username,
		Skip:     input.Skip,
		Take:     input.Take,
	})
	if err != nil {
		return response.Result[[]UserDetails]{}, err
	}
	details := make([]UserDetails, 0, len(users))
	for i := range users {
		details = append(details, toDetails(&users[i]))
	}
	return response.OKList(details, total, ""), nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (response.Result[UserDetails], error) {
	repo, _ := s.Store.NewUnitOfWork()
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.Fail[UserDetails](response.KindNotFound, MsgUserNotFound), nil
		}
		return response.Result[UserDetails]{}, err
	}
	return response.OK(toDetails(user), ""), nil
}

// EditUser applies profile/role/status changes. The seeded super-admin is
// refused with a conflict before any mutation happens.
func (s *UserService) EditUser(ctx context.Context, id string, input EditInput, modifiedBy string) (response.Result[UserDetails], error) {
	repo, uow := s.Store.NewUnitOfWork()
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.Fail[UserDetails](response.KindNotFound, MsgUserNotFound), nil
		}
		return response.Result[UserDetails]{}, err
	}

	if isSuperAdmin(user) {
		return response.Fail[UserDetails](response.KindConflict, MsgCannotEditSuperAdmin), nil
	}

	if err := user.ApplyChanges(input.FirstName, input.LastName, input.IsActive, input.Role, modifiedBy); err != nil {
		if entity.IsValidationError(err) {
			return response.Fail[UserDetails](response.KindBadRequest, err.Error()), nil
		}
		return response.Result[UserDetails]{}, err
	}

	repo.Update(user)
	if err := uow.Save(ctx); err != nil {
		return response.Result[UserDetails]{}, err
	}

	s.Search.IndexUser(ctx, user)
	return response.OK(toDetails(user), MsgUserUpdated), nil
}

// DeleteUser removes an account. No commit runs when the target is missing
// or protected.
func (s *UserService) DeleteUser(ctx context.Context, id string) (response.Result[string], error) {
	repo, uow := s.Store.NewUnitOfWork()
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.Fail[string](response.KindNotFound, MsgUserNotFound), nil
		}
		return response.Result[string]{}, err
	}

	if isSuperAdmin(user) {
		return response.Fail[string](response.KindConflict, MsgCannotDelSuperAdmin), nil
	}

	repo.Delete(user)
	if err := uow.Save(ctx); err != nil {
		return response.Result[string]{}, err
	}

	s.Search.DeleteUser(ctx, user.ID)
	return response.OK(user.ID, MsgUserDeleted), nil
}

// ChangePassword rotates an account's credentials with a fresh salt.
func (s *UserService) ChangePassword(ctx context.Context, id, newPassword, modifiedBy string) (response.Result[string], error) {
	repo, uow := s.Store.NewUnitOfWork()
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.Fail[string](response.KindNotFound, MsgUserNotFound), nil
		}
		return response.Result[string]{}, err
	}

	if err := user.ChangePassword(newPassword, modifiedBy); err != nil {
		if entity.IsValidationError(err) {
			return response.Fail[string](response.KindBadRequest, err.Error()), nil
		}
		return response.Result[string]{}, err
	}

	repo.Update(user)
	if err := uow.Save(ctx); err != nil {
		return response.Result[string]{}, err
	}
	return response.OK(user.ID, MsgPasswordChanged), nil
}

func isSuperAdmin(u *entity.User) bool {
	return strings.EqualFold(u.Username, SuperAdminUsername) &&
		u.Role == entity.RoleAdmin && u.IsActive
}

// SearchUsers queries the search index for accounts matching q.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	return s.Search.Search(ctx, q, size)
}
