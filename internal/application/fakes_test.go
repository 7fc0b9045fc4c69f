package application

import (
	"context"
	"strings"
	"time"

	"user-access-service/internal/domain/entity"
	"user-access-service/internal/domain/repository"
)

// fakeStore backs the service tests with in-memory persistence. Writes stage
// on the unit of work like the real implementation; Save applies audit stamps
// and then flushes into the store's map.
type fakeStore struct {
	users map[string]*entity.User // by id

	saveErr   error
	saveCount int
	actor     string
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*entity.User{}, actor: "System"}
}

func (s *fakeStore) add(u *entity.User) { s.users[u.ID] = u }

func (s *fakeStore) NewUnitOfWork() (repository.UserRepository, repository.UnitOfWork) {
	uow := &fakeUoW{store: s}
	return &fakeRepo{store: s, uow: uow}, uow
}

type stagedWrite struct {
	user   *entity.User
	insert bool
	delete bool
}

type fakeUoW struct {
	store   *fakeStore
	pending []stagedWrite
}

func (u *fakeUoW) Save(ctx context.Context) error {
	u.store.saveCount++
	if u.store.saveErr != nil {
		return u.store.saveErr
	}
	now := time.Now().UTC()
	for _, w := range u.pending {
		switch {
		case w.delete:
			delete(u.store.users, w.user.ID)
		case w.insert:
			w.user.StampCreated(now, u.store.actor)
			u.store.users[w.user.ID] = w.user
		default:
			w.user.StampModified(now, u.store.actor)
			u.store.users[w.user.ID] = w.user
		}
	}
	u.pending = nil
	return nil
}

type fakeRepo struct {
	store *fakeStore
	uow   *fakeUoW
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := r.store.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.store.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	for _, u := range r.store.users {
		if strings.EqualFold(u.Username, username) || strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) List(ctx context.Context, filter repository.ListFilter) ([]entity.User, int, error) {
	var all []entity.User
	for _, u := range r.store.users {
		if filter.Username != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(filter.Username)) {
			continue
		}
		all = append(all, *u)
	}
	total := len(all)
	if filter.Skip != nil && *filter.Skip < len(all) {
		all = all[*filter.Skip:]
	} else if filter.Skip != nil {
		all = nil
	}
	if filter.Take != nil && *filter.Take < len(all) {
		all = all[:*filter.Take]
	}
	return all, total, nil
}

func (r *fakeRepo) Insert(u *entity.User) {
	r.uow.pending = append(r.uow.pending, stagedWrite{user: u, insert: true})
}

func (r *fakeRepo) Update(u *entity.User) {
	r.uow.pending = append(r.uow.pending, stagedWrite{user: u})
}

func (r *fakeRepo) Delete(u *entity.User) {
	r.uow.pending = append(r.uow.pending, stagedWrite{user: u, delete: true})
}

func mustUser(username, password string, role entity.Role, active bool) *entity.User {
	u, err := entity.CreateNew("Test", "User", username, username+"@example.com", password, role, active, "System")
	if err != nil {
		panic(err)
	}
	return u
}
