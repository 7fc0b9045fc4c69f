package application

import (
	"context"
	"testing"

	"user-access-service/internal/domain/entity"
	"user-access-service/pkg/response"
)

func newUserService(store *fakeStore) *UserService {
	return NewUserService(store, nil, nil)
}

func TestGetUsersPaging(t *testing.T) {
	store := newFakeStore()
	store.add(mustUser("alice", "pw-123456", entity.RoleUser, true))
	store.add(mustUser("bob", "pw-123456", entity.RoleUser, true))
	store.add(mustUser("carol", "pw-123456", entity.RoleAdmin, true))
	svc := newUserService(store)

	take := 2
	res, err := svc.GetUsers(context.Background(), ListInput{Take: &take})
	if err != nil {
		t.Fatalf("GetUsers: %v", err)
	}
	if !res.Success || res.Data == nil {
		t.Fatalf("unexpected outcome: %+v", res)
	}
	if len(*res.Data) != 2 {
		t.Fatalf("page size = %d, want 2", len(*res.Data))
	}
	if res.TotalCount == nil || *res.TotalCount != 3 {
		t.Fatalf("total = %v, want 3", res.TotalCount)
	}
}

func TestGetUserByID(t *testing.T) {
	store := newFakeStore()
	u := mustUser("alice", "pw-123456", entity.RoleUser, true)
	store.add(u)
	svc := newUserService(store)

	res, err := svc.GetUserByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if !res.Success || res.Data.Username != "alice" {
		t.Fatalf("unexpected outcome: %+v", res)
	}

	missing, err := svc.GetUserByID(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("GetUserByID missing: %v", err)
	}
	if missing.Success || missing.Kind != response.KindNotFound || missing.Message != MsgUserNotFound {
		t.Fatalf("unexpected outcome: %+v", missing)
	}
}

func TestEditUser(t *testing.T) {
	store := newFakeStore()
	u := mustUser("alice", "pw-123456", entity.RoleUser, true)
	store.add(u)
	svc := newUserService(store)

	res, err := svc.EditUser(context.Background(), u.ID, EditInput{
		FirstName: "Alicia", LastName: "Keys", IsActive: false, Role: entity.RoleAdmin,
	}, "editor")
	if err != nil {
		t.Fatalf("EditUser: %v", err)
	}
	if !res.Success || res.Message != MsgUserUpdated {
		t.Fatalf("unexpected outcome: %+v", res)
	}
	if res.Data.FirstName != "Alicia" || res.Data.Role != "Admin" || res.Data.IsActive {
		t.Fatalf("edit not applied: %+v", res.Data)
	}
	if store.saveCount != 1 {
		t.Fatalf("saveCount = %d, want 1", store.saveCount)
	}

	stored := store.users[u.ID]
	if !stored.Created.Equal(u.Created) || stored.CreatedBy != u.CreatedBy {
		t.Fatal("edit must not touch the creation audit pair")
	}
	if stored.LastModified == nil {
		t.Fatal("edit must set the modification stamp")
	}
}

func TestEditSuperAdminRefused(t *testing.T) {
	store := newFakeStore()
	admin := mustUser("admin", "pw-123456", entity.RoleAdmin, true)
	store.add(admin)
	svc := newUserService(store)

	res, err := svc.EditUser(context.Background(), admin.ID, EditInput{
		FirstName: "Evil", LastName: "Edit", IsActive: false, Role: entity.RoleUser,
	}, "editor")
	if err != nil {
		t.Fatalf("EditUser: %v", err)
	}
	if res.Success || res.Kind != response.KindConflict || res.Message != MsgCannotEditSuperAdmin {
		t.Fatalf("unexpected outcome: %+v", res)
	}
	if store.saveCount != 0 {
		t.Fatal("refused edit must not reach the store")
	}
	if store.users[admin.ID].FirstName != "Test" {
		t.Fatal("super admin account was mutated")
	}
}

func TestDeleteUser(t *testing.T) {
	store := newFakeStore()
	u := mustUser("alice", "pw-123456", entity.RoleUser, true)
	store.add(u)
	svc := newUserService(store)

	res, err := svc.DeleteUser(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if !res.Success || res.Message != MsgUserDeleted {
		t.Fatalf("unexpected outcome: %+v", res)
	}
	if _, ok := store.users[u.ID]; ok {
		t.Fatal("account still present after delete")
	}
}

func TestDeleteSuperAdminRefused(t *testing.T) {
	store := newFakeStore()
	admin := mustUser("Admin", "pw-123456", entity.RoleAdmin, true)
	store.add(admin)
	svc := newUserService(store)

	res, err := svc.DeleteUser(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if res.Success || res.Kind != response.KindConflict || res.Message != MsgCannotDelSuperAdmin {
		t.Fatalf("unexpected outcome: %+v", res)
	}
	if store.saveCount != 0 {
		t.Fatal("refused delete must not reach the store")
	}
	if _, ok := store.users[admin.ID]; !ok {
		t.Fatal("super admin account was removed")
	}
}

func TestDeleteInactiveAdminNamedAdminAllowed(t *testing.T) {
	// The shield covers the seeded account only while it is an active
	// administrator. A deactivated or demoted "admin" is an ordinary user.
	store := newFakeStore()
	inactive := mustUser("admin", "pw-123456", entity.RoleAdmin, false)
	store.add(inactive)
	svc := newUserService(store)

	res, err := svc.DeleteUser(context.Background(), inactive.ID)
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if !res.Success {
		t.Fatalf("unexpected outcome: %+v", res)
	}
}

func TestChangePassword(t *testing.T) {
	store := newFakeStore()
	u := mustUser("alice", "old-pass-123", entity.RoleUser, true)
	store.add(u)
	oldSalt := u.SaltKey
	svc := newUserService(store)

	res, err := svc.ChangePassword(context.Background(), u.ID, "new-pass-456", "editor")
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if !res.Success || res.Message != MsgPasswordChanged {
		t.Fatalf("unexpected outcome: %+v", res)
	}

	stored := store.users[u.ID]
	if stored.SaltKey == oldSalt {
		t.Fatal("salt was not rotated")
	}
	if !stored.VerifyPassword("new-pass-456") || stored.VerifyPassword("old-pass-123") {
		t.Fatal("credential rotation incomplete")
	}
}

func TestChangePasswordUnknownUser(t *testing.T) {
	svc := newUserService(newFakeStore())

	res, err := svc.ChangePassword(context.Background(), "no-such-id", "new-pass-456", "editor")
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if res.Success || res.Kind != response.KindNotFound {
		t.Fatalf("unexpected outcome: %+v", res)
	}
}

func TestChangePasswordBlankRejected(t *testing.T) {
	store := newFakeStore()
	u := mustUser("alice", "old-pass-123", entity.RoleUser, true)
	store.add(u)
	svc := newUserService(store)

	res, err := svc.ChangePassword(context.Background(), u.ID, "   ", "editor")
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if res.Success || res.Kind != response.KindBadRequest {
		t.Fatalf("unexpected outcome: %+v", res)
	}
	if store.saveCount != 0 {
		t.Fatal("rejected change must not reach the store")
	}
}
