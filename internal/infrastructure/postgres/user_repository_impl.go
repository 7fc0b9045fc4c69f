package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"user-access-service/internal/domain/entity"
	"user-access-service/internal/domain/repository"
)

const userColumns = `id, first_name, last_name, username, email, password_hash, salt_key, role, is_active, created, created_by, last_modified, last_modified_by`

// UserRepository implements the persistence contract on pgx. Reads hit the
// pool directly; writes are staged on the unit of work and executed at Save.
type UserRepository struct {
	uow *UnitOfWork
}

func NewUserRepository(uow *UnitOfWork) *UserRepository {
	return &UserRepository{uow: uow}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.uow.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

// FindByUsername matches the username case-insensitively.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	row := r.uow.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`, username)
	return scanUser(row)
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.uow.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($2)
		)
	`, username, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) List(ctx context.Context, filter repository.ListFilter) ([]entity.User, int, error) {
	where := ""
	args := []any{}
	if filter.Username != "" {
		where = ` WHERE username ILIKE $1`
		args = append(args, "%"+strings.TrimSpace(filter.Username)+"%")
	}

	var total int
	if err := r.uow.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users` + where + ` ORDER BY created`
	if filter.Skip != nil {
		args = append(args, *filter.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	if filter.Take != nil {
		args = append(args, *filter.Take)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.uow.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

// Insert stages the aggregate for creation. Column values are read at
// commit time, after the audit interceptor has stamped the entity.
func (r *UserRepository) Insert(u *entity.User) {
	r.uow.stage(change{
		kind:   changeInsert,
		entity: u,
		exec: func(ctx context.Context, tx pgx.Tx) error {
			_, err := tx.Exec(ctx, `
				INSERT INTO users (`+userColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			`, u.ID, u.FirstName, u.LastName, u.Username, u.Email, u.PasswordHash,
				u.SaltKey, string(u.Role), u.IsActive, u.Created, u.CreatedBy,
				u.LastModified, u.LastModifiedBy)
			return err
		},
	})
}

// Update stages the aggregate for modification. The statement deliberately
// omits created/created_by, keeping creation metadata immutable in storage.
func (r *UserRepository) Update(u *entity.User) {
	r.uow.stage(change{
		kind:   changeUpdate,
		entity: u,
		exec: func(ctx context.Context, tx pgx.Tx) error {
			tag, err := tx.Exec(ctx, `
				UPDATE users
				SET first_name = $1, last_name = $2, password_hash = $3, salt_key = $4,
				    role = $5, is_active = $6, last_modified = $7, last_modified_by = $8
				WHERE id = $9
			`, u.FirstName, u.LastName, u.PasswordHash, u.SaltKey, string(u.Role),
				u.IsActive, u.LastModified, u.LastModifiedBy, u.ID)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return repository.ErrNotFound
			}
			return nil
		},
	})
}

func (r *UserRepository) Delete(u *entity.User) {
	r.uow.stage(change{
		kind: changeDelete,
		exec: func(ctx context.Context, tx pgx.Tx) error {
			_, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, u.ID)
			return err
		},
	})
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email,
		&u.PasswordHash, &u.SaltKey, &role, &u.IsActive, &u.Created, &u.CreatedBy,
		&u.LastModified, &u.LastModifiedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.Role = entity.Role(role)
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
