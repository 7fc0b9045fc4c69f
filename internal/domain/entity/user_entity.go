package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"user-access-service/pkg/helpers"
)

// Auditable is implemented by aggregates carrying creation/modification
// audit metadata. The persistence layer stamps these before every commit.
type Auditable interface {
	StampCreated(at time.Time, by string)
	StampModified(at time.Time, by string)
}

// User is the aggregate root for the identity domain. All state changes go
// through CreateNew, ApplyChanges and ChangePassword so the invariants hold
// for every persisted instance.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Username     string
	Email        string
	PasswordHash string
	SaltKey      string
	Role         Role
	IsActive     bool

	Created        time.Time
	CreatedBy      string
	LastModified   *time.Time
	LastModifiedBy *string
}

// CreateNew validates the input, derives the password hash with a fresh salt
// and returns a fully formed user. Required-field checks for username, email
// and password run before the core field checks, so the first violated rule
// determines the reported message.
func CreateNew(firstName, lastName, username, email, password string, role Role, isActive bool, createdBy string) (*User, error) {
	if err := validateRequired(username, "username"); err != nil {
		return nil, err
	}
	if err := validateRequired(email, "email"); err != nil {
		return nil, err
	}
	if err := validateRequired(password, "password"); err != nil {
		return nil, err
	}
	if err := validateCoreFields(firstName, lastName, role, createdBy); err != nil {
		return nil, err
	}

	salt, err := helpers.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(password, salt)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		SaltKey:      salt,
		Role:         role,
		IsActive:     isActive,
		Created:      time.Now().UTC(),
		CreatedBy:    createdBy,
	}, nil
}

// ApplyChanges revalidates the core fields and mutates profile, role and
// status in place. It never touches username, email or credentials.
func (u *User) ApplyChanges(firstName, lastName string, isActive bool, role Role, modifiedBy string) error {
	if err := validateCoreFields(firstName, lastName, role, modifiedBy); err != nil {
		return err
	}

	u.FirstName = firstName
	u.LastName = lastName
	u.IsActive = isActive
	u.Role = role
	u.StampModified(time.Now().UTC(), modifiedBy)
	return nil
}

// ChangePassword rotates the credentials with a newly generated salt. The
// previous salt is never reused.
func (u *User) ChangePassword(newPassword, modifiedBy string) error {
	if err := validateRequired(newPassword, "password"); err != nil {
		return err
	}
	if err := validateRequired(modifiedBy, "modifiedBy"); err != nil {
		return err
	}

	salt, err := helpers.GenerateSalt()
	if err != nil {
		return err
	}
	hash, err := helpers.HashPassword(newPassword, salt)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	u.SaltKey = salt
	u.StampModified(time.Now().UTC(), modifiedBy)
	return nil
}

// VerifyPassword checks the input against the stored hash and salt. Callers
// only learn match/mismatch; malformed stored values also read as false.
func (u *User) VerifyPassword(input string) bool {
	ok, _ := u.CheckPassword(input)
	return ok
}

// CheckPassword is VerifyPassword with the data-integrity error exposed, so
// the application layer can log malformed stored credentials for operators
// instead of reporting them as a plain password mismatch.
func (u *User) CheckPassword(input string) (bool, error) {
	return helpers.VerifyPassword(input, u.PasswordHash, u.SaltKey)
}

func (u *User) StampCreated(at time.Time, by string) {
	u.Created = at
	u.CreatedBy = by
}

func (u *User) StampModified(at time.Time, by string) {
	u.LastModified = &at
	u.LastModifiedBy = &by
}

func validateRequired(value, fieldName string) error {
	if isBlank(value) {
		return newValidationError(fieldName + " cannot be empty.")
	}
	return nil
}

func validateCoreFields(firstName, lastName string, role Role, actor string) error {
	if err := validateRequired(firstName, "firstName"); err != nil {
		return err
	}
	if err := validateRequired(lastName, "lastName"); err != nil {
		return err
	}
	if !role.Valid() {
		return newValidationError("Invalid user role specified.")
	}
	return validateRequired(actor, "actor")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
