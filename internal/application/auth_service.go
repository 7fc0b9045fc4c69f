package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"user-access-service/internal/domain/entity"
	"user-access-service/internal/domain/repository"
	"user-access-service/pkg/helpers"
	"user-access-service/pkg/mailer"
	"user-access-service/pkg/response"
)

// AuthService orchestrates login and registration on top of the persistence
// abstraction. Business failures come back as Result values; the returned
// error is reserved for infrastructure faults the transport layer turns into
// a generic failure response.
type AuthService struct {
	Store  repository.Store
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
	Mail   *helpers.RabbitPublisher // optional, welcome email jobs
	Search *SearchIndex             // optional, user search index
}

func NewAuthService(store repository.Store, jwt *helpers.JWTManager, logger *logrus.Logger, mail *helpers.RabbitPublisher, search *SearchIndex) *AuthService {
	return &AuthService{Store: store, JWT: jwt, Logger: logger, Mail: mail, Search: search}
}

type LoginResult struct {
	ID       string  `json:"id"`
	Token    *string `json:"token"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	IsActive bool    `json:"isActive"`
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	Role      entity.Role
	IsActive  bool
}

type RegisterResult struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Login checks the credentials and, for active administrators, issues a
// bearer token. Unknown username and wrong password share one outcome so the
// response cannot be used to probe which accounts exist; the distinction is
// kept in the logs only.
func (s *AuthService) Login(ctx context.Context, username, password string) (response.Result[LoginResult], error) {
	repo, _ := s.Store.NewUnitOfWork()
	user, err := repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log().WithField("username", username).Debug("login failed: unknown username")
			return response.Fail[LoginResult](response.KindNotFound, MsgInvalidCredentials), nil
		}
		return response.Result[LoginResult]{}, err
	}

	ok, err := user.CheckPassword(password)
	if err != nil {
		// Malformed stored hash/salt is an operator problem, never a
		// normal login failure.
		s.log().WithError(err).WithField("user_id", user.ID).Error("stored credential data is malformed")
		return response.Result[LoginResult]{}, err
	}
	if !ok {
		s.log().WithField("user_id", user.ID).Debug("login failed: password mismatch")
		return response.Fail[LoginResult](response.KindNotFound, MsgInvalidCredentials), nil
	}

	// Token only for active administrators. Omission is not an error: the
	// login still succeeds and returns account data.
	var token *string
	if user.Role == entity.RoleAdmin && user.IsActive {
		t, _, err := s.JWT.Generate(user.Username, user.Role.String())
		if err != nil {
			return response.Result[LoginResult]{}, err
		}
		token = &t
	}

	return response.OK(LoginResult{
		ID:       user.ID,
		Token:    token,
		Username: user.Username,
		Role:     user.Role.String(),
		IsActive: user.IsActive,
	}, MsgLoginSuccess), nil
}

// Register creates a new account. Uniqueness is checked up front and again
// enforced by the storage constraint at commit; both paths yield the same
// conflict outcome.
func (s *AuthService) Register(ctx context.Context, input RegisterInput, createdBy string) (response.Result[RegisterResult], error) {
	repo, uow := s.Store.NewUnitOfWork()
	exists, err := repo.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return response.Result[RegisterResult]{}, err
	}
	if exists {
		return response.Fail[RegisterResult](response.KindConflict, MsgAccountAlreadyExists), nil
	}

	user, err := entity.CreateNew(input.FirstName, input.LastName, input.Username,
		input.Email, input.Password, input.Role, input.IsActive, createdBy)
	if err != nil {
		if entity.IsValidationError(err) {
			return response.Fail[RegisterResult](response.KindBadRequest, err.Error()), nil
		}
		return response.Result[RegisterResult]{}, err
	}

	repo.Insert(user)
	if err := uow.Save(ctx); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return response.Fail[RegisterResult](response.KindConflict, MsgAccountAlreadyExists), nil
		}
		return response.Result[RegisterResult]{}, err
	}

	s.publishWelcomeEmail(ctx, user)
	s.Search.IndexUser(ctx, user)

	return response.OK(RegisterResult{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, MsgRegisterSuccess), nil
}

// publishWelcomeEmail queues the welcome email job. Best effort: a broker
// failure is logged and never breaks registration.
func (s *AuthService) publishWelcomeEmail(ctx context.Context, user *entity.User) {
	if s.Mail == nil {
		return
	}
	job := mailer.EmailJob{
		To:       user.Email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"FirstName": user.FirstName,
			"Username":  user.Username,
		},
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.log().WithError(err).WithField("user_id", user.ID).Warn("welcome email publish failed")
	}
}

func (s *AuthService) log() *logrus.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logrus.StandardLogger()
}
