package user

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"uigallery/pkg/apperr"
)

type ServiceInterface interface {
	Register(email, username, password string) (*User, error)
	Login(identity, password string) (*User, error)
	GetAll() ([]*User, error)
	Delete(id string) error
	SetDisabled(id string, disabled bool) error
	SetRole(id string, role string) error
	ForceLogout(id string) error
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Register(email, username, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, apperr.New(apperr.CodeInputMissing, "email and password are required")
	}

	if exist, err := s.Repo.FindByEmail(email); exist != nil && err == nil {
		return nil, apperr.New(apperr.CodeDuplicateEmail, "email already registered")
	}
	if username != "" {
		if exist, err := s.Repo.FindByUsername(username); exist != nil && err == nil {
			return nil, apperr.New(apperr.CodeDuplicateUsername, "username already taken")
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password error: %s", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         RoleUser,
		SessionEpoch: 0,
	}

	// гонка между проверкой и вставкой ловится на уникальном индексе
	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Login(identity, password string) (*User, error) {
	if identity == "" || password == "" {
		return nil, apperr.New(apperr.CodeInputMissing, "identity and password are required")
	}

	var (
		user *User
		err  error
	)
	if strings.Contains(identity, "@") {
		user, err = s.Repo.FindByEmail(identity)
	} else {
		user, err = s.Repo.FindByUsername(identity)
	}
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
		return nil, apperr.Internal(err)
	}

	if user.Disabled {
		return nil, apperr.New(apperr.CodeAccountDisabled, "account disabled")
	}
	if user.PasswordHash == "" {
		return nil, apperr.New(apperr.CodeNoPasswordAuth, "password login not configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.CodeBadCredentials, "invalid credentials")
	}

	return user, nil
}

func (s *Service) GetAll() ([]*User, error) {
	return s.Repo.GetAll()
}

func (s *Service) Delete(id string) error {
	return s.Repo.Delete(id)
}

func (s *Service) SetDisabled(id string, disabled bool) error {
	return s.Repo.SetDisabled(id, disabled)
}

func (s *Service) SetRole(id string, role string) error {
	if role != RoleUser && role != RoleAdmin {
		return apperr.New(apperr.CodeBadPayload, "unknown role")
	}
	return s.Repo.SetRole(id, role)
}

// ForceLogout bumps the session epoch; outstanding cookies with the old
// snapshot stop validating on their next check.
func (s *Service) ForceLogout(id string) error {
	return s.Repo.BumpEpoch(id)
}
