package user_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"uigallery/pkg/apperr"
	"uigallery/pkg/user"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(u *user.User) error {
	return m.Called(u).Error(0)
}

func (m *mockRepo) FindByEmail(email string) (*user.User, error) {
	args := m.Called(email)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) FindByUsername(username string) (*user.User, error) {
	args := m.Called(username)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) FindByID(id string) (*user.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetAll() ([]*user.User, error) {
	args := m.Called()
	if u := args.Get(0); u != nil {
		return u.([]*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockRepo) SetDisabled(id string, disabled bool) error {
	return m.Called(id, disabled).Error(0)
}

func (m *mockRepo) SetRole(id string, role string) error {
	return m.Called(id, role).Error(0)
}

func (m *mockRepo) BumpEpoch(id string) error {
	return m.Called(id).Error(0)
}

var errNotFound = apperr.New(apperr.CodeNotFound, "user not found")

func TestService_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := user.NewService(repo)

		repo.On("FindByEmail", "new@x.com").Return(nil, errNotFound)
		repo.On("FindByUsername", "newuser").Return(nil, errNotFound)
		repo.On("Create", mock.AnythingOfType("*user.User")).Return(nil)

		u, err := svc.Register("new@x.com", "newuser", "securepass")

		assert.NoError(t, err)
		assert.NotNil(t, u)
		assert.Equal(t, "new@x.com", u.Email)
		assert.Equal(t, user.RoleUser, u.Role)
		assert.Equal(t, int64(0), u.SessionEpoch)
		assert.NotEqual(t, "securepass", u.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("securepass")))
	})

	t.Run("email already exists", func(t *testing.T) {
		repo := new(mockRepo)
		svc := user.NewService(repo)

		repo.On("FindByEmail", "taken@x.com").Return(&user.User{Email: "taken@x.com"}, nil)

		u, err := svc.Register("taken@x.com", "someone", "pass")

		assert.Nil(t, u)
		assert.True(t, apperr.Is(err, apperr.CodeDuplicateEmail))
	})

	t.Run("username already exists", func(t *testing.T) {
		repo := new(mockRepo)
		svc := user.NewService(repo)

		repo.On("FindByEmail", "new@x.com").Return(nil, errNotFound)
		repo.On("FindByUsername", "taken").Return(&user.User{Username: "taken"}, nil)

		u, err := svc.Register("new@x.com", "taken", "pass")

		assert.Nil(t, u)
		assert.True(t, apperr.Is(err, apperr.CodeDuplicateUsername))
	})

	t.Run("missing input", func(t *testing.T) {
		svc := user.NewService(new(mockRepo))

		u, err := svc.Register("", "someone", "pass")
		assert.Nil(t, u)
		assert.True(t, apperr.Is(err, apperr.CodeInputMissing))

		u, err = svc.Register("a@x.com", "", "")
		assert.Nil(t, u)
		assert.True(t, apperr.Is(err, apperr.CodeInputMissing))
	})

	t.Run("constraint race surfaces repo conflict", func(t *testing.T) {
		repo := new(mockRepo)
		svc := user.NewService(repo)

		repo.On("FindByEmail", "racer@x.com").Return(nil, errNotFound)
		repo.On("Create", mock.AnythingOfType("*user.User")).
			Return(apperr.New(apperr.CodeDuplicateEmail, "email already registered"))

		u, err := svc.Register("racer@x.com", "", "pass")

		assert.Nil(t, u)
		assert.True(t, apperr.Is(err, apperr.CodeDuplicateEmail))
	})
}

func TestService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	valid := func() *user.User {
		return &user.User{
			ID:           "uid",
			Email:        "valid@x.com",
			Username:     "valid",
			PasswordHash: string(hashed),
			Role:         user.RoleUser,
		}
	}

	t.Run("success by email", func(t *testing.T) {
		repo := new(mockRepo)
		svc := user.NewService(repo)
		repo.On("FindByEmail", "valid@x.com").Return(valid(), nil)

		u, err := svc.Login("valid@x.com", "correct")

		assert.NoError(t, err)
		assert.Equal(t, "valid@x.com", u.Email)
	})

	t.Run("success by username", func(t *testing.T) {
		repo := new(mockRepo)
		svc := user.NewService(repo)
		repo.On("FindByUsername", "valid").Return(valid(), nil)

		u, err := svc.Login("valid", "correct")

		assert.NoError(t, err)
		assert.Equal(t, "uid", u.ID)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockRepo)
		svc := user.NewService(repo)
		repo.On("FindByEmail", "ghost@x.com").Return(nil, errNotFound)

		u, err := svc.Login("ghost@x.com", "any")

		assert.Nil(t, u)
		assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	})

	t.Run("disabled account", func(t *testing.T) {
		repo := new(mockRepo)
		svc := user.NewService(repo)
		disabled := valid()
		disabled.Disabled = true
		repo.On("FindByEmail", "valid@x.com").Return(disabled, nil)

		u, err := svc.Login("valid@x.com", "correct")

		assert.Nil(t, u)
		assert.True(t, apperr.Is(err, apperr.CodeAccountDisabled))
	})

	t.Run("no password credential", func(t *testing.T) {
		repo := new(mockRepo)
		svc := user.NewService(repo)
		bare := valid()
		bare.PasswordHash = ""
		repo.On("FindByEmail", "valid@x.com").Return(bare, nil)

		u, err := svc.Login("valid@x.com", "correct")

		assert.Nil(t, u)
		assert.True(t, apperr.Is(err, apperr.CodeNoPasswordAuth))
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockRepo)
		svc := user.NewService(repo)
		repo.On("FindByEmail", "valid@x.com").Return(valid(), nil)

		u, err := svc.Login("valid@x.com", "wrong")

		assert.Nil(t, u)
		assert.True(t, apperr.Is(err, apperr.CodeBadCredentials))
	})

	t.Run("store unavailable", func(t *testing.T) {
		repo := new(mockRepo)
		svc := user.NewService(repo)
		repo.On("FindByEmail", "valid@x.com").Return(nil, errors.New("connection refused"))

		u, err := svc.Login("valid@x.com", "correct")

		assert.Nil(t, u)
		assert.True(t, apperr.Is(err, apperr.CodeInternal))
	})
}

func TestService_SetRole(t *testing.T) {
	repo := new(mockRepo)
	svc := user.NewService(repo)

	err := svc.SetRole("u1", "superadmin")
	assert.True(t, apperr.Is(err, apperr.CodeBadPayload))

	repo.On("SetRole", "u1", user.RoleAdmin).Return(nil)
	assert.NoError(t, svc.SetRole("u1", user.RoleAdmin))
	repo.AssertExpectations(t)
}
