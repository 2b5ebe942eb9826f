package gallery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"uigallery/pkg/apperr"
	"uigallery/pkg/gallery"
	"uigallery/pkg/user"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(item *gallery.Item) error {
	return m.Called(item).Error(0)
}

func (m *mockRepo) GetByID(id string) (*gallery.Item, error) {
	args := m.Called(id)
	if i := args.Get(0); i != nil {
		return i.(*gallery.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetBySlug(slug string) (*gallery.Item, error) {
	args := m.Called(slug)
	if i := args.Get(0); i != nil {
		return i.(*gallery.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetAll() []*gallery.Item {
	args := m.Called()
	if i := args.Get(0); i != nil {
		return i.([]*gallery.Item)
	}
	return nil
}

func (m *mockRepo) GetByCategory(category string) []*gallery.Item {
	args := m.Called(category)
	if i := args.Get(0); i != nil {
		return i.([]*gallery.Item)
	}
	return nil
}

func (m *mockRepo) Update(id string, item *gallery.Item) (*gallery.Item, error) {
	args := m.Called(id, item)
	if i := args.Get(0); i != nil {
		return i.(*gallery.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) SetFeatured(id string, featured bool) (*gallery.Item, error) {
	args := m.Called(id, featured)
	if i := args.Get(0); i != nil {
		return i.(*gallery.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

var notFound = apperr.New(apperr.CodeNotFound, "item not found")

func author() *user.User {
	return &user.User{ID: "a1", Email: "admin@x.com", Username: "admin", Role: user.RoleAdmin}
}

func TestService_Create(t *testing.T) {
	t.Run("success sets defaults and author snapshot", func(t *testing.T) {
		repo := new(mockRepo)
		svc := gallery.NewService(repo)

		repo.On("GetBySlug", "primary-button").Return(nil, notFound)
		repo.On("Create", mock.AnythingOfType("*gallery.Item")).Return(nil)

		item := &gallery.Item{
			Name:     "Primary Button",
			Slug:     "primary-button",
			Category: "buttons",
			Views:    42,   // затирается
			Featured: true, // затирается
		}

		err := svc.Create(item, author())

		assert.NoError(t, err)
		assert.Equal(t, 0, item.Views)
		assert.False(t, item.Featured)
		assert.Equal(t, "a1", item.CreatedBy.ID)
		assert.Equal(t, "admin@x.com", item.CreatedBy.Email)
		assert.NotNil(t, item.Tags)
		assert.False(t, item.Created.IsZero())
		assert.Equal(t, item.Created, item.Updated)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		repo := new(mockRepo)
		svc := gallery.NewService(repo)

		repo.On("GetBySlug", "taken").Return(&gallery.Item{Slug: "taken"}, nil)

		err := svc.Create(&gallery.Item{Name: "X", Slug: "taken", Category: "cards"}, author())

		assert.True(t, apperr.Is(err, apperr.CodeConflict))
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := gallery.NewService(new(mockRepo))

		err := svc.Create(&gallery.Item{Slug: "s", Category: "cards"}, author())
		assert.True(t, apperr.Is(err, apperr.CodeInputMissing))
	})

	t.Run("bad slug", func(t *testing.T) {
		svc := gallery.NewService(new(mockRepo))

		err := svc.Create(&gallery.Item{Name: "X", Slug: "has space", Category: "cards"}, author())
		assert.True(t, apperr.Is(err, apperr.CodeBadPayload))
	})

	t.Run("unknown category", func(t *testing.T) {
		svc := gallery.NewService(new(mockRepo))

		err := svc.Create(&gallery.Item{Name: "X", Slug: "x", Category: "widgets"}, author())
		assert.True(t, apperr.Is(err, apperr.CodeBadPayload))
	})
}

func TestService_Update(t *testing.T) {
	repo := new(mockRepo)
	svc := gallery.NewService(repo)

	updated := &gallery.Item{Name: "New Name", Slug: "x", Category: "forms"}
	repo.On("Update", "abc", updated).Return(updated, nil)

	item, err := svc.Update("abc", updated)

	assert.NoError(t, err)
	assert.False(t, item.Updated.IsZero())

	_, err = svc.Update("abc", &gallery.Item{Slug: "x", Category: "nope"})
	assert.Error(t, err)
}

func TestService_Passthrough(t *testing.T) {
	repo := new(mockRepo)
	svc := gallery.NewService(repo)

	repo.On("GetAll").Return([]*gallery.Item{{Name: "A"}})
	repo.On("GetByCategory", "charts").Return(nil)
	repo.On("Delete", "abc").Return(nil)
	repo.On("SetFeatured", "abc", true).Return(&gallery.Item{Featured: true}, nil)

	assert.Len(t, svc.GetAll(), 1)
	assert.Nil(t, svc.GetByCategory("charts"))
	assert.NoError(t, svc.Delete("abc"))

	item, err := svc.SetFeatured("abc", true)
	assert.NoError(t, err)
	assert.True(t, item.Featured)

	repo.AssertExpectations(t)
}
