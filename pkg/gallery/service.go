package gallery

import (
	"strings"
	"time"

	"uigallery/pkg/apperr"
	"uigallery/pkg/user"
)

var categories = map[string]bool{
	"buttons": true,
	"forms":   true,
	"cards":   true,
	"charts":  true,
	"three-d": true,
	"layout":  true,
}

const CategoryPattern = "buttons|forms|cards|charts|three-d|layout"

type ServiceInterface interface {
	GetAll() []*Item
	GetByID(id string) (*Item, error)
	GetBySlug(slug string) (*Item, error)
	GetByCategory(category string) []*Item
	Create(item *Item, author *user.User) error
	Update(id string, item *Item) (*Item, error)
	SetFeatured(id string, featured bool) (*Item, error)
	Delete(id string) error
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

func (s *Service) GetAll() []*Item {
	return s.Repo.GetAll()
}

func (s *Service) GetByID(id string) (*Item, error) {
	return s.Repo.GetByID(id)
}

func (s *Service) GetBySlug(slug string) (*Item, error) {
	return s.Repo.GetBySlug(slug)
}

func (s *Service) GetByCategory(category string) []*Item {
	return s.Repo.GetByCategory(category)
}

func (s *Service) Create(item *Item, author *user.User) error {
	if err := validate(item); err != nil {
		return err
	}

	if exist, err := s.Repo.GetBySlug(item.Slug); exist != nil && err == nil {
		return apperr.New(apperr.CodeConflict, "slug already in use")
	}

	item.Views = 0
	item.Featured = false
	item.CreatedBy = AuthorOf(author)
	item.Created = time.Now()
	item.Updated = item.Created
	if item.Tags == nil {
		item.Tags = make([]string, 0, 1)
	}

	return s.Repo.Create(item)
}

func (s *Service) Update(id string, item *Item) (*Item, error) {
	if err := validate(item); err != nil {
		return nil, err
	}
	item.Updated = time.Now()
	return s.Repo.Update(id, item)
}

func (s *Service) SetFeatured(id string, featured bool) (*Item, error) {
	return s.Repo.SetFeatured(id, featured)
}

func (s *Service) Delete(id string) error {
	return s.Repo.Delete(id)
}

func validate(item *Item) error {
	if item.Name == "" || item.Slug == "" {
		return apperr.New(apperr.CodeInputMissing, "name and slug are required")
	}
	if strings.ContainsAny(item.Slug, " /") {
		return apperr.New(apperr.CodeBadPayload, "invalid slug")
	}
	if !categories[item.Category] {
		return apperr.New(apperr.CodeBadPayload, "unknown category")
	}
	return nil
}
