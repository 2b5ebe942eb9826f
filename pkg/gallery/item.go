package gallery

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"uigallery/pkg/user"
)

// Author is the snapshot of the admin who created an item; it is embedded
// so gallery reads never touch the user store.
type Author struct {
	ID       string `json:"id" bson:"id"`
	Email    string `json:"email" bson:"email"`
	Username string `json:"username,omitempty" bson:"username,omitempty"`
}

type Item struct {
	MongoID     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID          string             `json:"id" bson:"-"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Category    string             `json:"category"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Markup      string             `json:"markup,omitempty" bson:"markup,omitempty"`
	Tags        []string           `json:"tags"`
	Views       int                `json:"views"`
	Featured    bool               `json:"featured"`
	CreatedBy   Author             `json:"createdBy" bson:"createdBy"`
	Created     time.Time          `json:"created"`
	Updated     time.Time          `json:"updated"`
}

func AuthorOf(u *user.User) Author {
	return Author{ID: u.ID, Email: u.Email, Username: u.Username}
}

type Repository interface {
	Create(item *Item) error
	GetByID(id string) (*Item, error)
	GetBySlug(slug string) (*Item, error)
	GetAll() []*Item
	GetByCategory(category string) []*Item
	Update(id string, item *Item) (*Item, error)
	SetFeatured(id string, featured bool) (*Item, error)
	Delete(id string) error
}
