package user

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username,omitempty"`
	PasswordHash string `json:"-" bson:"-"`
	Role         string `json:"role"`
	Disabled     bool   `json:"disabled"`
	SessionEpoch int64  `json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByUsername(username string) (*User, error)
	FindByID(id string) (*User, error)
	GetAll() ([]*User, error)
	Delete(id string) error
	SetDisabled(id string, disabled bool) error
	SetRole(id string, role string) error
	BumpEpoch(id string) error
}
