package user

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"uigallery/pkg/apperr"
)

const mysqlErrDuplicateEntry = 1062

type MySQLRepo struct {
	DB *sql.DB
}

func NewMySQLRepo(db *sql.DB) *MySQLRepo {
	return &MySQLRepo{DB: db}
}

func (r *MySQLRepo) Create(user *User) error {
	_, err := r.DB.Exec(
		"INSERT INTO users (id, email, username, password, role, disabled, session_epoch) VALUES (?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Email, nullable(user.Username), nullable(user.PasswordHash),
		user.Role, user.Disabled, user.SessionEpoch,
	)
	if err != nil {
		if conflict := conflictFor(err); conflict != nil {
			return conflict
		}
		return err
	}
	return nil
}

func (r *MySQLRepo) FindByEmail(email string) (*User, error) {
	return r.findBy("email", email)
}

func (r *MySQLRepo) FindByUsername(username string) (*User, error) {
	return r.findBy("username", username)
}

func (r *MySQLRepo) FindByID(id string) (*User, error) {
	return r.findBy("id", id)
}

func (r *MySQLRepo) findBy(column, value string) (*User, error) {
	row := r.DB.QueryRow(
		"SELECT id, email, username, password, role, disabled, session_epoch FROM users WHERE "+column+" = ?",
		value,
	)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeNotFound, "user not found")
		}
		return nil, err
	}
	return u, nil
}

func (r *MySQLRepo) GetAll() ([]*User, error) {
	rows, err := r.DB.Query(
		"SELECT id, email, username, password, role, disabled, session_epoch FROM users ORDER BY email",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *MySQLRepo) Delete(id string) error {
	return r.exec("DELETE FROM users WHERE id = ?", id)
}

func (r *MySQLRepo) SetDisabled(id string, disabled bool) error {
	return r.exec("UPDATE users SET disabled = ? WHERE id = ?", disabled, id)
}

func (r *MySQLRepo) SetRole(id string, role string) error {
	return r.exec("UPDATE users SET role = ? WHERE id = ?", role, id)
}

// BumpEpoch invalidates every session issued before the bump.
func (r *MySQLRepo) BumpEpoch(id string) error {
	return r.exec("UPDATE users SET session_epoch = session_epoch + 1 WHERE id = ?", id)
}

func (r *MySQLRepo) exec(query string, args ...any) error {
	result, err := r.DB.Exec(query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.New(apperr.CodeNotFound, "user not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var (
		u        User
		username sql.NullString
		password sql.NullString
		epoch    sql.NullInt64
	)
	err := row.Scan(&u.ID, &u.Email, &username, &password, &u.Role, &u.Disabled, &epoch)
	if err != nil {
		return nil, err
	}
	u.Username = username.String
	u.PasswordHash = password.String
	u.SessionEpoch = epoch.Int64 // NULL читается как 0
	return &u, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// conflictFor maps a unique-constraint violation to the conflicting field.
func conflictFor(err error) *apperr.Error {
	msg := err.Error()
	duplicate := strings.Contains(msg, "UNIQUE constraint failed")

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		duplicate = myErr.Number == mysqlErrDuplicateEntry
		msg = myErr.Message
	}
	if !duplicate {
		return nil
	}

	switch {
	case strings.Contains(msg, "email"):
		return apperr.New(apperr.CodeDuplicateEmail, "email already registered")
	case strings.Contains(msg, "username"):
		return apperr.New(apperr.CodeDuplicateUsername, "username already taken")
	default:
		return apperr.New(apperr.CodeConflict, "user already exists")
	}
}
