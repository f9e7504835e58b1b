package user

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/evcraddock/homebase/internal/apperr"
)

const selectColumns = `id, name, email, phone, password_hash, role, created_at`

// Store manages user accounts in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a user store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create inserts a new user and returns it with its generated ID.
// A duplicate email yields apperr.ErrConflict.
func (s *Store) Create(u *User) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", apperr.ErrInvalid)
	}
	if !u.Role.IsValid() {
		return nil, fmt.Errorf("unknown role %q: %w", u.Role, apperr.ErrInvalid)
	}

	result, err := s.db.Exec(
		"INSERT INTO users (name, email, phone, password_hash, role) VALUES (?, ?, ?, ?, ?)",
		strings.TrimSpace(u.Name), email, strings.TrimSpace(u.Phone), u.PasswordHash, string(u.Role),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %s: %w", email, apperr.ErrConflict)
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user ID: %w", err)
	}

	return s.GetByID(id)
}

// GetByID returns a user by ID.
func (s *Store) GetByID(id int64) (*User, error) {
	row := s.db.QueryRow(fmt.Sprintf("SELECT %s FROM users WHERE id = ?", selectColumns), id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying user %d: %w", id, err)
	}
	return u, nil
}

// GetByEmail returns a user by email, ignoring case.
func (s *Store) GetByEmail(email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := s.db.QueryRow(fmt.Sprintf("SELECT %s FROM users WHERE email = ?", selectColumns), email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", email, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying user %s: %w", email, err)
	}
	return u, nil
}

// List returns all users ordered by email.
func (s *Store) List() ([]*User, error) {
	rows, err := s.db.Query(fmt.Sprintf("SELECT %s FROM users ORDER BY email", selectColumns))
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			fmt.Printf("warning: closing rows: %v\n", cerr)
		}
	}()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func scanUser(row interface{ Scan(...interface{}) error }) (*User, error) {
	var u User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = Role(role)
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
