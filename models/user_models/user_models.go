package user_models

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rideon/rental/logger"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters.
const (
	Memory      = 64 * 1024
	Iterations  = 3
	Parallelism = 4
	SaltLength  = 16
	KeyLength   = 32
)

// User mirrors the users table.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserPatch enumerates the fields an update may change. Nil means
// "leave as is".
type UserPatch struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

func generateSalt(size int) ([]byte, error) {
	salt := make([]byte, size)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// HashPassword hashes a password using Argon2id.
func HashPassword(password string) (string, error) {
	salt, err := generateSalt(SaltLength)
	if err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, Iterations, Memory, uint8(Parallelism), KeyLength)

	saltBase64 := base64.RawStdEncoding.EncodeToString(salt)
	hashBase64 := base64.RawStdEncoding.EncodeToString(hash)
	return fmt.Sprintf("%s$%s", saltBase64, hashBase64), nil
}

// VerifyPassword verifies a password against a stored hash.
func VerifyPassword(password, storedHash string) (bool, error) {
	parts := strings.Split(storedHash, "$")
	if len(parts) != 2 {
		return false, errors.New("invalid stored hash format")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		return false, err
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, err
	}

	computedHash := argon2.IDKey([]byte(password), salt, Iterations, Memory, uint8(Parallelism), KeyLength)
	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1, nil
}

// CreateUser registers a new user. The password is hashed before it
// touches the database.
func CreateUser(ctx context.Context, db *pgxpool.Pool, name, email, password, phone, role string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{Name: name, Email: email, PasswordHash: hash, Phone: phone, Role: role}
	query := `
		INSERT INTO users (name, email, password, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err = db.QueryRow(ctx, query, name, email, hash, phone, role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return nil, ErrEmailTaken
		}
		logger.ErrorLogger.Errorf("Failed to insert user %s: %v", email, err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.InfoLogger.Infof("User %d registered with role %s", user.ID, user.Role)
	return user, nil
}

// AuthenticateUser verifies credentials and returns the matching user.
func AuthenticateUser(ctx context.Context, db *pgxpool.Pool, email, password string) (*User, error) {
	user, err := GetUserByEmail(ctx, db, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func GetUserByEmail(ctx context.Context, db *pgxpool.Pool, email string) (*User, error) {
	query := `
		SELECT id, name, email, password, phone, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return scanUser(db.QueryRow(ctx, query, email))
}

func GetUserByID(ctx context.Context, db *pgxpool.Pool, id int64) (*User, error) {
	query := `
		SELECT id, name, email, password, phone, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return scanUser(db.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// GetAllUsers lists every user, newest first.
func GetAllUsers(ctx context.Context, db *pgxpool.Pool) ([]User, error) {
	query := `
		SELECT id, name, email, password, phone, role, created_at, updated_at
		FROM users
		ORDER BY id DESC
	`
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Phone,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUser applies a typed patch. Only the fields present in the
// patch end up in the SET clause.
func UpdateUser(ctx context.Context, db *pgxpool.Pool, id int64, patch UserPatch) (*User, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{id}

	addClause := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		addClause("name", *patch.Name)
	}
	if patch.Phone != nil {
		addClause("phone", *patch.Phone)
	}
	if patch.Password != nil {
		hash, err := HashPassword(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		addClause("password", hash)
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $1
		RETURNING id, name, email, password, phone, role, created_at, updated_at
	`, strings.Join(setClauses, ", "))

	return scanUser(db.QueryRow(ctx, query, args...))
}

// DeleteUser removes a user unless they still hold an active booking.
func DeleteUser(ctx context.Context, db *pgxpool.Pool, id int64) error {
	var active bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE customer_id = $1 AND status = 'active')`, id,
	).Scan(&active)
	if err != nil {
		return fmt.Errorf("failed to check active bookings: %w", err)
	}
	if active {
		return ErrUserHasActiveBookings
	}

	tag, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	logger.InfoLogger.Infof("User %d deleted", id)
	return nil
}
