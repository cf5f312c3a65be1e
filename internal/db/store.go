package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/kkiihun/global-board/internal/models"
)

// ErrDuplicateEmail is returned by CreateUser when the email is already
// registered.
var ErrDuplicateEmail = errors.New("email already registered")

// Store wraps the file-backed SQLite database. All methods take a context
// and go through the database/sql pool, so each request borrows a
// connection for the duration of its queries and releases it on return.
type Store struct {
	db *sql.DB
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// NewStore opens (creating if needed) the SQLite file at path and applies
// pending schema migrations.
func NewStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// User persistence

func (s *Store) CreateUser(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	if s.db == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		INSERT INTO users (email, hashed_password)
		VALUES (?, ?)
		RETURNING id, email, hashed_password, created_at
	`
	var created models.User
	err := s.db.QueryRowContext(ctx, query, email, hashedPassword).Scan(
		&created.ID,
		&created.Email,
		&created.HashedPassword,
		&created.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &created, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.db == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		SELECT id, email, hashed_password, created_at
		FROM users
		WHERE email = ?
	`
	var user models.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if s.db == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		SELECT id, email, hashed_password, created_at
		FROM users
		WHERE id = ?
	`
	var user models.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &user, nil
}

// Post persistence

func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	if s.db == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		SELECT id, title, content, owner_id, created_at
		FROM posts
		ORDER BY created_at DESC, id DESC
	`
	return s.queryPosts(ctx, query)
}

// ListPostsByOwner returns the posts owned by a single user. Ownership is a
// plain foreign key; there is no back-reference on User.
func (s *Store) ListPostsByOwner(ctx context.Context, ownerID int64) ([]models.Post, error) {
	if s.db == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		SELECT id, title, content, owner_id, created_at
		FROM posts
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC
	`
	return s.queryPosts(ctx, query, ownerID)
}

func (s *Store) queryPosts(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.OwnerID,
			&post.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return posts, nil
}

func (s *Store) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	if s.db == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		SELECT id, title, content, owner_id, created_at
		FROM posts
		WHERE id = ?
	`
	var post models.Post
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.OwnerID,
		&post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

func (s *Store) CreatePost(ctx context.Context, title, content string, ownerID int64) (*models.Post, error) {
	if s.db == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		INSERT INTO posts (title, content, owner_id)
		VALUES (?, ?, ?)
		RETURNING id, title, content, owner_id, created_at
	`
	var created models.Post
	err := s.db.QueryRowContext(ctx, query, title, content, ownerID).Scan(
		&created.ID,
		&created.Title,
		&created.Content,
		&created.OwnerID,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &created, nil
}

func (s *Store) UpdatePost(ctx context.Context, id int64, title, content string) (*models.Post, error) {
	if s.db == nil {
		return nil, errors.New("db not initialized")
	}
	const query = `
		UPDATE posts
		SET title = ?, content = ?
		WHERE id = ?
		RETURNING id, title, content, owner_id, created_at
	`
	var updated models.Post
	err := s.db.QueryRowContext(ctx, query, title, content, id).Scan(
		&updated.ID,
		&updated.Title,
		&updated.Content,
		&updated.OwnerID,
		&updated.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &updated, nil
}

func (s *Store) DeletePost(ctx context.Context, id int64) error {
	if s.db == nil {
		return errors.New("db not initialized")
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
