package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nurse-directory/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	ListNurses(ctx context.Context) ([]model.Nurse, error)
	GetNurse(ctx context.Context, id int64) (model.Nurse, error)
	FindNurseByName(ctx context.Context, name string) (model.Nurse, error)
	FindNurseByUsername(ctx context.Context, username string) (model.Nurse, error)
	CreateNurse(ctx context.Context, n model.Nurse) (model.Nurse, error)
	UpdateNurse(ctx context.Context, id int64, n model.Nurse) (model.Nurse, error)
	DeleteNurse(ctx context.Context, id int64) error
	Authenticate(ctx context.Context, username, password string) (bool, error)
	Seed(ctx context.Context, nurses []model.Nurse) (int, error)
	DB() *gorm.DB
}

// Option configures the GORM store.
type Option func(*gormStore)

// WithHashCost sets the bcrypt cost used for stored passwords.
func WithHashCost(cost int) Option {
	return func(s *gormStore) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.hashCost = cost
		}
	}
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db       *gorm.DB
	hashCost int
}

// NewGormStore creates a new GORM-backed store. Passwords are kept as bcrypt
// hashes; records returned by the store carry the hash, never the plaintext.
func NewGormStore(db *gorm.DB, opts ...Option) Store {
	s := &gormStore{db: db, hashCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) ListNurses(ctx context.Context) ([]model.Nurse, error) {
	var nurses []model.Nurse
	if err := s.db.WithContext(ctx).Order("id").Find(&nurses).Error; err != nil {
		return nil, fmt.Errorf("failed to list nurses: %w", err)
	}
	return nurses, nil
}

func (s *gormStore) GetNurse(ctx context.Context, id int64) (model.Nurse, error) {
	return s.first(s.db.WithContext(ctx).Where("id = ?", id))
}

// FindNurseByName matches the first name exactly.
func (s *gormStore) FindNurseByName(ctx context.Context, name string) (model.Nurse, error) {
	return s.first(s.db.WithContext(ctx).Where("name = ?", name))
}

func (s *gormStore) FindNurseByUsername(ctx context.Context, username string) (model.Nurse, error) {
	return s.first(s.db.WithContext(ctx).Where("username = ?", username))
}

// CreateNurse inserts n with a fresh id. Email and username must be unused,
// compared case-insensitively.
func (s *gormStore) CreateNurse(ctx context.Context, n model.Nurse) (model.Nurse, error) {
	n = n.Normalized()
	n.ID = 0

	hash, err := s.hash(n.Password)
	if err != nil {
		return model.Nurse{}, err
	}
	n.Password = hash

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkConflict(tx, n, 0); err != nil {
			return err
		}
		return translate(tx.Create(&n).Error)
	})
	if err != nil {
		return model.Nurse{}, fmt.Errorf("failed to create nurse %q: %w", n.Username, err)
	}
	return n, nil
}

// UpdateNurse replaces the mutable fields of nurse id. An empty password
// keeps the stored hash.
func (s *gormStore) UpdateNurse(ctx context.Context, id int64, n model.Nurse) (model.Nurse, error) {
	n = n.Normalized()

	var updated model.Nurse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.first(tx.Where("id = ?", id))
		if err != nil {
			return err
		}
		if err := checkConflict(tx, n, id); err != nil {
			return err
		}

		existing.Name = n.Name
		existing.Surname = n.Surname
		existing.Email = n.Email
		existing.Username = n.Username
		existing.Profile = n.Profile
		if n.Password != "" {
			if existing.Password, err = s.hash(n.Password); err != nil {
				return err
			}
		}
		if err := translate(tx.Save(&existing).Error); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return model.Nurse{}, fmt.Errorf("failed to update nurse %d: %w", id, err)
	}
	return updated, nil
}

func (s *gormStore) DeleteNurse(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Nurse{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete nurse %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Authenticate reports whether password matches the stored hash for username.
// An unknown username is not an error.
func (s *gormStore) Authenticate(ctx context.Context, username, password string) (bool, error) {
	n, err := s.FindNurseByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(n.Password), []byte(password)) == nil, nil
}

// Seed creates nurses only when the table is empty and returns how many were added.
func (s *gormStore) Seed(ctx context.Context, nurses []model.Nurse) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Nurse{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count nurses: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for i, n := range nurses {
		if _, err := s.CreateNurse(ctx, n); err != nil {
			return i, err
		}
	}
	return len(nurses), nil
}

func (s *gormStore) first(q *gorm.DB) (model.Nurse, error) {
	var n model.Nurse
	if err := q.Order("id").First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Nurse{}, ErrNotFound
		}
		return model.Nurse{}, err
	}
	return n, nil
}

func (s *gormStore) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

// checkConflict looks for another nurse holding n's email or username.
// exclude skips the record being updated.
func checkConflict(tx *gorm.DB, n model.Nurse, exclude int64) error {
	q := tx.Where("LOWER(email) = LOWER(?) OR LOWER(username) = LOWER(?)", n.Email, n.Username)
	if exclude != 0 {
		q = q.Where("id <> ?", exclude)
	}

	var clashes []model.Nurse
	if err := q.Find(&clashes).Error; err != nil {
		return fmt.Errorf("failed to check uniqueness: %w", err)
	}
	for _, c := range clashes {
		if strings.EqualFold(c.Email, n.Email) {
			return ErrEmailTaken
		}
	}
	if len(clashes) > 0 {
		return ErrUsernameTaken
	}
	return nil
}

// translate maps a unique index violation that slipped past checkConflict.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}
