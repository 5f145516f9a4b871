package service

import (
	"errors" // Error inspection
	"fmt"    // Error wrapping

	"task_system/internal/domain" // Importing domain models
	"task_system/internal/utils"  // Password hashing

	"gorm.io/gorm" // GORM ORM library
)

// UserService handles registration, login, profile reads and account deletion
type UserService struct {
	db *gorm.DB // Database handle, one scoped session per call
}

// NewUserService creates a UserService
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user with a freshly hashed password.
// Returns ErrConflict when the username is already taken.
func (s *UserService) Register(username, password string) (domain.User, error) {
	// Check if the username already exists
	var existing domain.User
	err := s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return domain.User{}, ErrConflict // Username taken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, fmt.Errorf("lookup username: %w", err)
	}
	// Hash the password and create the user
	hash, err := utils.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{Username: username, HashedPassword: hash}
	// The unique constraint on username backstops the pre-check
	if err := s.db.Create(&user).Error; err != nil {
		return domain.User{}, ErrConflict
	}
	return user, nil
}

// Login verifies credentials and returns the matching user.
// Unknown username and wrong password both yield ErrUnauthorized
// so callers cannot probe which usernames exist.
func (s *UserService) Login(username, password string) (domain.User, error) {
	var user domain.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return domain.User{}, ErrUnauthorized
	}
	// Compare provided password with stored hash
	if !utils.CheckPassword(password, user.HashedPassword) {
		return domain.User{}, ErrUnauthorized
	}
	return user, nil
}

// UpdateProfile applies a partial update to a user: a non-empty username
// replaces the old one, a non-empty password is re-hashed and stored.
// A plaintext password is always hashed here; a pre-hashed value is
// never accepted from outside.
func (s *UserService) UpdateProfile(id uint, username, password string) (domain.User, error) {
	var user domain.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if username != "" {
		user.Username = username
	}
	if password != "" {
		hash, err := utils.HashPassword(password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.HashedPassword = hash
	}
	if err := s.db.Save(&user).Error; err != nil {
		return domain.User{}, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// DeleteAccount removes the user and all tasks they own in one transaction.
// No orphan tasks may survive the owner.
func (s *UserService) DeleteAccount(user domain.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		// Delete owned tasks first
		if err := tx.Where("owner_id = ?", user.ID).Delete(&domain.Task{}).Error; err != nil {
			return err // Return error to rollback
		}
		// Delete the user row
		if err := tx.Delete(&domain.User{}, user.ID).Error; err != nil {
			return err // Return error to rollback
		}
		return nil // Commit transaction
	})
}
