package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jewelry_store/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultUserPassword is given to accounts created from the back-office without a password
const DefaultUserPassword = "123456"

// UserPageSize is the admin user list page size
const UserPageSize = 10

// NewUser describes an account created by an admin
type NewUser struct {
	Username string
	Email    string
	Password string // Defaults to DefaultUserPassword
	Role     string // Defaults to user
}

// UserPatch holds the fields of a partial user update
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
}

// UserFilter narrows the admin user list
type UserFilter struct {
	Search   string // Substring of username or email, case-insensitive
	Role     string // admin, user, or empty/"all"
	Page     int
	PageSize int
}

// AdminSeed describes the admin account synthesized on startup
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// UserStore manages accounts and credentials
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a user store
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// taken reports whether username or email is used by an account other than excludeID
func (s *UserStore) taken(ctx context.Context, username, email string, excludeID uint) (bool, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&domain.User{}).Where("username = ? OR email = ?", username, email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check user uniqueness: %w", err)
	}
	return count > 0, nil
}

func (s *UserStore) create(ctx context.Context, username, email, password, role string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	var absent []string
	if username == "" {
		absent = append(absent, "username")
	}
	if email == "" {
		absent = append(absent, "email")
	}
	if password == "" {
		absent = append(absent, "password")
	}
	if len(absent) > 0 {
		return nil, missing(absent...)
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if !domain.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	exists, err := s.taken(ctx, username, email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	user := domain.User{Username: username, Email: email, Password: hash, Role: role}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Register creates a regular account
func (s *UserStore) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.create(ctx, username, email, password, domain.RoleUser)
}

// Add creates an account from the back-office
func (s *UserStore) Add(ctx context.Context, nu NewUser) (*domain.User, error) {
	if nu.Password == "" {
		nu.Password = DefaultUserPassword
	}
	if nu.Role == "" {
		nu.Role = domain.RoleUser
	}
	return s.create(ctx, nu.Username, nu.Email, nu.Password, nu.Role)
}

// Authenticate checks a password against the account whose username or email is identifier
func (s *UserStore) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ? OR email = ?", identifier, identifier).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get loads a user by id
func (s *UserStore) Get(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

// GetByEmail loads a user by email
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// Update applies a partial update. Usernames and emails stay unique.
func (s *UserStore) Update(ctx context.Context, id uint, patch UserPatch) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Username != nil {
		if strings.TrimSpace(*patch.Username) == "" {
			return nil, missing("username")
		}
		user.Username = strings.TrimSpace(*patch.Username)
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" {
			return nil, missing("email")
		}
		if !strings.Contains(email, "@") {
			return nil, ErrInvalidEmail
		}
		user.Email = email
	}
	if patch.Role != nil {
		if !domain.ValidRole(*patch.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = *patch.Role
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return nil, missing("password")
		}
		hash, err := hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	exists, err := s.taken(ctx, user.Username, user.Email, user.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return user, nil
}

// Delete removes an account
func (s *UserStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// List returns a page of users matching the filter plus the total match count
func (s *UserStore) List(ctx context.Context, f UserFilter) ([]domain.User, int64, error) {
	query := s.db.WithContext(ctx).Model(&domain.User{})
	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if f.Role != "" && f.Role != "all" {
		query = query.Where("role = ?", f.Role)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = UserPageSize
	}
	page := max(f.Page, 1)
	users := []domain.User{}
	if err := query.Order("id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// Count returns the number of accounts
func (s *UserStore) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

// EnsureAdmin creates the seed admin when no account uses its email or username.
// It reports whether an account was created.
func (s *UserStore) EnsureAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	if _, err := s.GetByEmail(ctx, seed.Email); err == nil {
		return false, nil // Seed admin already present
	} else if !errors.Is(err, ErrUserNotFound) {
		return false, err
	}
	user, err := s.create(ctx, seed.Username, seed.Email, seed.Password, domain.RoleAdmin)
	if errors.Is(err, ErrUserExists) {
		// The seed username belongs to an existing account, e.g. an admin who changed their email
		logrus.WithFields(logrus.Fields{"username": seed.Username, "email": seed.Email}).Warn("Seed admin skipped, username already in use")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("Default admin created")
	return true, nil
}
