package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/ajutor-app/ajutor/internal/modules/repo"
	"github.com/ajutor-app/ajutor/internal/pkg/apperr"
)

var emailRegex = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

const bcryptCost = 10

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Phone    *string
}

type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	ResetPassword(ctx context.Context, email, password string) (*model.User, error)
}

type userService struct {
	r repo.UserRepo
}

func NewUserService(r repo.UserRepo) UserService {
	return &userService{r: r}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.Validation("name, email and password are required")
	}

	email := normalizeEmail(in.Email)
	if !emailRegex.MatchString(email) {
		return nil, apperr.Validation("invalid email")
	}

	if _, err := s.r.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
	}
	if err := s.r.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("email already in use")
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.r.List(ctx)
}

func (s *userService) Login(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}
	email = normalizeEmail(email)
	if !emailRegex.MatchString(email) {
		return nil, apperr.Validation("invalid email")
	}

	user, err := s.r.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.PasswordHash == "" {
		// legacy row created without a hash: adopt the supplied password
		hash, herr := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if herr != nil {
			return nil, fmt.Errorf("hash password: %w", herr)
		}
		if uerr := s.r.UpdatePasswordHash(ctx, user.ID, string(hash)); uerr != nil {
			return nil, fmt.Errorf("store password hash: %w", uerr)
		}
		user.PasswordHash = string(hash)
		return user, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.Unauthorized("wrong password")
	}
	return user, nil
}

// ResetPassword overwrites the stored hash. Development helper, as in the
// verification endpoints: no code or token is required.
func (s *userService) ResetPassword(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}
	email = normalizeEmail(email)
	if !emailRegex.MatchString(email) {
		return nil, apperr.Validation("invalid email")
	}

	user, err := s.r.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.r.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return nil, fmt.Errorf("store password hash: %w", err)
	}
	user.PasswordHash = string(hash)
	return user, nil
}
