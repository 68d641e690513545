package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"
	"topup-backend/domain"
	"topup-backend/entities"
	"topup-backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
		GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
		SaveProfile(ctx context.Context, req domain.UserProfile, userID string) error
		GetRole(ctx context.Context, userID string) (string, error)
		IsAdmin(ctx context.Context, userID string) (bool, error)
		ClaimAdminAccess(ctx context.Context, userID string, req domain.ClaimAdminAccessRequest) (bool, error)
		AssignRole(ctx context.Context, adminID string, req domain.AssignRoleRequest) error
		GetUsers(ctx context.Context) ([]*domain.UserWithProfile, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		adminUsername  string
		adminPassword  string
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, adminUsername, adminPassword string) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		adminUsername:  adminUsername,
		adminPassword:  adminPassword,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     domain.RoleGuest,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return &domain.AuthResponse{Token: token, Role: user.Role}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialsInvalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return &domain.AuthResponse{Token: token, Role: user.Role}, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &domain.UserProfile{
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
	}, nil
}

func (s *userService) SaveProfile(ctx context.Context, req domain.UserProfile, userID string) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Phone = req.Phone
	if user.Role == domain.RoleGuest {
		user.Role = domain.RoleUser
	}
	user.UpdatedAt = time.Now()

	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) GetRole(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return domain.RoleGuest, nil
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RoleGuest, nil
		}
		return "", err
	}
	return user.Role, nil
}

func (s *userService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	role, err := s.GetRole(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == domain.RoleAdmin, nil
}

// ClaimAdminAccess compares both fields in constant time and never reports
// which one was wrong.
func (s *userService) ClaimAdminAccess(ctx context.Context, userID string, req domain.ClaimAdminAccessRequest) (bool, error) {
	if s.adminUsername == "" || s.adminPassword == "" {
		return false, nil
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.adminUsername))
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.adminPassword))
	if userOK&passOK != 1 {
		return false, nil
	}

	if err := s.userRepository.UpdateUserRole(ctx, userID, domain.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}

func (s *userService) AssignRole(ctx context.Context, adminID string, req domain.AssignRoleRequest) error {
	return s.userRepository.AssignRole(ctx, adminID, req.UserID, req.Role)
}

func (s *userService) GetUsers(ctx context.Context) ([]*domain.UserWithProfile, error) {
	users, err := s.userRepository.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.UserWithProfile, 0, len(users))
	for _, u := range users {
		result = append(result, &domain.UserWithProfile{
			ID:   u.ID.String(),
			Role: u.Role,
			Profile: domain.UserProfile{
				Name:  u.Name,
				Email: u.Email,
				Phone: u.Phone,
			},
			CreatedAt: u.CreatedAt,
		})
	}
	return result, nil
}
