package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login success"
	MessageSuccessGetProfile     = "profile retrieved successfully"
	MessageSuccessSaveProfile    = "profile saved successfully"
	MessageSuccessGetRole        = "role retrieved successfully"
	MessageSuccessAssignRole     = "role assigned successfully"
	MessageSuccessClaimAdmin     = "admin access processed"
	MessageSuccessGetUsers       = "users retrieved successfully"

	MessageFailedRegister    = "failed to register user"
	MessageFailedLogin       = "failed to login"
	MessageFailedGetProfile  = "failed to retrieve profile"
	MessageFailedSaveProfile = "failed to save profile"
	MessageFailedAssignRole  = "failed to assign role"
	MessageFailedClaimAdmin  = "failed to claim admin access"
	MessageFailedGetUsers    = "failed to retrieve users"

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("invalid role")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Name     string `json:"name" validate:"required"`
		Phone    string `json:"phone" validate:"required"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	AuthResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UserProfile struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
		Phone string `json:"phone" validate:"required"`
	}

	ClaimAdminAccessRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	AssignRoleRequest struct {
		UserID string `json:"user_id" validate:"required,uuid"`
		Role   string `json:"role" validate:"required,oneof=guest user admin"`
	}

	UserWithProfile struct {
		ID        string      `json:"id"`
		Role      string      `json:"role"`
		Profile   UserProfile `json:"profile"`
		CreatedAt time.Time   `json:"created_at"`
	}
)
