package user

import (
	"context"
	"fmt"
	"testing"
	"time"
	"topup-backend/domain"
	"topup-backend/entities"
	"topup-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, role string) string {
	t.Helper()
	u := &entities.User{
		ID:    uuid.New(),
		Email: fmt.Sprintf("%s@example.com", uuid.NewString()),
		Name:  "Test User",
		Role:  role,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	require.NoError(t, db.Create(u).Error)
	return u.ID.String()
}

func newTestService(db *gorm.DB) UserService {
	return NewUserService(NewUserRepository(db), jwt.NewJWTService(), "admin", "supersecret")
}

func TestRegisterAssignsGuestRole(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)

	resp, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
		Phone:    "01700000000",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleGuest, resp.Role)
	require.NotEmpty(t, resp.Token)

	// the stored password is hashed
	var stored entities.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&stored).Error)
	require.NotEqual(t, "password123", stored.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)

	req := domain.RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
		Phone:    "01700000000",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     "Alice",
		Phone:    "01700000000",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrongpassword",
	})
	require.ErrorIs(t, err, domain.ErrCredentialsInvalid)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	require.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestSaveProfilePromotesGuest(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	userID := createUser(t, db, domain.RoleGuest)

	require.NoError(t, svc.SaveProfile(context.Background(), domain.UserProfile{
		Name:  "Bob",
		Email: "bob@example.com",
		Phone: "01800000000",
	}, userID))

	role, err := svc.GetRole(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, role)

	profile, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, "Bob", profile.Name)
}

func TestSaveProfileKeepsAdminRole(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	adminID := createUser(t, db, domain.RoleAdmin)

	require.NoError(t, svc.SaveProfile(context.Background(), domain.UserProfile{
		Name:  "Admin",
		Email: "admin@example.com",
		Phone: "01900000000",
	}, adminID))

	role, err := svc.GetRole(context.Background(), adminID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, role)
}

func TestGetRoleUnknownUserIsGuest(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)

	role, err := svc.GetRole(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, domain.RoleGuest, role)

	role, err = svc.GetRole(context.Background(), uuid.NewString())
	require.NoError(t, err)
	require.Equal(t, domain.RoleGuest, role)
}

func TestGetProfileUnknownUserIsNil(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)

	profile, err := svc.GetProfile(context.Background(), uuid.NewString())
	require.NoError(t, err)
	require.Nil(t, profile)
}

func TestClaimAdminAccess(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	userID := createUser(t, db, domain.RoleUser)

	granted, err := svc.ClaimAdminAccess(context.Background(), userID, domain.ClaimAdminAccessRequest{
		Username: "admin",
		Password: "wrong",
	})
	require.NoError(t, err)
	require.False(t, granted)

	granted, err = svc.ClaimAdminAccess(context.Background(), userID, domain.ClaimAdminAccessRequest{
		Username: "admin",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.True(t, granted)

	isAdmin, err := svc.IsAdmin(context.Background(), userID)
	require.NoError(t, err)
	require.True(t, isAdmin)
}

func TestClaimAdminAccessDisabledWithoutCredentials(t *testing.T) {
	db := setupDB(t)
	svc := NewUserService(NewUserRepository(db), jwt.NewJWTService(), "", "")
	userID := createUser(t, db, domain.RoleUser)

	// unset credentials never grant, even on an empty-string match
	granted, err := svc.ClaimAdminAccess(context.Background(), userID, domain.ClaimAdminAccessRequest{
		Username: "",
		Password: "",
	})
	require.NoError(t, err)
	require.False(t, granted)
}

func TestAssignRole(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	adminID := createUser(t, db, domain.RoleAdmin)
	userID := createUser(t, db, domain.RoleUser)

	err := svc.AssignRole(context.Background(), userID, domain.AssignRoleRequest{
		UserID: adminID,
		Role:   domain.RoleGuest,
	})
	require.ErrorIs(t, err, domain.ErrUserNotAllowed)

	require.NoError(t, svc.AssignRole(context.Background(), adminID, domain.AssignRoleRequest{
		UserID: userID,
		Role:   domain.RoleAdmin,
	}))

	role, err := svc.GetRole(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, role)

	err = svc.AssignRole(context.Background(), adminID, domain.AssignRoleRequest{
		UserID: uuid.NewString(),
		Role:   domain.RoleUser,
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetUsers(t *testing.T) {
	db := setupDB(t)
	svc := newTestService(db)
	createUser(t, db, domain.RoleUser)
	createUser(t, db, domain.RoleAdmin)

	users, err := svc.GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
}
