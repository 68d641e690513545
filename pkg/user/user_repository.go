package user

import (
	"context"
	"errors"
	"topup-backend/domain"
	"topup-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		UpdateUser(ctx context.Context, user *entities.User) error
		UpdateUserRole(ctx context.Context, id string, role string) error
		AssignRole(ctx context.Context, adminID string, targetID string, role string) error
		GetUsers(ctx context.Context) ([]*entities.User, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// EnsureAdminTx verifies the caller's role from the users table inside the
// supplied transaction, so a demoted admin cannot act on a stale token.
func EnsureAdminTx(tx *gorm.DB, adminID string) error {
	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return domain.ErrParseUUID
	}

	var u entities.User
	if err := tx.Select("role").Where("id = ?", adminUUID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotAllowed
		}
		return err
	}
	if u.Role != domain.RoleAdmin {
		return domain.ErrUserNotAllowed
	}
	return nil
}

// LockTx takes a row lock on the user for the rest of the transaction, so
// balance read-modify-writes serialize per user. Dialects without row
// locking (sqlite) ignore the clause.
func LockTx(tx *gorm.DB, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	var u entities.User
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", userUUID).
		First(&u).Error
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) UpdateUserRole(ctx context.Context, id string, role string) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (r *userRepository) AssignRole(ctx context.Context, adminID string, targetID string, role string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := EnsureAdminTx(tx, adminID); err != nil {
			return err
		}

		res := tx.Model(&entities.User{}).
			Where("id = ?", targetID).
			Update("role", role)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}

func (r *userRepository) GetUsers(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
