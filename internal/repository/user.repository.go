package repository

import (
	"fmt"
	"foodgram/internal/apperrors"
	"foodgram/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindAll(limit, offset int) ([]models.User, int64, error)
	Update(user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(user *models.User) error {
	err := r.db.Create(user).Error
	if apperrors.IsUniqueViolation(err) {
		return fmt.Errorf("%w: user with this email or username already exists", apperrors.ErrConflict)
	}
	return err
}

func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if apperrors.IsRecordNotFound(err) {
			return nil, fmt.Errorf("%w: no user with id %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if apperrors.IsRecordNotFound(err) {
			return nil, fmt.Errorf("%w: no user with email %s", apperrors.ErrNotFound, email)
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(limit, offset int) ([]models.User, int64, error) {
	if limit <= 0 {
		limit = -1
	}
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	err := r.db.Order("username").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
