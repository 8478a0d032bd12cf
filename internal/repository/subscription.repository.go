package repository

import (
	"fmt"
	"foodgram/internal/apperrors"
	"foodgram/internal/models"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Subscribe(userID, authorID uint) error
	Unsubscribe(userID, authorID uint) error
	Exists(userID, authorID uint) (bool, error)
	// FindAuthors returns every author the user follows, ordered by username.
	FindAuthors(userID uint) ([]models.User, error)
	// FilterAuthorIDs returns, out of authorIDs, the subset the user follows.
	FilterAuthorIDs(userID uint, authorIDs []uint) (map[uint]bool, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db}
}

func (r *subscriptionRepository) Subscribe(userID, authorID uint) error {
	if userID == authorID {
		return fmt.Errorf("%w: you cannot subscribe to yourself", apperrors.ErrValidation)
	}
	err := r.db.Create(&models.Subscription{UserID: userID, AuthorID: authorID}).Error
	if apperrors.IsUniqueViolation(err) {
		return fmt.Errorf("%w: you are already subscribed to this user", apperrors.ErrConflict)
	}
	return err
}

func (r *subscriptionRepository) Unsubscribe(userID, authorID uint) error {
	result := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: you were not subscribed to this user", apperrors.ErrNotFound)
	}
	return nil
}

func (r *subscriptionRepository) Exists(userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) FindAuthors(userID uint) ([]models.User, error) {
	var authors []models.User
	err := r.db.
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Order("users.username").
		Find(&authors).Error
	return authors, err
}

func (r *subscriptionRepository) FilterAuthorIDs(userID uint, authorIDs []uint) (map[uint]bool, error) {
	subscribed := make(map[uint]bool, len(authorIDs))
	if len(authorIDs) == 0 {
		return subscribed, nil
	}
	var ids []uint
	err := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		subscribed[id] = true
	}
	return subscribed, nil
}
