package models

import "time"

// Subscription is a directed follow edge: UserID follows AuthorID.
// Self-subscription is rejected before the insert ever happens.
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_subscription_user_author" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_subscription_user_author" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
