package entity

import "time"

// Follows are composite-keyed join rows; inserting an existing pair is a
// no-op (idempotent follow).

type ThreadFollow struct {
	ThreadID             string    `gorm:"size:40;primaryKey" json:"thread_id"`
	Thread               Thread    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID               string    `gorm:"size:40;primaryKey" json:"user_id"`
	User                 User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	NotificationsEnabled bool      `gorm:"default:true" json:"notifications_enabled"`
	FollowedAt           time.Time `gorm:"autoCreateTime" json:"followed_at"`
}

type CategoryFollow struct {
	CategoryID           string    `gorm:"size:40;primaryKey" json:"category_id"`
	Category             Category  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID               string    `gorm:"size:40;primaryKey" json:"user_id"`
	User                 User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	NotificationsEnabled bool      `gorm:"default:true" json:"notifications_enabled"`
	FollowedAt           time.Time `gorm:"autoCreateTime" json:"followed_at"`
}

type UserFollow struct {
	FollowedID           string    `gorm:"size:40;primaryKey" json:"followed_id"`
	Followed             User      `gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE" json:"-"`
	FollowerID           string    `gorm:"size:40;primaryKey" json:"follower_id"`
	Follower             User      `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	NotificationsEnabled bool      `gorm:"default:true" json:"notifications_enabled"`
	FollowedAt           time.Time `gorm:"autoCreateTime" json:"followed_at"`
}
