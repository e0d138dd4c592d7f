package model

import (
	"time"
)

type UserRole string

const (
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

// SubscriptionTier 订阅层级，决定每月生成配额
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

// swagger:model User
type User struct {
	BaseModel
	Name             string           `gorm:"size:100;not null" json:"name"`
	Email            string           `gorm:"size:100;unique;not null" json:"email"`
	Password         string           `gorm:"size:100;not null" json:"-"`
	Role             UserRole         `gorm:"type:enum('teacher','admin');default:'teacher'" json:"role"`
	Tier             SubscriptionTier `gorm:"type:enum('free','premium');default:'free'" json:"tier"`
	StripeCustomerID string           `gorm:"size:64" json:"-"`
	Disabled         bool             `gorm:"default:false" json:"disabled"`
	LastLogin        time.Time        `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen         time.Time        `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
