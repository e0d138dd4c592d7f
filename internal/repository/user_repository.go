package repository

import (
	"sensory_sheets_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByStripeCustomer(customerID string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("stripe_customer_id = ?", customerID).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// UpdateSubscription 订阅档位随支付结果变更
func (r *UserRepository) UpdateSubscription(userID uint, tier model.SubscriptionTier) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("tier", tier).
		Error
}

func (r *UserRepository) SetStripeCustomer(userID uint, customerID string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("stripe_customer_id", customerID).
		Error
}
