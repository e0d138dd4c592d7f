package service

import (
	"errors"
	"testing"

	"sensory_sheets_backend/internal/config"
	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

// missingUserStore 查不到任何用户
type missingUserStore struct{}

func (missingUserStore) FindByID(uint) (*model.User, error) {
	return nil, errors.New("record not found")
}

func (missingUserStore) FindByStripeCustomer(string) (*model.User, error) {
	return nil, errors.New("record not found")
}

func (missingUserStore) SetStripeCustomer(uint, string) error { return nil }

func (missingUserStore) UpdateSubscription(uint, model.SubscriptionTier) error { return nil }

func TestCreateSessionUnknownUser(t *testing.T) {
	svc := &CheckoutService{UserRepo: missingUserStore{}, Cfg: &config.Config{}}

	_, err := svc.CreateSubscriptionSession(42)
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	_, err = svc.CreateOneTimeSession(42)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestMapProviderError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want string
	}{
		{"card declined", errors.New("Your card was declined."), "卡片被拒绝，请更换支付方式"},
		{"bad api key", errors.New("Invalid API_KEY provided"), "支付服务暂不可用"},
		{"authentication", errors.New("authentication required"), "支付服务暂不可用"},
		{"rate limited", errors.New("Rate limit exceeded"), "请求过于频繁，请稍后再试"},
		{"anything else", errors.New("network unreachable"), "支付创建失败，请稍后再试"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.EqualError(t, mapProviderError(c.in), c.want)
		})
	}
}
