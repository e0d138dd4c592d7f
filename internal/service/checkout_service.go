package service

import (
	"errors"
	"sensory_sheets_backend/internal/config"
	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/util"
	"sensory_sheets_backend/pkg/logger"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"
	"go.uber.org/zap"
)

// CheckoutUserStore 支付流程用到的用户存储子集
type CheckoutUserStore interface {
	FindByID(id uint) (*model.User, error)
	FindByStripeCustomer(customerID string) (*model.User, error)
	SetStripeCustomer(userID uint, customerID string) error
	UpdateSubscription(userID uint, tier model.SubscriptionTier) error
}

// CheckoutService 订阅升级的支付会话管理。
// 支付商的原始报错永远不回传给前端，只映射成短消息。
type CheckoutService struct {
	UserRepo CheckoutUserStore
	Cfg      *config.Config
}

func NewCheckoutService(userRepo CheckoutUserStore, cfg *config.Config) *CheckoutService {
	stripe.Key = cfg.Stripe.SecretKey
	return &CheckoutService{UserRepo: userRepo, Cfg: cfg}
}

// CheckoutResult 返回给前端的跳转信息
type CheckoutResult struct {
	SessionID   string `json:"sessionId"`
	CheckoutURL string `json:"checkoutUrl"`
}

// CreateSubscriptionSession 为用户创建订阅支付会话。
// 已经是 premium 的用户直接拒绝，避免重复扣费。
func (s *CheckoutService) CreateSubscriptionSession(userID uint) (*CheckoutResult, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if user.Tier == model.TierPremium {
		return nil, errors.New("已是高级订阅用户")
	}

	customerID, err := s.ensureCustomer(user)
	if err != nil {
		return nil, mapProviderError(err)
	}

	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.Cfg.Stripe.SubscriptionPrice),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(s.Cfg.Stripe.SuccessURL),
		CancelURL:         stripe.String(s.Cfg.Stripe.CancelURL),
		ClientReferenceID: stripe.String(user.Email),
	}

	sess, err := session.New(params)
	if err != nil {
		logger.Log.Error("Failed to create checkout session",
			zap.Uint("userID", userID),
			zap.Error(err))
		return nil, mapProviderError(err)
	}

	return &CheckoutResult{SessionID: sess.ID, CheckoutURL: sess.URL}, nil
}

// CreateOneTimeSession 单次购买（打印包）支付会话，不改变订阅档位
func (s *CheckoutService) CreateOneTimeSession(userID uint) (*CheckoutResult, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	customerID, err := s.ensureCustomer(user)
	if err != nil {
		return nil, mapProviderError(err)
	}

	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.Cfg.Stripe.OneTimePrice),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(s.Cfg.Stripe.SuccessURL),
		CancelURL:         stripe.String(s.Cfg.Stripe.CancelURL),
		ClientReferenceID: stripe.String(user.Email),
	}

	sess, err := session.New(params)
	if err != nil {
		logger.Log.Error("Failed to create one-time checkout session",
			zap.Uint("userID", userID),
			zap.Error(err))
		return nil, mapProviderError(err)
	}

	return &CheckoutResult{SessionID: sess.ID, CheckoutURL: sess.URL}, nil
}

// ensureCustomer 复用已有的支付侧客户，没有则创建并回写
func (s *CheckoutService) ensureCustomer(user *model.User) (string, error) {
	if user.StripeCustomerID != "" {
		return user.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(user.Name),
	}
	cust, err := customer.New(params)
	if err != nil {
		return "", err
	}

	if err := s.UserRepo.SetStripeCustomer(user.ID, cust.ID); err != nil {
		return "", err
	}
	return cust.ID, nil
}

// ConfirmSubscription 支付回跳后的落账：升级档位
func (s *CheckoutService) ConfirmSubscription(sessionID string) (*model.User, error) {
	sess, err := session.Get(sessionID, nil)
	if err != nil {
		return nil, mapProviderError(err)
	}
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil, errors.New("支付尚未完成")
	}
	if sess.Customer == nil {
		return nil, errors.New("支付会话缺少客户信息")
	}

	user, err := s.UserRepo.FindByStripeCustomer(sess.Customer.ID)
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.UpdateSubscription(user.ID, model.TierPremium); err != nil {
		return nil, err
	}
	user.Tier = model.TierPremium
	return user, nil
}

// mapProviderError 把支付商错误折叠为可示人的短消息
func mapProviderError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "card"):
		return errors.New("卡片被拒绝，请更换支付方式")
	case strings.Contains(msg, "api_key"), strings.Contains(msg, "authentication"):
		return errors.New("支付服务暂不可用")
	case strings.Contains(msg, "rate limit"):
		return errors.New("请求过于频繁，请稍后再试")
	default:
		return errors.New("支付创建失败，请稍后再试")
	}
}
