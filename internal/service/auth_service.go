package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"skill_insight_backend/internal/config"
	"skill_insight_backend/internal/model"
	"skill_insight_backend/internal/repository"
	"skill_insight_backend/internal/util"
	"skill_insight_backend/pkg/logger"
)

// AuthService 服务账号认证：API Key 换 JWT，Key 只以 bcrypt 哈希落库
type AuthService struct {
	AccountRepo *repository.ServiceAccountRepository
	Cfg         *config.Config
}

func NewAuthService(accountRepo *repository.ServiceAccountRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		AccountRepo: accountRepo,
		Cfg:         cfg,
	}
}

// IssueToken 校验账号与 API Key，通过后签发 JWT
func (s *AuthService) IssueToken(name, apiKey string) (string, *model.ServiceAccount, error) {
	account, err := s.AccountRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 账号不存在与密钥错误返回同一种错误，避免账号名探测
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if account.Disabled {
		return "", nil, util.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.KeyHash), []byte(apiKey)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(account, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// CreateAccount 创建服务账号，明文 Key 只在这次返回，之后无法找回
func (s *AuthService) CreateAccount(name string, role model.AccountRole) (*model.ServiceAccount, string, error) {
	_, err := s.AccountRepo.FindByName(name)
	if err == nil {
		return nil, "", util.ErrAccountExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	apiKey := generateAPIKey()
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	account := &model.ServiceAccount{
		Name:    name,
		KeyHash: string(hash),
		Role:    role,
	}
	if err := s.AccountRepo.Create(account); err != nil {
		return nil, "", err
	}
	return account, apiKey, nil
}

// EnsureBootstrapAccount 按配置种子管理员账号，已存在时不动
func (s *AuthService) EnsureBootstrapAccount() error {
	if s.Cfg.Auth.BootstrapAccount == "" || s.Cfg.Auth.BootstrapKey == "" {
		return nil
	}

	if s.Cfg.Server.Mode == "release" {
		logger.Log.Warn("release 模式仍配置了引导账号密钥，建议清空该配置并改用管理接口发放账号")
	}

	_, err := s.AccountRepo.FindByName(s.Cfg.Auth.BootstrapAccount)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Cfg.Auth.BootstrapKey), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account := &model.ServiceAccount{
		Name:    s.Cfg.Auth.BootstrapAccount,
		KeyHash: string(hash),
		Role:    model.RoleAdmin,
	}
	if err := s.AccountRepo.Create(account); err != nil {
		return err
	}
	logger.Log.Info("已创建引导管理员服务账号", zap.String("name", account.Name))
	return nil
}

// generateAPIKey 生成带前缀的随机 Key，uuid v4 底层为 crypto/rand
func generateAPIKey() string {
	return "sik_" + strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
