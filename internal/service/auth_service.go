package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trademini-be/internal/config"
	"trademini-be/internal/dto"
	"trademini-be/internal/entity"
	"trademini-be/internal/repository/unitofwork"
	"trademini-be/pkg/telegram"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAdmin           = errors.New("account has no admin access")
)

type IAuthService interface {
	LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)

	// MiniAppSession exchanges a signed Telegram init-data payload for a
	// session token. Banned users still get a session so the mini-app
	// can show them the banned screen; the Banned flag tells it to.
	MiniAppSession(ctx context.Context, req *dto.MiniAppSessionRequest) (*dto.MiniAppSessionResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	banService IBanService
	cfg        *config.Config
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, banService IBanService, cfg *config.Config) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		banService: banService,
		cfg:        cfg,
	}
}

func (s *authService) signToken(user *entity.User) (string, int64, error) {
	lifetime := s.cfg.Auth.TokenLifetime
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     time.Now().Add(lifetime).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.JwtSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, int64(lifetime.Seconds()), nil
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:         user.Id,
		TelegramId: user.TelegramId,
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       string(user.Role),
		Status:     string(user.Status),
	}
}

func (s *authService) LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Role != entity.UserRoleAdmin {
		return nil, ErrNotAdmin
	}

	signed, expiresIn, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		ExpiresIn:   expiresIn,
		User:        toUserResponse(user),
	}, nil
}

func (s *authService) MiniAppSession(ctx context.Context, req *dto.MiniAppSessionRequest) (*dto.MiniAppSessionResponse, error) {
	initData, err := telegram.ValidateInitData(req.InitData, s.cfg.Telegram.BotToken, s.cfg.Telegram.InitDataMaxAge)
	if err != nil {
		return nil, err
	}
	if initData.User == nil {
		return nil, fmt.Errorf("init data carries no user")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByTelegramId(ctx, initData.User.Id)
	if err != nil {
		return nil, err
	}

	fullName := initData.User.FirstName
	if initData.User.LastName != "" {
		fullName += " " + initData.User.LastName
	}

	if user == nil {
		tgId := initData.User.Id
		user = &entity.User{
			Id:         uuid.New(),
			TelegramId: &tgId,
			FullName:   fullName,
			Role:       entity.UserRoleUser,
			Status:     entity.UserStatusActive,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
	} else if user.FullName != fullName && fullName != "" {
		user.FullName = fullName
		user.UpdatedAt = time.Now()
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	banned, err := s.banService.IsBanned(ctx, fmt.Sprintf("%d", initData.User.Id))
	if err != nil {
		return nil, err
	}

	signed, expiresIn, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.MiniAppSessionResponse{
		AccessToken: signed,
		ExpiresIn:   expiresIn,
		User:        toUserResponse(user),
		Banned:      banned,
	}, nil
}
