package service

import (
	"context"

	"github.com/etodastandetka/bingo/internal/models"
	"github.com/etodastandetka/bingo/utils"
)

type Repository interface {
	GetUser(ctx context.Context, telegramID int64) (*models.BotUser, error)
	CreateUser(ctx context.Context, user *models.BotUser) error
	UpdateUser(ctx context.Context, user *models.BotUser) error
	SetLanguage(ctx context.Context, telegramID int64, language string) error
	SetWithdrawPhone(ctx context.Context, telegramID int64, phone string) error

	SaveCasinoAccount(ctx context.Context, account *models.CasinoAccount) error
	GetCasinoAccount(ctx context.Context, userID int64, casinoID string) (*models.CasinoAccount, error)
}

type UserService struct {
	repo   Repository
	logger *utils.Logger
}

func NewUserService(repo Repository, logger *utils.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}
