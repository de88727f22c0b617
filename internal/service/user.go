package service

import (
	"context"

	"github.com/etodastandetka/bingo/internal/models"
)

// User возвращает локальную запись пользователя, создавая её при первом
// обращении.
func (s *UserService) User(ctx context.Context, telegramID int64) (*models.BotUser, error) {
	user, err := s.repo.GetUser(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &models.BotUser{TelegramID: telegramID, Language: "ru"}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetLanguage(ctx context.Context, telegramID int64, language string) error {
	if _, err := s.User(ctx, telegramID); err != nil {
		return err
	}
	return s.repo.SetLanguage(ctx, telegramID, language)
}

// SaveAccount запоминает последний использованный ID счёта в казино для
// кнопки автозаполнения.
func (s *UserService) SaveAccount(ctx context.Context, telegramID int64, casinoID, accountID string) error {
	if _, err := s.User(ctx, telegramID); err != nil {
		return err
	}
	return s.repo.SaveCasinoAccount(ctx, &models.CasinoAccount{
		UserID:    telegramID,
		CasinoID:  casinoID,
		AccountID: accountID,
	})
}

func (s *UserService) LastAccount(ctx context.Context, telegramID int64, casinoID string) (string, error) {
	account, err := s.repo.GetCasinoAccount(ctx, telegramID, casinoID)
	if err != nil || account == nil {
		return "", err
	}
	return account.AccountID, nil
}

func (s *UserService) SavePhone(ctx context.Context, telegramID int64, phone string) error {
	if _, err := s.User(ctx, telegramID); err != nil {
		return err
	}
	return s.repo.SetWithdrawPhone(ctx, telegramID, phone)
}

func (s *UserService) LastPhone(ctx context.Context, telegramID int64) (string, error) {
	user, err := s.repo.GetUser(ctx, telegramID)
	if err != nil || user == nil {
		return "", err
	}
	return user.LastWithdrawPhone, nil
}
