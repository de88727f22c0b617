package repository

import (
	"context"
	"errors"

	"github.com/etodastandetka/bingo/internal/models"
	"gorm.io/gorm"
)

func (r *Repository) GetUser(ctx context.Context, telegramID int64) (*models.BotUser, error) {
	var user models.BotUser
	err := r.db.WithContext(ctx).Preload("Accounts").First(&user, "telegram_id = ?", telegramID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *models.BotUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *Repository) UpdateUser(ctx context.Context, user *models.BotUser) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *Repository) SetLanguage(ctx context.Context, telegramID int64, language string) error {
	return r.db.WithContext(ctx).
		Model(&models.BotUser{}).
		Where("telegram_id = ?", telegramID).
		Update("language", language).
		Error
}

func (r *Repository) SetWithdrawPhone(ctx context.Context, telegramID int64, phone string) error {
	return r.db.WithContext(ctx).
		Model(&models.BotUser{}).
		Where("telegram_id = ?", telegramID).
		Update("last_withdraw_phone", phone).
		Error
}
