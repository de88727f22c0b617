package repository

import (
	"context"
	"errors"

	"github.com/etodastandetka/bingo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repository) SaveCasinoAccount(ctx context.Context, account *models.CasinoAccount) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "casino_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"account_id"}),
		}).
		Create(account).
		Error
}

func (r *Repository) GetCasinoAccount(ctx context.Context, userID int64, casinoID string) (*models.CasinoAccount, error) {
	var account models.CasinoAccount
	err := r.db.WithContext(ctx).
		First(&account, "user_id = ? AND casino_id = ?", userID, casinoID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}
