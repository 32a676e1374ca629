package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"voyago/internal/models/db_models"
)

type AccountRepository interface {
	InsertTx(account *db_models.Account, ctx context.Context) error
	FindById(ctx context.Context, id string) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) InsertTx(account *db_models.Account, ctx context.Context) error {
	return a.db.WithContext(ctx).Create(account).Error
}

func (a *accountRepository) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.db.WithContext(ctx).First(&account, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}
