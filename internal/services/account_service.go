package services

import (
	"context"
	"log"
	"time"

	"voyago/internal/models/db_models"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/repositories"
	"voyago/pkg/utils"
)

type AccountServiceInterface interface {
	Login(request request_models.LoginRequest, ctx context.Context) (string, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	GetAccount(ctx context.Context, accountID string) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

func (a *AccountService) Login(request request_models.LoginRequest, ctx context.Context) (string, error) {

	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}

	if account == nil {
		return "", utils.ErrAccountNotFound
	}

	err = utils.ComparePasswords(account.PasswordHash, request.Password)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	log.Printf("Login for %s took %s", request.Email, time.Since(startTime))

	return token, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {

	existingAccount, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         "user", // default role
	}

	if err := a.accountRepo.InsertTx(newAccount, ctx); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) GetAccount(ctx context.Context, accountID string) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	return &response_models.AccountResponse{
		ID:    account.ID.String(),
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role,
	}, nil
}
