package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"tinyclient/entity"
	"tinyclient/internal/lib/sl"
)

// AccountService exposes the account-info endpoint.
type AccountService struct {
	api requester
	log *slog.Logger
}

func NewAccountService(api requester, log *slog.Logger) *AccountService {
	return &AccountService{
		api: api,
		log: log.With(sl.Module("account")),
	}
}

// GetInfo fetches the registration data of the account the token
// belongs to. An invalid token surfaces as an APIError.
func (s *AccountService) GetInfo(ctx context.Context) (*entity.Account, error) {
	raw, err := s.api.Get(ctx, "info.php", nil)
	if err != nil {
		return nil, err
	}

	var payload entity.AccountInfoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode account info: %w", err)
	}

	s.log.Debug("account info fetched", slog.String("razao_social", payload.Conta.RazaoSocial))
	return &payload.Conta, nil
}
