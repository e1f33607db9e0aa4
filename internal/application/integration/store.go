package integration

import (
	"context"
	"sync"

	"supportdesk/internal/infrastructure/gateway"
	"supportdesk/internal/shared/logger"
	"supportdesk/internal/shared/utils"
)

// Gateway is the slice of the backend client the store needs.
type Gateway interface {
	SaveHelpdeskConfig(ctx context.Context, body gateway.HelpdeskConfigRequest) gateway.Result
	SaveCRMConfig(ctx context.Context, body gateway.CRMConfigRequest) gateway.Result
}

// Store holds the current integration config. Saves validate locally first and
// only touch the saved integration's fields once the backend accepts them.
type Store struct {
	gw  Gateway
	log logger.Interface

	mu  sync.RWMutex
	cfg Config
}

func NewStore(gw Gateway, log logger.Interface) *Store {
	return &Store{gw: gw, log: log.Named("integration")}
}

func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Replace swaps the whole config, e.g. after a session check.
func (s *Store) Replace(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *Store) Clear() {
	s.Replace(Config{})
}

// SaveHelpdeskConfig returns utils.FieldErrors without calling the backend
// when the form is invalid, and an AppError when the backend rejects it.
func (s *Store) SaveHelpdeskConfig(ctx context.Context, apiKey, domain string) (string, error) {
	if errs := ValidateHelpdesk(HelpdeskInput{Domain: domain, APIKey: apiKey}); len(errs) > 0 {
		return "", errs
	}

	res := s.gw.SaveHelpdeskConfig(ctx, gateway.HelpdeskConfigRequest{APIKey: apiKey, Domain: domain})
	if !res.Success {
		s.log.Warnw("helpdesk config rejected", "domain", domain, "status", res.StatusCode, "message", res.Message)
		return "", res.AsError("Failed to save helpdesk configuration")
	}

	s.mu.Lock()
	s.cfg.HelpdeskAPIKey = apiKey
	s.cfg.HelpdeskDomain = domain
	s.mu.Unlock()

	s.log.Infow("helpdesk config saved", "domain", domain, "api_key", utils.MaskSecret(apiKey))
	return messageOf(res), nil
}

func (s *Store) SaveCRMConfig(ctx context.Context, token string) (string, error) {
	if errs := ValidateCRM(CRMInput{Token: token}); len(errs) > 0 {
		return "", errs
	}

	res := s.gw.SaveCRMConfig(ctx, gateway.CRMConfigRequest{Token: token})
	if !res.Success {
		s.log.Warnw("crm config rejected", "status", res.StatusCode, "message", res.Message)
		return "", res.AsError("Failed to save CRM configuration")
	}

	s.mu.Lock()
	s.cfg.CRMToken = token
	s.mu.Unlock()

	s.log.Infow("crm config saved", "token", utils.MaskSecret(token))
	return messageOf(res), nil
}

func messageOf(res gateway.Result) string {
	body, err := gateway.Decode[struct {
		Message string `json:"message"`
	}](res)
	if err != nil {
		return ""
	}
	return body.Message
}
