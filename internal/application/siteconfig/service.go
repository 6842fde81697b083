package siteconfig

import (
	"context"
	"errors"
	"strings"

	"github.com/intercel/backend/internal/domain/shared"
	"github.com/intercel/backend/internal/domain/siteconfig"
	"go.uber.org/zap"
)

// Service manages the flat site configuration map
type Service struct {
	repo   siteconfig.Repository
	logger *zap.Logger
}

// NewService creates a new site config Service
func NewService(repo siteconfig.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// List returns every entry ordered by key
func (s *Service) List(ctx context.Context) ([]EntryResponse, error) {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, shared.NewInternalError(err)
	}
	out := make([]EntryResponse, len(entries))
	for i := range entries {
		out[i] = ToEntryResponse(&entries[i])
	}
	return out, nil
}

// PublicMap returns the configuration as a key to value map
func (s *Service) PublicMap(ctx context.Context) (map[string]string, error) {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, shared.NewInternalError(err)
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Value
	}
	return out, nil
}

// Upsert creates the key or replaces its value
func (s *Service) Upsert(ctx context.Context, key string, req UpsertEntryRequest) (*EntryResponse, error) {
	key = strings.TrimSpace(key)
	typ := siteconfig.ValueType(req.Type)

	entry, err := s.repo.FindByKey(ctx, key)
	switch {
	case err == nil:
		if err := entry.Set(req.Value, typ); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		entry, err = siteconfig.NewEntry(key, req.Value, typ)
		if err != nil {
			return nil, err
		}
	default:
		return nil, shared.NewInternalError(err)
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		var de *shared.DomainError
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, shared.NewInternalError(err)
	}

	s.logger.Info("Site config updated",
		zap.String("key", entry.Key),
		zap.String("type", string(entry.Type)))
	resp := ToEntryResponse(entry)
	return &resp, nil
}

// Delete removes a key
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.repo.DeleteByKey(ctx, key); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError("config key")
		}
		return shared.NewInternalError(err)
	}
	s.logger.Info("Site config deleted", zap.String("key", key))
	return nil
}
