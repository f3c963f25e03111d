package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/query"
)

const (
	exportLinkTTL   = time.Hour
	equipmentPrefix = "exports/equipment/"
)

type SnapshotStore interface {
	PutSnapshot(ctx context.Context, key string, body []byte) error
	PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	ListSnapshots(ctx context.Context, prefix string) ([]string, error)
}

type Export struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
	Rows      int       `json:"rows"`
}

// ExportService uploads JSON snapshots of list pages for download.
type ExportService struct {
	equipment *EquipmentService
	store     SnapshotStore
}

func (s *ExportService) Enabled() bool { return s != nil && s.store != nil }

// ExportEquipment renders the equipment page for f exactly as the list
// endpoint would and uploads it.
func (s *ExportService) ExportEquipment(ctx context.Context, f query.Filters, now time.Time) (*Export, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	page, err := s.equipment.List(ctx, f, now)
	if err != nil {
		return nil, err
	}
	body, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode equipment snapshot: %w", err)
	}

	key := fmt.Sprintf("%s%s-%s.json", equipmentPrefix, now.UTC().Format("20060102T150405Z"), uuid.NewString())
	if err := s.store.PutSnapshot(ctx, key, body); err != nil {
		return nil, fmt.Errorf("upload equipment snapshot: %w", err)
	}
	link, err := s.store.PresignURL(ctx, key, exportLinkTTL)
	if err != nil {
		return nil, fmt.Errorf("sign equipment snapshot: %w", err)
	}
	log.Info().Str("key", key).Int("rows", len(page.Rows)).Msg("equipment snapshot exported")
	return &Export{Key: key, URL: link, ExpiresAt: now.Add(exportLinkTTL), Rows: len(page.Rows)}, nil
}

// List returns the keys of earlier equipment exports, oldest first.
func (s *ExportService) List(ctx context.Context) ([]string, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	keys, err := s.store.ListSnapshots(ctx, equipmentPrefix)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return keys, nil
}
