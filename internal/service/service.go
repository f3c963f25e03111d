package service

import (
	"context"
	"errors"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/api"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/query"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrDisabled     = errors.New("feature disabled")
)

type AlertBackend interface {
	Alerts(ctx context.Context, p query.Params) (*api.Page[domain.Alert], error)
	AlertStatistics(ctx context.Context) (*api.AlertStatistics, error)
	AcknowledgeAlert(ctx context.Context, id int64) (*domain.Alert, error)
	ResolveAlert(ctx context.Context, id int64, notes string) (*domain.Alert, error)
}

type EquipmentBackend interface {
	Equipment(ctx context.Context, p query.Params) (*api.Page[domain.Equipment], error)
	EquipmentStatistics(ctx context.Context) (*api.EquipmentStatistics, error)
	EquipmentMaintenance(ctx context.Context, equipmentID int64) ([]domain.MaintenanceRecord, error)
	Alerts(ctx context.Context, p query.Params) (*api.Page[domain.Alert], error)
}

type AnalyticsBackend interface {
	Analytics(ctx context.Context, buildingID *int64, period string) (*domain.AnalyticsData, error)
	Buildings(ctx context.Context) ([]domain.Building, error)
}

// Backend is everything the console reads from the platform. *api.Client
// implements it.
type Backend interface {
	AlertBackend
	EquipmentBackend
	AnalyticsBackend
}

type Services struct {
	Alerts    *AlertService
	Equipment *EquipmentService
	Analytics *AnalyticsService
	Views     *SavedViewService
	Exports   *ExportService
}

// New wires the page services. views and snapshots may be nil, in which case
// the matching features report ErrDisabled.
func New(backend Backend, views ViewStore, snapshots SnapshotStore) *Services {
	equipment := &EquipmentService{backend: backend}
	return &Services{
		Alerts:    &AlertService{backend: backend},
		Equipment: equipment,
		Analytics: &AnalyticsService{backend: backend},
		Views:     &SavedViewService{store: views},
		Exports:   &ExportService{equipment: equipment, store: snapshots},
	}
}
