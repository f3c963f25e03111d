package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
)

type AnalyticsOverview struct {
	Period              string                  `json:"period"`
	Building            *domain.Building        `json:"building,omitempty"`
	Buildings           []domain.Building       `json:"buildings"`
	Data                domain.AnalyticsData    `json:"data"`
	AnomaliesBySeverity map[domain.Severity]int `json:"anomaliesBySeverity"`
	PotentialSavingsKWh float64                 `json:"potentialSavingsKwh"`
}

type AnalyticsService struct {
	backend AnalyticsBackend
}

// Overview loads analytics for one building, or the whole portfolio when
// buildingID is nil, alongside the building list used by the selector.
func (s *AnalyticsService) Overview(ctx context.Context, buildingID *int64, period string) (*AnalyticsOverview, error) {
	if buildingID != nil && *buildingID <= 0 {
		return nil, fmt.Errorf("%w: building id %d", ErrInvalidInput, *buildingID)
	}
	period = strings.TrimSpace(period)

	var (
		data      *domain.AnalyticsData
		buildings []domain.Building
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data, err = s.backend.Analytics(gctx, buildingID, period)
		if err != nil {
			return fmt.Errorf("analytics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		b, err := s.backend.Buildings(gctx)
		if err != nil {
			log.Warn().Err(err).Msg("building list unavailable")
			return nil
		}
		buildings = b
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if buildings == nil {
		buildings = []domain.Building{}
	}

	out := &AnalyticsOverview{
		Period:              data.Period,
		Buildings:           buildings,
		Data:                *data,
		AnomaliesBySeverity: map[domain.Severity]int{},
	}
	if out.Period == "" {
		out.Period = period
	}
	if buildingID != nil {
		for i := range buildings {
			if buildings[i].ID == *buildingID {
				out.Building = &buildings[i]
				break
			}
		}
	}
	for _, a := range data.Anomalies {
		out.AnomaliesBySeverity[a.Severity]++
	}
	for _, o := range data.EfficiencyOpportunities {
		out.PotentialSavingsKWh += o.PotentialSavingsKWh
	}
	return out, nil
}
