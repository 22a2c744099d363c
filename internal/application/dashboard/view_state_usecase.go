// Package dashboard gestiona el estado de vista del dashboard por usuario
// (sidebar colapsado y granularidad seleccionada).
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/domain"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
	"github.com/jhoicas/inventario-dashboard/internal/domain/salessummary"
	"github.com/jhoicas/inventario-dashboard/pkg/logger"
)

// ViewStateUseCase acciones sobre el estado de vista. Toda escritura pasa por el
// Update atómico del repositorio.
type ViewStateUseCase struct {
	repo               repository.ViewStateRepository
	defaultGranularity salessummary.Granularity
	log                *logger.Logger
	now                func() time.Time
}

// NewViewStateUseCase construye el caso de uso.
func NewViewStateUseCase(repo repository.ViewStateRepository, defaultGranularity salessummary.Granularity, log *logger.Logger) *ViewStateUseCase {
	if defaultGranularity == "" {
		defaultGranularity = salessummary.DefaultGranularity
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ViewStateUseCase{
		repo:               repo,
		defaultGranularity: defaultGranularity,
		log:                log.Component("view_state"),
		now:                time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ViewStateUseCase) WithClock(now func() time.Time) *ViewStateUseCase {
	uc.now = now
	return uc
}

// Get devuelve el estado guardado o el inicial si el usuario no tiene ninguno.
func (uc *ViewStateUseCase) Get(ctx context.Context, companyID, userID string) (*dto.ViewStateDTO, error) {
	state, err := uc.repo.Get(ctx, companyID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return toViewStateDTO(uc.initial(companyID, userID)), nil
	}
	if err != nil {
		return nil, fmt.Errorf("dashboard: leer estado de vista: %w", err)
	}
	return toViewStateDTO(state), nil
}

// ToggleSidebar invierte el estado del sidebar.
func (uc *ViewStateUseCase) ToggleSidebar(ctx context.Context, companyID, userID string) (*dto.ViewStateDTO, error) {
	state, err := uc.repo.Update(ctx, companyID, userID, uc.initial(companyID, userID), func(s *entity.ViewState) error {
		s.SidebarCollapsed = !s.SidebarCollapsed
		s.UpdatedAt = uc.now().UTC()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard: toggle sidebar: %w", err)
	}
	uc.log.Debug().Str("user_id", userID).Bool("collapsed", state.SidebarCollapsed).Msg("sidebar")
	return toViewStateDTO(state), nil
}

// SetGranularity guarda la granularidad seleccionada. Valores fuera de
// daily|weekly|monthly devuelven domain.ErrInvalidInput.
func (uc *ViewStateUseCase) SetGranularity(ctx context.Context, companyID, userID, raw string) (*dto.ViewStateDTO, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, salessummary.ErrInvalidGranularity
	}
	g, err := salessummary.ParseGranularity(raw)
	if err != nil {
		return nil, err
	}
	state, err := uc.repo.Update(ctx, companyID, userID, uc.initial(companyID, userID), func(s *entity.ViewState) error {
		s.Granularity = g
		s.UpdatedAt = uc.now().UTC()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard: guardar granularidad: %w", err)
	}
	uc.log.Debug().Str("user_id", userID).Str("granularity", string(g)).Msg("granularidad")
	return toViewStateDTO(state), nil
}

func (uc *ViewStateUseCase) initial(companyID, userID string) *entity.ViewState {
	return entity.NewViewState(companyID, userID, uc.defaultGranularity)
}

func toViewStateDTO(s *entity.ViewState) *dto.ViewStateDTO {
	return &dto.ViewStateDTO{
		SidebarCollapsed: s.SidebarCollapsed,
		Granularity:      string(s.Granularity),
		UpdatedAt:        s.UpdatedAt,
	}
}
