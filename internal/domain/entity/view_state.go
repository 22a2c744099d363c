package entity

import (
	"time"

	"github.com/jhoicas/inventario-dashboard/internal/domain/salessummary"
)

// ViewState estado de presentación del dashboard de un usuario dentro de una empresa.
// Solo se modifica con acciones explícitas (ToggleSidebar, SetGranularity).
type ViewState struct {
	CompanyID        string                   `json:"company_id"`
	UserID           string                   `json:"user_id"`
	SidebarCollapsed bool                     `json:"sidebar_collapsed"`
	Granularity      salessummary.Granularity `json:"granularity"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// NewViewState estado inicial: sidebar expandido y la granularidad por defecto.
func NewViewState(companyID, userID string, g salessummary.Granularity) *ViewState {
	if g == "" {
		g = salessummary.DefaultGranularity
	}
	return &ViewState{CompanyID: companyID, UserID: userID, Granularity: g}
}
