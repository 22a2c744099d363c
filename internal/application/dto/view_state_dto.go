package dto

import "time"

// ViewStateDTO estado de vista del dashboard del usuario autenticado.
type ViewStateDTO struct {
	SidebarCollapsed bool      `json:"sidebar_collapsed"`
	Granularity      string    `json:"granularity"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SetGranularityRequest body de PUT /api/dashboard/view-state/granularity.
type SetGranularityRequest struct {
	Granularity string `json:"granularity" validate:"required,oneof=daily weekly monthly"`
}
