package repository

import (
	"context"

	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
)

// ViewStateMutation modifica el estado dentro de la transacción del repositorio.
type ViewStateMutation func(state *entity.ViewState) error

// ViewStateRepository puerto del estado de vista por usuario.
type ViewStateRepository interface {
	// Get devuelve (nil, domain.ErrNotFound) si el usuario nunca guardó estado.
	Get(ctx context.Context, companyID, userID string) (*entity.ViewState, error)

	// Update aplica mutate sobre el estado actual (o sobre init si no existe) y lo
	// persiste de forma atómica. Escrituras concurrentes sobre la misma clave se
	// serializan; mutate puede ejecutarse más de una vez.
	Update(ctx context.Context, companyID, userID string, init *entity.ViewState, mutate ViewStateMutation) (*entity.ViewState, error)
}
