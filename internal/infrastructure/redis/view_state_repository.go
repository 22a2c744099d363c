package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-dashboard/internal/domain"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
)

var _ repository.ViewStateRepository = (*ViewStateRepo)(nil)

const (
	viewStateKeyPrefix = "dashboard:view_state"
	maxUpdateRetries   = 5
)

// ViewStateRepo guarda cada ViewState como JSON en dashboard:view_state:<company>:<user>.
type ViewStateRepo struct {
	client *goredis.Client
	ttl    time.Duration // 0 = sin expiración
}

// NewViewStateRepository construye el adaptador.
func NewViewStateRepository(client *goredis.Client, ttl time.Duration) *ViewStateRepo {
	return &ViewStateRepo{client: client, ttl: ttl}
}

func viewStateKey(companyID, userID string) string {
	return fmt.Sprintf("%s:%s:%s", viewStateKeyPrefix, companyID, userID)
}

// Get lee el estado; domain.ErrNotFound si la clave no existe.
func (r *ViewStateRepo) Get(ctx context.Context, companyID, userID string) (*entity.ViewState, error) {
	raw, err := r.client.Get(ctx, viewStateKey(companyID, userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("viewstate.Get: %w", err)
	}
	var state entity.ViewState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("viewstate.Get decode: %w", err)
	}
	return &state, nil
}

// Update aplica mutate dentro de WATCH/MULTI. Si otra escritura toca la clave
// entre la lectura y el EXEC se reintenta desde el valor nuevo.
func (r *ViewStateRepo) Update(
	ctx context.Context,
	companyID, userID string,
	init *entity.ViewState,
	mutate repository.ViewStateMutation,
) (*entity.ViewState, error) {
	key := viewStateKey(companyID, userID)
	var result *entity.ViewState

	txf := func(tx *goredis.Tx) error {
		var state entity.ViewState
		if init != nil {
			state = *init
		}
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, goredis.Nil):
		case err != nil:
			return err
		default:
			if err := json.Unmarshal(raw, &state); err != nil {
				return fmt.Errorf("decode: %w", err)
			}
		}
		state.CompanyID, state.UserID = companyID, userID

		if err := mutate(&state); err != nil {
			return err
		}
		payload, err := json.Marshal(state)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		if err == nil {
			result = &state
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return nil, fmt.Errorf("viewstate.Update: %w", err)
	}
	return nil, fmt.Errorf("%w: viewstate.Update: demasiadas escrituras concurrentes sobre %s", domain.ErrConflict, key)
}
