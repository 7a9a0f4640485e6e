package storage

import (
	"encoding/json"
	"time"

	"github.com/julianstephens/habitgrid/internal/constants"
	apperrors "github.com/julianstephens/habitgrid/internal/errors"
	"github.com/julianstephens/habitgrid/internal/models"
)

// Gateway loads and saves the whole application state as one JSON record
// stored under a fixed key.
type Gateway struct {
	kv  KV
	key string
	now func() time.Time
}

func NewGateway(kv KV) *Gateway {
	return &Gateway{
		kv:  kv,
		key: constants.StorageKey,
		now: time.Now,
	}
}

// Load returns the persisted state. A missing record is the empty state,
// not an error. Read and decode failures come back as PersistenceError.
func (g *Gateway) Load() (models.AppState, error) {
	data, ok, err := g.kv.Get(g.key)
	if err != nil {
		return models.AppState{}, apperrors.Persistence("load state", err)
	}
	if !ok {
		return models.EmptyState(g.now().Year()), nil
	}

	var state models.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.AppState{}, apperrors.Persistence("decode state", err)
	}

	if state.Habits == nil {
		state.Habits = []models.Habit{}
	}
	if state.Logs == nil {
		state.Logs = []models.LogEntry{}
	}
	if state.Settings.CurrentYear == 0 {
		state.Settings.CurrentYear = g.now().Year()
	}
	return state, nil
}

// Save writes state as a single unit.
func (g *Gateway) Save(state models.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return apperrors.Persistence("encode state", err)
	}
	if err := g.kv.Set(g.key, data); err != nil {
		return apperrors.Persistence("save state", err)
	}
	return nil
}

// Reset removes the persisted record so the next Load yields the empty state.
func (g *Gateway) Reset() error {
	return apperrors.Persistence("reset state", g.kv.Remove(g.key))
}

// Location identifies the underlying store.
func (g *Gateway) Location() string {
	return g.kv.Location()
}
