package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"keepnotes/internal/types"
)

// StateKey is the slot the whole StoreData document lives under. There is no
// schema versioning; a shape change needs a new key.
const StateKey = "keep-notes-store-v1"

var (
	ErrStateNotFound = errors.New("state not found")
	ErrCorruptState  = errors.New("persisted state is corrupt")
)

type StateStore interface {
	Load(ctx context.Context) (*types.StoreData, error)
	Save(ctx context.Context, data *types.StoreData) error
}

type kvStateStore struct {
	kv  KV
	key string
}

func NewStateStore(kv KV) StateStore {
	return &kvStateStore{kv: kv, key: StateKey}
}

func (s *kvStateStore) Load(ctx context.Context) (*types.StoreData, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrStateNotFound
	}
	data := &types.StoreData{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return data, nil
}

func (s *kvStateStore) Save(ctx context.Context, data *types.StoreData) error {
	if data == nil {
		return errors.New("state is required")
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, s.key, raw)
}
