package sessionstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/scapet/scapet-go/internal/domain/session"
)

// ValkeyStore keeps the session snapshot in a Valkey-compatible database,
// for ephemeral environments where the filesystem does not survive the
// process. One key, whole-document writes, same atomicity contract as the
// file store.
type ValkeyStore struct {
	client valkey.Client
	key    string
	ttl    time.Duration
}

// NewValkeyStore constructs a store under the given key. A zero ttl means
// the snapshot never expires on its own.
func NewValkeyStore(client valkey.Client, key string, ttl time.Duration) *ValkeyStore {
	if key == "" {
		key = "scapet:session"
	}
	return &ValkeyStore{client: client, key: key, ttl: ttl}
}

func (s *ValkeyStore) Load(ctx context.Context) (session.Snapshot, bool, error) {
	cmd := s.client.B().Get().Key(s.key).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return session.Snapshot{}, false, nil
		}
		return session.Snapshot{}, false, err
	}
	var snap session.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return session.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, snap session.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key).Value(string(payload))
	var cmd valkey.Completed
	if s.ttl > 0 {
		ttl := s.ttl
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) Clear(ctx context.Context) error {
	cmd := s.client.B().Del().Key(s.key).Build()
	return s.client.Do(ctx, cmd).Error()
}
