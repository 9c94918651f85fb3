// Package redis publishes scene snapshots to Redis so other processes can
// read a consistent copy of a tree without touching the live nodes.
package redis

import (
	"context"
	"slices"
	"time"

	"github.com/pkg/errors"
	backend "github.com/redis/go-redis/v9"

	sceneio "scene-graph/io"
)

// ErrNotFound is returned by Load when no snapshot is stored under a name.
var ErrNotFound = errors.New("scene snapshot not found")

// Store keeps JSON-encoded scene files under prefix+"scene:"+name and tracks
// the stored names in a set at prefix+"index".
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of stored snapshots. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New connects to the Redis server at address.
func New(address, password string, db int, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	}), opts...)
}

func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "scene-graph:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(name string) string {
	return s.prefix + "scene:" + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save stores f under name, replacing any previous snapshot.
func (s *Store) Save(ctx context.Context, name string, f *sceneio.SceneFile) error {
	data, err := sceneio.Marshal(f, sceneio.FormatJSON)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(name), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), name)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "save scene %q", name)
	}
	return nil
}

// Load returns the snapshot stored under name.
func (s *Store) Load(ctx context.Context, name string) (*sceneio.SceneFile, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, errors.Wrapf(ErrNotFound, "%s", name)
		}
		return nil, errors.Wrapf(err, "load scene %q", name)
	}
	return sceneio.Unmarshal(data, sceneio.FormatJSON)
}

func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(name))
	pipe.SRem(ctx, s.indexKey(), name)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns the sorted names of the stored snapshots. Names whose snapshot has
// expired are dropped from the index on the way.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, errors.Wrap(err, "list scenes")
	}

	live := make([]string, 0, len(names))
	for _, name := range names {
		n, err := s.client.Exists(ctx, s.key(name)).Result()
		if err != nil {
			return nil, errors.Wrap(err, "list scenes")
		}
		if n == 0 {
			if err := s.client.SRem(ctx, s.indexKey(), name).Err(); err != nil {
				return nil, errors.Wrap(err, "prune scene index")
			}
			continue
		}
		live = append(live, name)
	}
	slices.Sort(live)
	return live, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
