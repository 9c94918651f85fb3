package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sceneio "scene-graph/io"
	"scene-graph/internal/store/redis"
	"scene-graph/math"
	"scene-graph/scene"
)

func newStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := redis.NewFromClient(backend.NewClient(&backend.Options{Addr: mr.Addr()}), opts...)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func testFile() *sceneio.SceneFile {
	alloc := scene.NewAllocator()
	root := scene.NewGroup(alloc, "root")
	arm := scene.NewNode(alloc, "arm")
	arm.SetPosition(math.NewVec3(0, 2, 0))
	_ = root.Add(arm)
	return sceneio.NewSceneFile("rig", root)
}

func TestSaveLoad(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	want := testFile()
	require.NoError(t, store.Save(ctx, "rig", want))

	got, err := store.Load(ctx, "rig")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	roots, err := got.Build(scene.NewAllocator())
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, math.NewVec3(0, 2, 0), roots[0].ObjectByName("arm").WorldPosition())
}

func TestLoadMissing(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Load(context.Background(), "nope")
	assert.True(t, errors.Is(err, redis.ErrNotFound))
}

func TestListAndDelete(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "b", testFile()))
	require.NoError(t, store.Save(ctx, "a", testFile()))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, store.Delete(ctx, "a"))
	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestTTLExpiresSnapshots(t *testing.T) {
	store, mr := newStore(t, redis.WithTTL(time.Minute), redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "rig", testFile()))
	assert.True(t, mr.Exists("test:scene:rig"))

	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "rig")
	assert.True(t, errors.Is(err, redis.ErrNotFound))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSceneNamedIndexKeepsIndexIntact(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "rig", testFile()))
	require.NoError(t, store.Save(ctx, "index", testFile()))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"index", "rig"}, names)

	got, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, "rig", got.Name)
	assert.True(t, mr.Exists("scene-graph:index"))
}

func TestListReportsServerErrors(t *testing.T) {
	store, mr := newStore(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "rig", testFile()))
	mr.FastForward(2 * time.Minute)
	mr.SetError("READONLY You can't write against a read only replica.")
	defer mr.SetError("")

	_, err := store.List(ctx)
	assert.Error(t, err)
}
