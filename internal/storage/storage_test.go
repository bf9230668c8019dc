package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pvtlab/internal/pvt"
)

func stores(t *testing.T) map[string]ParamStore {
	t.Helper()
	sq, err := OpenSQL(filepath.Join(t.TempDir(), "params.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	return map[string]ParamStore{
		"memory": NewMemoryStore(),
		"sqlite": sq,
	}
}

func TestParamStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := st.Get(ctx, "lasater-pb", "Rsb")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, st.Set(ctx, "lasater-pb", "Rsb", 500))
			require.NoError(t, st.Set(ctx, "lasater-pb", "Tr", 150))
			require.NoError(t, st.Set(ctx, "lasater-pb", "Rsb", 750))
			require.NoError(t, st.Set(ctx, "standing-pb", "Rsb", 42))

			v, ok, err := st.Get(ctx, "lasater-pb", "Rsb")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, 750.0, v)

			snap, err := st.Snapshot(ctx, "lasater-pb")
			require.NoError(t, err)
			assert.Equal(t, pvt.Snapshot{"Rsb": 750, "Tr": 150}, snap)

			ids, err := st.Formulas(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"lasater-pb", "standing-pb"}, ids)

			require.NoError(t, st.Delete(ctx, "lasater-pb", "Tr"))
			snap, err = st.Snapshot(ctx, "lasater-pb")
			require.NoError(t, err)
			assert.Equal(t, pvt.Snapshot{"Rsb": 750}, snap)

			empty, err := st.Snapshot(ctx, "unknown")
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestMemorySnapshotIsCopy(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	require.NoError(t, st.Set(ctx, "f", "a", 1))

	snap, err := st.Snapshot(ctx, "f")
	require.NoError(t, err)
	snap["a"] = 99

	v, _, _ := st.Get(ctx, "f", "a")
	assert.Equal(t, 1.0, v)
}

func TestSetAll(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	require.NoError(t, SetAll(ctx, st, "f", pvt.Snapshot{"a": 1, "b": 2}))

	snap, err := st.Snapshot(ctx, "f")
	require.NoError(t, err)
	assert.Equal(t, pvt.Snapshot{"a": 1, "b": 2}, snap)
}

func TestSQLStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "params.db")

	st, err := OpenSQL(path, "")
	require.NoError(t, err)
	session := st.Session()
	assert.NotEmpty(t, session)
	require.NoError(t, st.Set(ctx, "oil-gravity-api", "Yapi", 42))
	require.NoError(t, st.Close())

	st, err = OpenSQL(path, session)
	require.NoError(t, err)
	defer st.Close()

	v, ok, err := st.Get(ctx, "oil-gravity-api", "Yapi")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42.0, v)

	sessions, err := st.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{session}, sessions)
}

func TestSQLStoreSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "params.db")

	a, err := OpenSQL(path, "a")
	require.NoError(t, err)
	require.NoError(t, a.Set(ctx, "f", "x", 1))
	require.NoError(t, a.Close())

	b, err := OpenSQL(path, "b")
	require.NoError(t, err)
	defer b.Close()

	_, ok, err := b.Get(ctx, "f", "x")
	require.NoError(t, err)
	assert.False(t, ok)

	sessions, err := b.Sessions(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, sessions)
}
