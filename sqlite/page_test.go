package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/sbmb"
	"github.com/fwojciec/sbmb/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "http://www.ejustice.just.fgov.be/eli"

func put(t *testing.T, cache *sqlite.PageCache, key sbmb.PageKey, html string) bool {
	t.Helper()
	changed, err := cache.Put(context.Background(), key, html)
	require.NoError(t, err)
	return changed
}

func TestPageCache_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored page", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewPageCache(setupTestDB(t))
		ctx := context.Background()
		key := sbmb.PageKey{Base: base, Type: "wet", Year: 2017}

		put(t, cache, key, "<html>wet</html>")

		html, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "<html>wet</html>", html)
	})

	t.Run("returns ENOTFOUND for a missing page", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewPageCache(setupTestDB(t))

		_, err := cache.Get(context.Background(), sbmb.PageKey{Base: base, Type: "wet", Year: 2017})

		assert.Equal(t, sbmb.ENOTFOUND, sbmb.ErrorCode(err))
	})

	t.Run("distinguishes keys by every component", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewPageCache(setupTestDB(t))
		ctx := context.Background()
		put(t, cache, sbmb.PageKey{Base: base, Type: "wet", Year: 2017}, "nl")

		_, err := cache.Get(ctx, sbmb.PageKey{Base: base, Type: "loi", Year: 2017})
		assert.Equal(t, sbmb.ENOTFOUND, sbmb.ErrorCode(err))
		_, err = cache.Get(ctx, sbmb.PageKey{Base: base, Type: "wet", Year: 2018})
		assert.Equal(t, sbmb.ENOTFOUND, sbmb.ErrorCode(err))
		_, err = cache.Get(ctx, sbmb.PageKey{Base: "http://example.com", Type: "wet", Year: 2017})
		assert.Equal(t, sbmb.ENOTFOUND, sbmb.ErrorCode(err))
	})
}

func TestPageCache_Put(t *testing.T) {
	t.Parallel()

	t.Run("replaces an earlier copy", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewPageCache(setupTestDB(t))
		ctx := context.Background()
		key := sbmb.PageKey{Base: base, Type: "wet", Year: 2017}

		assert.True(t, put(t, cache, key, "old"), "a new page is a change")
		assert.True(t, put(t, cache, key, "new"))

		html, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "new", html)

		keys, err := cache.Keys(ctx, base)
		require.NoError(t, err)
		assert.Len(t, keys, 1)
	})

	t.Run("leaves an identical copy untouched", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		cache := sqlite.NewPageCache(db)
		ctx := context.Background()
		key := sbmb.PageKey{Base: base, Type: "loi", Year: 2017}

		cache.Now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
		require.True(t, put(t, cache, key, "<html>loi</html>"))

		cache.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
		assert.False(t, put(t, cache, key, "<html>loi</html>"))

		var fetchedAt string
		require.NoError(t, db.QueryRowContext(ctx, "SELECT fetched_at FROM pages").Scan(&fetchedAt))
		assert.Equal(t, "2024-01-01T00:00:00Z", fetchedAt)
	})

	t.Run("rejects incomplete keys", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewPageCache(setupTestDB(t))

		_, err := cache.Put(context.Background(), sbmb.PageKey{Base: base, Year: 2017}, "x")

		assert.Equal(t, sbmb.EINVALID, sbmb.ErrorCode(err))
	})

	t.Run("persists across reopen", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cache.db")
		ctx := context.Background()
		key := sbmb.PageKey{Base: base, Type: "loi", Year: 1999}

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		cache := sqlite.NewPageCache(db)
		cache.Now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
		put(t, cache, key, "<html>loi</html>")
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		defer db.Close()

		html, err := sqlite.NewPageCache(db).Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "<html>loi</html>", html)

		var fetchedAt string
		require.NoError(t, db.QueryRowContext(ctx, "SELECT fetched_at FROM pages").Scan(&fetchedAt))
		assert.Equal(t, "2024-01-02T03:04:05Z", fetchedAt)
	})
}

func TestPageCache_Keys(t *testing.T) {
	t.Parallel()

	cache := sqlite.NewPageCache(setupTestDB(t))
	ctx := context.Background()
	put(t, cache, sbmb.PageKey{Base: base, Type: "wet", Year: 2018}, "a")
	put(t, cache, sbmb.PageKey{Base: base, Type: "loi", Year: 2018}, "b")
	put(t, cache, sbmb.PageKey{Base: base, Type: "wet", Year: 2017}, "c")
	put(t, cache, sbmb.PageKey{Base: "http://example.com", Type: "wet", Year: 2017}, "d")

	keys, err := cache.Keys(ctx, base)

	require.NoError(t, err)
	assert.Equal(t, []sbmb.PageKey{
		{Base: base, Type: "loi", Year: 2018},
		{Base: base, Type: "wet", Year: 2017},
		{Base: base, Type: "wet", Year: 2018},
	}, keys)
}
