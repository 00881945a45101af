package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/fwojciec/sbmb"
)

// Compile-time interface verification.
var _ sbmb.PageCache = (*PageCache)(nil)

// PageCache implements sbmb.PageCache using SQLite.
type PageCache struct {
	db *DB

	// Now returns the fetch timestamp recorded with each page.
	Now func() time.Time
}

// NewPageCache creates a new PageCache.
func NewPageCache(db *DB) *PageCache {
	return &PageCache{db: db, Now: time.Now}
}

func keyEq(key sbmb.PageKey) sq.Eq {
	return sq.Eq{"base": key.Base, "type": key.Type, "year": key.Year}
}

// Get returns the cached HTML of a page.
func (c *PageCache) Get(ctx context.Context, key sbmb.PageKey) (string, error) {
	query, args, err := sq.Select("html").From("pages").Where(keyEq(key)).ToSql()
	if err != nil {
		return "", err
	}

	var html string
	err = c.db.QueryRowContext(ctx, query, args...).Scan(&html)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sbmb.Errorf(sbmb.ENOTFOUND, "page %s not cached", key)
	}
	if err != nil {
		return "", err
	}
	return html, nil
}

// Put stores a page, replacing an earlier copy with the same key. A copy
// whose content hash matches the stored one is left untouched, including
// its fetch timestamp, and Put returns false.
func (c *PageCache) Put(ctx context.Context, key sbmb.PageKey, html string) (bool, error) {
	if key.Base == "" || key.Type == "" || key.Year <= 0 {
		return false, sbmb.Errorf(sbmb.EINVALID, "invalid page key %q", key.URL())
	}

	query, args, err := sq.Insert("pages").
		Columns("base", "type", "year", "html", "hash", "fetched_at").
		Values(key.Base, key.Type, key.Year, html, hashContent(html),
			c.Now().UTC().Format(time.RFC3339)).
		Suffix("ON CONFLICT (base, type, year) DO UPDATE SET html = excluded.html, hash = excluded.hash, fetched_at = excluded.fetched_at WHERE pages.hash <> excluded.hash").
		ToSql()
	if err != nil {
		return false, err
	}

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Keys lists the cached pages for base ordered by type and year.
func (c *PageCache) Keys(ctx context.Context, base string) ([]sbmb.PageKey, error) {
	query, args, err := sq.Select("base", "type", "year").
		From("pages").
		Where(sq.Eq{"base": base}).
		OrderBy("type", "year").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []sbmb.PageKey
	for rows.Next() {
		var key sbmb.PageKey
		if err := rows.Scan(&key.Base, &key.Type, &key.Year); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
