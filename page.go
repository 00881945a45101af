package sbmb

import (
	"context"
	"strconv"
	"strings"
)

// PageKey identifies one cached overview page.
type PageKey struct {
	Base string
	Type string
	Year int
}

// URL returns the location of the overview page: <base>/<type>/<year>.
func (k PageKey) URL() string {
	return strings.TrimSuffix(k.Base, "/") + "/" + k.Type + "/" + strconv.Itoa(k.Year)
}

// String implements fmt.Stringer.
func (k PageKey) String() string {
	return k.Type + "/" + strconv.Itoa(k.Year)
}

// PageCache stores the raw HTML of fetched overview pages.
type PageCache interface {
	// Get returns the cached page.
	// Returns ENOTFOUND if the page has not been fetched.
	Get(ctx context.Context, key PageKey) (string, error)

	// Put stores or replaces the page and reports whether the stored
	// content changed. Storing a byte-identical copy returns false.
	Put(ctx context.Context, key PageKey, html string) (bool, error)

	// Keys lists the cached pages for a base URL, ordered by type and year.
	Keys(ctx context.Context, base string) ([]PageKey, error)
}

// NormalizeBase prefixes a base URL without scheme with http:// and strips
// trailing slashes.
func NormalizeBase(base string) string {
	base = strings.TrimSpace(base)
	if !strings.HasPrefix(base, "http") {
		base = "http://" + base
	}
	return strings.TrimRight(base, "/")
}

// MinYear is the first year for which overview pages exist.
const MinYear = 1800

// ValidateYears returns an error unless MinYear <= from <= to.
func ValidateYears(from, to int) error {
	if from < MinYear {
		return Errorf(EINVALID, "start year %d before %d", from, MinYear)
	}
	if from > to {
		return Errorf(EINVALID, "start year %d after end year %d", from, to)
	}
	return nil
}
