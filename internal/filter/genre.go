// Package filter keeps the catalog's genre select in sync with the URL
// query string.
package filter

import (
	"net/url"
	"strconv"
)

const (
	// AllGenres is the select value that clears the genre filter.
	AllGenres = "all"

	ParamGenre = "genreId"
	ParamPage  = "page"
)

// ApplyGenre returns a copy of q with the genre filter set to value and
// the page reset to 1.  Choosing AllGenres removes genreId entirely.
// Other parameters are kept as they are.
func ApplyGenre(q url.Values, value string) url.Values {
	out := make(url.Values, len(q)+2)
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	out.Set(ParamGenre, value)
	out.Set(ParamPage, "1")
	if value == AllGenres || value == "" {
		out.Del(ParamGenre)
	}
	return out
}

// SelectedGenre returns the select value matching q.
func SelectedGenre(q url.Values) string {
	if v := q.Get(ParamGenre); v != "" {
		return v
	}
	return AllGenres
}

// GenreID returns the numeric genre filter, or 0 when unset or invalid.
func GenreID(q url.Values) uint64 {
	id, err := strconv.ParseUint(q.Get(ParamGenre), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Page returns the requested page, defaulting to 1.
func Page(q url.Values) int {
	p, err := strconv.Atoi(q.Get(ParamPage))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

// PageURL returns path with q's parameters and page replaced by p.
func PageURL(path string, q url.Values, p int) string {
	out := make(url.Values, len(q)+1)
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	out.Set(ParamPage, strconv.Itoa(p))
	return path + "?" + out.Encode()
}
