package resource

import (
	"net/url"
	"sort"
	"time"

	"resource-console/models"
)

// Filter narrows a list read. Zero fields are not sent.
type Filter struct {
	StartDate time.Time
	EndDate   time.Time
	Category  string

	// Search holds free-text terms keyed by query parameter.
	Search map[string]string
}

func (f Filter) IsZero() bool {
	return f.StartDate.IsZero() && f.EndDate.IsZero() && f.Category == "" && len(f.Search) == 0
}

// Values encodes the date range and search terms. Category is left to the
// endpoint, since some backends route it through the path.
func (f Filter) Values() url.Values {
	q := url.Values{}
	if !f.StartDate.IsZero() {
		q.Set("start_date", f.StartDate.Format(models.DateLayout))
	}
	if !f.EndDate.IsZero() {
		q.Set("end_date", f.EndDate.Format(models.DateLayout))
	}

	keys := make([]string, 0, len(f.Search))
	for k := range f.Search {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := f.Search[k]; v != "" {
			q.Set(k, v)
		}
	}
	return q
}
