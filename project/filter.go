package project

import (
	"net/url"
	"strconv"
	"strings"
)

// Filters narrows a project collection. Zero-valued fields do not constrain.
type Filters struct {
	Status   Status
	ClientID int
	Search   string
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f.Status == "" && f.ClientID == 0 && strings.TrimSpace(f.Search) == ""
}

// Matches reports whether p satisfies every set filter. Search is a
// case-insensitive substring match over the project name and description.
func (f Filters) Matches(p Project) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.ClientID != 0 && p.ClientID != f.ClientID {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.ProjectName), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// Filter returns the projects that match f, in their original order.
// The result is never nil.
func Filter(projects []Project, f Filters) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Query encodes the filters as the list endpoint's query parameters.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.ClientID != 0 {
		q.Set("clientId", strconv.Itoa(f.ClientID))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", s)
	}
	return q
}

// FiltersFromQuery is the inverse of Query. Unparseable values are ignored.
func FiltersFromQuery(q url.Values) Filters {
	var f Filters
	if s := q.Get("status"); s != "" {
		if st, err := ParseStatus(s); err == nil {
			f.Status = st
		}
	}
	if id, err := strconv.Atoi(strings.TrimSpace(q.Get("clientId"))); err == nil && id > 0 {
		f.ClientID = id
	}
	f.Search = q.Get("search")
	return f
}
