package project

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleProjects() []Project {
	return []Project{
		{ID: "1", ClientID: 10, ProjectName: "Alpha Corp", Description: "Brand refresh", Status: StatusCompleted},
		{ID: "2", ClientID: 20, ProjectName: "Payroll", Description: "Migration for alpha team", Status: StatusPending},
		{ID: "3", ClientID: 10, ProjectName: "Warehouse", Description: "", Status: StatusInProgress},
		{ID: "4", ClientID: 30, ProjectName: "Intranet", Description: "Internal portal", Status: StatusCompleted},
	}
}

func ids(projects []Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{name: "no filters keeps everything", filters: Filters{}, want: []string{"1", "2", "3", "4"}},
		{name: "status keeps order", filters: Filters{Status: StatusCompleted}, want: []string{"1", "4"}},
		{name: "client", filters: Filters{ClientID: 10}, want: []string{"1", "3"}},
		{name: "search matches name ignoring case", filters: Filters{Search: "ALPHA"}, want: []string{"1", "2"}},
		{name: "search matches description", filters: Filters{Search: "portal"}, want: []string{"4"}},
		{name: "search trims whitespace", filters: Filters{Search: "  warehouse "}, want: []string{"3"}},
		{name: "filters combine", filters: Filters{Status: StatusCompleted, ClientID: 10}, want: []string{"1"}},
		{name: "no match", filters: Filters{Search: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(sampleProjects(), tt.filters)))
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	f := Filters{Status: StatusCompleted}
	once := Filter(sampleProjects(), f)
	twice := Filter(once, f)
	assert.Equal(t, once, twice)
	for _, p := range twice {
		assert.Equal(t, StatusCompleted, p.Status)
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(nil, Filters{Search: "x"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilters_Query(t *testing.T) {
	f := Filters{Status: StatusInProgress, ClientID: 7, Search: " alpha "}
	q := f.Query()
	assert.Equal(t, "In Progress", q.Get("status"))
	assert.Equal(t, "7", q.Get("clientId"))
	assert.Equal(t, "alpha", q.Get("search"))

	assert.Empty(t, Filters{}.Query())
	assert.True(t, Filters{Search: "   "}.IsZero())
}

func TestFiltersFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("status", "completed")
	q.Set("clientId", "12")
	q.Set("search", "alpha")
	assert.Equal(t, Filters{Status: StatusCompleted, ClientID: 12, Search: "alpha"}, FiltersFromQuery(q))

	bad := url.Values{}
	bad.Set("status", "archived")
	bad.Set("clientId", "abc")
	assert.Equal(t, Filters{}, FiltersFromQuery(bad))

	padded := url.Values{}
	padded.Set("clientId", "010")
	assert.Equal(t, Filters{ClientID: 10}, FiltersFromQuery(padded))

	hex := url.Values{}
	hex.Set("clientId", "0x1F")
	assert.Equal(t, Filters{}, FiltersFromQuery(hex))
}
