package main

import (
	"testing"

	"github.com/hairizuanbinnoorazman/bizadmin/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiltersFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		clientID int
		search   string
		want     project.Filters
		wantErr  bool
	}{
		{name: "empty", want: project.Filters{}},
		{name: "loose status spelling", status: "in-progress", want: project.Filters{Status: project.StatusInProgress}},
		{name: "all fields", status: "Completed", clientID: 4, search: "web", want: project.Filters{Status: project.StatusCompleted, ClientID: 4, Search: "web"}},
		{name: "unknown status", status: "archived", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filtersFromFlags(tt.status, tt.clientID, tt.search)
			if tt.wantErr {
				assert.ErrorIs(t, err, project.ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "(not set)", maskToken(""))
	assert.Equal(t, "****", maskToken("short"))
	assert.Equal(t, "abcd...wxyz", maskToken("abcdefghijklmnopqrstuvwxyz"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Panade...", truncate("Panadería Sol", 9))
}
