package projectstore

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/hairizuanbinnoorazman/bizadmin/apiclient"
	"github.com/hairizuanbinnoorazman/bizadmin/auth"
	"github.com/hairizuanbinnoorazman/bizadmin/client"
	"github.com/hairizuanbinnoorazman/bizadmin/notify"
	"github.com/hairizuanbinnoorazman/bizadmin/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectIDs(projects []project.Project) []string {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestNew_Defaults(t *testing.T) {
	store := New(apiclient.New("http://localhost"), nil, nil, nil)

	assert.NotNil(t, store.Projects())
	assert.Empty(t, store.Projects())
	assert.NotNil(t, store.FilteredProjects())
	assert.Equal(t, project.Stats{}, store.Stats())
	assert.False(t, store.Loading())
	assert.NoError(t, store.Err())
	assert.Equal(t, DefaultBasePath, store.basePath)

	store = New(apiclient.New("http://localhost"), nil, nil, nil, WithBasePath("/v2/projects"), WithBasePath(""))
	assert.Equal(t, "/v2/projects", store.basePath)
}

func TestStore_FetchProjects(t *testing.T) {
	ctx := context.Background()
	store, env, rec := setupSandboxStore(t, auth.RoleAdmin)

	acme := env.CreateClient(t, "Acme")
	globex := env.CreateClient(t, "Globex")
	env.CreateProject(t, acme.ID, "Website", "Marketing site", project.StatusInProgress)
	env.CreateProject(t, acme.ID, "Logo", "", project.StatusCompleted)
	env.CreateProject(t, globex.ID, "Payroll", "", project.StatusPending)

	t.Run("replaces projects and filtered view", func(t *testing.T) {
		store.FetchProjects(ctx, project.Filters{})

		require.NoError(t, store.Err())
		assert.Len(t, store.Projects(), 3)
		assert.Equal(t, store.Projects(), store.FilteredProjects())
		assert.False(t, store.Loading())
		assert.Zero(t, rec.Count(notify.SeverityError))
	})

	t.Run("server-side filters replace both collections", func(t *testing.T) {
		store.FetchProjects(ctx, project.Filters{ClientID: acme.ID})

		assert.Len(t, store.Projects(), 2)
		assert.Equal(t, store.Projects(), store.FilteredProjects())
	})

	t.Run("accessors return copies", func(t *testing.T) {
		store.FetchProjects(ctx, project.Filters{})
		got := store.Projects()
		got[0].ProjectName = "mutated"
		assert.NotEqual(t, "mutated", store.Projects()[0].ProjectName)
	})
}

func TestStore_FetchProjectStats(t *testing.T) {
	ctx := context.Background()
	store, env, _ := setupSandboxStore(t, auth.RoleEmployee)

	acme := env.CreateClient(t, "Acme")
	env.CreateProject(t, acme.ID, "A", "", project.StatusCompleted)
	env.CreateProject(t, acme.ID, "B", "", project.StatusCompleted)
	env.CreateProject(t, acme.ID, "C", "", project.StatusPending)

	store.FetchProjectStats(ctx)

	require.NoError(t, store.Err())
	assert.Equal(t, project.Stats{Total: 3, Completed: 2, Pending: 1}, store.Stats())
	assert.Empty(t, store.Projects(), "stats fetch must not load projects")
}

func TestStore_FilterProjects(t *testing.T) {
	ctx := context.Background()
	store, env, _ := setupSandboxStore(t, auth.RoleAdmin)

	acme := env.CreateClient(t, "Acme")
	globex := env.CreateClient(t, "Globex")
	env.CreateProject(t, acme.ID, "Alpha launch", "", project.StatusPending)
	env.CreateProject(t, globex.ID, "Beta", "alpha customers", project.StatusCompleted)
	env.CreateProject(t, acme.ID, "Gamma", "", project.StatusPending)
	store.FetchProjects(ctx, project.Filters{})
	all := store.Projects()
	require.Len(t, all, 3)

	tests := []struct {
		name    string
		filters project.Filters
		want    int
	}{
		{name: "zero filters keep everything", filters: project.Filters{}, want: 3},
		{name: "status", filters: project.Filters{Status: project.StatusPending}, want: 2},
		{name: "client", filters: project.Filters{ClientID: globex.ID}, want: 1},
		{name: "search is case-insensitive over name and description", filters: project.Filters{Search: "ALPHA"}, want: 2},
		{name: "combined", filters: project.Filters{Status: project.StatusPending, Search: "alpha"}, want: 1},
		{name: "nothing matches", filters: project.Filters{Search: "zeta"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store.FilterProjects(tt.filters)
			first := store.FilteredProjects()
			assert.Len(t, first, tt.want)
			assert.NotNil(t, first)

			// Idempotent, and never touches the base collection.
			store.FilterProjects(tt.filters)
			assert.Equal(t, first, store.FilteredProjects())
			assert.Equal(t, all, store.Projects())

			// Relative order of the base collection is preserved.
			want := projectIDs(project.Filter(all, tt.filters))
			assert.Equal(t, want, projectIDs(first))
		})
	}
}

func TestStore_CreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("creates, resyncs and notifies", func(t *testing.T) {
		store, env, rec := setupSandboxStore(t, auth.RoleManager)
		acme := env.CreateClient(t, "Acme")

		require.NoError(t, store.CreateProject(ctx, project.CreateInput{
			ClientID:    acme.ID,
			ProjectName: "Intranet",
			Description: "Internal wiki",
		}))

		projects := store.Projects()
		require.Len(t, projects, 1)
		assert.NotEmpty(t, projects[0].ID)
		assert.Equal(t, "Intranet", projects[0].ProjectName)
		assert.Equal(t, project.StatusPending, projects[0].Status)
		assert.Equal(t, projects, store.FilteredProjects())
		assert.Equal(t, project.Stats{Total: 1, Pending: 1}, store.Stats())

		last, ok := rec.Last()
		require.True(t, ok)
		assert.Equal(t, notify.SeveritySuccess, last.Severity)
	})

	t.Run("client id given as a string is coerced", func(t *testing.T) {
		store, env, _ := setupSandboxStore(t, auth.RoleAdmin)
		acme := env.CreateClient(t, "Acme")

		require.NoError(t, store.CreateProject(ctx, project.CreateInput{
			ClientID:    " " + itoa(acme.ID) + " ",
			ProjectName: "Shop",
			Status:      project.StatusInProgress,
		}))
		require.Len(t, store.Projects(), 1)
		assert.Equal(t, acme.ID, store.Projects()[0].ClientID)
		assert.Equal(t, project.StatusInProgress, store.Projects()[0].Status)
	})

	t.Run("non-numeric client id fails before any request", func(t *testing.T) {
		srv := newStubServer(t, http.StatusOK, `{"success":true}`)
		store, rec := stubStore(t, srv, "tok")

		err := store.CreateProject(ctx, project.CreateInput{ClientID: "acme", ProjectName: "X"})
		assert.ErrorIs(t, err, project.ErrInvalidClient)
		assert.Empty(t, srv.Requests())
		assert.Equal(t, 1, rec.Count(notify.SeverityError))
	})

	t.Run("server rejection is returned and notified", func(t *testing.T) {
		store, _, rec := setupSandboxStore(t, auth.RoleAdmin)

		err := store.CreateProject(ctx, project.CreateInput{ClientID: 42, ProjectName: "Orphan"})
		require.Error(t, err)

		var apiErr *apiclient.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Empty(t, store.Projects())

		last, ok := rec.Last()
		require.True(t, ok)
		assert.Equal(t, notify.SeverityError, last.Severity)
		assert.Contains(t, last.Message, "client not found")
	})
}

func TestStore_UpdateProject(t *testing.T) {
	ctx := context.Background()
	store, env, rec := setupSandboxStore(t, auth.RoleAdmin)
	acme := env.CreateClient(t, "Acme")
	p := env.CreateProject(t, acme.ID, "Old name", "", project.StatusPending)

	t.Run("update resyncs", func(t *testing.T) {
		name := "New name"
		desc := "Now with a description"
		require.NoError(t, store.UpdateProject(ctx, p.ID, project.UpdateInput{ProjectName: &name, Description: &desc}))

		require.Len(t, store.Projects(), 1)
		assert.Equal(t, "New name", store.Projects()[0].ProjectName)
		assert.Equal(t, desc, store.Projects()[0].Description)
	})

	t.Run("status update resyncs projects and stats", func(t *testing.T) {
		require.NoError(t, store.UpdateProjectStatus(ctx, p.ID, project.StatusCompleted))

		require.Len(t, store.Projects(), 1)
		assert.Equal(t, project.StatusCompleted, store.Projects()[0].Status)
		assert.Equal(t, project.Stats{Total: 1, Completed: 1}, store.Stats())
	})

	t.Run("invalid status is returned", func(t *testing.T) {
		err := store.UpdateProjectStatus(ctx, p.ID, project.Status("Archived"))
		assert.Error(t, err)
		assert.Equal(t, project.StatusCompleted, store.Projects()[0].Status)
	})

	t.Run("empty id is rejected without a request", func(t *testing.T) {
		rec.Reset()
		name := "x"
		assert.ErrorIs(t, store.UpdateProject(ctx, "", project.UpdateInput{ProjectName: &name}), ErrMissingID)
		assert.ErrorIs(t, store.UpdateProjectStatus(ctx, "", project.StatusPending), ErrMissingID)
		assert.ErrorIs(t, store.DeleteProject(ctx, ""), ErrMissingID)
		assert.Equal(t, 3, rec.Count(notify.SeverityError))
	})

	t.Run("missing project surfaces not found", func(t *testing.T) {
		name := "x"
		err := store.UpdateProject(ctx, "missing", project.UpdateInput{ProjectName: &name})
		assert.ErrorIs(t, err, apiclient.ErrNotFound)
	})
}

func TestStore_DeleteProject(t *testing.T) {
	ctx := context.Background()

	t.Run("delete resyncs", func(t *testing.T) {
		store, env, _ := setupSandboxStore(t, auth.RoleAdmin)
		acme := env.CreateClient(t, "Acme")
		keep := env.CreateProject(t, acme.ID, "Keep", "", project.StatusPending)
		drop := env.CreateProject(t, acme.ID, "Drop", "", project.StatusCompleted)
		store.Refresh(ctx)
		require.Len(t, store.Projects(), 2)

		require.NoError(t, store.DeleteProject(ctx, drop.ID))

		assert.Equal(t, []string{keep.ID}, projectIDs(store.Projects()))
		assert.Equal(t, project.Stats{Total: 1, Pending: 1}, store.Stats())
	})

	t.Run("nonexistent id returns an error and leaves state alone", func(t *testing.T) {
		store, env, rec := setupSandboxStore(t, auth.RoleAdmin)
		acme := env.CreateClient(t, "Acme")
		env.CreateProject(t, acme.ID, "Keep", "", project.StatusPending)
		store.Refresh(ctx)
		before := store.Projects()
		beforeStats := store.Stats()

		err := store.DeleteProject(ctx, "does-not-exist")
		assert.ErrorIs(t, err, apiclient.ErrNotFound)
		assert.Equal(t, before, store.Projects())
		assert.Equal(t, beforeStats, store.Stats())
		assert.Equal(t, 1, rec.Count(notify.SeverityError))
		assert.Zero(t, rec.Count(notify.SeveritySuccess))
	})

	t.Run("employees are forbidden", func(t *testing.T) {
		store, env, _ := setupSandboxStore(t, auth.RoleEmployee)
		acme := env.CreateClient(t, "Acme")
		p := env.CreateProject(t, acme.ID, "Keep", "", project.StatusPending)

		err := store.DeleteProject(ctx, p.ID)
		var apiErr *apiclient.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	})
}

func TestStore_ClientQueries(t *testing.T) {
	ctx := context.Background()
	store, env, _ := setupSandboxStore(t, auth.RoleAdmin)
	acme := env.CreateClient(t, "Acme")
	globex := env.CreateClient(t, "Globex")
	env.CreateProject(t, acme.ID, "A", "", project.StatusPending)
	env.CreateProject(t, globex.ID, "B", "", project.StatusPending)
	env.CreateProject(t, globex.ID, "C", "", project.StatusPending)

	t.Run("projects by client do not touch the store", func(t *testing.T) {
		got := store.GetProjectsByClient(ctx, globex.ID)
		assert.Len(t, got, 2)
		assert.Empty(t, store.Projects())
		assert.Empty(t, store.FilteredProjects())
	})

	t.Run("all clients are normalized", func(t *testing.T) {
		got := store.GetAllClients(ctx)
		assert.Equal(t, []client.Ref{
			{ID: acme.ID, ClientID: acme.ID, Name: "Acme"},
			{ID: globex.ID, ClientID: globex.ID, Name: "Globex"},
		}, got)
	})

	t.Run("get single project", func(t *testing.T) {
		store.FetchProjects(ctx, project.Filters{})
		want := store.Projects()[0]

		got, err := store.GetProject(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)

		_, err = store.GetProject(ctx, "missing")
		assert.ErrorIs(t, err, apiclient.ErrNotFound)

		_, err = store.GetProject(ctx, "")
		assert.ErrorIs(t, err, ErrMissingID)
	})
}
