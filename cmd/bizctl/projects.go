package main

import (
	"fmt"
	"strconv"

	"github.com/hairizuanbinnoorazman/bizadmin/project"
	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04"

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}

	cmd.AddCommand(newProjectsListCmd())
	cmd.AddCommand(newProjectsStatsCmd())
	cmd.AddCommand(newProjectsGetCmd())
	cmd.AddCommand(newProjectsCreateCmd())
	cmd.AddCommand(newProjectsUpdateCmd())
	cmd.AddCommand(newProjectsStatusCmd())
	cmd.AddCommand(newProjectsDeleteCmd())
	cmd.AddCommand(newProjectsByClientCmd())
	return cmd
}

// filtersFromFlags builds list filters from the list command's flags.
func filtersFromFlags(status string, clientID int, search string) (project.Filters, error) {
	f := project.Filters{ClientID: clientID, Search: search}
	if status != "" {
		s, err := project.ParseStatus(status)
		if err != nil {
			return project.Filters{}, err
		}
		f.Status = s
	}
	return f, nil
}

func newProjectsListCmd() *cobra.Command {
	var status, search string
	var clientID int
	var local bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long: `List projects. Filters are sent to the server by default; with --local the
full collection is fetched and filtered here instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := filtersFromFlags(status, clientID, search)
			if err != nil {
				return err
			}

			a := newApp()
			if err := a.requireRead(); err != nil {
				return err
			}

			if local {
				a.store.FetchProjects(cmd.Context(), project.Filters{})
				a.store.FilterProjects(filters)
			} else {
				a.store.FetchProjects(cmd.Context(), filters)
			}
			if err := a.store.Err(); err != nil {
				return err
			}

			projects := a.store.FilteredProjects()
			if flagJSON {
				printJSON(projects)
				return nil
			}

			printProjects(projects)
			printMessage(fmt.Sprintf("\nShowing %d of %d projects", len(projects), len(a.store.Projects())))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, in-progress, completed)")
	cmd.Flags().IntVar(&clientID, "client", 0, "Filter by client ID")
	cmd.Flags().StringVar(&search, "search", "", "Filter by name or description")
	cmd.Flags().BoolVar(&local, "local", false, "Filter locally instead of on the server")
	return cmd
}

func newProjectsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show project counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			if err := a.requireRead(); err != nil {
				return err
			}

			a.store.FetchProjectStats(cmd.Context())
			if err := a.store.Err(); err != nil {
				return err
			}

			stats := a.store.Stats()
			if flagJSON {
				printJSON(stats)
				return nil
			}

			counts := map[project.Status]int{
				project.StatusPending:    stats.Pending,
				project.StatusInProgress: stats.InProgress,
				project.StatusCompleted:  stats.Completed,
			}
			rows := make([][]string, 0, len(project.Statuses)+1)
			for _, s := range project.Statuses {
				rows = append(rows, []string{string(s), strconv.Itoa(counts[s])})
			}
			rows = append(rows, []string{"Total", strconv.Itoa(stats.Total)})
			printTable([]string{"STATUS", "COUNT"}, rows)
			return nil
		},
	}
}

func newProjectsGetCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a project by ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			if err := a.requireRead(); err != nil {
				return err
			}

			p, err := a.store.GetProject(cmd.Context(), id)
			if err != nil {
				return err
			}

			if flagJSON {
				printJSON(p)
				return nil
			}

			headers := []string{"FIELD", "VALUE"}
			rows := [][]string{
				{"ID", p.ID},
				{"Name", p.ProjectName},
				{"Description", p.Description},
				{"Client ID", strconv.Itoa(p.ClientID)},
				{"Status", string(p.Status)},
				{"Created At", p.CreatedAt.Format(timeLayout)},
				{"Updated At", p.UpdatedAt.Format(timeLayout)},
			}
			printTable(headers, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Project ID (required)")
	cmd.MarkFlagRequired("id")
	return cmd
}

func newProjectsCreateCmd() *cobra.Command {
	var clientID, name, description, status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := project.CreateInput{
				ClientID:    clientID,
				ProjectName: name,
				Description: description,
			}
			if status != "" {
				s, err := project.ParseStatus(status)
				if err != nil {
					return err
				}
				in.Status = s
			}

			a := newApp()
			if err := a.requireWrite(); err != nil {
				return err
			}
			if err := a.store.CreateProject(cmd.Context(), in); err != nil {
				return err
			}

			if flagJSON {
				printJSON(a.store.Projects())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "Client ID (required)")
	cmd.MarkFlagRequired("client")
	cmd.Flags().StringVar(&name, "name", "", "Project name (required)")
	cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (default Pending)")
	return cmd
}

func newProjectsUpdateCmd() *cobra.Command {
	var id, name, description, status string
	var clientID int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := project.UpdateInput{}
			if cmd.Flags().Changed("name") {
				in.ProjectName = &name
			}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			if cmd.Flags().Changed("client") {
				in.ClientID = &clientID
			}
			if cmd.Flags().Changed("status") {
				s, err := project.ParseStatus(status)
				if err != nil {
					return err
				}
				in.Status = &s
			}
			if in.IsEmpty() {
				return fmt.Errorf("nothing to update: set at least one of --name, --description, --client, --status")
			}

			a := newApp()
			if err := a.requireWrite(); err != nil {
				return err
			}
			return a.store.UpdateProject(cmd.Context(), id, in)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Project ID (required)")
	cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&name, "name", "", "New project name")
	cmd.Flags().StringVar(&description, "description", "", "New project description")
	cmd.Flags().IntVar(&clientID, "client", 0, "New client ID")
	cmd.Flags().StringVar(&status, "status", "", "New status")
	return cmd
}

func newProjectsStatusCmd() *cobra.Command {
	var id, status string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Change only the status of a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := project.ParseStatus(status)
			if err != nil {
				return err
			}

			a := newApp()
			if err := a.requireWrite(); err != nil {
				return err
			}
			return a.store.UpdateProjectStatus(cmd.Context(), id, s)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Project ID (required)")
	cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&status, "status", "", "New status (required)")
	cmd.MarkFlagRequired("status")
	return cmd
}

func newProjectsDeleteCmd() *cobra.Command {
	var id string
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmAction(fmt.Sprintf("Delete project %s?", id), yes) {
				printMessage("Aborted.")
				return nil
			}

			a := newApp()
			if err := a.requireWrite(); err != nil {
				return err
			}
			return a.store.DeleteProject(cmd.Context(), id)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Project ID (required)")
	cmd.MarkFlagRequired("id")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip confirmation")
	return cmd
}

func newProjectsByClientCmd() *cobra.Command {
	var clientID int

	cmd := &cobra.Command{
		Use:   "by-client",
		Short: "List the projects of one client",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			if err := a.requireRead(); err != nil {
				return err
			}

			projects, err := a.store.ListByClient(cmd.Context(), clientID)
			if err != nil {
				return err
			}

			if flagJSON {
				printJSON(projects)
				return nil
			}
			printProjects(projects)
			return nil
		},
	}

	cmd.Flags().IntVar(&clientID, "client", 0, "Client ID (required)")
	cmd.MarkFlagRequired("client")
	return cmd
}

func printProjects(projects []project.Project) {
	headers := []string{"ID", "CLIENT", "NAME", "STATUS", "DESCRIPTION", "CREATED AT"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			p.ID,
			strconv.Itoa(p.ClientID),
			truncate(p.ProjectName, 32),
			string(p.Status),
			truncate(p.Description, 40),
			p.CreatedAt.Format(timeLayout),
		})
	}
	printTable(headers, rows)
}
