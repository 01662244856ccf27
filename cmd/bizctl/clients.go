package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newClientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Browse clients",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the clients projects can be assigned to",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			if err := a.requireRead(); err != nil {
				return err
			}

			clients, err := a.store.ListClients(cmd.Context())
			if err != nil {
				return err
			}

			if flagJSON {
				printJSON(clients)
				return nil
			}

			rows := make([][]string, 0, len(clients))
			for _, c := range clients {
				rows = append(rows, []string{strconv.Itoa(c.ID), c.Name})
			}
			printTable([]string{"ID", "NAME"}, rows)
			return nil
		},
	})
	return cmd
}
