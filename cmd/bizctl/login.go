package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hairizuanbinnoorazman/bizadmin/apiclient"
	"github.com/hairizuanbinnoorazman/bizadmin/auth"
	"github.com/spf13/cobra"
)

type loginResponse struct {
	AccessToken string    `json:"accessToken"`
	Role        auth.Role `json:"role"`
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange an email and password for an access token",
		Long: `Log in and print the access token. The token is not stored; put it in
~/.bizadmin.yaml or export BIZADMIN_TOKEN.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("BIZADMIN_PASSWORD")
			}
			if password == "" {
				fmt.Fprint(os.Stderr, "Password: ")
				scanner := bufio.NewScanner(os.Stdin)
				if scanner.Scan() {
					password = strings.TrimSpace(scanner.Text())
				}
			}

			api := apiclient.New(getConfigURL(), apiclient.WithLogger(newLogger(os.Stderr)))

			var resp loginResponse
			err := api.Post(cmd.Context(), "/api/auth/login", map[string]string{
				"email":    email,
				"password": password,
			}, &resp)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if flagJSON {
				printJSON(resp)
				return nil
			}

			printMessage(fmt.Sprintf("Logged in as %s (%s)", email, resp.Role))
			printMessage("")
			printMessage(fmt.Sprintf("export BIZADMIN_TOKEN=%s", resp.AccessToken))
			printMessage(fmt.Sprintf("export BIZADMIN_ROLE=%s", resp.Role))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (env: BIZADMIN_PASSWORD, prompted when empty)")
	return cmd
}
