package cli

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/common"
	"github.com/spf13/cobra"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// promptCredentials asks for whatever the identifier flag left open and
// always for the secret.
func (a *App) promptCredentials(identifier string) (string, []byte, error) {
	if identifier == "" {
		var err error
		identifier, err = getSimpleText(a.reader, "Enter identifier", a.out)
		if err != nil {
			return "", nil, err
		}
	}

	secret, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return identifier, secret, nil
}

func newPingCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.authService.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s is up\n", a.config.ServerURL)
			return nil
		},
	}
}

func newRegisterCmd(app func() *App) *cobra.Command {
	var identifier string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a principal on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id, secret, err := a.promptCredentials(identifier)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(secret)

			if err := a.authService.Register(cmd.Context(), id, secret); err != nil {
				return fmt.Errorf("register: %s", describeError(err))
			}

			fmt.Fprintln(a.out, "Success!")
			return nil
		},
	}
	cmd.Flags().StringVarP(&identifier, "identifier", "u", "", "principal identifier (prompted when empty)")
	return cmd
}

func newLoginCmd(app func() *App) *cobra.Command {
	var identifier string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the token for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id, secret, err := a.promptCredentials(identifier)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(secret)

			s, err := a.authService.Login(cmd.Context(), id, secret)
			if err != nil {
				return fmt.Errorf("login: %s", describeError(err))
			}

			fmt.Fprintf(a.out, "Logged in as %s until %s\n", s.Identifier, s.ExpiresAt.Local().Format(time.RFC1123))
			return nil
		},
	}
	cmd.Flags().StringVarP(&identifier, "identifier", "u", "", "principal identifier (prompted when empty)")
	return cmd
}

func newLogoutCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.authService.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func newStatusCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			s, err := a.authService.Current(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in to %s as %s until %s\n",
				s.ServerURL, s.Identifier, s.ExpiresAt.Local().Format(time.RFC1123))
			return nil
		},
	}
}
