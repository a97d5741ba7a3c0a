package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/client/client"
	"github.com/dmitrijs2005/bankaccounts/internal/client/config"
	"github.com/spf13/cobra"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	configFile string
	server     string
	timeout    time.Duration
	sessionDB  string
}

// NewRootCmd builds the bankaccounts command tree. Prompts read from in and
// all output goes to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var (
		flags rootFlags
		app   *App
	)

	root := &cobra.Command{
		Use:   "bankaccounts",
		Short: "Command-line client for the bankaccounts API",
		Long: `bankaccounts talks to a bankaccounts server over HTTP.

Log in once with "bankaccounts login"; the token is kept in a local session
file and sent with every account command until it expires.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(flags.configFile)
			if err != nil {
				return err
			}

			pf := cmd.Flags()
			if pf.Changed("server") {
				cfg.ServerURL = flags.server
			}
			if pf.Changed("timeout") {
				cfg.RequestTimeout = flags.timeout
			}
			if pf.Changed("session-db") {
				cfg.SessionDB = flags.sessionDB
			}

			app, err = NewApp(cmd.Context(), cfg, in, out)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	var defaults config.Config
	defaults.LoadDefaults()

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "path to a JSON config file")
	pf.StringVarP(&flags.server, "server", "a", defaults.ServerURL, "base URL of the bankaccounts API")
	pf.DurationVar(&flags.timeout, "timeout", defaults.RequestTimeout, "timeout of a single API call")
	pf.StringVar(&flags.sessionDB, "session-db", defaults.SessionDB, "path of the local session file")

	appFn := func() *App { return app }

	root.AddCommand(
		newPingCmd(appFn),
		newRegisterCmd(appFn),
		newLoginCmd(appFn),
		newLogoutCmd(appFn),
		newStatusCmd(appFn),
		newAccountsCmd(appFn),
	)
	root.CompletionOptions.DisableDefaultCmd = true

	return root
}

// describeError turns client errors into one line for the user, listing
// field messages of validation failures.
func describeError(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		msg := apiErr.Message
		for field, problem := range apiErr.Fields {
			msg += fmt.Sprintf("\n  %s: %s", field, problem)
		}
		return msg
	}
	return err.Error()
}
