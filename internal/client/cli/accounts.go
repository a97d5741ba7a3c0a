package cli

import (
	"fmt"

	"github.com/dmitrijs2005/bankaccounts/internal/client/models"
	"github.com/spf13/cobra"
)

func newAccountsCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account", "acc"},
		Short:   "Manage bank accounts",
		Long:    `Commands for the account resource. Amounts are in minor units (cents).`,
	}

	cmd.AddCommand(
		newAccountsListCmd(app),
		newAccountsGetCmd(app),
		newAccountsCreateCmd(app),
		newAccountsUpdateCmd(app),
		newAccountsDeleteCmd(app),
	)
	return cmd
}

func newAccountsListCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all accounts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			accounts, err := a.accountsService.List(cmd.Context())
			if err != nil {
				return err
			}
			printAccounts(a.out, accounts)
			return nil
		},
	}
}

func newAccountsGetCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <number>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			acc, err := a.accountsService.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printAccount(a.out, acc)
			return nil
		},
	}
}

func newAccountsCreateCmd(app func() *App) *cobra.Command {
	var (
		number  string
		holder  string
		balance int64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			acc, err := a.accountsService.Create(cmd.Context(), models.AccountInput{
				Number:  number,
				Holder:  holder,
				Balance: &balance,
			})
			if err != nil {
				return fmt.Errorf("create: %s", describeError(err))
			}
			printAccount(a.out, acc)
			return nil
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "account number")
	cmd.Flags().StringVar(&holder, "holder", "", "account holder")
	cmd.Flags().Int64Var(&balance, "balance", 0, "opening balance in minor units")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("holder")
	return cmd
}

func newAccountsUpdateCmd(app func() *App) *cobra.Command {
	var (
		holder  string
		balance int64
	)

	cmd := &cobra.Command{
		Use:   "update <number>",
		Short: "Replace holder and balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			acc, err := a.accountsService.Update(cmd.Context(), args[0], models.AccountUpdate{
				Holder:  holder,
				Balance: &balance,
			})
			if err != nil {
				return fmt.Errorf("update: %s", describeError(err))
			}
			printAccount(a.out, acc)
			return nil
		},
	}

	cmd.Flags().StringVar(&holder, "holder", "", "account holder")
	cmd.Flags().Int64Var(&balance, "balance", 0, "balance in minor units")
	_ = cmd.MarkFlagRequired("holder")
	_ = cmd.MarkFlagRequired("balance")
	return cmd
}

func newAccountsDeleteCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <number>",
		Aliases: []string{"rm"},
		Short:   "Close an account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.accountsService.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Account %s deleted\n", args[0])
			return nil
		},
	}
}
