package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bankaccounts/internal/client/cli"
)

func main() {

	ctx := context.Background()
	root := cli.NewRootCmd(os.Stdin, os.Stdout)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}
