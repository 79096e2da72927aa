package main

import (
	"fmt"
	"os"

	"github.com/ncobase/commerce/cmd/commerce/commands"
)

func main() {
	rootCmd := commands.NewRootCmd(commands.Injectors{
		App:    InitializeApp,
		Tokens: InitializeTokenService,
	})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
