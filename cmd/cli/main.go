package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/profilespaces/internal/client/cli"
	"github.com/dmitrijs2005/profilespaces/internal/client/config"
	"github.com/dmitrijs2005/profilespaces/internal/flagx"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	root := cli.NewRootCommand(cli.Open(cfg))
	root.SetArgs(flagx.StripArgs(os.Args[1:], config.Flags))

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
