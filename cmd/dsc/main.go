package main

import (
	"fmt"
	"os"

	"github.com/dsascode/dsc/internal/pkg/cli"
	"github.com/dsascode/dsc/internal/pkg/env"
	"github.com/dsascode/dsc/internal/pkg/filesystem/aferofs"
	"github.com/dsascode/dsc/internal/pkg/interaction"
)

func main() {
	prompt := interaction.NewPrompt(os.Stdin, os.Stdout, os.Stderr)
	envs, err := env.FromOs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read os envs: %s\n", err)
		os.Exit(1)
	}
	cmd := cli.NewRootCommand(os.Stdin, os.Stdout, os.Stderr, prompt, envs, aferofs.LocalFsFactory())
	os.Exit(cmd.Execute())
}
