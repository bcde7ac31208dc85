package main

import (
	"github.com/acorn-io/cmd"
	"github.com/spf13/cobra"
)

type RJSON struct {
	Output string `usage:"Output format (json, rjson, yaml)" short:"o" default:"json"`
}

func (r *RJSON) Customize(cmd *cobra.Command) {
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SilenceUsage = true
	cmd.AddCommand(NewFmt(r))
	cmd.AddCommand(NewConvert(r))
}

func (r *RJSON) Run(cmd *cobra.Command, args []string) error {
	return cmd.Usage()
}

func main() {
	cmd.Main(cmd.Command(&RJSON{}))
}
