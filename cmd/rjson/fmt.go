package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/acorn-io/cmd"
	"github.com/ibuildthecloud/rjson"
	"github.com/spf13/cobra"
)

type Fmt struct {
	rjson *RJSON
}

func NewFmt(rjson *RJSON) *cobra.Command {
	return cmd.Command(&Fmt{rjson: rjson}, cobra.Command{
		Use:   "fmt [flags] FILE...",
		Short: "Rewrites files in relaxed form, writing back only when the content changed",
	})
}

func (f *Fmt) Run(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		data, err := os.ReadFile(arg)
		if err != nil {
			return fmt.Errorf("reading %s: %w", arg, err)
		}

		newData, err := rjson.Format(data)
		if err != nil {
			return fmt.Errorf("formatting %s: %w", arg, err)
		}

		if !bytes.Equal(data, newData) {
			err := os.WriteFile(arg, newData, 0644)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
