package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/acorn-io/cmd"
	"github.com/ibuildthecloud/rjson"
	"github.com/ibuildthecloud/rjson/value"
	"github.com/ibuildthecloud/rjson/writer"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type Convert struct {
	rjson *RJSON
}

func NewConvert(rjson *RJSON) *cobra.Command {
	return cmd.Command(&Convert{rjson: rjson}, cobra.Command{
		Use:   "convert [flags] FILE",
		Short: "Reads a relaxed JSON or YAML file and writes it in the selected output format",
		Args:  cobra.ExactArgs(1),
	})
}

func (c *Convert) Run(cmd *cobra.Command, args []string) error {
	tree, err := readTree(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	var out []byte
	switch c.rjson.Output {
	case "json":
		out = writer.Write(tree, writer.Strict)
	case "rjson":
		out = writer.Write(tree, writer.Relaxed)
	case "yaml":
		out, err = yaml.Marshal(tree.NativeValue())
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q", c.rjson.Output)
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// readTree loads a document, accepting YAML alongside the native dialect
// so files can move in either direction.
func readTree(name string, stdin io.Reader) (value.Value, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, err
	}

	if isYAMLFilename(name) {
		native := map[string]any{}
		if err := yaml.Unmarshal(data, &native); err != nil {
			return nil, err
		}
		return value.NewValue(native), nil
	}

	var tree value.Value
	if err := rjson.Unmarshal(data, &tree, rjson.Option{SourceName: name}); err != nil {
		return nil, err
	}
	return tree, nil
}

func isYAMLFilename(v string) bool {
	for _, suffix := range []string{".yaml", ".yml"} {
		if strings.HasSuffix(strings.ToLower(v), suffix) {
			return true
		}
	}
	return false
}
