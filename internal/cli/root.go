// Package cli implements the asbtool command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/go-asb/internal/util"
	"github.com/arloliu/go-asb/symbol"
)

// NewRootCommand returns the asbtool command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "asbtool",
		Short:         "Encode, decode and relay aSysBus frames",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newDecodeCommand(),
		newEncodeCommand(),
		newDescribeCommand(),
		newSymbolsCommand(),
		newBridgeCommand(),
	)

	return root
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadSymbols returns the table of the definitions file, or the embedded table if path is
// empty. A file that cannot be read yields an empty table and a warning on stderr.
func loadSymbols(cmd *cobra.Command, path string) *symbol.Table {
	if path == "" {
		return symbol.Default()
	}

	table, err := symbol.LoadFile(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	return table
}

// parseHexArgs parses each argument as a hex value of at most bitSize bits.
func parseHexArgs(args []string, bitSize int) ([]uint64, error) {
	values := make([]uint64, len(args))
	for i, arg := range args {
		v, err := util.ParseHex(arg, bitSize)
		if err != nil {
			return nil, fmt.Errorf("argument %d %q: %w", i+1, arg, err)
		}
		values[i] = v
	}

	return values, nil
}

// openInput opens path for reading, or returns the command's input for "" and "-".
func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	return f, func() { _ = f.Close() }, nil
}
