package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arloliu/go-asb/asb"
	"github.com/arloliu/go-asb/command"
	"github.com/arloliu/go-asb/frame"
)

func newDecodeCommand() *cobra.Command {
	var defsPath, inputPath string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode frames line by line and print a report for each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, closeInput, err := openInput(cmd, inputPath)
			if err != nil {
				return err
			}
			defer closeInput()

			r := newReporter(cmd.OutOrStdout(), loadSymbols(cmd, defsPath))
			sc := frame.NewScanner(in)
			for {
				line, err := sc.Next()
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				r.writeLine(line)
			}
		},
	}
	cmd.Flags().StringVar(&defsPath, "defs", "", "definitions header with type and command names (default: built-in)")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "file to read frames from (default: stdin)")

	return cmd
}

func newEncodeCommand() *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:   "encode TYPE TARGET SOURCE PORT [DATA...]",
		Short: "Print the frame of a packet given as hex fields",
		Long: "Print the frame of a packet given as hex fields.\n\n" +
			"All arguments are hexadecimal, with or without 0x prefix. A PORT of FF means no port.",
		Args: cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			header, err := parseHexArgs(args[:1], 8)
			if err != nil {
				return err
			}
			addrs, err := parseHexArgs(args[1:3], 32)
			if err != nil {
				return err
			}
			port, err := parseHexArgs(args[3:4], 8)
			if err != nil {
				return err
			}
			data, err := parseHexArgs(args[4:], 8)
			if err != nil {
				return err
			}

			p := asb.Packet{
				Type:   asb.PacketType(header[0]),
				Target: uint32(addrs[0]),
				Source: uint32(addrs[1]),
				Port:   int(port[0]),
			}
			if port[0] == asb.WirePortNone {
				p.Port = asb.NoPort
			}
			if len(data) > 0 {
				p.Payload = make([]byte, len(data))
				for i, v := range data {
					p.Payload[i] = byte(v)
				}
			}

			if validate {
				if err := p.Validate(); err != nil {
					return err
				}
			}

			return frame.Write(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "reject packets outside the protocol's address, port and length ranges")

	return cmd
}

func newDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe DATA...",
		Short: "Describe a payload given as hex bytes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseHexArgs(args, 8)
			if err != nil {
				return err
			}
			payload := make([]byte, len(values))
			for i, v := range values {
				payload[i] = byte(v)
			}

			desc, ok := command.Describe(payload)
			if !ok {
				return fmt.Errorf("no description for payload % X", payload)
			}
			fmt.Fprintln(cmd.OutOrStdout(), desc)

			return nil
		},
	}
}

func newSymbolsCommand() *cobra.Command {
	var defsPath string

	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "List packet type and command names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writeSymbols(cmd.OutOrStdout(), loadSymbols(cmd, defsPath))
			return nil
		},
	}
	cmd.Flags().StringVar(&defsPath, "defs", "", "definitions header with type and command names (default: built-in)")

	return cmd
}
