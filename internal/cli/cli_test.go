package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-asb/asb"
	"github.com/arloliu/go-asb/frame"
	"github.com/arloliu/go-asb/symbol"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestReporter_Packet(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	r := newReporter(&buf, symbol.Default())
	r.now = func() time.Time { return time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC) }

	r.writeLine(frame.Line{Packet: asb.NewMulticast(0x0001, 0x010, asb.CmdTemperature, 0x00, 0xC8)})

	out := buf.String()
	require.True(strings.HasPrefix(out, "---\n2026-10-19 12:30:00\n"))
	require.Contains(out, "Packet type: ASB_PKGTYPE_MULTICAST (0x01)\n")
	require.Contains(out, "Target:      0x0001\n")
	require.Contains(out, "Source:      0x010\n")
	require.Contains(out, "Port:        0xFF\n")
	require.Contains(out, "Length:      0x03\n")
	require.Contains(out, "ASB_CMD_S_TEMP (x*0.1°C, int)")
	require.Contains(out, "0xC8")
	require.Contains(out, "Temperature is 20.0°C\n")
	require.True(strings.HasSuffix(out, "---\n"))
}

func TestReporter_UnknownTypeAndEmptyPayload(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	r := newReporter(&buf, symbol.NewTable())
	r.writeLine(frame.Line{Packet: asb.Packet{Type: 7, Target: 1, Source: 2, Port: 3}})

	out := buf.String()
	require.Contains(out, "Packet type: unknown (0x07)\n")
	require.Contains(out, "Port:        0x03\n")
	require.Contains(out, "Length:      0x00\n")
	require.NotContains(out, "SYMBOL")
}

func TestReporter_NotDetected(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	r := newReporter(&buf, symbol.Default())
	r.writeLine(frame.Line{Raw: "ASB ready", Err: frame.ErrNotAPacket})

	require.Equal("Not detected: ASB ready\n---\n", buf.String())
}

func TestDecodeCommand(t *testing.T) {
	require := require.New(t)

	input := frame.Encode(asb.NewUnicast(0x001, 0x002, 0x05, asb.CmdPing)) + "\r\ngarbage\r\n"
	stdout, _, err := runCommand(t, input, "decode")
	require.NoError(err)
	require.Contains(stdout, "Packet type: ASB_PKGTYPE_UNICAST (0x02)")
	require.Contains(stdout, "ASB_CMD_PING")
	require.Contains(stdout, "PING request")
	require.Contains(stdout, "Not detected: garbage\n")
}

func TestDecodeCommand_LongNoiseLine(t *testing.T) {
	require := require.New(t)

	input := strings.Repeat("\xff", 2*frame.MaxLineSize) + "\n" +
		frame.Encode(asb.NewUnicast(0x001, 0x002, 0x05, asb.CmdPing))
	stdout, _, err := runCommand(t, input, "decode")
	require.NoError(err)
	require.Contains(stdout, "Not detected: ")
	require.Contains(stdout, "PING request")
}

func TestDecodeCommand_FilesAndDefs(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "capture.txt")
	defs := filepath.Join(dir, "defs.h")
	require.NoError(os.WriteFile(input, []byte(frame.Encode(asb.NewMulticast(0x10, 0x20, asb.Cmd1Bit, 1))), 0o600))
	require.NoError(os.WriteFile(defs, []byte("#define ASB_CMD_1B 0x51 //switch\n"), 0o600))

	stdout, stderr, err := runCommand(t, "", "decode", "--defs", defs, "--input", input)
	require.NoError(err)
	require.Empty(stderr)
	require.Contains(stdout, "ASB_CMD_1B (switch)")
	require.Contains(stdout, "Packet type: Multicast (0x01)")
	require.Contains(stdout, "1-bit-message, state is 1")

	stdout, stderr, err = runCommand(t, "", "decode", "--defs", filepath.Join(dir, "missing.h"), "--input", input)
	require.NoError(err)
	require.Contains(stderr, "warning:")
	require.Contains(stdout, "1-bit-message, state is 1")

	_, _, err = runCommand(t, "", "decode", "--input", filepath.Join(dir, "missing.txt"))
	require.ErrorIs(err, os.ErrNotExist)
}

func TestEncodeCommand(t *testing.T) {
	require := require.New(t)

	stdout, _, err := runCommand(t, "", "encode", "2", "1", "2", "5", "70")
	require.NoError(err)
	require.Equal("\x012\x1f1\x1f2\x1f5\x1f1\x0270\x1f\x04\r\n", stdout)

	stdout, _, err = runCommand(t, "", "encode", "0x01", "0x122", "0x001", "ff", "51", "1")
	require.NoError(err)
	require.Equal(frame.Encode(asb.NewMulticast(0x122, 0x001, asb.Cmd1Bit, 1)), stdout)

	stdout, _, err = runCommand(t, "", "encode", "0", "ffff", "1", "FF")
	require.NoError(err)
	require.Equal(frame.Encode(asb.NewBroadcast(0xFFFF, 0x001)), stdout)
}

func TestEncodeCommand_Errors(t *testing.T) {
	require := require.New(t)

	_, _, err := runCommand(t, "", "encode", "2", "1", "2")
	require.ErrorContains(err, "requires at least 4 arg(s)")

	_, _, err = runCommand(t, "", "encode", "2", "1", "2", "5", "100")
	require.ErrorContains(err, `"100"`)

	_, _, err = runCommand(t, "", "encode", "2", "xyz", "2", "5")
	require.Error(err)

	_, _, err = runCommand(t, "", "encode", "--validate", "2", "800", "2", "5")
	require.ErrorIs(err, asb.ErrInvalidTarget)
}

func TestDescribeCommand(t *testing.T) {
	require := require.New(t)

	stdout, _, err := runCommand(t, "", "describe", "A0", "00", "C8")
	require.NoError(err)
	require.Equal("Temperature is 20.0°C\n", stdout)

	_, _, err = runCommand(t, "", "describe", "B0")
	require.ErrorContains(err, "no description")

	_, _, err = runCommand(t, "", "describe")
	require.Error(err)
}

func TestSymbolsCommand(t *testing.T) {
	require := require.New(t)

	stdout, _, err := runCommand(t, "", "symbols")
	require.NoError(err)
	require.Contains(stdout, "ASB_PKGTYPE_BROADCAST")
	require.Contains(stdout, "ASB_CMD_S_PS")
	require.Less(strings.Index(stdout, "ASB_PKGTYPE_UNICAST"), strings.Index(stdout, "ASB_CMD_LEGACY_8B"))
}

func TestBridgeCommand_ConfigError(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "bridge.toml")
	require.NoError(os.WriteFile(path, []byte("[mqtt]\nqos = 5\n"), 0o600))

	_, _, err := runCommand(t, "", "bridge", "--config", path)
	require.ErrorContains(err, "mqtt.qos")
}
