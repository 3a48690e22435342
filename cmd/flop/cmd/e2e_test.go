package cmd

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/kairyu/flop/pkg/atmel"
	"github.com/kairyu/flop/pkg/ihex"
	"github.com/kairyu/flop/pkg/memory"
	"github.com/kairyu/flop/pkg/target"
)

type runResult struct {
	stdout string
	stderr string
	code   int
	err    error
}

// resetFlags clears flag state left over from a previous Execute.
func resetFlags() {
	quiet = false
	debugLevel = 0
	targetsFile = ""
	deviceAddr = ""
	transportKind = "usb"
	simImage = ""

	force = false
	suppressValidation = false
	eepromFlag = false
	userFlag = false
	suppressBootloader = false
	binaryOutput = false
	noReset = false

	lastSimulator = nil
}

func run(t *testing.T, args ...string) runResult {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return runResult{
		stdout: stdout.String(),
		stderr: stderr.String(),
		code:   exitCode(err),
		err:    err,
	}
}

func readHex(t *testing.T, path string) *memory.Buffer {
	t.Helper()
	buf, err := memory.NewOutput(0x8000, 128, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := ihex.LoadFile(path, buf); err != nil {
		t.Fatalf("Failed to load %s: %v", path, err)
	}
	return buf
}

// TestCommandsE2E runs each subcommand against the simulated bootloader.
func TestCommandsE2E(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantStdout   []string
		wantStderr   []string
		wantLaunched bool
	}{
		{
			name:       "targets",
			args:       []string{"targets"},
			wantStdout: []string{"8051 based controllers:", "AVR based controllers:", "atmega32u4", "at32uc3a0512", "atxmega128a1u"},
		},
		{
			name: "flash blank device",
			args: []string{"flash", "atmega32u4", "testdata/blink.hex", "--transport", "sim"},
			wantStderr: []string{
				"Checking memory from 0x0 to 0xFF...  Empty.",
				"Programming 0x100 bytes...",
				"Validating...  Success",
				"0x100 bytes written into 0x7000 bytes memory (0.89%).",
			},
		},
		{
			name:       "flash over programmed device",
			args:       []string{"flash", "atmega32u4", "testdata/blink.hex", "--transport", "sim", "--sim-image", "testdata/blink.hex"},
			wantCode:   ExitFlashWrite,
			wantStderr: []string{"Not blank at 0x0.", "The target memory for the program is not blank.", "Use --force flag"},
		},
		{
			name:       "flash forced",
			args:       []string{"flash", "atmega32u4", "testdata/blink.hex", "--transport", "sim", "--sim-image", "testdata/blink.hex", "--force"},
			wantStderr: []string{"Validating...  Success"},
		},
		{
			name:       "flash quiet",
			args:       []string{"flash", "atmega32u4", "testdata/blink.hex", "--transport", "sim", "-q"},
			wantStderr: nil,
		},
		{
			name:       "flash overlapping bootloader",
			args:       []string{"flash", "atmega32u4", "testdata/overlap.hex", "--transport", "sim"},
			wantCode:   ExitBufferInit,
			wantStderr: []string{"Bootloader and code overlap.", "--suppress-bootloader-mem"},
		},
		{
			name:       "flash suppressing bootloader bytes",
			args:       []string{"flash", "atmega32u4", "testdata/overlap.hex", "--transport", "sim", "--suppress-bootloader-mem"},
			wantStderr: []string{"0x80 bytes written"},
		},
		{
			name:     "flash eeprom on chip without eeprom",
			args:     []string{"flash", "at32uc3a0512", "testdata/blink.hex", "--transport", "sim", "--eeprom"},
			wantCode: ExitArgument,
		},
		{
			name:       "flash eeprom",
			args:       []string{"flash", "atmega32u4", "testdata/blink.hex", "--transport", "sim", "--eeprom"},
			wantStderr: []string{"0x100 bytes written into 0x400 bytes memory (25.00%)."},
		},
		{
			name:     "flash user page on AVR",
			args:     []string{"flash", "atmega32u4", "testdata/user.hex", "--transport", "sim", "--user"},
			wantCode: ExitArgument,
		},
		{
			name:       "flash user page without force",
			args:       []string{"flash", "at32uc3a0512", "testdata/user.hex", "--transport", "sim", "--user"},
			wantCode:   ExitArgument,
			wantStderr: []string{"--force flag is required to write user page."},
		},
		{
			name:       "flash user page",
			args:       []string{"flash", "at32uc3a0512", "testdata/user.hex", "--transport", "sim", "--user", "--force"},
			wantStderr: []string{"Validating...  Success", "0x200 bytes written into 0x200 bytes memory (100.00%)."},
		},
		{
			name:       "flash user page with no user data",
			args:       []string{"flash", "at32uc3a0512", "testdata/blink.hex", "--transport", "sim", "--user", "--force"},
			wantCode:   ExitBufferInit,
			wantStderr: []string{"WARNING: 0x100 bytes are outside target memory,"},
		},
		{
			name:     "flash missing file",
			args:     []string{"flash", "atmega32u4", "testdata/missing.hex", "--transport", "sim"},
			wantCode: ExitBufferInit,
		},
		{
			name:       "erase programmed device",
			args:       []string{"erase", "atmega32u4", "--transport", "sim", "--sim-image", "testdata/blink.hex"},
			wantStderr: []string{"Checking memory from 0x0 to 0x6FFF...  Not blank at 0x0.", "Erasing flash...  Success", "Empty."},
		},
		{
			name:       "erase blank device",
			args:       []string{"erase", "atmega32u4", "--transport", "sim"},
			wantStderr: []string{"Chip already blank, to force erase use --force."},
		},
		{
			name:       "erase forced",
			args:       []string{"erase", "atmega32u4", "--transport", "sim", "--force", "--suppress-validation"},
			wantStderr: []string{"Erasing flash...  Success"},
		},
		{
			name:       "get bootloader version",
			args:       []string{"get", "atmega32u4", "--transport", "sim"},
			wantStdout: []string{"Bootloader Version: 0x10 (16)"},
		},
		{
			name:       "get manufacturer quiet",
			args:       []string{"get", "atmega32u4", "manufacturer", "--transport", "sim", "-q"},
			wantStdout: []string{"0x1e (30)"},
		},
		{
			name:     "get 8051 item on AVR",
			args:     []string{"get", "atmega32u4", "BSB", "--transport", "sim"},
			wantCode: ExitUnspecified,
		},
		{
			name:       "get 8051 item on 8051",
			args:       []string{"get", "at89c5130", "SBV", "--transport", "sim"},
			wantStdout: []string{"Software Boot Vector: 0xf0 (240)"},
		},
		{
			name:     "get on AVR32",
			args:     []string{"get", "at32uc3a0512", "--transport", "sim"},
			wantCode: ExitUnspecified,
		},
		{
			name:     "get unknown item",
			args:     []string{"get", "atmega32u4", "fuses", "--transport", "sim"},
			wantCode: ExitArgument,
		},
		{
			name:         "launch",
			args:         []string{"launch", "atmega32u4", "--transport", "sim"},
			wantLaunched: true,
		},
		{
			name:         "start without reset",
			args:         []string{"start", "atmega32u4", "--transport", "sim", "--no-reset"},
			wantLaunched: true,
		},
		{
			name:     "unknown target",
			args:     []string{"erase", "atmega9999", "--transport", "sim"},
			wantCode: ExitArgument,
		},
		{
			name:     "unknown transport",
			args:     []string{"erase", "atmega32u4", "--transport", "serial"},
			wantCode: ExitArgument,
		},
		{
			name:     "missing target",
			args:     []string{"launch"},
			wantCode: ExitArgument,
		},
		{
			name:     "unknown flag",
			args:     []string{"launch", "atmega32u4", "--bogus"},
			wantCode: ExitArgument,
		},
		{
			name:     "bad device address",
			args:     []string{"launch", "atmega32u4", "--device", "one:two"},
			wantCode: ExitArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.args...)

			if res.code != tt.wantCode {
				t.Fatalf("Expected exit code %d, got %d (err: %v)\nstderr:\n%s", tt.wantCode, res.code, res.err, res.stderr)
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(res.stdout, want) {
					t.Errorf("Stdout missing expected string: %q\nGot:\n%s", want, res.stdout)
				}
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(res.stderr, want) {
					t.Errorf("Stderr missing expected string: %q\nGot:\n%s", want, res.stderr)
				}
			}
			if tt.wantStderr == nil && tt.wantCode == 0 && quiet && res.stderr != "" {
				t.Errorf("Expected no status output with --quiet, got:\n%s", res.stderr)
			}
			if tt.wantLaunched && (lastSimulator == nil || !lastSimulator.Launched()) {
				t.Error("Expected the application to be launched")
			}
		})
	}
}

func TestFlashWritesImage(t *testing.T) {
	res := run(t, "flash", "atmega32u4", "testdata/blink.hex", "--transport", "sim")
	if res.code != 0 {
		t.Fatalf("flash failed: %v\n%s", res.err, res.stderr)
	}
	want := readHex(t, "testdata/blink.hex")
	mem := lastSimulator.Memory(atmel.UnitFlash)
	for a := 0; a < 0x100; a++ {
		if mem[a] != want.Data(a) {
			t.Fatalf("Byte 0x%X: expected 0x%02X, got 0x%02X", a, want.Data(a), mem[a])
		}
	}
	if mem[0x100] != memory.Blank {
		t.Error("Expected flash after the image to stay blank")
	}
}

func TestFlashSuppressedBootloaderStaysBlank(t *testing.T) {
	res := run(t, "flash", "atmega32u4", "testdata/overlap.hex", "--transport", "sim", "--suppress-bootloader-mem")
	if res.code != 0 {
		t.Fatalf("flash failed: %v\n%s", res.err, res.stderr)
	}
	mem := lastSimulator.Memory(atmel.UnitFlash)
	if mem[0] != 0x03 {
		t.Errorf("Expected application byte 0x03 at 0, got 0x%02X", mem[0])
	}
	for a := 0x7000; a < 0x7010; a++ {
		if mem[a] != memory.Blank {
			t.Fatalf("Expected bootloader byte 0x%X to stay blank, got 0x%02X", a, mem[a])
		}
	}
}

func TestFlashUserPage(t *testing.T) {
	res := run(t, "flash", "at32uc3a0512", "testdata/user.hex", "--transport", "sim", "--user", "--force")
	if res.code != 0 {
		t.Fatalf("flash --user failed: %v\n%s", res.err, res.stderr)
	}
	user := lastSimulator.Memory(atmel.UnitUser)
	if user[0] != 0x03 || user[1] != 0x0A {
		t.Errorf("Expected user page to start 03 0A, got % X", user[:2])
	}
	if user[0x20] != memory.Blank {
		t.Error("Expected padding after the image to be blank")
	}
}

func TestEraseClearsFlash(t *testing.T) {
	res := run(t, "erase", "atmega32u4", "--transport", "sim", "--sim-image", "testdata/blink.hex")
	if res.code != 0 {
		t.Fatalf("erase failed: %v\n%s", res.err, res.stderr)
	}
	for a, v := range lastSimulator.Memory(atmel.UnitFlash)[:0x7000] {
		if v != memory.Blank {
			t.Fatalf("Expected flash blank after erase, byte 0x%X is 0x%02X", a, v)
		}
	}
}

func TestReadHex(t *testing.T) {
	res := run(t, "read", "atmega32u4", "--transport", "sim", "--sim-image", "testdata/blink.hex")
	if res.code != 0 {
		t.Fatalf("read failed: %v\n%s", res.err, res.stderr)
	}
	if !strings.Contains(res.stderr, "Reading 0x7000 bytes...") {
		t.Errorf("Expected read progress, got:\n%s", res.stderr)
	}

	got, err := memory.NewOutput(0x8000, 128, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := ihex.Load(strings.NewReader(res.stdout), got); err != nil {
		t.Fatalf("Output is not Intel HEX: %v\n%s", err, res.stdout)
	}
	want := readHex(t, "testdata/blink.hex")
	if got.DataRange() != want.DataRange() {
		t.Fatalf("Expected dump of %v, got %v", want.DataRange(), got.DataRange())
	}
	for a := 0; a < 0x100; a++ {
		if got.Data(a) != want.Data(a) {
			t.Fatalf("Byte 0x%X: expected 0x%02X, got 0x%02X", a, want.Data(a), got.Data(a))
		}
	}
}

func TestReadBlank(t *testing.T) {
	res := run(t, "dump", "atmega32u4", "--transport", "sim")
	if res.code != 0 {
		t.Fatalf("dump failed: %v\n%s", res.err, res.stderr)
	}
	if !strings.Contains(res.stderr, "Memory is blank, returning a single blank page.") {
		t.Errorf("Expected blank memory notice, got:\n%s", res.stderr)
	}

	got, err := memory.NewOutput(0x8000, 128, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := ihex.Load(strings.NewReader(res.stdout), got); err != nil {
		t.Fatalf("Output is not Intel HEX: %v", err)
	}
	if dr := got.DataRange(); dr != memory.NewRange(0, 127) {
		t.Errorf("Expected a single 128 byte page, got %v", dr)
	}
}

func TestReadBinary(t *testing.T) {
	res := run(t, "read", "atmega32u4", "--transport", "sim", "--sim-image", "testdata/blink.hex", "--bin")
	if res.code != 0 {
		t.Fatalf("read --bin failed: %v\n%s", res.err, res.stderr)
	}
	if len(res.stdout) != 0x7000 {
		t.Fatalf("Expected 0x7000 raw bytes, got 0x%X", len(res.stdout))
	}
	want := readHex(t, "testdata/blink.hex")
	if res.stdout[0] != want.Data(0) || res.stdout[0x100] != memory.Blank {
		t.Error("Raw output does not match the device image")
	}
}

func TestReadUserPageAddress(t *testing.T) {
	res := run(t, "read", "at32uc3a0512", "--transport", "sim", "--user", "--force")
	if res.code != 0 {
		t.Fatalf("read --user failed: %v\n%s", res.err, res.stderr)
	}
	got, err := memory.NewOutput(0x200, 0x200, target.UserPageOffset)
	if err != nil {
		t.Fatal(err)
	}
	if err := ihex.Load(strings.NewReader(res.stdout), got); err != nil {
		t.Fatalf("Output is not Intel HEX: %v", err)
	}
	if got.InvalidAddressCount() != 0 {
		t.Errorf("Expected every dumped byte at the user page address, 0x%X were not (first 0x%X)",
			got.InvalidAddressCount(), got.FirstInvalidAddress())
	}
	if dr := got.DataRange(); dr != memory.NewRange(0, 0x1FF) {
		t.Errorf("Expected the whole user page, got %v", dr)
	}
}

func TestTargetsFile(t *testing.T) {
	path := t.TempDir() + "/extra.targets"
	content := `target "flopboard" {
    family      = avr
    vendor      = 0x03eb
    product     = 0x2ff4
    memory      = 0x8000
    bootloader  = 0x1000 high
    flash-page  = 128
    eeprom      = 0x400
    eeprom-page = 128
    initial-abort
}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	res := run(t, "targets", "--targets-file", path)
	if res.code != 0 {
		t.Fatalf("targets failed: %v", res.err)
	}
	if !strings.Contains(res.stdout, "flopboard") {
		t.Errorf("Expected flopboard in target list, got:\n%s", res.stdout)
	}

	res = run(t, "get", "flopboard", "--transport", "sim", "--targets-file", path)
	if res.code != 0 {
		t.Fatalf("get on file target failed: %v\n%s", res.err, res.stderr)
	}

	res = run(t, "targets", "--targets-file", path+".missing")
	if res.code != ExitArgument {
		t.Errorf("Expected exit %d for a missing targets file, got %d", ExitArgument, res.code)
	}
}

func TestParseDeviceAddr(t *testing.T) {
	tests := []struct {
		in        string
		bus, addr int
		wantErr   bool
	}{
		{in: ""},
		{in: "1:12", bus: 1, addr: 12},
		{in: "3", wantErr: true},
		{in: "x:1", wantErr: true},
		{in: "1:y", wantErr: true},
	}
	for _, tt := range tests {
		bus, addr, err := parseDeviceAddr(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDeviceAddr(%q): unexpected error state %v", tt.in, err)
			continue
		}
		if bus != tt.bus || addr != tt.addr {
			t.Errorf("parseDeviceAddr(%q) = %d:%d, want %d:%d", tt.in, bus, addr, tt.bus, tt.addr)
		}
	}
}

func TestCommandContext(t *testing.T) {
	c := &cobra.Command{}
	if ctx := commandContext(c); ctx == nil || ctx.Err() != nil {
		t.Fatalf("Expected a live background context, got %v", ctx)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.SetContext(ctx)
	cancel()
	if err := commandContext(c).Err(); err != context.Canceled {
		t.Errorf("Expected the caller's cancellation to propagate, got %v", err)
	}
}
