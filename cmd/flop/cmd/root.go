package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/kairyu/flop/internal/debuglog"
	"github.com/kairyu/flop/pkg/target"
)

// Process exit codes.
const (
	ExitSuccess               = 0
	ExitUnspecified           = 1
	ExitArgument              = 2
	ExitDeviceAccess          = 3
	ExitBufferInit            = 4
	ExitFlashRead             = 5
	ExitFlashWrite            = 6
	ExitValidationInRegion    = 7
	ExitValidationOutOfRegion = 8
)

// Log thresholds for the command line layer.
var logThresholds = debuglog.Thresholds{Debug: 40, Trace: 40}

var (
	// Global flags
	quiet       bool
	debugLevel  int
	targetsFile string
	deviceAddr  string

	transportKind string
	simImage      string
)

var rootCmd = &cobra.Command{
	Use:   "flop",
	Short: "Atmel USB DFU bootloader programmer",
	Long: `Program the flash, EEPROM and user page of Atmel 8051, AVR, AVR32 and
XMEGA microcontrollers through their factory USB DFU bootloader.

Examples:
  flop targets                              # List supported chips
  flop erase atmega32u4                     # Erase the application flash
  flop flash atmega32u4 firmware.hex        # Program and validate
  flop read atmega32u4 > dump.hex           # Read flash as Intel HEX
  flop launch atmega32u4                    # Start the application`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		flag.Set("logtostderr", "true")
		if transportKind != "usb" && transportKind != "sim" {
			return argError(fmt.Errorf("unknown transport %q", transportKind))
		}
		return nil
	},
}

// ExitError carries the exit code of a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func exitError(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

func argError(err error) error { return exitError(ExitArgument, err) }

// exitCode maps the result of a command onto a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *ExitError
	if errors.As(err, &e) {
		return e.Code
	}
	return ExitUnspecified
}

// Execute runs the root command and exits the process.
func Execute() {
	err := rootCmd.Execute()
	if err != nil && !quiet {
		fmt.Fprintln(os.Stderr, err)
	}
	glog.Flush()
	os.Exit(exitCode(err))
}

// cobraArgs wraps a positional argument validator so its failures exit
// with ExitArgument.
func cobraArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return argError(v(cmd, args))
	}
}

func newLogger() *debuglog.Logger {
	return debuglog.New(debugLevel, "flop", logThresholds)
}

// loadTargets returns the built-in table merged with --targets-file.
func loadTargets() (*target.Table, error) {
	t := target.Builtin()
	if targetsFile != "" {
		if err := t.LoadFile(targetsFile); err != nil {
			return nil, argError(fmt.Errorf("load targets: %w", err))
		}
	}
	return t, nil
}

func lookupTarget(name string) (target.Descriptor, error) {
	t, err := loadTargets()
	if err != nil {
		return target.Descriptor{}, err
	}
	d, ok := t.Lookup(name)
	if !ok {
		return d, argError(fmt.Errorf("unknown target %q, see 'flop targets'", name))
	}
	return d, nil
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return argError(err)
	})

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress status output")
	rootCmd.PersistentFlags().IntVarP(&debugLevel, "debug", "d", 0, "debug level (dfu traffic above 100, payload dumps above 300)")
	rootCmd.PersistentFlags().StringVar(&targetsFile, "targets-file", "", "additional target descriptor file")
	rootCmd.PersistentFlags().StringVar(&deviceAddr, "device", "", "select the device at BUS:ADDR")
	rootCmd.PersistentFlags().StringVar(&transportKind, "transport", "usb", "device transport (usb, sim)")
	rootCmd.PersistentFlags().StringVar(&simImage, "sim-image", "", "simulator: Intel HEX image preloaded into flash")
	rootCmd.PersistentFlags().MarkHidden("transport")
	rootCmd.PersistentFlags().MarkHidden("sim-image")
}

// status prints a progress or diagnostic line unless --quiet is set.
func status(cmd *cobra.Command, format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
	}
}

// commandContext returns the context cmd was executed with, or a
// background context when none was given.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
