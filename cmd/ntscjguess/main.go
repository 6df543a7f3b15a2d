package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jsvensson/ntscjguess"
	"github.com/jsvensson/ntscjguess/internal/colorspace"
	"github.com/jsvensson/ntscjguess/internal/gamut"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Exit codes, part of the CLI contract.
const (
	exitWrongArgCount = 1
	exitBadParameter  = 2
	exitInternal      = 3
)

var (
	flagGamut      string
	flagSingleAxis bool
	flagParallel   bool
	flagVerbose    bool
	version        = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "ntscjguess 0xRRGGBB",
	Short:   "Find the NTSC-J color that converts to a given sRGB color",
	Version: version,
	Args:    cobra.ArbitraryArgs,
	Run:     runGuess,
	// Usage and exit codes are handled manually; see runGuess.
	SilenceUsage:  true,
	SilenceErrors: true,
}

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the conversion matrices for a gamut",
	Args:  cobra.NoArgs,
	RunE:  runMatrix,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagGamut, "gamut", "", "gamut preset (ntscj, ntscj-broadcast) or HCL file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log optimizer sweeps")
	rootCmd.Flags().BoolVar(&flagSingleAxis, "single-axis", false, "search only axis-aligned steps")
	rootCmd.Flags().BoolVar(&flagParallel, "parallel", false, "score each sweep's candidates in parallel")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		verbosity := 0
		if flagVerbose {
			verbosity = 2
		}
		commonlog.Configure(verbosity, nil)
	}
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(versionCmd)
}

func runGuess(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()

	if len(args) != 1 {
		printUsage(out)
		os.Exit(exitWrongArgCount)
	}

	input, err := colorspace.ParseHex(args[0])
	if err != nil {
		printUsage(out)
		os.Exit(exitBadParameter)
	}

	pipeline, err := gamut.Resolve(flagGamut)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(exitBadParameter)
	}

	result, err := ntscjguess.Solve(input, ntscjguess.Options{
		Pipeline:   pipeline,
		SingleAxis: flagSingleAxis,
		Parallel:   flagParallel,
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(exitInternal)
	}

	fmt.Fprintf(out, "To achieve sRGB output of %s use NTSC-J input of %s (red: %d, green: %d, blue: %d, error %f).\n",
		input.Hex(), result.Guess.Hex(), result.Guess.R, result.Guess.G, result.Guess.B, result.Error)
}

func runMatrix(cmd *cobra.Command, args []string) error {
	pipeline, err := gamut.Resolve(flagGamut)
	if err != nil {
		return fmt.Errorf("resolving gamut: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Gamut conversion matrix (NTSC-J -> sRGB):")
	printMatrix(out, pipeline.Gamut)
	fmt.Fprintln(out, "RGB -> XYZ matrix:")
	printMatrix(out, pipeline.RGBToXYZ)
	return nil
}

func printMatrix(w io.Writer, m colorspace.Matrix) {
	for _, row := range m {
		fmt.Fprintf(w, "  %.15g  %.15g  %.15g\n", row[0], row[1], row[2])
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: ntscjguess 0xRRGGBB
Where "0xRRGGBB" is 0x-prefixed hexadecimal representation of a RGB8 pixel value.
The input should be the sRGB pixel you wish to get as output when an unknown pixel in the NTSC-J gamut is converted to the sRGB gamut (using the sRGB gamma function in both directions).
ntscjguess will tell you the unknown pixel value.`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
