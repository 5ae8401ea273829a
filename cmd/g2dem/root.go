package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/skdltmxn/g2dem-go/g2dem"
	"github.com/spf13/cobra"
)

var (
	outputFile      string
	output          io.Writer
	styleName       string
	stripUnderscore bool
	style           g2dem.Config
)

var rootCmd = &cobra.Command{
	Use:   "g2dem [symbol ...]",
	Short: "GNU v2 C++ symbol demangler",
	Long: `g2dem decodes C++ symbol names produced by the GNU v2 compiler
family (gcc 2.x era) back into readable declarations.

Symbols are taken from the command line, or filtered line by line
from stdin when none are given. Lines that do not decode pass
through unchanged, so linker maps and nm output can be piped
through as-is. Remember to escape $ when passing symbols through
a shell.`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch styleName {
		case "g2dem":
			style = g2dem.NewG2demConfig()
		case "c++filt":
			style = g2dem.NewCfiltConfig()
		default:
			return fmt.Errorf("unknown style %q (want g2dem or c++filt)", styleName)
		}
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
	RunE: runFilter,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&styleName, "style", "g2dem", "demangling style: g2dem or c++filt")
	rootCmd.PersistentFlags().BoolVarP(&stripUnderscore, "strip-underscore", "s", false, "remove one leading underscore before decoding")

	rootCmd.AddCommand(replCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		for _, sym := range args {
			fmt.Fprintln(output, filterOne(sym))
		}
		return nil
	}

	if stdinIsTerminal() {
		fmt.Fprintln(os.Stderr, "g2dem: reading symbols from the terminal; try 'g2dem repl' for interactive use")
	}

	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fmt.Fprintln(output, filterOne(sc.Text()))
	}
	return sc.Err()
}

// filterOne demangles a single symbol, echoing the original text when it
// does not decode. The underscore strip applies to the decode attempt
// only, so undecodable input always comes back untouched.
func filterOne(sym string) string {
	in := sym
	if stripUnderscore && strings.HasPrefix(in, "_") {
		in = in[1:]
	}
	out, err := g2dem.DemangleWith(in, style)
	if err != nil {
		return sym
	}
	return out
}
