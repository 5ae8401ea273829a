package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/skdltmxn/g2dem-go/g2dem"
	"github.com/spf13/cobra"
)

const historyFile = ".g2dem_history"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Demangle symbols interactively",
	Long: `Read mangled symbols from an interactive prompt, one per line,
with line editing and history. Unlike the filter mode, symbols
that do not decode report why.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintln(output, "Enter mangled symbols, one per line. Ctrl-D exits.")
	for {
		line, err := ln.Prompt("g2dem> ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(output)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		sym := strings.TrimSpace(line)
		if sym == "" {
			continue
		}
		ln.AppendHistory(sym)

		in := sym
		if stripUnderscore && strings.HasPrefix(in, "_") {
			in = in[1:]
		}
		out, derr := g2dem.DemangleWith(in, style)
		if derr != nil {
			fmt.Fprintln(os.Stderr, derr)
			continue
		}
		fmt.Fprintln(output, out)
	}
}
