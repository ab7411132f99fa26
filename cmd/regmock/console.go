package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/clearstonehq/regmock/internal/mockmode"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive mock-mode console",
	Long: `An interactive prompt over the mock-mode debug surface.

Commands:
  status      show the resolved flag and its source
  enable      persist the flag in the state store
  disable     clear the flag from the state store
  is-enabled  print just true or false
  quit        leave the console`,
	Run: func(cmd *cobra.Command, args []string) {
		runConsole()
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

var consoleCommands = []string{"status", "enable", "disable", "is-enabled", "help", "quit"}

func runConsole() {
	dbg, store, err := openDebug()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		osExit(1)
		return
	}
	defer store.Close()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) []string {
		var out []string
		for _, c := range consoleCommands {
			if strings.HasPrefix(c, strings.ToLower(l)) {
				out = append(out, c)
			}
		}
		return out
	})

	fmt.Println("regmock console. Commands: status, enable, disable, is-enabled, quit")
	for {
		input, err := line.Prompt(color.CyanString("regmock> "))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println()
				return
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		out, done := executeConsoleCommand(dbg, input)
		if out != "" {
			fmt.Println(out)
		}
		if done {
			return
		}
	}
}

// executeConsoleCommand runs one console command against the debug surface
// and returns the text to print plus whether the session should end.
func executeConsoleCommand(dbg mockmode.Debug, input string) (string, bool) {
	switch strings.ToLower(input) {
	case "status":
		return formatConsoleStatus(dbg.Status()), false
	case "enable":
		dbg.Enable()
		return formatConsoleStatus(dbg.Status()), false
	case "disable":
		dbg.Disable()
		return formatConsoleStatus(dbg.Status()), false
	case "is-enabled":
		return fmt.Sprintf("%t", dbg.IsEnabled()), false
	case "help":
		return "Commands: status, enable, disable, is-enabled, quit", false
	case "quit", "exit":
		return "", true
	default:
		return fmt.Sprintf("Unknown command %q; try help", input), false
	}
}

func formatConsoleStatus(status mockmode.Status) string {
	if status.Enabled {
		return fmt.Sprintf("enabled (source: %s)", status.Source)
	}
	return "disabled"
}
