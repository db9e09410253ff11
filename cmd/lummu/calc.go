package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/lummu/pkg/calc"
	"github.com/aretw0/lummu/pkg/clipboard"
)

var (
	calcHistory bool
	calcCopy    bool
)

var calcCmd = &cobra.Command{
	Use:   "calc [KEYS...]",
	Short: "Run the calculator",
	Long: `Feed keys to an immediate-execution calculator and print the display.

Keys are digits, ".", the operators + - × ÷ % (or * x /), "=", "AC" (clear),
"±" (negate) and "CH" (clear history). Keys may be joined: "12+3=".
Without arguments, keys are read line by line from stdin and the display is
printed after every line.`,
	Example: `  lummu calc 12 + 3 × 2 =
  lummu calc "7/2=" --copy
  echo "2+3=" | lummu calc --history`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := calc.New()

		if len(args) > 0 {
			if err := engine.PressAll(calc.Tokenize(strings.Join(args, " "))); err != nil {
				return err
			}
			fmt.Println(engine.Display())
		} else if err := runCalcREPL(engine); err != nil {
			return err
		}

		if calcHistory {
			for _, entry := range engine.History() {
				fmt.Println(entry)
			}
		}
		if calcCopy {
			if err := clipboard.Copy(engine.Display()); err != nil {
				slog.Debug("clipboard copy failed", "error", err)
			}
		}
		return nil
	},
}

// runCalcREPL keeps one engine across lines so chained operations work.
// Invalid keys are reported and skipped.
func runCalcREPL(engine *calc.Engine) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := engine.PressAll(calc.Tokenize(line)); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if pending := engine.Pending(); pending != "" {
			fmt.Printf("%s  (%s)\n", engine.Display(), pending)
			continue
		}
		fmt.Println(engine.Display())
	}
	return scanner.Err()
}

func init() {
	rootCmd.AddCommand(calcCmd)
	calcCmd.Flags().BoolVar(&calcHistory, "history", false, "Print the calculation history, newest first")
	calcCmd.Flags().BoolVar(&calcCopy, "copy", false, "Copy the final display to the clipboard")
}
