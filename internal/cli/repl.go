package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rcliao/redstone-calc/internal/calc"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Open the interactive keypad",
		Long:  "Read lines of key presses from stdin and print the display after each line. Type help for the keypad, quit to leave.",
		Run:   runRepl,
	}

	RootCmd.AddCommand(cmd)
}

func runRepl(cmd *cobra.Command, args []string) {
	a := mustOpenApp(cmd)
	defer a.Close()

	if err := a.repl(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil && cmd.Context().Err() == nil {
		a.exitErr("repl", err)
	}
}

func (a *app) repl(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd())
	}
	if interactive {
		printKeypad(out)
	}

	sc := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			a.hideNotice(out)
			return nil
		case "help", "?":
			printKeypad(out)
			continue
		}

		keys, err := calc.ParseKeys(line)
		if err != nil {
			fmt.Fprintln(errOut, err)
			continue
		}
		res, msgs, err := a.pressKeys(ctx, keys, errOut)
		if err != nil {
			return err
		}
		for _, m := range msgs {
			fmt.Fprintln(errOut, m)
		}
		fmt.Fprintln(out, displayLine(res))
	}
	a.hideNotice(out)
	return sc.Err()
}

// hideNotice is the tray message shown when the window goes away.
func (a *app) hideNotice(out io.Writer) {
	if a.settings.TrayPrompt() {
		fmt.Fprintln(out, "赤石计算机: 程序已最小化到系统托盘")
	}
}

func printKeypad(w io.Writer) {
	for _, row := range calc.Keypad {
		cells := make([]string, len(row))
		for i, k := range row {
			cells[i] = fmt.Sprintf("%-3s", k)
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}
}
