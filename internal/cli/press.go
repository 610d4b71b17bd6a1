package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rcliao/redstone-calc/internal/calc"
	"github.com/rcliao/redstone-calc/internal/progress"
)

func init() {
	cmd := &cobra.Command{
		Use:   "press [keys...]",
		Short: "Press keys and print the display",
		Long: "Press keys in order and print the resulting display. Keys are digits, " +
			". + - * / = C F F- and ⌫ (or < or bs). The state does not persist between runs; " +
			"memory slots do. Keys can also be piped via stdin.",
		Example: "  redstone-calc press 12+3=\n  redstone-calc press 7 F C F- 1",
		Run:     runPress,
	}
	cmd.Flags().Bool("no-delay", false, "Skip the progress delay before evaluation")

	RootCmd.AddCommand(cmd)
}

// pressOutput is the JSON form of a press run.
type pressOutput struct {
	calc.Result
	Messages []string `json:"messages,omitempty"`
}

func runPress(cmd *cobra.Command, args []string) {
	noDelay, _ := cmd.Flags().GetBool("no-delay")

	// Keys: positional args first, then check stdin
	line := strings.Join(args, " ")
	if len(args) == 0 {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			line = strings.Join(strings.Fields(string(b)), " ")
		}
	}
	if strings.TrimSpace(line) == "" {
		exitErr("press", fmt.Errorf("keys are required (positional args or stdin)"))
	}

	keys, err := calc.ParseKeys(line)
	if err != nil {
		exitErr("press", err)
	}

	a := mustOpenApp(cmd)
	defer a.Close()
	if noDelay {
		a.delay = progress.Delay{}
	}

	res, msgs, err := a.pressKeys(cmd.Context(), keys, cmd.ErrOrStderr())
	if err != nil {
		a.exitErr("press", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		printJSON(out, pressOutput{Result: res, Messages: msgs})
		return
	}
	for _, m := range msgs {
		fmt.Fprintln(cmd.ErrOrStderr(), m)
	}
	fmt.Fprintln(out, displayLine(res))
}

// pressKeys feeds keys to the machine, running the delay before each
// evaluation. Operation failures become user messages; only a cancelled
// context is returned as an error.
func (a *app) pressKeys(ctx context.Context, keys []calc.Key, errOut io.Writer) (calc.Result, []string, error) {
	st := a.machine.State()
	res := calc.Result{Display: st.Expr, Label: a.slots.Label(), State: st}
	var msgs []string
	for _, k := range keys {
		var err error
		res, err = a.machine.Press(ctx, k)
		if err != nil {
			msgs = append(msgs, userMessage(err))
			continue
		}
		if !res.Evaluate {
			continue
		}

		if err := a.delay.Run(ctx, progressWriter(errOut)); err != nil {
			return res, msgs, err
		}
		res, err = a.machine.Evaluate(ctx)
		showStatus(errOut, statusFor(err))
		if err != nil {
			msgs = append(msgs, userMessage(err))
		}
	}
	return res, msgs, nil
}

// progressWriter redraws a bar on w when w is a terminal.
func progressWriter(w io.Writer) func(int) {
	if !isTerminal(w) {
		return nil
	}
	return drawProgress(w)
}

// drawProgress shows the empty bar at once and returns the tick redraw.
func drawProgress(w io.Writer) func(int) {
	fmt.Fprintf(w, "\r%s %3d%% %s", progress.Bar(0, 20), 0, progress.StatusImporting)
	return func(percent int) {
		fmt.Fprintf(w, "\r\033[K%s %3d%% %s", progress.Bar(percent, 20), percent, progress.StatusProcessing)
	}
}

func showStatus(w io.Writer, status string) {
	if !isTerminal(w) {
		return
	}
	fmt.Fprintf(w, "\r\033[K%s\n", status)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// displayLine renders the display with its memory label.
func displayLine(res calc.Result) string {
	display := res.Display
	if display == "" {
		display = "0"
	}
	if res.Label == "" {
		return display
	}
	return fmt.Sprintf("[%s] %s", res.Label, display)
}
