package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/redstone-calc/internal/settings"
)

func init() {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show every setting",
		Args:  cobra.NoArgs,
		Run:   runSettingsShow,
	}
	get := &cobra.Command{
		Use:   "get [key]",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		Run:   runSettingsGet,
	}
	set := &cobra.Command{
		Use:   "set [key=value...]",
		Short: "Replace all settings at once; omitted keys reset to defaults",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSettingsSet,
	}
	voiceCmd := &cobra.Command{
		Use:       "voice [on|off]",
		Short:     "Turn announcements on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		Run:       runSettingsVoice,
	}
	opacity := &cobra.Command{
		Use:   "opacity [1-10]",
		Short: "Set the window opacity step",
		Args:  cobra.ExactArgs(1),
		Run:   runSettingsOpacity,
	}
	tray := &cobra.Command{
		Use:       "tray [on|off]",
		Short:     "Turn the tray notice on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		Run:       runSettingsTray,
	}

	cmd.AddCommand(show, get, set, voiceCmd, opacity, tray)
	RootCmd.AddCommand(cmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) {
	a := mustOpenApp(cmd)
	defer a.Close()

	all := a.settings.All()
	if jsonOutput() {
		printJSON(cmd.OutOrStdout(), all)
		return
	}
	for _, k := range settings.Keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%d\n", k, all[k])
	}
}

func runSettingsGet(cmd *cobra.Command, args []string) {
	a := mustOpenApp(cmd)
	defer a.Close()

	all := a.settings.All()
	v, ok := all[args[0]]
	if !ok {
		a.exitErr("get", fmt.Errorf("%w: %s", settings.ErrUnknownKey, args[0]))
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
}

func runSettingsSet(cmd *cobra.Command, args []string) {
	values, err := parseAssignments(args)
	if err != nil {
		exitErr("set", err)
	}

	a := mustOpenApp(cmd)
	defer a.Close()

	before := a.settings.All()
	if err := a.settings.Update(values); err != nil {
		a.exitErr("set", err)
	}
	after := a.settings.All()
	if before[settings.KeyVoice] != after[settings.KeyVoice] {
		a.setVoice(after[settings.KeyVoice] == 1)
	}
	if before[settings.KeyOpacity] != after[settings.KeyOpacity] {
		a.voice.Announce(opacityPhrase(after[settings.KeyOpacity]))
	}
	printJSON(cmd.OutOrStdout(), after)
}

func runSettingsVoice(cmd *cobra.Command, args []string) {
	on := parseSwitch(args[0])

	a := mustOpenApp(cmd)
	defer a.Close()

	if err := a.settings.Set(settings.KeyVoice, boolInt(on)); err != nil {
		a.exitErr("voice", err)
	}
	a.setVoice(on)
	fmt.Fprintf(cmd.OutOrStdout(), "%s=%d\n", settings.KeyVoice, boolInt(on))
}

func runSettingsOpacity(cmd *cobra.Command, args []string) {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		exitErr("opacity", fmt.Errorf("%q is not a number", args[0]))
	}

	a := mustOpenApp(cmd)
	defer a.Close()

	if err := a.settings.Set(settings.KeyOpacity, n); err != nil {
		a.exitErr("opacity", err)
	}
	a.voice.Announce(opacityPhrase(n))
	fmt.Fprintf(cmd.OutOrStdout(), "%s=%d\n", settings.KeyOpacity, n)
}

func runSettingsTray(cmd *cobra.Command, args []string) {
	on := parseSwitch(args[0])

	a := mustOpenApp(cmd)
	defer a.Close()

	if err := a.settings.Set(settings.KeyTrayPrompt, boolInt(on)); err != nil {
		a.exitErr("tray", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s=%d\n", settings.KeyTrayPrompt, boolInt(on))
}

// setVoice switches the queue and announces the change. Turning voice off
// is therefore silent, and so is a switch to the current state.
func (a *app) setVoice(on bool) {
	if a.voice.Enabled() == on {
		return
	}
	a.voice.SetEnabled(on)
	if on {
		a.voice.Announce("语音播报已开启")
	} else {
		a.voice.Announce("语音播报已关闭")
	}
}

func opacityPhrase(step int) string { return fmt.Sprintf("透明度%d", step*10) }

func parseAssignments(args []string) (map[string]int, error) {
	values := make(map[string]int, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", k, v)
		}
		values[k] = n
	}
	return values, nil
}

func parseSwitch(s string) bool {
	switch s {
	case "on", "1", "true":
		return true
	case "off", "0", "false":
		return false
	}
	exitErr("switch", fmt.Errorf("expected on or off, got %q", s))
	return false
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
