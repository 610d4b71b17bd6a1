package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/redstone-calc/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Manage memory slots",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved values",
		Args:  cobra.NoArgs,
		Run:   runSlotsList,
	}
	save := &cobra.Command{
		Use:   "save [value]",
		Short: "Append a value to the slots",
		Args:  cobra.ExactArgs(1),
		Run:   runSlotsSave,
	}
	recall := &cobra.Command{
		Use:   "recall [index]",
		Short: "Print the value in a slot (1-based)",
		Args:  cobra.ExactArgs(1),
		Run:   runSlotsRecall,
	}
	rm := &cobra.Command{
		Use:   "rm [index]",
		Short: "Delete a slot; later slots move down",
		Args:  cobra.ExactArgs(1),
		Run:   runSlotsRm,
	}
	clear := &cobra.Command{
		Use:   "clear",
		Short: "Delete every slot",
		Args:  cobra.NoArgs,
		Run:   runSlotsClear,
	}

	cmd.AddCommand(list, save, recall, rm, clear)
	RootCmd.AddCommand(cmd)
}

func runSlotsList(cmd *cobra.Command, args []string) {
	a := mustOpenApp(cmd)
	defer a.Close()

	slots := a.slots.Export()
	if jsonOutput() {
		printJSON(cmd.OutOrStdout(), slots)
		return
	}
	for _, s := range slots {
		fmt.Fprintf(cmd.OutOrStdout(), "F%d\t%s\n", s.Index, s.Value)
	}
}

func runSlotsSave(cmd *cobra.Command, args []string) {
	a := mustOpenApp(cmd)
	defer a.Close()

	idx, err := a.slots.Save(cmd.Context(), args[0])
	if err != nil {
		a.exitErr("save", fmt.Errorf("%s", userMessage(err)))
	}
	if jsonOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"index":%d}`+"\n", idx)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "F%d\n", idx)
}

func runSlotsRecall(cmd *cobra.Command, args []string) {
	idx := parseIndex(args[0])

	a := mustOpenApp(cmd)
	defer a.Close()

	v, err := a.slots.Recall(idx)
	if err != nil {
		a.exitErr("recall", fmt.Errorf("没有保存第 %d 个数值", idx))
	}
	if jsonOutput() {
		printJSON(cmd.OutOrStdout(), model.Slot{Index: idx, Value: v})
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
}

func runSlotsRm(cmd *cobra.Command, args []string) {
	idx := parseIndex(args[0])

	a := mustOpenApp(cmd)
	defer a.Close()

	if err := a.slots.Delete(cmd.Context(), idx); err != nil {
		a.exitErr("rm", fmt.Errorf("无法删除第 %d 个数值", idx))
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"index":%d,"remaining":%d}`+"\n", idx, a.slots.Len())
}

func runSlotsClear(cmd *cobra.Command, args []string) {
	a := mustOpenApp(cmd)
	defer a.Close()

	n := a.slots.Len()
	a.slots.ClearAll(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"cleared":%d}`+"\n", n)
}

func parseIndex(s string) int {
	idx, err := strconv.Atoi(s)
	if err != nil {
		exitErr("index", fmt.Errorf("%q is not a slot number", s))
	}
	return idx
}
