package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/redstone-calc/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export memory slots as JSON",
		Long:  "Export memory slots and settings as JSON. Pipe the output into import on another machine.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

// archive is the export/import document.
type archive struct {
	Slots    []model.Slot   `json:"slots"`
	Settings map[string]int `json:"settings,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) {
	a := mustOpenApp(cmd)
	defer a.Close()

	doc := archive{Slots: a.slots.Export(), Settings: a.settings.All()}
	printJSON(cmd.OutOrStdout(), doc)
}
