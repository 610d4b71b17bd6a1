package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import memory slots from JSON",
		Long:  "Import memory slots from JSON on stdin, appended after the current slots. Expects the format produced by export.",
		Run:   runImport,
	}

	cmd.Flags().Bool("settings", false, "Also replace settings with the imported ones")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	withSettings, _ := cmd.Flags().GetBool("settings")

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		exitErr("read stdin", err)
	}

	var doc archive
	if err := json.Unmarshal(data, &doc); err != nil {
		exitErr("parse json", err)
	}

	a := mustOpenApp(cmd)
	defer a.Close()

	if withSettings && doc.Settings != nil {
		if err := a.settings.Update(doc.Settings); err != nil {
			a.exitErr("import settings", err)
		}
	}
	imported := a.slots.Import(cmd.Context(), doc.Slots)

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d,"slots":%d}`+"\n", imported, a.slots.Len())
}
