package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the plugin library",
	RunE: func(cmd *cobra.Command, args []string) error {
		host, err := newHost(cmd)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tENABLED\tEDITED")
		for _, def := range host.GetLibrary() {
			fmt.Fprintf(w, "%s\t%s\t%v\t%s\n",
				def.ID, def.Name, def.Enabled, def.EditedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a plugin's source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		host, err := newHost(cmd)
		if err != nil {
			return err
		}

		def, ok := host.GetPluginFromLibrary(args[0])
		if !ok {
			return fmt.Errorf("no plugin with id %q", args[0])
		}

		fmt.Fprintf(cmd.OutOrStdout(), "-- %s (%s)\n%s", def.Name, def.ID, def.Source)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <name> [file]",
	Short: "Add a plugin from a Lua file or stdin",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		host, err := newHost(cmd)
		if err != nil {
			return err
		}

		source, err := readSource(cmd, args, 1)
		if err != nil {
			return err
		}

		def := host.AddPluginToLibrary(args[0], source)
		fmt.Fprintln(cmd.OutOrStdout(), def.ID)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id> [file]",
	Short: "Replace a plugin's source (destroys any running instance)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		host, err := newHost(cmd)
		if err != nil {
			return err
		}

		id := args[0]
		def, ok := host.GetPluginFromLibrary(id)
		if !ok {
			return fmt.Errorf("no plugin with id %q", id)
		}

		source, err := readSource(cmd, args, 1)
		if err != nil {
			return err
		}

		name := def.Name
		if newName, _ := cmd.Flags().GetString("name"); newName != "" {
			name = newName
		}

		host.OverwritePlugin(cmd.Context(), id, name, source)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a plugin and any running instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		host, err := newHost(cmd)
		if err != nil {
			return err
		}

		host.DeletePlugin(cmd.Context(), args[0])
		return nil
	},
}

// readSource reads plugin source from the optional file argument at idx,
// falling back to stdin.
func readSource(cmd *cobra.Command, args []string, idx int) (string, error) {
	if len(args) > idx {
		data, err := os.ReadFile(args[idx])
		if err != nil {
			return "", fmt.Errorf("reading source: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading source from stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	editCmd.Flags().String("name", "", "new display name (default: keep current)")

	rootCmd.AddCommand(listCmd, showCmd, addCmd, editCmd, rmCmd)
}
