package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/save"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage save files",
	Long: `List, delete, export and import save files.

Examples:
  t2048 saves list
  t2048 saves delete mygame
  t2048 saves export mygame /tmp/mygame.2048
  t2048 saves import /tmp/mygame.2048 restored
  t2048 saves checkpoints`,
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List save files",
	Run: func(_ *cobra.Command, _ []string) {
		m := mustSaveManager()
		infos, err := m.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing saves: %v\n", err)
			os.Exit(1)
		}
		printSaveInfos(infos, "No saves found.")
	},
}

var savesCheckpointsCmd = &cobra.Command{
	Use:   "checkpoints",
	Short: "List checkpoints",
	Run: func(_ *cobra.Command, _ []string) {
		m := mustSaveManager()
		infos, err := m.ListCheckpoints()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing checkpoints: %v\n", err)
			os.Exit(1)
		}
		printSaveInfos(infos, "No checkpoints found.")
	},
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a save file",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		m := mustSaveManager()
		if err := m.Delete(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting save: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %s\n", args[0])
	},
}

var savesExportCmd = &cobra.Command{
	Use:   "export <name> <path>",
	Short: "Export a save to a .json or .2048 file",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		m := mustSaveManager()
		st, err := m.Load(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading save: %v\n", err)
			os.Exit(1)
		}
		if err := m.Export(st, args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting save: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %s to %s\n", args[0], args[1])
	},
}

var savesImportCmd = &cobra.Command{
	Use:   "import <path> [name]",
	Short: "Import a .json or .2048 file into the save directory",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(_ *cobra.Command, args []string) {
		m := mustSaveManager()
		st, err := m.Import(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing save: %v\n", err)
			os.Exit(1)
		}
		name := saveNameFromPath(args[0])
		if len(args) == 2 {
			name = args[1]
		}
		if err := m.Save(name, st); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing save: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %s as %s (score %d)\n", args[0], name, st.Score)
	},
}

func init() {
	savesCmd.AddCommand(savesListCmd)
	savesCmd.AddCommand(savesCheckpointsCmd)
	savesCmd.AddCommand(savesDeleteCmd)
	savesCmd.AddCommand(savesExportCmd)
	savesCmd.AddCommand(savesImportCmd)
}

func mustSaveManager() *save.Manager {
	m, err := saveManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening save directory: %v\n", err)
		os.Exit(1)
	}
	return m
}

func printSaveInfos(infos []save.Info, empty string) {
	if len(infos) == 0 {
		fmt.Println(empty)
		return
	}
	fmt.Printf("  %-28s  %-8s  %-5s  %-9s  %s\n", "Name", "Score", "Size", "Max Tile", "Saved")
	fmt.Printf("  %-28s  %-8s  %-5s  %-9s  %s\n", "----", "-----", "----", "--------", "-----")
	for _, info := range infos {
		fmt.Printf("  %-28s  %-8d  %-5d  %-9d  %s\n",
			info.Name, info.Score, info.Size, info.MaxTile, info.Timestamp.Format("2006-01-02 15:04"))
	}
}

// saveNameFromPath derives a save name from an exported file path.
func saveNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(strings.TrimSuffix(base, ".json"), ".2048")
}

// loadSavedState resolves --load: a bare name loads from the save
// directory, anything with a path separator is imported directly.
func loadSavedState(m *save.Manager, ref string) (board.State, error) {
	if strings.ContainsRune(ref, os.PathSeparator) {
		return m.Import(ref)
	}
	return m.Load(ref)
}
