package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/weblayers/weblayers/pkg/config"
	"github.com/weblayers/weblayers/pkg/filesystem"
	"github.com/weblayers/weblayers/pkg/registry"
	"github.com/weblayers/weblayers/pkg/types"
)

var resolveJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve [project-dir]",
	Short: "Resolve the project's layers and print the aggregate",
	Long: `Runs one resolution pass against the project directory (default: the
current directory) and prints the resulting build plan: entrypoints with
their kinds, the alias table, auto-import directories, public assets,
and the background composition order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return err
		}

		cfg, err := config.Load(absRoot)
		if err != nil {
			return err
		}

		r := registry.New(filesystem.NewOS(), cfg)
		reg, err := r.Resolve(registry.ProjectInput{Root: absRoot})
		if err != nil {
			return err
		}

		if resolveJSON {
			return printJSON(reg)
		}
		printRegistry(reg)
		return nil
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Print the aggregate as JSON")
}

// jsonRegistry is the machine-readable shape of the aggregate.
type jsonRegistry struct {
	Entrypoints  []jsonEntrypoint  `json:"entrypoints"`
	Aliases      map[string]string `json:"aliases"`
	AutoImports  []string          `json:"autoImports"`
	PublicAssets []jsonPublicAsset `json:"publicAssets"`
	Backgrounds  []jsonEntrypoint  `json:"backgrounds,omitempty"`
	Orphaned     []jsonEntrypoint  `json:"orphanedBackgrounds,omitempty"`
	LayerPaths   []string          `json:"layerPaths"`
	Manifest     map[string]any    `json:"manifest,omitempty"`
}

type jsonEntrypoint struct {
	Name  string `json:"name"`
	Input string `json:"input"`
	Kind  string `json:"kind"`
	Order int    `json:"order,omitempty"`
}

type jsonPublicAsset struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

func printJSON(reg *types.Registry) error {
	out := jsonRegistry{
		Aliases:     reg.Aliases,
		AutoImports: reg.AutoImports,
		LayerPaths:  reg.LayerPaths,
		Manifest:    reg.Manifest,
	}
	for _, ep := range reg.Entrypoints {
		out.Entrypoints = append(out.Entrypoints, toJSONEntrypoint(ep))
	}
	for _, ep := range reg.Backgrounds {
		out.Backgrounds = append(out.Backgrounds, toJSONEntrypoint(ep))
	}
	for _, ep := range reg.OrphanedBackgrounds {
		out.Orphaned = append(out.Orphaned, toJSONEntrypoint(ep))
	}
	for _, asset := range reg.PublicAssets {
		out.PublicAssets = append(out.PublicAssets, jsonPublicAsset{
			Source:      asset.Source,
			Destination: asset.Destination,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONEntrypoint(ep types.Entrypoint) jsonEntrypoint {
	out := jsonEntrypoint{Name: ep.Name, Input: ep.InputPath, Kind: string(ep.Kind)}
	if ep.Kind == types.KindBackground {
		out.Order = ep.Order
	}
	return out
}

func printRegistry(reg *types.Registry) {
	fmt.Println(headingStyle().Render(fmt.Sprintf("Layers (%d)", len(reg.LayerPaths))))
	for _, path := range reg.LayerPaths {
		fmt.Printf("  %s\n", path)
	}

	fmt.Println(headingStyle().Render(fmt.Sprintf("Entrypoints (%d)", len(reg.Entrypoints))))
	for _, ep := range reg.Entrypoints {
		fmt.Printf("  %s  %s  %s\n", ep.Name, kindStyle().Render(string(ep.Kind)), dimStyle().Render(ep.InputPath))
	}

	if len(reg.Backgrounds) > 0 {
		fmt.Println(headingStyle().Render("Background composition order"))
		for i, ep := range reg.Backgrounds {
			fmt.Printf("  %d. order=%d  %s\n", i+1, ep.Order, dimStyle().Render(ep.InputPath))
		}
	}

	if len(reg.OrphanedBackgrounds) > 0 {
		fmt.Println(headingStyle().Render("Orphaned layer backgrounds (wire manually)"))
		for _, ep := range reg.OrphanedBackgrounds {
			fmt.Printf("  %s\n", ep.InputPath)
		}
	}

	fmt.Println(headingStyle().Render(fmt.Sprintf("Aliases (%d)", len(reg.Aliases))))
	for _, key := range sortedKeys(reg.Aliases) {
		fmt.Printf("  %s -> %s\n", key, dimStyle().Render(reg.Aliases[key]))
	}

	fmt.Println(headingStyle().Render(fmt.Sprintf("Auto-imports (%d)", len(reg.AutoImports))))
	for _, dir := range reg.AutoImports {
		fmt.Printf("  %s\n", dir)
	}

	fmt.Println(headingStyle().Render(fmt.Sprintf("Public assets (%d)", len(reg.PublicAssets))))
	for _, asset := range reg.PublicAssets {
		fmt.Printf("  %s -> %s\n", dimStyle().Render(asset.Source), asset.Destination)
	}
}
