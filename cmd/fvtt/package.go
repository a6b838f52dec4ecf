package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/compendium"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/config"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/discovery"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/paths"
	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/serializer"
)

func newPackageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package",
		Short: MsgPackageShort,
		Long: `Work with a package's compendium packs. Set the package once with
'workon', then unpack and pack its compendia by name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default action: show the current session package.
			cfg, err := config.Open()
			if err != nil {
				reportError("show current package", err)
				return nil
			}
			id, packageType, err := cfg.CurrentPackage()
			if err != nil {
				fmt.Println(MsgNoCurrentPackage)
				return nil
			}
			fmt.Printf(MsgCurrentPackageFormat, packageType, formatBold(id))
			return nil
		},
	}

	cmd.AddCommand(newWorkonCmd())
	cmd.AddCommand(newClearCmd())
	cmd.AddCommand(newUnpackCmd())
	cmd.AddCommand(newPackCmd())
	return cmd
}

func newWorkonCmd() *cobra.Command {
	var idFlag string
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "workon [id]",
		Short: MsgWorkonShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := idFlag
			if len(args) > 0 {
				id = args[0]
			}
			if id == "" {
				fmt.Println("A package id is required: fvtt package workon <id>")
				return nil
			}

			cfg, err := config.Open()
			if err != nil {
				reportError("load settings", err)
				return nil
			}

			packageType := typeFlag
			if packageType == "" {
				dataPath, err := paths.DataPath(cfg.Get(config.KeyDataPath))
				if err != nil {
					reportError("resolve data path", err)
					return nil
				}
				packageType, err = discovery.ResolveType(dataPath, id)
				if err != nil {
					reportError(fmt.Sprintf("detect type of package %q", id), err)
					return nil
				}
			}

			if err := cfg.SetCurrentPackage(id, packageType); err != nil {
				reportError("save current package", err)
				return nil
			}
			fmt.Printf(MsgWorkonFormat, packageType, formatBold(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&idFlag, "id", "", "Package id to work on")
	cmd.Flags().StringVar(&typeFlag, "type", "", "Package type (module, system, or world); auto-detected when omitted")
	return cmd
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: MsgClearShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Open()
			if err != nil {
				reportError("load settings", err)
				return nil
			}
			if err := cfg.ClearCurrentPackage(); err != nil {
				reportError("clear current package", err)
				return nil
			}
			fmt.Println(MsgClearDone)
			return nil
		},
	}
}

func newUnpackCmd() *cobra.Command {
	var compendiumName string
	var directory string
	var yamlMode bool

	cmd := &cobra.Command{
		Use:   "unpack [compendiumName]",
		Short: MsgUnpackShort,
		Long: `Extract every entry of a compendium pack into one source file per
entry. Each file embeds the original store key so it can be packed back
regardless of its filename.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := compendiumName
			if len(args) > 0 {
				name = args[0]
			}

			packPath, err := resolvePackPath(name)
			if err != nil {
				reportError(fmt.Sprintf("locate pack %q", name), err)
				return nil
			}

			outDir := directory
			if outDir == "" {
				outDir = paths.DefaultOutputDir(name)
			}
			format := serializer.FormatJSON
			if yamlMode {
				format = serializer.FormatYAML
			}

			count, err := compendium.Unpack(compendium.UnpackOptions{
				PackPath:  packPath,
				OutputDir: outDir,
				Format:    format,
			})
			if err != nil {
				reportError(fmt.Sprintf("unpack %q", name), err)
				return nil
			}
			fmt.Printf(MsgUnpackedFormat, count, name, outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&compendiumName, "compendiumName", "n", "", "Compendium pack name")
	cmd.Flags().StringVarP(&directory, "directory", "d", "", "Output directory (default: ./<compendiumName>)")
	cmd.Flags().BoolVar(&yamlMode, "yaml", false, "Write YAML source files instead of JSON")
	return cmd
}

func newPackCmd() *cobra.Command {
	var compendiumName string
	var directory string

	cmd := &cobra.Command{
		Use:   "pack [compendiumName]",
		Short: MsgPackShort,
		Long: `Reconcile a directory of source files back into a compendium pack.
After a successful run the pack contains exactly the entries whose keys
are embedded in the source files; everything else is deleted. All changes
are applied in one atomic batch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := compendiumName
			if len(args) > 0 {
				name = args[0]
			}

			packPath, err := resolvePackPath(name)
			if err != nil {
				reportError(fmt.Sprintf("locate pack %q", name), err)
				return nil
			}

			srcDir := directory
			if srcDir == "" {
				srcDir = paths.DefaultOutputDir(name)
			}

			plan, err := compendium.Pack(compendium.PackOptions{
				PackPath:  packPath,
				SourceDir: srcDir,
			})
			if err != nil {
				reportError(fmt.Sprintf("pack %q", name), err)
				return nil
			}
			if plan.Empty() {
				fmt.Print(MsgPackedNoChanges)
			} else {
				fmt.Printf(MsgPackedFormat, name, len(plan.Puts), len(plan.Deletes))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&compendiumName, "compendiumName", "n", "", "Compendium pack name")
	cmd.Flags().StringVarP(&directory, "directory", "d", "", "Source directory (default: ./<compendiumName>)")
	return cmd
}

// resolvePackPath combines the session package and the data path into the
// pack's database directory.
func resolvePackPath(compendiumName string) (string, error) {
	if compendiumName == "" {
		return "", fmt.Errorf("a compendium name is required (positional or --compendiumName)")
	}

	cfg, err := config.Open()
	if err != nil {
		return "", err
	}
	id, packageType, err := cfg.CurrentPackage()
	if err != nil {
		return "", err
	}

	dataPath, err := paths.DataPath(cfg.Get(config.KeyDataPath))
	if err != nil {
		return "", err
	}

	if packageType == "" {
		packageType, err = discovery.ResolveType(dataPath, id)
		if err != nil {
			return "", err
		}
	}

	return paths.PackPath(dataPath, packageType, id, compendiumName), nil
}
