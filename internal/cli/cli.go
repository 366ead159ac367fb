package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schollz/convertwithmoss/internal/pipeline"
	"github.com/schollz/convertwithmoss/internal/pluginapi"
)

// NewRootCommand builds the convertwithmoss CLI per spec §6:
//
//	convertwithmoss -s <src_format> -d <dst_format>
//	                [-t preset|performance] [-a] [-f] [-l <lib_name>]
//	                [-p key1=value1,key2=value2,...] [-r <rename.csv>]
//	                <source_folder> <destination_folder>
func NewRootCommand() *cobra.Command {
	registry := NewRegistry()

	var srcPrefix, dstPrefix, sourceType, libraryName, paramsCSV, renamePath string
	var analyseOnly, flatten, useTUI bool

	root := &cobra.Command{
		Use:   "convertwithmoss <source_folder> <destination_folder>",
		Short: "Convert instrument multi-sample and performance presets between vendor formats",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			detector, ok := registry.DetectorByPrefix(srcPrefix)
			if !ok {
				return fmt.Errorf("unknown source format %q; run `convertwithmoss formats` to list prefixes", srcPrefix)
			}
			creator, ok := registry.CreatorByPrefix(dstPrefix)
			if !ok {
				return fmt.Errorf("unknown destination format %q; run `convertwithmoss formats` to list prefixes", dstPrefix)
			}

			params := parseParams(paramsCSV)
			if !detector.Settings().CheckSettingsCLI(params) {
				return fmt.Errorf("missing required -p settings for source format %q", srcPrefix)
			}
			if !creator.Settings().CheckSettingsCLI(params) {
				return fmt.Errorf("missing required -p settings for destination format %q", dstPrefix)
			}

			var renameTable pipeline.RenameTable
			if renamePath != "" {
				var err error
				renameTable, err = pipeline.LoadRenameTable(renamePath)
				if err != nil {
					return err
				}
			}

			mode := pipeline.ModeEmit
			if analyseOnly {
				mode = pipeline.ModeAnalyseOnly
			} else if libraryName != "" {
				mode = pipeline.ModeCollectLibrary
			}

			notifier := buildNotifier(cmd, useTUI)

			opt := pipeline.Options{
				Detector:              detector,
				Creator:               creator,
				SourceFolder:          args[0],
				DestFolder:            args[1],
				RenameTable:           renameTable,
				LibraryName:           libraryName,
				Mode:                  mode,
				DetectPerformances:    sourceType == "performance",
				CreateFolderStructure: !flatten,
				Notifier:              notifier,
			}
			runWithNotifier(opt, notifier, useTUI)
			return nil
		},
	}

	flags := root.Flags()
	flags.StringVarP(&srcPrefix, "source-format", "s", "", "source format prefix (see `formats`)")
	flags.StringVarP(&dstPrefix, "dest-format", "d", "", "destination format prefix (see `formats`)")
	flags.StringVarP(&sourceType, "type", "t", "preset", "preset|performance")
	flags.BoolVarP(&analyseOnly, "analyse", "a", false, "analyse only, write no output")
	flags.BoolVarP(&flatten, "flatten", "f", false, "do not mirror source folder structure")
	flags.StringVarP(&libraryName, "library", "l", "", "collect into a single library with this name")
	flags.StringVarP(&paramsCSV, "params", "p", "", "format-specific settings, key1=value1,key2=value2,...")
	flags.StringVarP(&renamePath, "rename", "r", "", "CSV rename table (old,new)")
	flags.BoolVar(&useTUI, "tui", false, "show a progress screen instead of plain log lines")
	_ = root.MarkFlagRequired("source-format")
	_ = root.MarkFlagRequired("dest-format")

	root.AddCommand(newFormatsCommand(registry))
	return root
}

func newFormatsCommand(registry *pluginapi.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List every registered format prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range registry.Prefixes() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func parseParams(csv string) map[string]string {
	params := map[string]string{}
	if csv == "" {
		return params
	}
	for _, pair := range strings.Split(csv, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return params
}

func buildNotifier(cmd *cobra.Command, useTUI bool) *ConsoleNotifier {
	return &ConsoleNotifier{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
}

// runWithNotifier executes the pipeline, optionally fronted by the
// bubbletea progress screen (spec §5's "CLI driver polls finished with
// a 10ms sleep" becomes, in the TUI case, the screen's own tick loop).
func runWithNotifier(opt pipeline.Options, notifier *ConsoleNotifier, useTUI bool) {
	if !useTUI {
		pipeline.Run(opt)
		return
	}
	runWithProgress(opt)
}
