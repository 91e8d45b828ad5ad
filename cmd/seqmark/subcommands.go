package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	core "github.com/seqmark-dev/seqmark/internal/core"
)

// Resolve the engine from config and flags
func resolveEngine(cmd *cobra.Command, rulesPath string, noStore bool) (*core.Engine, core.Config, func(), error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := core.LoadConfig(cfgPath)
	if err != nil {
		return nil, cfg, nil, err
	}
	rules := cfg.Rules
	if rulesPath != "" {
		rules, err = core.LoadRules(rulesPath)
		if err != nil {
			return nil, cfg, nil, err
		}
	}
	rs, err := core.NewRuleSet(rules)
	if err != nil {
		return nil, cfg, nil, err
	}
	var store *core.Store
	cleanup := func() {}
	if !noStore {
		store, err = core.NewStore(cfg.Store.Path)
		if err != nil {
			return nil, cfg, nil, err
		}
		cleanup = func() { _ = store.Close() }
	}
	return core.NewEngine(cfg, rs, store, os.Stdout), cfg, cleanup, nil
}

// Resolve the history store from config
func openStore(cmd *cobra.Command) (*core.Store, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := core.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	return core.NewStore(cfg.Store.Path)
}

// Run a labeling pass over 1..bound
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Label the integers 1..bound and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			bound, _ := cmd.Flags().GetInt("bound")
			rulesPath, _ := cmd.Flags().GetString("rules")
			quiet, _ := cmd.Flags().GetBool("quiet")
			noStore, _ := cmd.Flags().GetBool("no-store")
			eng, cfg, cleanup, err := resolveEngine(cmd, rulesPath, noStore)
			if err != nil {
				return err
			}
			defer cleanup()
			// An omitted flag means the configured default; an explicit
			// zero is invalid and must be rejected downstream.
			if !cmd.Flags().Changed("bound") {
				bound = cfg.Defaults.Bound
			}
			result, err := eng.Run(cmd.Context(), bound, quiet)
			if err != nil {
				return err
			}
			if result.ID != 0 {
				log.Info().Int64("id", result.ID).Int("labels", len(result.Labels)).Msg("run recorded")
			}
			return nil
		},
	}
	cmd.Flags().Int("bound", 0, "upper limit of the range (defaults to the configured bound, 100)")
	cmd.Flags().String("rules", "", "rule-set YAML file overriding configured rules")
	cmd.Flags().Bool("quiet", false, "classify and record without printing the sequence")
	cmd.Flags().Bool("no-store", false, "skip recording the run in history")
	return cmd
}

// List recorded runs
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()
			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Printf("%d\t%s\tbound=%d\t%s\n", r.ID, r.CreatedAt, r.Bound, r.Rules)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum number of runs to list")
	cmd.AddCommand(newHistoryShowCmd())
	return cmd
}

// Replay a recorded run
func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Replay a recorded run's labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[0])
			}
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()
			labels, err := store.RunLabels(cmd.Context(), id)
			if err != nil {
				return err
			}
			for _, l := range labels {
				fmt.Println(l)
			}
			return nil
		},
	}
}

// Generate shell completion scripts
func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion script",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}
