package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"cinema-seating/seating"
	"cinema-seating/store"
	"cinema-seating/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	appName         = "cinema-seating"
	defaultPlanPath = "seating_plan.txt"
)

// savePlan is replaced in tests.
var savePlan = store.SavePlan

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	layoutPath string
	planPath   string
	rows       int
	cols       int
	group      int
	debugLog   string
}

// NewRootCmd builds the command tree. version is printed by the version command.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Assign cinema seats to groups",
		Long:          `Assign cinema seats, sofas included, to numbered groups and keep the plan in a text file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateGrid(opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.layoutPath, "layout", "", "seat layout file (\"<row>,<seat> <start>&<end> ...\" per line)")
	flags.StringVar(&opts.planPath, "plan", defaultPlanPath, "saved seating plan file")
	flags.IntVar(&opts.rows, "rows", store.DefaultRows, "rows of the default grid when no layout is given")
	flags.IntVar(&opts.cols, "cols", store.DefaultCols, "columns of the default grid when no layout is given")
	rootCmd.Flags().IntVar(&opts.group, "group", 0, "active group id at start")
	rootCmd.Flags().StringVar(&opts.debugLog, "debug-log", "", "write debug log to this file")

	rootCmd.AddCommand(
		newShowCmd(opts),
		newGroupsCmd(opts),
		newToggleCmd(opts),
		newClearCmd(opts),
		newLayoutCmd(),
		newVersionCmd(version),
	)
	return rootCmd
}

// Execute runs the CLI and exits non-zero on error.
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	if opts.debugLog != "" {
		f, err := tea.LogToFile(opts.debugLog, appName)
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	settings, err := store.LoadSettings()
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	tuiOpts := tui.Options{
		LayoutPath: opts.layoutPath,
		PlanPath:   opts.planPath,
		Rows:       opts.rows,
		Cols:       opts.cols,
		Group:      settings.Group,
		ShowLabels: settings.ShowLabels,
	}
	flags := cmd.Flags()
	if !flags.Changed("layout") && settings.LayoutPath != "" {
		tuiOpts.LayoutPath = settings.LayoutPath
	}
	if !flags.Changed("plan") && settings.PlanPath != "" {
		tuiOpts.PlanPath = settings.PlanPath
	}
	if flags.Changed("group") {
		if opts.group <= 0 {
			return fmt.Errorf("--group must be positive, got %d", opts.group)
		}
		tuiOpts.Group = opts.group
	}
	log.Printf("starting with layout=%q plan=%q group=%d", tuiOpts.LayoutPath, tuiOpts.PlanPath, tuiOpts.Group)

	_, err = tea.NewProgram(tui.New(tuiOpts), tea.WithAltScreen()).Run()
	return err
}

// validateGrid checks the default grid size before any command builds it.
func validateGrid(opts *rootOptions) error {
	if opts.rows < 1 || opts.rows > seating.MaxRows {
		return fmt.Errorf("--rows must be between 1 and %d, got %d", seating.MaxRows, opts.rows)
	}
	if opts.cols < 1 || opts.cols > seating.MaxColumns {
		return fmt.Errorf("--cols must be between 1 and %d, got %d", seating.MaxColumns, opts.cols)
	}
	return nil
}

func openWorkspace(opts *rootOptions) (store.Workspace, error) {
	return store.Open(opts.layoutPath, opts.planPath, opts.rows, opts.cols)
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, version)
		},
	}
}
