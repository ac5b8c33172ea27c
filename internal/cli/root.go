// Package cli implements presencectl, a terminal front-end for the presence
// reports served by the API.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/presence-analyzer/internal/adapters/repository"
	"github.com/comitanigiacomo/presence-analyzer/internal/config"
	"github.com/comitanigiacomo/presence-analyzer/internal/core/domain"
	"github.com/comitanigiacomo/presence-analyzer/internal/core/services"
)

const (
	textFormat = "text"
	jsonFormat = "json"
)

type options struct {
	dataPath string
	format   string
	quiet    bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "presencectl",
		Short:        "Weekday presence statistics from a clock-in/clock-out log",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != textFormat && opts.format != jsonFormat {
				return fmt.Errorf("unknown format %q: use %s or %s", opts.format, textFormat, jsonFormat)
			}
			if opts.dataPath != "" {
				return nil
			}
			cfg, err := config.Load(".env")
			if err != nil {
				return err
			}
			opts.dataPath = cfg.DataCSV
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.dataPath, "data", "d", "", "Path to the presence CSV (default $PRESENCE_DATA_CSV)")
	root.PersistentFlags().StringVarP(&opts.format, "output", "o", textFormat, "Output format: text or json")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not report skipped rows")

	root.AddCommand(
		newUsersCommand(opts),
		newReportCommand(opts, "mean <user_id>", "Mean presence time per weekday", meanReport),
		newReportCommand(opts, "presence <user_id>", "Total presence time per weekday", presenceReport),
		newReportCommand(opts, "start-end <user_id>", "Mean arrival and departure per weekday", startEndReport),
	)

	return root
}

func (o *options) service(cmd *cobra.Command) *services.StatsService {
	skip := func(rowErr *domain.RowParseError) {
		if !o.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", rowErr)
		}
	}
	// Duplicate-date notices go through the standard logger.
	if o.quiet {
		log.SetOutput(io.Discard)
	}
	repo := repository.NewCSVPresenceRepository(o.dataPath, repository.WithSkipHandler(skip))
	return services.NewStatsService(repo)
}

func newUsersCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List users present in the log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := opts.service(cmd).ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			if opts.format == jsonFormat {
				return writeJSON(cmd.OutOrStdout(), users)
			}

			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{strconv.Itoa(u.UserID), u.Name})
			}
			return renderTable(cmd.OutOrStdout(), []string{"User ID", "Name"}, rows)
		},
	}
}

type reportFunc func(cmd *cobra.Command, svc *services.StatsService, userID int, format string) error

func newReportCommand(opts *options, use, short string, run reportFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			return run(cmd, opts.service(cmd), userID, opts.format)
		},
	}
}

func meanReport(cmd *cobra.Command, svc *services.StatsService, userID int, format string) error {
	report, err := svc.MeanTimeByWeekday(cmd.Context(), userID)
	if err != nil {
		return err
	}
	if format == jsonFormat {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return renderTable(cmd.OutOrStdout(), []string{"Weekday", "Mean (s)", "Mean"}, weekdayRows(report))
}

func presenceReport(cmd *cobra.Command, svc *services.StatsService, userID int, format string) error {
	report, err := svc.PresenceByWeekday(cmd.Context(), userID)
	if err != nil {
		return err
	}
	if format == jsonFormat {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return renderTable(cmd.OutOrStdout(), []string{"Weekday", "Presence (s)", "Presence"}, weekdayRows(domain.WeekdayReport(report)))
}

func startEndReport(cmd *cobra.Command, svc *services.StatsService, userID int, format string) error {
	report, err := svc.StartEndByWeekday(cmd.Context(), userID)
	if err != nil {
		return err
	}
	if format == jsonFormat {
		return writeJSON(cmd.OutOrStdout(), report)
	}

	rows := make([][]string, 0, len(report))
	for _, v := range report {
		rows = append(rows, []string{v.Label, formatClock(v.Start), formatClock(v.End)})
	}
	return renderTable(cmd.OutOrStdout(), []string{"Weekday", "Start", "End"}, rows)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
