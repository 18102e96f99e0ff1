package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fzed51/week-number/internal/calendar"
	"github.com/fzed51/week-number/internal/config"
	"github.com/fzed51/week-number/internal/holiday"
	"github.com/fzed51/week-number/internal/server"
	"github.com/fzed51/week-number/internal/vacation"
	"github.com/fzed51/week-number/internal/week"
	"github.com/fzed51/week-number/pkg/dateutil"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "week-number",
		Short: "Week numbers, French holidays and school vacations",
		Long:  "Show ISO week numbers and month grids, generate the holiday dataset, sync the school calendar and serve everything as JSON",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				cfg.ExpandEnvVars()
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger(cfg.Log.Level) // Fallback to console
				}
			} else if err == nil {
				initLogger(cfg.Log.Level)
			} else {
				initLogger("info")
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(weekCmd())
	rootCmd.AddCommand(monthCmd())
	rootCmd.AddCommand(holidaysCmd())
	rootCmd.AddCommand(vacationsCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()
	return cfg, nil
}

func weekCmd() *cobra.Command {
	var dateStr string
	var number, year int

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the week number of a date, or the dates of a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loc := cfg.Calendar.GetLocation()
			out := cmd.OutOrStdout()

			if number > 0 {
				if year == 0 {
					year = dateutil.Today(loc).Year()
				}
				return renderWeekRange(out, number, year)
			}

			date, err := parseDateFlag(dateStr, loc)
			if err != nil {
				return err
			}
			renderWeek(out, date, week.Number(date), week.Year(date))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Date (YYYY-MM-DD or DD/MM/YYYY), today when empty")
	cmd.Flags().IntVarP(&number, "week", "w", 0, "Week number to expand into dates")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year of --week, current year when empty")

	return cmd
}

func monthCmd() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Print the month grid with holidays and school vacations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loc := cfg.Calendar.GetLocation()

			date, err := parseDateFlag(dateStr, loc)
			if err != nil {
				return err
			}

			holidays := holiday.NewStore(cfg.Data.HolidaysFile, logger).LoadIndex(holiday.WithLocation(loc))
			vacations := vacation.NewStore(cfg.Data.VacationsFile, logger).LoadIndex(vacation.WithLocation(loc))

			renderMonth(cmd.OutOrStdout(), calendar.MonthGrid(date), holidays, vacations, date)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Any date of the month, today when empty")

	return cmd
}

func holidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Manage the public holiday dataset",
	}

	var from, to int
	var out string

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Compute French public holidays and write them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if from == 0 {
				from = cfg.Holidays.FromYear
			}
			if to == 0 {
				to = cfg.Holidays.GetToYear(time.Now())
			}
			if to < from {
				return fmt.Errorf("--to (%d) is before --from (%d)", to, from)
			}
			if out == "" {
				out = cfg.Data.HolidaysFile
			}

			data := holiday.Generate(from, to)
			if err := holiday.NewStore(out, logger).Save(data); err != nil {
				return err
			}

			logger.Info("Holidays generated",
				zap.Int("from", from),
				zap.Int("to", to),
				zap.String("file", out))
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %d years written to %s\n", len(data), out)
			return nil
		},
	}

	generate.Flags().IntVar(&from, "from", 0, "First year (holidays.from_year when empty)")
	generate.Flags().IntVar(&to, "to", 0, "Last year (current year + holidays.years_ahead when empty)")
	generate.Flags().StringVarP(&out, "out", "o", "", "Output file (data.holidays_file when empty)")

	cmd.AddCommand(generate)
	return cmd
}

func vacationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vacations",
		Short: "Manage the school vacation dataset",
	}

	var feedURL, out string
	fetch := &cobra.Command{
		Use:   "fetch",
		Short: "Download the school calendar feed and write it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if feedURL == "" {
				feedURL = cfg.Vacations.SourceURL
			}
			if out == "" {
				out = cfg.Data.VacationsFile
			}

			fetcher := vacation.NewHTTPFetcher(cfg.Vacations.GetHTTPTimeout(), logger)
			periods, err := vacation.Sync(cmd.Context(), fetcher, feedURL, cfg.Calendar.GetLocation(), logger)
			if err != nil {
				return fmt.Errorf("failed to sync vacations: %w", err)
			}

			if err := vacation.NewStore(out, logger).Save(periods); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ %d periods written to %s\n", len(periods), out)
			return nil
		},
	}
	fetch.Flags().StringVar(&feedURL, "url", "", "iCalendar feed URL (vacations.source_url when empty)")
	fetch.Flags().StringVarP(&out, "out", "o", "", "Output file (data.vacations_file when empty)")

	var count int
	upcoming := &cobra.Command{
		Use:   "upcoming",
		Short: "List the next school vacation periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if count < 0 {
				return fmt.Errorf("--count must not be negative")
			}

			loc := cfg.Calendar.GetLocation()
			vacations := vacation.NewStore(cfg.Data.VacationsFile, logger).LoadIndex(vacation.WithLocation(loc))

			renderPeriods(cmd.OutOrStdout(), vacations.Upcoming(time.Now(), count), loc)
			return nil
		},
	}
	upcoming.Flags().IntVarP(&count, "count", "n", 3, "Number of periods to list")

	cmd.AddCommand(fetch)
	cmd.AddCommand(upcoming)
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			loc := cfg.Calendar.GetLocation()

			holidays := holiday.NewStore(cfg.Data.HolidaysFile, logger).LoadIndex(holiday.WithLocation(loc))
			vacations := vacation.NewStore(cfg.Data.VacationsFile, logger).LoadIndex(vacation.WithLocation(loc))

			logger.Info("Datasets loaded",
				zap.Int("vacation_periods", vacations.Len()),
				zap.String("timezone", loc.String()))

			srv := server.New(addr, cfg.Server.AllowedOrigins, holidays, vacations, loc, logger)
			return srv.Run(context.Background())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (server.addr when empty)")

	return cmd
}

func parseDateFlag(dateStr string, loc *time.Location) (time.Time, error) {
	if dateStr == "" {
		return dateutil.Today(loc), nil
	}
	date, err := dateutil.ParseDate(dateStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date: %w", err)
	}
	return date.In(loc), nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		config.Level = lvl
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    20, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
