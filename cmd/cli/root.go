package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/limaJavier/coursepicker/pkg/catalog"
	"github.com/limaJavier/coursepicker/pkg/config"
	"github.com/limaJavier/coursepicker/pkg/export"
	"github.com/limaJavier/coursepicker/pkg/logger"
	"github.com/limaJavier/coursepicker/pkg/picker"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	season  string
	courses []string
	icsPath string
	weekOf  string
	weeks   int
)

var rootCmd = &cobra.Command{
	Use:          "coursepicker",
	Short:        "Find every conflict-free schedule for a set of courses",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (YAML or JSON)")
	rootCmd.Flags().StringVar(&season, "season", "", `term to enroll in, like "FA 2014"`)
	rootCmd.Flags().StringArrayVar(&courses, "course", nil, `course to enroll in, like "EECS 281" (repeatable)`)
	rootCmd.Flags().StringVar(&icsPath, "ics", "schedule.ics", "file where a saved schedule is written as iCalendar")
	rootCmd.Flags().StringVar(&weekOf, "week-of", "", "any date (2006-01-02) in the first week of classes, today by default")
	rootCmd.Flags().IntVar(&weeks, "weeks", 0, "amount of weeks the exported schedule repeats, forever by default")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if season != "" {
		cfg.Season = season
	}
	if len(courses) > 0 {
		cfg.Courses = courses
	}
	if cfg.Season == "" {
		return fmt.Errorf("a season must be specified")
	} else if cfg.Catalog.AccessToken == "" {
		return fmt.Errorf("an access token must be specified")
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}
	log := logger.New("cli")

	exportOptions, err := parseExportOptions()
	if err != nil {
		return err
	}

	//** Catalog clients, each one with its own cache
	classCache, saveClassCache, err := openCache(cfg.Catalog.CacheFile("class_api.cache"))
	if err != nil {
		return err
	}
	defer saveCache(log, saveClassCache)
	buildingCache, saveBuildingCache, err := openCache(cfg.Catalog.CacheFile("building_api.cache"))
	if err != nil {
		return err
	}
	defer saveCache(log, saveBuildingCache)

	classClient := catalog.NewClient(clientConfig(cfg.Catalog, cfg.Catalog.ClassURL), classCache, logger.New("class-api"))
	buildingClient := catalog.NewClient(clientConfig(cfg.Catalog, cfg.Catalog.BuildingURL), buildingCache, logger.New("building-api"))

	classes := catalog.NewCatalog(classClient, logger.New("catalog"))
	term, err := classes.TermFromSeason(ctx, cfg.Season)
	if err != nil {
		return err
	}
	directory, err := catalog.LoadDirectory(ctx, buildingClient, logger.New("buildings"))
	if err != nil {
		return err
	}

	//** Search
	classPicker := picker.NewPicker(directory)
	blockedTimes, err := cfg.BlockedTimes()
	if err != nil {
		return err
	}
	for _, blockedTime := range blockedTimes {
		classPicker.AddCriterion(blockedTime)
	}

	start := time.Now()
	candidates, err := classPicker.Pick(ctx, classes, term, cfg.Courses)
	if err != nil {
		return err
	}
	log.Info().
		Str("term", term.ShortName).
		Strs("courses", cfg.Courses).
		Int("criteria", len(classPicker.Criteria())).
		Int("schedules", len(candidates)).
		Dur("elapsed", time.Since(start)).
		Msg("search finished")

	return newPager(cmd.InOrStdin(), cmd.OutOrStdout(), icsPath, exportOptions, log).Page(candidates)
}

func clientConfig(cfg config.CatalogConfig, baseURL string) catalog.ClientConfig {
	return catalog.ClientConfig{
		BaseURL:           baseURL,
		AccessKey:         cfg.AccessToken,
		Retries:           uint64(cfg.RetryCount()),
		RetryWait:         cfg.RetryWait(),
		RequestsPerWindow: cfg.RequestsPerWindow,
		Window:            cfg.Window(),
	}
}

// openCache opens the cache persisted at the file, or an in-memory cache if there is no file.
// The returned function saves the cache.
func openCache(fileName string) (catalog.Cache, func() error, error) {
	if fileName == "" {
		return catalog.NewMemoryCache(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create cache directory: %w", err)
	}
	cache, err := catalog.OpenFileCache(fileName)
	if err != nil {
		return nil, nil, err
	}
	return cache, cache.Save, nil
}

func saveCache(log zerolog.Logger, save func() error) {
	if err := save(); err != nil {
		log.Error().Err(err).Msg("cannot save cache")
	}
}

func parseExportOptions() (export.Options, error) {
	options := export.Options{WeekOf: time.Now(), Weeks: weeks}
	if weekOf != "" {
		date, err := time.ParseInLocation(time.DateOnly, weekOf, time.Local)
		if err != nil {
			return export.Options{}, fmt.Errorf("invalid week-of date %q: %w", weekOf, err)
		}
		options.WeekOf = date
	}
	if weeks < 0 {
		return export.Options{}, fmt.Errorf("weeks must not be negative: %v", weeks)
	}
	return options, nil
}
