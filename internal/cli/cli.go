package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/urfave/cli/v2"

	"food-diary/internal/clock"
	"food-diary/internal/diary"
	"food-diary/internal/models"
	"food-diary/internal/rollover"
	"food-diary/internal/summary"
)

// Version is set via -ldflags at build time.
var Version = "dev"

var categoryColors = map[models.Category]*color.Color{
	models.Breakfast: color.New(color.FgYellow),
	models.Lunch:     color.New(color.FgGreen),
	models.Dinner:    color.New(color.FgBlue),
	models.Snacks:    color.New(color.FgMagenta),
	models.Drinks:    color.New(color.FgCyan),
	models.Vitamins:  color.New(color.FgRed),
}

// New builds the terminal app. It is the only caller of the store and clock
// interfaces; everything it renders comes from them.
func New(days *diary.Store, sums *summary.Store, clk *clock.Clock, mon *rollover.Monitor) *cli.App {
	app := &cli.App{
		Name:    "food-diary",
		Usage:   "Log what you eat and drink, keep daily notes, review your history",
		Version: Version,
		Commands: []*cli.Command{
			addCmd(days, clk),
			showCmd(days, clk),
			deleteCmd(days, clk),
			notesCmd(days, clk),
			summaryCmd(sums),
			watchCmd(mon),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func dateFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Day to operate on (YYYY-MM-DD, default today)"}
}

func resolveDate(c *cli.Context, clk *clock.Clock) (string, error) {
	d := c.String("date")
	if d == "" {
		return clk.Today(), nil
	}
	if !clock.ValidDate(d) {
		return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", d)
	}
	return d, nil
}

func addCmd(days *diary.Store, clk *clock.Clock) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Log a food entry",
		ArgsUsage: "<text>",
		Flags: []cli.Flag{
			dateFlag(),
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Value: string(models.Breakfast), Usage: "breakfast|lunch|dinner|snacks|drinks|vitamins"},
		},
		Action: func(c *cli.Context) error {
			date, err := resolveDate(c, clk)
			if err != nil {
				return err
			}
			cat, ok := models.ParseCategory(c.String("category"))
			if !ok {
				return fmt.Errorf("unknown category %q", c.String("category"))
			}
			entry, err := days.AddEntry(date, strings.Join(c.Args().Slice(), " "), cat)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "added %s entry %s (%s)\n", cat, entry.ID, entry.Time)
			return nil
		},
	}
}

func showCmd(days *diary.Store, clk *clock.Clock) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show a day's entries grouped by category",
		Flags: []cli.Flag{dateFlag()},
		Action: func(c *cli.Context) error {
			date, err := resolveDate(c, clk)
			if err != nil {
				return err
			}
			rec := days.Get(date)
			fmt.Fprintln(c.App.Writer, rec.Date)
			for _, cat := range models.All {
				var lines []string
				for _, e := range rec.Entries {
					if e.Category == cat {
						lines = append(lines, fmt.Sprintf("  %s  %s  [%s]", e.Time, e.Text, e.ID))
					}
				}
				if len(lines) == 0 {
					continue
				}
				fmt.Fprintln(c.App.Writer, categoryColors[cat].Sprint(cat.Label()))
				for _, l := range lines {
					fmt.Fprintln(c.App.Writer, l)
				}
			}
			if rec.Notes != "" {
				fmt.Fprintln(c.App.Writer, "Notes:")
				fmt.Fprintln(c.App.Writer, "  "+rec.Notes)
			}
			return nil
		},
	}
}

func deleteCmd(days *diary.Store, clk *clock.Clock) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an entry by id",
		ArgsUsage: "<id>",
		Flags:     []cli.Flag{dateFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("delete takes exactly one entry id")
			}
			date, err := resolveDate(c, clk)
			if err != nil {
				return err
			}
			return days.DeleteEntry(date, c.Args().First())
		},
	}
}

func notesCmd(days *diary.Store, clk *clock.Clock) *cli.Command {
	return &cli.Command{
		Name:      "notes",
		Usage:     "Replace a day's notes",
		ArgsUsage: "<text>",
		Flags:     []cli.Flag{dateFlag()},
		Action: func(c *cli.Context) error {
			date, err := resolveDate(c, clk)
			if err != nil {
				return err
			}
			return days.SetNotes(date, strings.Join(c.Args().Slice(), " "))
		},
	}
}

func summaryCmd(sums *summary.Store) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Show aggregated history of completed days",
		Action: func(c *cli.Context) error {
			stats := sums.Aggregate()
			fmt.Fprintf(c.App.Writer, "%d days, %d entries, %.1f entries/day, %d days with notes\n",
				stats.TotalDays, stats.TotalEntries, stats.AvgEntriesPerDay, stats.DaysWithNotes)

			for _, cc := range stats.CategoryBreakdown {
				label := cc.Category.Label()
				if col, ok := categoryColors[cc.Category]; ok {
					label = col.Sprint(label)
				}
				fmt.Fprintf(c.App.Writer, "  %s: %d\n", label, cc.Count)
			}

			recs := sums.List()
			if len(recs) == 0 {
				fmt.Fprintln(c.App.Writer, "no summary data yet; daily rollups are created at midnight")
				return nil
			}
			table := uitable.New()
			table.MaxColWidth = 60
			table.AddRow("DATE", "ENTRIES", "CATEGORIES", "NOTES")
			for _, r := range recs {
				cats := make([]string, len(r.CategoriesUsed))
				for i, cat := range r.CategoriesUsed {
					cats[i] = string(cat)
				}
				notes := ""
				if r.HasNotes {
					notes = "yes"
				}
				table.AddRow(r.Date, r.TotalEntries, strings.Join(cats, ","), notes)
			}
			fmt.Fprintln(c.App.Writer, table)
			return nil
		},
	}
}

func watchCmd(mon *rollover.Monitor) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Run the midnight rollover monitor until interrupted",
		Action: func(c *cli.Context) error {
			mon.OnDateChange(func(date string) {
				log.Println("active date is now", date)
			})
			if err := mon.Start(); err != nil {
				return err
			}
			defer mon.Stop()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop
			return nil
		},
	}
}
