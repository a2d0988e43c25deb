package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"apod_fetcher/internal/dates"
	"apod_fetcher/internal/domain"
	"apod_fetcher/internal/export"
)

var errUsage = errors.New("usage")

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "today":
		return a.today(ctx)
	case "range":
		return a.dateRange(ctx, args)
	case "month":
		return a.month(ctx, args)
	case "random":
		return a.random(ctx, args)
	case "favorites":
		return a.favorites(ctx)
	case "favorite":
		return a.toggleFavorite(ctx, args)
	case "show":
		return a.show(ctx, args)
	case "export":
		return a.export(ctx, args)
	case "import":
		return a.importCSV(ctx, args)
	case "status":
		return a.status(ctx)
	case "serve":
		return a.serve(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}

// warnFetch logs a failed refresh. Commands still answer from the cache.
func (a *app) warnFetch(err error) {
	if err != nil {
		a.logger.Warn("refresh failed, showing cached photos", "error", err)
	}
}

func (a *app) today(ctx context.Context) error {
	date := dates.Today(time.Now)
	stats, err := a.svc.RefreshToday(ctx, a.cfg.API.Key)
	a.warnFetch(err)
	if err == nil && stats != nil && stats.LastDate != "" {
		date = stats.LastDate
	}

	photo, err := a.svc.Photo(ctx, date)
	if err != nil {
		return err
	}
	return printPhoto(a.out, photo)
}

func (a *app) dateRange(ctx context.Context, args []string) error {
	fs := newFlagSet("range")
	start := fs.String("start", "", "first date (YYYY-MM-DD)")
	end := fs.String("end", "", "last date (YYYY-MM-DD)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	return a.listRange(ctx, *start, *end)
}

func (a *app) month(ctx context.Context, args []string) error {
	now := time.Now()
	fs := newFlagSet("month")
	year := fs.Int("year", now.Year(), "year")
	month := fs.String("month", dates.Months()[now.Month()-1], "month label (Jan..Dec)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	start, end, err := dates.MonthRange(*year, *month, now)
	if err != nil {
		return err
	}
	return a.listRange(ctx, start, end)
}

func (a *app) listRange(ctx context.Context, start, end string) error {
	if err := dates.ValidateRange(start, end); err != nil {
		return err
	}

	_, err := a.svc.RefreshRange(ctx, a.cfg.API.Key, start, end)
	a.warnFetch(err)

	photos, err := a.svc.PhotosInRange(ctx, start, end)
	if err != nil {
		return err
	}
	return printPhotos(a.out, photos)
}

func (a *app) random(ctx context.Context, args []string) error {
	fs := newFlagSet("random")
	count := fs.Int("count", a.cfg.Sync.RandomCount, "number of photos")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	_, err := a.svc.RefreshRandom(ctx, a.cfg.API.Key, *count)
	a.warnFetch(err)

	photos, err := a.svc.RandomSample(ctx, *count)
	if err != nil {
		return err
	}
	return printPhotos(a.out, photos)
}

func (a *app) favorites(ctx context.Context) error {
	photos, err := a.svc.Favorites(ctx)
	if err != nil {
		return err
	}
	return printPhotos(a.out, photos)
}

func (a *app) toggleFavorite(ctx context.Context, args []string) error {
	fs := newFlagSet("favorite")
	date := fs.String("date", "", "date of the photo (YYYY-MM-DD)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	photo, err := a.svc.ToggleFavoriteByDate(ctx, *date)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("photo %s is not cached, fetch it first", *date)
	}
	if err != nil {
		return err
	}
	return printPhoto(a.out, photo)
}

func (a *app) show(ctx context.Context, args []string) error {
	fs := newFlagSet("show")
	date := fs.String("date", "", "date of the photo (YYYY-MM-DD)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	photo, err := a.svc.Photo(ctx, *date)
	if err != nil {
		return err
	}
	return printPhoto(a.out, photo)
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := newFlagSet("export")
	onlyFavorites := fs.Bool("favorites", false, "export favorites only")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var (
		photos []domain.PhotoRecord
		err    error
	)
	if *onlyFavorites {
		photos, err = a.svc.Favorites(ctx)
	} else {
		photos, err = a.svc.Photos(ctx)
	}
	if err != nil {
		return err
	}

	return export.WriteCSV(a.out, photos)
}

func (a *app) importCSV(ctx context.Context, args []string) error {
	fs := newFlagSet("import")
	path := fs.String("file", "", "CSV file written by export")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("%w: import needs -file", errUsage)
	}

	f, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	photos, err := export.ReadCSV(f)
	if err != nil {
		return err
	}

	n, err := a.svc.Import(ctx, photos)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "imported %d photos\n", n)
	return err
}

func (a *app) status(ctx context.Context) error {
	states, err := a.svc.Status(ctx)
	if err != nil {
		return err
	}
	return printStatus(a.out, states)
}
