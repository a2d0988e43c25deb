package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"apod_fetcher/internal/domain"
)

func printPhotos(w io.Writer, photos []domain.PhotoRecord) error {
	if len(photos) == 0 {
		_, err := fmt.Fprintln(w, "no cached photos")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tFAV\tTITLE\tURL")
	for _, p := range photos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Date, star(p.IsFavorite), value(p.Title), p.DisplayURL())
	}
	return tw.Flush()
}

func printPhoto(w io.Writer, p *domain.PhotoRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Date:\t%s\n", p.Date)
	fmt.Fprintf(tw, "Title:\t%s\n", value(p.Title))
	fmt.Fprintf(tw, "Favorite:\t%t\n", p.IsFavorite)
	fmt.Fprintf(tw, "Media:\t%s\n", value(p.MediaType))
	fmt.Fprintf(tw, "Copyright:\t%s\n", value(p.Copyright))
	fmt.Fprintf(tw, "URL:\t%s\n", p.DisplayURL())
	if p.HDURL != nil {
		fmt.Fprintf(tw, "HD URL:\t%s\n", *p.HDURL)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if p.Explanation != nil {
		_, err := fmt.Fprintf(w, "\n%s\n", *p.Explanation)
		return err
	}
	return nil
}

func printStatus(w io.Writer, states []domain.SyncState) error {
	if len(states) == 0 {
		_, err := fmt.Fprintln(w, "nothing synced yet")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tLAST SYNC\tLAST DATE\tTOTAL")
	for _, s := range states {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", s.Kind, s.LastSyncedAt.Local().Format(time.DateTime), s.LastDate, s.TotalSynced)
	}
	return tw.Flush()
}

func star(favorite bool) string {
	if favorite {
		return "*"
	}
	return ""
}

func value(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
