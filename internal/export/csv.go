// Package export writes the portfolio content to files outside the store.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/sadopc/folio/internal/objref"
	"github.com/sadopc/folio/internal/portfolio"
)

// Namer resolves a live reference to its original file name.
// *objref.Tracker implements it.
type Namer interface {
	Name(ref string) string
}

// WorksToCSV writes one row per work.
func WorksToCSV(works []portfolio.Work, profiles []portfolio.Profile, names Namer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Title", "Date", "Company", "Tags", "Images", "Videos", "Project URL", "Aspect Ratio"}); err != nil {
		return err
	}

	for _, work := range works {
		tags := make([]string, len(work.Tags))
		for i, t := range work.Tags {
			tags[i] = t.Name
		}
		row := []string{
			fmt.Sprintf("%d", work.ID),
			work.Title,
			work.Date,
			portfolio.AffiliationName(profiles, work),
			strings.Join(tags, "; "),
			strings.Join(mediaList(names, work.Images), " "),
			strings.Join(mediaList(names, work.Videos), " "),
			work.ProjectURL,
			string(work.AspectRatio),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// media renders a reference for export. Live references only make sense
// inside this process, so they are replaced by the uploaded file name.
func media(names Namer, ref string) string {
	if !objref.IsEphemeral(ref) {
		return ref
	}
	if n := names.Name(ref); n != "" {
		return "upload:" + n
	}
	return "upload"
}

func mediaList(names Namer, refs []string) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = media(names, r)
	}
	return out
}
