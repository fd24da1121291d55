package cue

import (
	"fmt"

	"github.com/anselrognlie/cue-convert/internal/lineio"
)

const (
	fileLineFormat   = `FILE "%s" %s`
	trackLineFormat  = "  TRACK %02d %s"
	pregapLineFormat = "    PREGAP %s"
	indexLineFormat  = "    INDEX %02d %s"
)

// Write emits the canonical form of sheet to w, one directive per line.
// Filenames are always quoted and numbers are zero-padded to two digits,
// regardless of how the sheet was originally written. Writing stops at the
// first line the sink refuses.
func Write(sheet *Sheet, w lineio.Writer) error {
	for _, f := range sheet.Files {
		if err := w.WriteLine(fmt.Sprintf(fileLineFormat, f.Name, f.Type)); err != nil {
			return fmt.Errorf("write file %q: %w", f.Name, err)
		}
		if err := writeTracks(f.Tracks, w); err != nil {
			return err
		}
	}
	return nil
}

func writeTracks(tracks []*Track, w lineio.Writer) error {
	for _, t := range tracks {
		if err := w.WriteLine(fmt.Sprintf(trackLineFormat, t.Number, t.Mode)); err != nil {
			return fmt.Errorf("write track %02d: %w", t.Number, err)
		}
		if t.HasPregap() {
			if err := w.WriteLine(fmt.Sprintf(pregapLineFormat, t.Pregap)); err != nil {
				return fmt.Errorf("write pregap for track %02d: %w", t.Number, err)
			}
		}
		for _, idx := range t.Indexes {
			if err := w.WriteLine(fmt.Sprintf(indexLineFormat, idx.Number, idx.Timestamp)); err != nil {
				return fmt.Errorf("write index %02d of track %02d: %w", idx.Number, t.Number, err)
			}
		}
	}
	return nil
}

// Lines returns the canonical form of sheet as a slice of lines.
func Lines(sheet *Sheet) []string {
	var sw lineio.SliceWriter
	// SliceWriter never refuses a line.
	_ = Write(sheet, &sw)
	return sw.Lines
}

// WriteFile writes the canonical form of sheet to path, replacing any
// existing file.
func WriteFile(sheet *Sheet, path string) error {
	fw, err := lineio.CreateFile(path)
	if err != nil {
		return err
	}
	if err := Write(sheet, fw); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}
