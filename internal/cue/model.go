// Package cue provides the CUE sheet model, parser and canonical serializer.
package cue

import "fmt"

// Time is a CD MSF timecode (60 seconds per minute, 75 frames per second).
// Values are not range checked.
type Time struct {
	Minutes int
	Seconds int
	Frames  int
}

// MSF builds a Time from minutes, seconds and frames.
func MSF(minutes, seconds, frames int) Time {
	return Time{Minutes: minutes, Seconds: seconds, Frames: frames}
}

// IsZero reports whether every field of the timecode is zero.
func (t Time) IsZero() bool {
	return t.Minutes == 0 && t.Seconds == 0 && t.Frames == 0
}

// String renders the timecode as MM:SS:FF.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Minutes, t.Seconds, t.Frames)
}

// Index is a numbered position inside a track.
type Index struct {
	Number    int
	Timestamp Time
}

// TrackMode is the sector format of a track.
type TrackMode int

const (
	ModeAudio TrackMode = iota
	ModeMode1_2352
	ModeMode1_2048
)

var trackModeKeywords = []string{
	ModeAudio:      "AUDIO",
	ModeMode1_2352: "MODE1/2352",
	ModeMode1_2048: "MODE1/2048",
}

// String returns the CUE keyword for the mode.
func (m TrackMode) String() string {
	if m < 0 || int(m) >= len(trackModeKeywords) {
		return fmt.Sprintf("TrackMode(%d)", int(m))
	}
	return trackModeKeywords[m]
}

// FileType is the container type of a referenced file.
type FileType int

const (
	TypeBinary FileType = iota
	TypeWave
	TypeMP3
	TypeOgg
)

var fileTypeKeywords = []string{
	TypeBinary: "BINARY",
	TypeWave:   "WAV",
	TypeMP3:    "MP3",
	TypeOgg:    "OGG",
}

// String returns the CUE keyword for the file type.
func (t FileType) String() string {
	if t < 0 || int(t) >= len(fileTypeKeywords) {
		return fmt.Sprintf("FileType(%d)", int(t))
	}
	return fileTypeKeywords[t]
}

// ParseFileType resolves a CUE keyword to a FileType.
func ParseFileType(keyword string) (FileType, bool) {
	for i, kw := range fileTypeKeywords {
		if kw == keyword {
			return FileType(i), true
		}
	}
	return 0, false
}

// Track is a TRACK entry and the indexes that follow it.
type Track struct {
	Number  int
	Mode    TrackMode
	Pregap  Time
	Indexes []Index
}

// HasPregap reports whether any pregap field is nonzero.
func (t *Track) HasPregap() bool {
	return !t.Pregap.IsZero()
}

// NewIndex appends an index to the track.
func (t *Track) NewIndex(number int, timestamp Time) *Index {
	t.Indexes = append(t.Indexes, Index{Number: number, Timestamp: timestamp})
	return &t.Indexes[len(t.Indexes)-1]
}

// Clone returns a deep copy of the track.
func (t *Track) Clone() *Track {
	c := *t
	if t.Indexes != nil {
		c.Indexes = make([]Index, len(t.Indexes))
		copy(c.Indexes, t.Indexes)
	}
	return &c
}

// File is a FILE entry and the tracks it contains.
type File struct {
	Name   string
	Type   FileType
	Tracks []*Track
}

// NewTrack appends a track to the file.
func (f *File) NewTrack(number int, mode TrackMode) *Track {
	t := &Track{Number: number, Mode: mode}
	f.Tracks = append(f.Tracks, t)
	return t
}

// AllAudio reports whether every track in the file is an audio track.
func (f *File) AllAudio() bool {
	for _, t := range f.Tracks {
		if t.Mode != ModeAudio {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the file.
func (f *File) Clone() *File {
	c := &File{Name: f.Name, Type: f.Type}
	if f.Tracks != nil {
		c.Tracks = make([]*Track, len(f.Tracks))
		for i, t := range f.Tracks {
			c.Tracks[i] = t.Clone()
		}
	}
	return c
}

// Sheet is a parsed CUE sheet. Sheets are independent values; Clone
// never shares files, tracks or indexes with the original.
type Sheet struct {
	Files []*File
}

// NewFile appends a file to the sheet.
func (s *Sheet) NewFile(name string, typ FileType) *File {
	f := &File{Name: name, Type: typ}
	s.Files = append(s.Files, f)
	return f
}

// Clone returns a deep copy of the sheet.
func (s *Sheet) Clone() *Sheet {
	c := &Sheet{}
	if s.Files != nil {
		c.Files = make([]*File, len(s.Files))
		for i, f := range s.Files {
			c.Files[i] = f.Clone()
		}
	}
	return c
}
