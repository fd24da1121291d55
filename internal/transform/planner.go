// Package transform computes the target sheet for a codec conversion.
package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/anselrognlie/cue-convert/internal/cue"
)

// ErrUnsupportedCodec is returned when no profile is registered for a codec.
var ErrUnsupportedCodec = errors.New("unsupported codec")

// Codec names a target codec.
type Codec string

const (
	CodecOgg Codec = "ogg"
)

// Profile describes what a target codec produces and which source files
// may be converted into it.
type Profile struct {
	Codec     Codec
	FileType  cue.FileType
	Extension string
	Eligible  []cue.FileType
}

// Accepts reports whether a file of type t may be converted with p.
func (p Profile) Accepts(t cue.FileType) bool {
	for _, e := range p.Eligible {
		if e == t {
			return true
		}
	}
	return false
}

var profiles = newProfileTable(
	Profile{
		Codec:     CodecOgg,
		FileType:  cue.TypeOgg,
		Extension: ".ogg",
		Eligible:  []cue.FileType{cue.TypeBinary, cue.TypeWave},
	},
)

func newProfileTable(ps ...Profile) *orderedmap.OrderedMap[Codec, Profile] {
	m := orderedmap.NewOrderedMap[Codec, Profile]()
	for _, p := range ps {
		m.Set(p.Codec, p)
	}
	return m
}

// Codecs returns every registered profile in registration order.
func Codecs() []Profile {
	out := make([]Profile, 0, profiles.Len())
	for el := profiles.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Lookup resolves a codec name, ignoring case.
func Lookup(name string) (Profile, error) {
	p, ok := profiles.Get(Codec(strings.ToLower(strings.TrimSpace(name))))
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnsupportedCodec, name)
	}
	return p, nil
}

// Eligible reports whether f would be converted to codec. A file qualifies
// when its type is accepted by the codec and every track is audio.
func Eligible(f *cue.File, codec Codec) bool {
	p, ok := profiles.Get(codec)
	if !ok {
		return false
	}
	return eligible(f, p)
}

func eligible(f *cue.File, p Profile) bool {
	return p.Accepts(f.Type) && f.AllAudio()
}

// Plan returns a deep copy of sheet with every eligible file renamed to
// the codec's extension and retyped. The input is never modified.
func Plan(sheet *cue.Sheet, codec Codec) (*cue.Sheet, error) {
	if sheet == nil {
		return nil, errors.New("plan: nil sheet")
	}
	p, ok := profiles.Get(codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCodec, string(codec))
	}

	out := sheet.Clone()
	for _, f := range out.Files {
		if !eligible(f, p) {
			continue
		}
		f.Name = ReplaceExtension(f.Name, p.Extension)
		f.Type = p.FileType
	}
	return out, nil
}

// ReplaceExtension swaps everything from the final dot of the base name
// onward for ext, or appends ext when the base name has no dot. Directory
// components are left alone.
func ReplaceExtension(name, ext string) string {
	start := strings.LastIndexAny(name, `/\`) + 1
	dot := strings.LastIndexByte(name[start:], '.')
	if dot < 0 {
		return name + ext
	}
	return name[:start+dot] + ext
}
