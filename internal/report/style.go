package report

import (
	"io"
	"os"

	"github.com/gookit/color"
	"github.com/mattn/go-isatty"
)

// Role identifies the part of the report a line belongs to.
type Role int

const (
	RoleTitle Role = iota
	RoleTransformed
	RoleFailed
	RoleSkipped
	RoleDetail
)

// Style decorates report lines. It never changes the text itself.
type Style interface {
	Apply(role Role, s string) string
}

// PlainStyle leaves every line untouched. Report files always use it.
type PlainStyle struct{}

func (PlainStyle) Apply(_ Role, s string) string { return s }

// ColorStyle renders section headings with ANSI colors.
type ColorStyle struct {
	styles map[Role]color.Style
}

// NewColorStyle returns the default console palette.
func NewColorStyle() *ColorStyle {
	return &ColorStyle{styles: map[Role]color.Style{
		RoleTitle:       color.New(color.OpBold),
		RoleTransformed: color.New(color.FgGreen, color.OpBold),
		RoleFailed:      color.New(color.FgRed, color.OpBold),
		RoleSkipped:     color.New(color.FgYellow, color.OpBold),
		RoleDetail:      color.New(color.FgGray),
	}}
}

func (c *ColorStyle) Apply(role Role, s string) string {
	st, ok := c.styles[role]
	if !ok {
		return s
	}
	return st.Sprint(s)
}

// StyleFor picks ColorStyle when w is a terminal and PlainStyle otherwise.
func StyleFor(w io.Writer) Style {
	if shouldColorize(w) {
		return NewColorStyle()
	}
	return PlainStyle{}
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
