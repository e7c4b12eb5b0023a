package status

import (
	"fmt"
	"io"
	"strings"

	"github.com/frebib/tautulli-status/tautulli/api"
)

const NoActiveStreams = "No active streams."

type column struct {
	width int
	right bool
}

// columns are the fixed-width cells of a row. The title follows unpadded.
var columns = []column{
	{width: UserWidth},
	{width: PlatformWidth},
	{width: ResolutionWidth},
	{width: ResolutionWidth},
	{width: FlagsWidth},
	{width: MbpsWidth, right: true},
	{width: StatusWidth},
	{width: ProgressWidth},
}

var header = []string{"User", "Plat", "Vres", "Sres", "TT", "Mbps", "ST", "Progress", "Title"}

// Build normalizes and formats every session, keeping their order.
func Build(sessions []api.Session, titleWidth int) []DisplaySession {
	rows := make([]DisplaySession, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, NewDisplaySession(Normalize(s), titleWidth))
	}
	return rows
}

type Table struct {
	w io.Writer
}

func NewTable(w io.Writer) *Table {
	return &Table{w: w}
}

// Render writes the header and one line per row.
func (t *Table) Render(rows []DisplaySession) error {
	if err := t.line(header...); err != nil {
		return err
	}
	for _, r := range rows {
		err := t.line(r.User, r.Platform, r.VideoResolution, r.StreamResolution,
			r.Flags, r.MbpsText, r.Status, r.Progress, r.Title)
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) RenderIdle() error {
	_, err := fmt.Fprintln(t.w, NoActiveStreams)
	return err
}

func (t *Table) line(cols ...string) error {
	var b strings.Builder
	for i, c := range columns {
		if c.right {
			b.WriteString(PadLeft(cols[i], c.width))
		} else {
			b.WriteString(PadRight(cols[i], c.width))
		}
		b.WriteByte(' ')
	}
	b.WriteString(cols[len(columns)])

	_, err := fmt.Fprintln(t.w, strings.TrimRight(b.String(), " "))
	return err
}
