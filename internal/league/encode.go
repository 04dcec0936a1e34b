package league

import (
	"fmt"
	"io"

	"github.com/albapepper/fofdata/internal/codec"
)

// Encode writes l in the layout of rev. Counts are recomputed from the slices
// and team numbers are stored as number+1, so Encode(Decode(b)) reproduces b.
func Encode(dst io.Writer, l *League, rev Revision, opts ...codec.Option) error {
	if err := checkSizes(l, rev); err != nil {
		return fmt.Errorf("encode league: %w", err)
	}
	w := codec.NewWriter(dst, opts...)
	writeLeague(w, l)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("encode league: %w", err)
	}
	return nil
}

func checkSizes(l *League, rev Revision) error {
	if int(l.NumberTeams) != len(l.Teams) {
		return fmt.Errorf("%w: number_teams %d but %d teams", codec.ErrStructuralInvariant, l.NumberTeams, len(l.Teams))
	}
	if len(l.Padding) != rev.LeaguePadding || len(l.Trailer) != rev.LeagueTrailer {
		return fmt.Errorf("%w: league padding %d/%d words, revision %s wants %d/%d",
			codec.ErrRevisionMismatch, len(l.Padding), len(l.Trailer), rev.Name, rev.LeaguePadding, rev.LeagueTrailer)
	}
	if rev.Tail >= 0 && len(l.Tail) != rev.Tail {
		return fmt.Errorf("%w: tail %d words, revision %s wants %d", codec.ErrRevisionMismatch, len(l.Tail), rev.Name, rev.Tail)
	}
	for i := range l.Teams {
		t := &l.Teams[i]
		if len(t.Padding) != rev.TeamPadding || len(t.Trailer) != rev.TeamTrailer {
			return fmt.Errorf("%w: team %d padding %d/%d words, revision %s wants %d/%d",
				codec.ErrRevisionMismatch, t.Number, len(t.Padding), len(t.Trailer), rev.Name, rev.TeamPadding, rev.TeamTrailer)
		}
	}
	return nil
}

func writeLeague(w *codec.Writer, l *League) {
	w.Magic(Magic)

	w.U32(l.DataVersion)
	w.U32(l.Some2)
	w.U32(l.Some3)
	w.U32(l.NextAction)
	w.U32(l.CurrentDay)

	codec.WriteList(w, l.Calendar, writeCalendarItem)

	w.U32(l.Year)
	w.U32(l.Unknown1)
	w.U32(l.NumberTeams)
	w.Words(l.Unknown3[:])
	w.U32(l.NumberDivisions)
	w.Words(l.Unknown7[:])

	w.Text(l.ChampionshipName)
	w.Text(l.LeagueName)
	w.U32(l.Unknown15)
	w.Text(l.Conference1Name)
	w.Text(l.Conference1Short)
	w.Text(l.Conference2Name)
	w.Text(l.Conference2Short)

	for _, d := range l.Divisions {
		w.Text(d.Name)
		w.U32(d.NumberTeams)
	}

	w.Text(l.StructureName)
	w.U32(l.Unknown20)
	w.U32(l.Unknown21)
	w.U32(l.Unknown22)
	w.Text(l.CalendarPath)

	w.Words(l.Ignored[:])
	w.Words(l.Padding)
	w.Words(l.Trailer)

	w.U32(uint32(len(l.Teams)))
	for i := range l.Teams {
		writeTeam(w, &l.Teams[i])
	}

	w.Words(l.Tail)
}

func writeCalendarItem(w *codec.Writer, c CalendarItem) {
	w.U32(c.Number)
	w.U32(c.Month)
	w.U32(c.Day)
	w.U32(c.Year)
	w.Words(c.Some[:])
}

func writeTeam(w *codec.Writer, t *Team) {
	w.U32(t.Number + 1)
	w.Text(t.City)
	w.Text(t.Name)
	w.Text(t.Short)

	w.Words(t.Data1[:])
	for _, p := range t.Playbook {
		w.Words(p.Data[:])
		w.Text(p.Name)
	}
	w.Words(t.Padding)
	w.Words(t.Data2[:])

	w.Text(t.City2)
	w.Text(t.Name2)
	w.Text(t.Short2)

	w.Words(t.Data3[:])
	w.Words(t.Trailer)
	w.Words(t.Data4[:])
}
