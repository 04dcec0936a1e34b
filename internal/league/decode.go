package league

import (
	"fmt"
	"io"

	"github.com/albapepper/fofdata/internal/codec"
)

// Decode reads a complete league file laid out per rev. Nothing is returned
// unless the whole stream decodes.
func Decode(src io.Reader, rev Revision, opts ...codec.Option) (*League, error) {
	r := codec.NewReader(src, opts...)
	l := readLeague(r, rev)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("decode league (revision %s): %w", rev.Name, err)
	}
	return l, nil
}

func readLeague(r *codec.Reader, rev Revision) *League {
	l := &League{}
	r.Expect("magic", Magic)

	l.DataVersion = r.U32()
	l.Some2 = r.U32()
	l.Some3 = r.U32()
	l.NextAction = r.U32()
	l.CurrentDay = r.U32()

	l.Calendar = codec.ReadList(r, "calendar", readCalendarItem)

	l.Year = r.U32()
	l.Unknown1 = r.U32()
	l.NumberTeams = r.U32()
	copy(l.Unknown3[:], r.Words(len(l.Unknown3)))
	l.NumberDivisions = r.U32()
	copy(l.Unknown7[:], r.Words(len(l.Unknown7)))

	l.ChampionshipName = r.Text()
	l.LeagueName = r.Text()
	l.Unknown15 = r.U32()
	l.Conference1Name = r.Text()
	l.Conference1Short = r.Text()
	l.Conference2Name = r.Text()
	l.Conference2Short = r.Text()

	copy(l.Divisions[:], codec.ReadN(r, "divisions", DivisionCount, readDivision))

	l.StructureName = r.Text()
	l.Unknown20 = r.U32()
	l.Unknown21 = r.U32()
	l.Unknown22 = r.U32()
	l.CalendarPath = r.Text()

	copy(l.Ignored[:], r.Words(IgnoredWords))
	l.Padding = r.Words(rev.LeaguePadding)
	l.Trailer = r.Words(rev.LeagueTrailer)

	teamsLen := r.U32()
	if r.Err() != nil {
		return nil
	}
	if teamsLen != l.NumberTeams {
		r.Fail(r.Invariant("teams_len", "league stores %d teams but lists %d", l.NumberTeams, teamsLen))
		return nil
	}
	l.Teams = codec.ReadN(r, "teams", int(teamsLen), func(r *codec.Reader) Team {
		return readTeam(r, rev)
	})

	l.Tail = readTail(r, rev)
	if r.Err() != nil {
		return nil
	}
	return l
}

func readCalendarItem(r *codec.Reader) CalendarItem {
	c := CalendarItem{
		Number: r.U32(),
		Month:  r.U32(),
		Day:    r.U32(),
		Year:   r.U32(),
	}
	copy(c.Some[:], r.Words(len(c.Some)))
	return c
}

func readDivision(r *codec.Reader) Division {
	return Division{
		Name:        r.Text(),
		NumberTeams: r.U32(),
	}
}

func readTeam(r *codec.Reader, rev Revision) Team {
	var t Team
	stored := r.U32()
	if r.Err() == nil && stored == 0 {
		r.Fail(r.Invariant("number", "stored team number is 0, expected logical number + 1"))
		return t
	}
	t.Number = stored - 1
	t.City = r.Text()
	t.Name = r.Text()
	t.Short = r.Text()

	copy(t.Data1[:], r.Words(len(t.Data1)))
	copy(t.Playbook[:], codec.ReadN(r, "playbook", PlaybookSize, readPlaybookPlay))
	t.Padding = r.Words(rev.TeamPadding)
	copy(t.Data2[:], r.Words(len(t.Data2)))

	t.City2 = r.Text()
	t.Name2 = r.Text()
	t.Short2 = r.Text()

	copy(t.Data3[:], r.Words(len(t.Data3)))
	t.Trailer = r.Words(rev.TeamTrailer)
	copy(t.Data4[:], r.Words(len(t.Data4)))
	return t
}

func readPlaybookPlay(r *codec.Reader) PlaybookPlay {
	var p PlaybookPlay
	copy(p.Data[:], r.Words(len(p.Data)))
	p.Name = r.Text()
	return p
}

// readTail consumes the rest of the stream, which must be exactly the size
// the revision expects.
func readTail(r *codec.Reader, rev Revision) []uint32 {
	rest := r.Rest()
	if r.Err() != nil {
		return nil
	}
	switch {
	case len(rest)%4 != 0:
		r.Fail(r.RevisionMismatch("tail", "%d trailing bytes is not a whole number of words", len(rest)))
		return nil
	case rev.Tail >= 0 && len(rest) != 4*rev.Tail:
		r.Fail(r.RevisionMismatch("tail", "revision %s expects %d tail words, stream has %d", rev.Name, rev.Tail, len(rest)/4))
		return nil
	}
	return codec.WordsFrom(rest)
}
