package league

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"golang.org/x/text/encoding"

	"github.com/albapepper/fofdata/internal/codec"

	. "github.com/smartystreets/goconvey/convey"
)

var quiet = codec.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

// tiny keeps fixtures small; the real revisions differ only in sizes.
var tiny = Revision{
	Name:          "tiny",
	LeaguePadding: 3,
	LeagueTrailer: 2,
	TeamPadding:   4,
	TeamTrailer:   1,
	Tail:          -1,
}

func words(n int, seed uint32) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = seed + uint32(i)
	}
	return out
}

func sampleTeam(rev Revision, number uint32, city, name, short string) Team {
	t := Team{
		Number:  number,
		City:    codec.NewText(city),
		Name:    codec.NewText(name),
		Short:   codec.NewText(short),
		Padding: words(rev.TeamPadding, 100),
		City2:   codec.NewText(city),
		Name2:   codec.NewText(name),
		Short2:  codec.NewText(short),
		Trailer: words(rev.TeamTrailer, 200),
	}
	t.Data1[3] = 33
	t.Data4[4] = 44
	for i := range t.Playbook {
		t.Playbook[i].Data[0] = uint32(i)
		t.Playbook[i].Name = codec.NewText("Play")
	}
	return t
}

func sampleLeague(rev Revision) *League {
	l := &League{
		DataVersion: 9,
		NextAction:  3,
		CurrentDay:  12,
		Calendar: []CalendarItem{
			{Number: 1, Month: 8, Day: 1, Year: 2024},
			{Number: 2, Month: 9, Day: 8, Year: 2024, Some: [6]uint32{1, 2, 3, 4, 5, 6}},
		},
		Year:             2024,
		NumberTeams:      2,
		NumberDivisions:  DivisionCount,
		ChampionshipName: codec.NewText("Bowl"),
		LeagueName:       codec.NewText("Test League"),
		Conference1Name:  codec.NewText("American"),
		Conference1Short: codec.NewText("AFC"),
		Conference2Name:  codec.NewText("National"),
		Conference2Short: codec.NewText("NFC"),
		StructureName:    codec.NewText("Standard"),
		CalendarPath:     codec.NewText(""),
		Padding:          words(rev.LeaguePadding, 10),
		Trailer:          words(rev.LeagueTrailer, 20),
		Teams: []Team{
			sampleTeam(rev, 1, "Miami", "Sharks", "MIA"),
			sampleTeam(rev, 0, "Dallas", "Stars", "DAL"),
		},
	}
	for i := range l.Divisions {
		l.Divisions[i] = Division{Name: codec.NewText("Division"), NumberTeams: 4}
	}
	if rev.Tail >= 0 {
		l.Tail = words(rev.Tail, 7)
	} else {
		l.Tail = words(5, 7)
	}
	return l
}

func encodeLeague(l *League, rev Revision) []byte {
	buf := &bytes.Buffer{}
	if err := Encode(buf, l, rev); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// rawLeague bypasses the size checks so malformed files can be produced.
func rawLeague(l *League) []byte {
	buf := &bytes.Buffer{}
	w := codec.NewWriter(buf)
	writeLeague(w, l)
	if err := w.Flush(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	t.Parallel()

	Convey("Decode", t, func() {
		b := encodeLeague(sampleLeague(tiny), tiny)

		Convey("reads every field", func() {
			l, err := Decode(bytes.NewReader(b), tiny, quiet)
			So(err, ShouldBeNil)
			So(l.LeagueName.Value, ShouldEqual, "Test League")
			So(l.Calendar, ShouldHaveLength, 2)
			So(l.Calendar[1].Date(), ShouldEqual, "9/8/2024")
			So(l.Divisions[7].NumberTeams, ShouldEqual, 4)
			So(l.NumberTeams, ShouldEqual, len(l.Teams))
			So(l.Teams[0].Number, ShouldEqual, 1)
			So(l.Teams[0].Data1[3], ShouldEqual, 33)
			So(l.Teams[1].Playbook[199].Data[0], ShouldEqual, 199)
			So(l.Tail, ShouldResemble, words(5, 7))
			So(l.TeamNames(), ShouldResemble, []string{"Dallas", "Miami"})

			team, ok := l.Team(0)
			So(ok, ShouldBeTrue)
			So(team.Short.Value, ShouldEqual, "DAL")
			So(team.Mismatches(), ShouldBeEmpty)
		})

		Convey("round trips byte for byte", func() {
			l, err := Decode(bytes.NewReader(b), tiny, quiet)
			So(err, ShouldBeNil)
			So(encodeLeague(l, tiny), ShouldResemble, b)
		})

		Convey("round trips undecodable text", func() {
			l, err := Decode(bytes.NewReader(b), tiny, quiet, codec.WithCodePage(encoding.Replacement))
			So(err, ShouldBeNil)
			So(l.LeagueName.Value, ShouldEqual, codec.BadText)
			So(encodeLeague(l, tiny), ShouldResemble, b)
		})

		Convey("team count must match the team list", func() {
			l := sampleLeague(tiny)
			l.NumberTeams = 3
			_, err := Decode(bytes.NewReader(rawLeague(l)), tiny, quiet)
			So(errors.Is(err, codec.ErrStructuralInvariant), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "teams_len")

			So(Encode(io.Discard, l, tiny), ShouldNotBeNil)
		})

		Convey("wrong magic", func() {
			bad := append([]byte{}, b...)
			copy(bad[4:], "STRUCTPLAYER")
			_, err := Decode(bytes.NewReader(bad), tiny, quiet)
			So(errors.Is(err, codec.ErrMagicMismatch), ShouldBeTrue)
		})

		Convey("truncated file", func() {
			_, err := Decode(bytes.NewReader(b[:len(b)/2]), tiny, quiet)
			So(errors.Is(err, codec.ErrTruncatedInput), ShouldBeTrue)
		})

		Convey("partial tail word", func() {
			bad := append(append([]byte{}, b...), 1, 2)
			_, err := Decode(bytes.NewReader(bad), tiny, quiet)
			So(errors.Is(err, codec.ErrRevisionMismatch), ShouldBeTrue)
		})

		Convey("fixed tail must match exactly", func() {
			fixed := tiny
			fixed.Tail = 3
			fb := encodeLeague(sampleLeague(fixed), fixed)

			_, err := Decode(bytes.NewReader(fb), fixed, quiet)
			So(err, ShouldBeNil)

			_, err = Decode(bytes.NewReader(append(fb, 0, 0, 0, 0)), fixed, quiet)
			So(errors.Is(err, codec.ErrRevisionMismatch), ShouldBeTrue)

			_, err = Decode(bytes.NewReader(fb[:len(fb)-4]), fixed, quiet)
			So(errors.Is(err, codec.ErrRevisionMismatch), ShouldBeTrue)
		})
	})
}

func TestTeamNumber(t *testing.T) {
	t.Parallel()

	Convey("Team numbers are stored plus one", t, func() {
		team := sampleTeam(tiny, 4, "Boston", "Minutemen", "BOS")
		buf := &bytes.Buffer{}
		w := codec.NewWriter(buf)
		writeTeam(w, &team)
		So(w.Flush(), ShouldBeNil)
		So(buf.Bytes()[:4], ShouldResemble, []byte{5, 0, 0, 0})

		r := codec.NewReader(bytes.NewReader(buf.Bytes()), quiet)
		got := readTeam(r, tiny)
		So(r.Err(), ShouldBeNil)
		So(got.Number, ShouldEqual, 4)

		Convey("a stored zero is rejected", func() {
			bad := append([]byte{0, 0, 0, 0}, buf.Bytes()[4:]...)
			r := codec.NewReader(bytes.NewReader(bad), quiet)
			readTeam(r, tiny)
			So(errors.Is(r.Err(), codec.ErrStructuralInvariant), ShouldBeTrue)
		})

		Convey("name copies are compared, not assumed equal", func() {
			team.Name2 = codec.NewText("Patriots")
			So(team.Mismatches(), ShouldResemble, []string{"name"})
		})
	})
}

func TestRevisions(t *testing.T) {
	t.Parallel()

	Convey("Revisions", t, func() {
		rev, err := RevisionByName("fof9")
		So(err, ShouldBeNil)
		So(rev, ShouldResemble, FOF9)
		So(RevisionNames(), ShouldResemble, []string{"fof9", "fof9-early"})

		_, err = RevisionByName("fof8")
		So(err, ShouldNotBeNil)

		Convey("the current revision decodes its own layout", func() {
			l := sampleLeague(FOF9)
			l.NumberTeams = 1
			l.Teams = l.Teams[:1]
			b := encodeLeague(l, FOF9)

			got, err := Decode(bytes.NewReader(b), FOF9, quiet)
			So(err, ShouldBeNil)
			So(got.Padding, ShouldHaveLength, 112474)
			So(got.Teams[0].Padding, ShouldHaveLength, 113462)

			Convey("and the early layout does not", func() {
				_, err := Decode(bytes.NewReader(b), FOF9Early, quiet)
				So(err, ShouldNotBeNil)
			})
		})
	})
}
