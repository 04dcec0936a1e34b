package players_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/albapepper/fofdata/internal/codec"
	"github.com/albapepper/fofdata/internal/players"

	. "github.com/smartystreets/goconvey/convey"
)

var quiet = codec.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

type fixture struct {
	buf bytes.Buffer
	w   *codec.Writer
}

func newFixture(count uint32) *fixture {
	f := &fixture{}
	f.w = codec.NewWriter(&f.buf)
	f.w.Magic(players.Magic)
	f.w.U32(1) // version
	f.w.U32(count)
	return f
}

func (f *fixture) player(id uint32, first, last string, pos players.Position, group players.PositionGroup) *fixture {
	w := f.w
	w.U32(id)
	w.Text(codec.NewText(first))
	w.Text(codec.NewText(""))
	w.Text(codec.NewText(last))
	w.U32(uint32(pos))
	w.U32(uint32(group))
	w.U32(0)
	w.U32(4) // experience
	w.Words(make([]uint32, 150))
	w.U32(2020)
	w.U32(2021)
	codec.WriteList(w, []players.SeasonLine{{Year: 2020, A: 1, B: 2, C: 3}}, func(w *codec.Writer, s players.SeasonLine) {
		w.Words([]uint32{s.Year, s.A, s.B, s.C})
	})
	for i := 0; i < 4; i++ {
		w.U32(0)
	}
	codec.WriteList(w, []players.CareerPoint{{Year: 2020, Value: 7}, {Year: 2021, Value: 8}}, func(w *codec.Writer, c players.CareerPoint) {
		w.Words([]uint32{c.Year, c.Value})
	})
	w.U32(0)
	w.Words(make([]uint32, 3+3*64+101+52))
	return f
}

func (f *fixture) emptyGroups() *fixture {
	for i := 0; i < players.NextGroups+2; i++ {
		f.w.U32(0)
	}
	return f
}

func (f *fixture) bytes() []byte {
	So(f.w.Flush(), ShouldBeNil)
	return f.buf.Bytes()
}

func TestDecodeCounted(t *testing.T) {
	t.Parallel()

	Convey("counted roster", t, func() {
		Convey("two players and empty groups consume the whole stream", func() {
			b := newFixture(2).
				player(11, "Joe", "Smith", players.QB, players.GroupQB).
				player(12, "Al", "Jones", players.LCB, players.GroupCB).
				emptyGroups().bytes()

			src := bytes.NewReader(b)
			roster, err := players.Decode(src, players.Counted, quiet)
			So(err, ShouldBeNil)
			So(roster.Players, ShouldHaveLength, 2)
			So(roster.Staff, ShouldBeEmpty)
			So(roster.More, ShouldBeEmpty)
			So(src.Len(), ShouldEqual, 0)

			p := roster.Players[1]
			So(p.ID, ShouldEqual, 12)
			So(p.Position, ShouldEqual, players.LCB)
			So(p.Group, ShouldEqual, players.GroupCB)
			So(p.Seasons, ShouldResemble, []players.SeasonLine{{Year: 2020, A: 1, B: 2, C: 3}})
			So(p.Passing, ShouldBeEmpty)
			So(p.Past, ShouldHaveLength, 2)
			So(p.Current, ShouldBeEmpty)
			So(p.String(), ShouldEqual, "12, LCB|CB, 4, Al Jones")

			found, ok := roster.Player(11)
			So(ok, ShouldBeTrue)
			So(found.LastName.Value, ShouldEqual, "Smith")
			_, ok = roster.Player(99)
			So(ok, ShouldBeFalse)
		})

		Convey("groups and staff are decoded", func() {
			f := newFixture(1).player(5, "A", "B", players.K, players.GroupK)
			w := f.w
			w.U32(1)
			w.Words([]uint32{5, 3, 100})
			w.U32(0)
			w.U32(0)
			w.U32(0)
			w.U32(1)
			w.Words([]uint32{5, 9})
			w.U32(1)
			w.U32(77)
			w.Text(codec.NewText("Bill"))
			w.Text(codec.NewText("Coach"))
			w.Words([]uint32{1, 3, 20})
			w.Words(make([]uint32, 20))

			roster, err := players.Decode(bytes.NewReader(f.bytes()), players.Counted, quiet)
			So(err, ShouldBeNil)
			So(roster.Next[0], ShouldResemble, []players.NextEntry{{PlayerID: 5, Team: 3, Value: 100}})
			So(roster.Next[3], ShouldBeEmpty)
			So(roster.More, ShouldResemble, []players.MoreEntry{{PlayerID: 5, Value: 9}})
			So(roster.Staff, ShouldHaveLength, 1)
			So(roster.Staff[0].LastName.Value, ShouldEqual, "Coach")
			So(roster.Staff[0].Experience, ShouldEqual, 20)
		})

		Convey("a zero tag inside the count is rejected", func() {
			f := newFixture(2).player(1, "A", "B", players.QB, players.GroupQB)
			f.w.U32(0)
			_, err := players.Decode(bytes.NewReader(f.bytes()), players.Counted, quiet)
			So(errors.Is(err, codec.ErrStructuralInvariant), ShouldBeTrue)
		})

		Convey("bytes after the staff group are a revision mismatch", func() {
			f := newFixture(1).player(1, "A", "B", players.QB, players.GroupQB).emptyGroups()
			f.w.U32(0xdead)
			_, err := players.Decode(bytes.NewReader(f.bytes()), players.Counted, quiet)
			So(errors.Is(err, codec.ErrRevisionMismatch), ShouldBeTrue)
		})

		Convey("an unknown position fails with its tag", func() {
			b := newFixture(1).player(1, "A", "B", players.Position(29), players.GroupQB).emptyGroups().bytes()
			_, err := players.Decode(bytes.NewReader(b), players.Counted, quiet)
			So(errors.Is(err, codec.ErrUnknownVariantTag), ShouldBeTrue)

			var de *codec.DecodeError
			So(errors.As(err, &de), ShouldBeTrue)
			So(de.Tag, ShouldEqual, 29)
			So(de.Field, ShouldEqual, "players[0].position")
		})

		Convey("position groups are a separate enumeration", func() {
			b := newFixture(1).player(1, "A", "B", players.FS, players.PositionGroup(18)).emptyGroups().bytes()
			_, err := players.Decode(bytes.NewReader(b), players.Counted, quiet)
			So(errors.Is(err, codec.ErrUnknownVariantTag), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "position_group")
		})

		Convey("truncation in a group", func() {
			f := newFixture(0)
			f.w.U32(3)
			f.w.Words([]uint32{1, 2, 3})
			_, err := players.Decode(bytes.NewReader(f.bytes()), players.Counted, quiet)
			So(errors.Is(err, codec.ErrTruncatedInput), ShouldBeTrue)
		})
	})
}

func TestDecodeLegacy(t *testing.T) {
	t.Parallel()

	Convey("legacy roster", t, func() {
		Convey("stops at the zero tag and drops it", func() {
			f := newFixture(99).
				player(1, "A", "B", players.QB, players.GroupQB).
				player(2, "C", "D", players.SS, players.GroupS)
			f.w.U32(0)
			roster, err := players.Decode(bytes.NewReader(f.bytes()), players.Legacy, quiet)
			So(err, ShouldBeNil)
			So(roster.StoredCount, ShouldEqual, 99)
			So(roster.Players, ShouldHaveLength, 2)
			So(roster.Players[1].ID, ShouldEqual, 2)
			So(roster.Trailing, ShouldEqual, 0)
		})

		Convey("an immediate terminator is an empty roster", func() {
			f := newFixture(0)
			f.w.U32(0)
			roster, err := players.Decode(bytes.NewReader(f.bytes()), players.Legacy, quiet)
			So(err, ShouldBeNil)
			So(roster.Players, ShouldNotBeNil)
			So(roster.Players, ShouldBeEmpty)
		})

		Convey("bytes after the terminator are counted, not decoded", func() {
			f := newFixture(1).player(1, "A", "B", players.QB, players.GroupQB)
			f.w.U32(0)
			f.w.Words([]uint32{1, 2, 3})
			roster, err := players.Decode(bytes.NewReader(f.bytes()), players.Legacy, quiet)
			So(err, ShouldBeNil)
			So(roster.Players, ShouldHaveLength, 1)
			So(roster.Trailing, ShouldEqual, 12)
		})

		Convey("a missing terminator is an unexpected end", func() {
			b := newFixture(1).player(1, "A", "B", players.QB, players.GroupQB).bytes()
			_, err := players.Decode(bytes.NewReader(b), players.Legacy, quiet)
			So(errors.Is(err, codec.ErrUnexpectedEndOfSequence), ShouldBeTrue)
		})
	})
}

func TestDecodeSequential(t *testing.T) {
	t.Parallel()

	Convey("sequential roster", t, func() {
		Convey("stops after the last id in range", func() {
			f := newFixture(3).
				player(1000, "A", "B", players.QB, players.GroupQB).
				player(1001, "C", "D", players.K, players.GroupK).
				player(1002, "E", "F", players.SS, players.GroupS)
			f.w.U32(1003)
			src := bytes.NewReader(f.bytes())
			roster, err := players.Decode(src, players.Sequential, quiet)
			So(err, ShouldBeNil)
			So(roster.MaxPlayerID, ShouldEqual, 3)
			So(roster.Players, ShouldHaveLength, 3)
			So(roster.Players[2].ID, ShouldEqual, 1002)
			So(roster.Players[2].LastName.Value, ShouldEqual, "F")
			So(roster.StopID, ShouldEqual, 0)
			So(roster.Trailing, ShouldEqual, 4)
			So(src.Len(), ShouldEqual, 0)
		})

		Convey("ids may skip within the range", func() {
			f := newFixture(10).
				player(1000, "A", "B", players.QB, players.GroupQB).
				player(1004, "C", "D", players.K, players.GroupK).
				player(1009, "E", "F", players.SS, players.GroupS)
			roster, err := players.Decode(bytes.NewReader(f.bytes()), players.Sequential, quiet)
			So(err, ShouldBeNil)
			So(roster.Players, ShouldHaveLength, 3)
			So(roster.Trailing, ShouldEqual, 0)
		})

		Convey("an id that does not climb ends the roster", func() {
			f := newFixture(10).
				player(1003, "A", "B", players.QB, players.GroupQB).
				player(1005, "C", "D", players.K, players.GroupK)
			f.w.U32(1005)
			f.w.Words([]uint32{7, 7})
			roster, err := players.Decode(bytes.NewReader(f.bytes()), players.Sequential, quiet)
			So(err, ShouldBeNil)
			So(roster.Players, ShouldHaveLength, 2)
			So(roster.StopID, ShouldEqual, 1005)
			So(roster.Trailing, ShouldEqual, 8)
		})

		Convey("an id outside the range ends the roster", func() {
			f := newFixture(2).player(1000, "A", "B", players.QB, players.GroupQB)
			f.w.U32(1002)
			roster, err := players.Decode(bytes.NewReader(f.bytes()), players.Sequential, quiet)
			So(err, ShouldBeNil)
			So(roster.Players, ShouldHaveLength, 1)
			So(roster.StopID, ShouldEqual, 1002)

			f = newFixture(2)
			f.w.U32(999)
			roster, err = players.Decode(bytes.NewReader(f.bytes()), players.Sequential, quiet)
			So(err, ShouldBeNil)
			So(roster.Players, ShouldNotBeNil)
			So(roster.Players, ShouldBeEmpty)
			So(roster.StopID, ShouldEqual, 999)
		})

		Convey("running out before either stop is an unexpected end", func() {
			b := newFixture(5).player(1000, "A", "B", players.QB, players.GroupQB).bytes()
			_, err := players.Decode(bytes.NewReader(b), players.Sequential, quiet)
			So(errors.Is(err, codec.ErrUnexpectedEndOfSequence), ShouldBeTrue)
		})

		Convey("a truncated body fails with the player's path", func() {
			f := newFixture(5)
			f.w.U32(1000)
			f.w.Text(codec.NewText("A"))
			_, err := players.Decode(bytes.NewReader(f.bytes()), players.Sequential, quiet)
			So(errors.Is(err, codec.ErrTruncatedInput), ShouldBeTrue)

			var de *codec.DecodeError
			So(errors.As(err, &de), ShouldBeTrue)
			So(de.Field, ShouldStartWith, "players[0]")
		})
	})
}

func TestSchema(t *testing.T) {
	t.Parallel()

	Convey("ParseSchema", t, func() {
		s, err := players.ParseSchema(" Counted ")
		So(err, ShouldBeNil)
		So(s, ShouldEqual, players.Counted)

		s, err = players.ParseSchema("sequential")
		So(err, ShouldBeNil)
		So(s, ShouldEqual, players.Sequential)

		_, err = players.ParseSchema("fof8")
		So(err, ShouldNotBeNil)

		_, err = players.Decode(bytes.NewReader(nil), players.Schema("fof8"))
		So(err, ShouldNotBeNil)
	})

	Convey("wrong magic", t, func() {
		var buf bytes.Buffer
		w := codec.NewWriter(&buf)
		w.Magic("STRUCTLEAGUE")
		So(w.Flush(), ShouldBeNil)
		_, err := players.Decode(&buf, players.Counted, quiet)
		So(errors.Is(err, codec.ErrMagicMismatch), ShouldBeTrue)
	})

	Convey("position names", t, func() {
		So(players.WILB.String(), ShouldEqual, "WILB")
		So(players.GroupOLB.String(), ShouldEqual, "OLB")
		So(players.Position(0).Valid(), ShouldBeFalse)
		So(players.LS.Valid(), ShouldBeTrue)
		So(players.GroupLS.Valid(), ShouldBeTrue)
		So(players.Position(0).String(), ShouldEqual, "?")
	})
}
