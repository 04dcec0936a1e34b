package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/albapepper/fofdata/internal/codec"
	"github.com/albapepper/fofdata/internal/savegame"
	"github.com/albapepper/fofdata/internal/week"

	. "github.com/smartystreets/goconvey/convey"
)

func writeFile(path string, b []byte) {
	So(os.MkdirAll(filepath.Dir(path), 0o755), ShouldBeNil)
	So(os.WriteFile(path, b, 0o644), ShouldBeNil)
}

// oneGameWeek is a week with a single game: start, a punt, end.
func oneGameWeek() []byte {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	w.Magic(week.StartMagic)
	w.Words([]uint32{1, 2031, 3, 0, 0, 0})
	w.Text(codec.NewText("Lambeau Field"))
	w.Text(codec.NewText("Sunday"))
	w.Words(make([]uint32, 20))
	for _, n := range []uint32{4, 9} {
		w.U32(n)
		w.Text(codec.NewText("City"))
		w.Text(codec.NewText("Name"))
		w.Text(codec.NewText("C"))
		w.Words(make([]uint32, week.TeamDataWords))
	}
	w.Words([]uint32{0, 0})

	w.Magic(week.PlayMagic)
	w.Words([]uint32{1, 12, 30, 0, 4, 8, 30, 3, 3})
	w.U32(uint32(week.Punt))
	w.Words(make([]uint32, week.PayloadWords))

	w.Magic(week.EndMagic)
	w.Words(make([]uint32, 3+30+16+8))
	So(w.Flush(), ShouldBeNil)
	return buf.Bytes()
}

func run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	Convey("Given a saved-games directory", t, func() {
		root := t.TempDir()
		dir := filepath.Join(root, "Alpha")
		writeFile(filepath.Join(dir, savegame.LeagueFile), []byte("placeholder"))
		writeFile(filepath.Join(dir, savegame.WeekFileName(2031, 3)), oneGameWeek())
		writeFile(filepath.Join(dir, savegame.WeekFileName(2030, 1)), nil)

		Convey("leagues lists it with its week count", func() {
			out, err := run("leagues", "--dir", root)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Alpha\t2 weeks")
		})

		Convey("weeks lists years newest first", func() {
			out, err := run("weeks", "Alpha", "--dir", root)
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "2031\t[3]\n2030\t[1]\n")
		})

		Convey("inspect week prints games and plays", func() {
			out, err := run("inspect", "week", "Alpha", "--dir", root, "--year", "2031", "--week", "3", "--plays")
			So(err, ShouldBeNil)
			So(out, ShouldStartWith, "game 0: ")
			So(out, ShouldContainSubstring, "Punt")
		})

		Convey("inspect week needs a year", func() {
			_, err := run("inspect", "week", "Alpha", "--dir", root)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "--year")
		})

		Convey("an unknown league fails", func() {
			_, err := run("weeks", "Nope", "--dir", root)
			So(err, ShouldNotBeNil)
		})

		Convey("an unknown revision flag fails", func() {
			_, err := run("weeks", "Alpha", "--dir", root, "--revision", "fof7")
			So(err, ShouldNotBeNil)
		})

		Convey("seed commands need a database", func() {
			t.Setenv("DATABASE_URL", "")
			_, err := run("seed", "league", "Alpha", "--dir", root)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "DATABASE_URL")
		})
	})
}
