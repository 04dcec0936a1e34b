package codec

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	. "github.com/smartystreets/goconvey/convey"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestReader(b []byte, opts ...Option) *Reader {
	return NewReader(bytes.NewReader(b), append([]Option{WithLogger(quiet)}, opts...)...)
}

func encode(fn func(w *Writer)) []byte {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	fn(w)
	if err := w.Flush(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

type color uint32

func (c color) Valid() bool { return c >= 1 && c <= 3 }

func TestPrimitives(t *testing.T) {
	t.Parallel()

	Convey("Primitives", t, func() {
		Convey("words are little-endian", func() {
			r := newTestReader([]byte{1, 0, 0, 0, 0xfe, 0xff, 0xff, 0xff})
			So(r.U32(), ShouldEqual, 1)
			So(r.I32(), ShouldEqual, -2)
			So(r.Err(), ShouldBeNil)
			So(r.Offset(), ShouldEqual, 8)
			So(r.AtEOF(), ShouldBeTrue)
		})

		Convey("short word is truncated input", func() {
			r := newTestReader([]byte{1, 0})
			So(r.U32(), ShouldEqual, 0)
			So(errors.Is(r.Err(), ErrTruncatedInput), ShouldBeTrue)

			Convey("and the error is sticky", func() {
				So(r.U32(), ShouldEqual, 0)
				So(r.Words(3), ShouldBeEmpty)
				So(errors.Is(r.Err(), ErrTruncatedInput), ShouldBeTrue)
			})
		})

		Convey("opaque words", func() {
			b := encode(func(w *Writer) { w.Words([]uint32{7, 8, 9}) })
			r := newTestReader(b)
			So(r.Words(3), ShouldResemble, []uint32{7, 8, 9})
			So(r.Words(0), ShouldBeEmpty)
			So(r.Err(), ShouldBeNil)
		})
	})
}

func TestText(t *testing.T) {
	t.Parallel()

	Convey("Text", t, func() {
		Convey("round trips for every length", func() {
			for _, s := range []string{"", "a", "Green Bay", strings.Repeat("x", 300), "Señor Café"} {
				b := encode(func(w *Writer) { w.Text(NewText(s)) })
				cp, _ := charmap.ISO8859_1.NewEncoder().String(s)
				So(len(b), ShouldEqual, 4+len(cp))
				So(int(b[0])|int(b[1])<<8, ShouldEqual, len(cp))
				So(string(b[4:]), ShouldEqual, cp)

				r := newTestReader(b)
				So(r.Text().Value, ShouldEqual, s)
				So(r.Err(), ShouldBeNil)
				So(r.AtEOF(), ShouldBeTrue)
			}
		})

		Convey("undecodable content is not fatal", func() {
			b := encode(func(w *Writer) {
				w.Text(NewText("abc"))
				w.U32(42)
			})
			r := newTestReader(b, WithCodePage(encoding.Replacement))
			txt := r.Text()
			So(txt.Value, ShouldEqual, BadText)
			So(txt.Bad(), ShouldBeTrue)
			So(r.U32(), ShouldEqual, 42)
			So(r.Err(), ShouldBeNil)
			So(r.Diagnostics(), ShouldHaveLength, 1)
			So(r.Diagnostics()[0].Offset, ShouldEqual, 0)

			Convey("and writes back its original bytes", func() {
				out := encode(func(w *Writer) { w.Text(txt) })
				So(out, ShouldResemble, b[:7])
			})

			Convey("unless the value was edited", func() {
				edited := txt
				edited.Value = "Renamed"
				So(edited.Bad(), ShouldBeFalse)
				out := encode(func(w *Writer) { w.Text(edited) })
				So(out, ShouldResemble, append([]byte{7, 0, 0, 0}, "Renamed"...))
			})
		})

		Convey("truncated content", func() {
			r := newTestReader([]byte{5, 0, 0, 0, 'a', 'b'})
			r.Text()
			So(errors.Is(r.Err(), ErrTruncatedInput), ShouldBeTrue)
		})

		Convey("independent copies compare by content", func() {
			So(NewText("Miami").Equal(NewText("Miami")), ShouldBeTrue)
			So(NewText("Miami").Equal(NewText("Dallas")), ShouldBeFalse)
		})

		Convey("code pages resolve by name", func() {
			cp, err := CodePage("Windows-1252")
			So(err, ShouldBeNil)
			So(cp, ShouldEqual, charmap.Windows1252)
			_, err = CodePage("utf-8")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMagic(t *testing.T) {
	t.Parallel()

	Convey("Magic", t, func() {
		const league Magic = "STRUCTLEAGUE"

		Convey("on-disk form carries its length", func() {
			So(league.Bytes(), ShouldResemble, append([]byte{12, 0, 0, 0}, "STRUCTLEAGUE"...))
		})

		Convey("expect", func() {
			r := newTestReader(league.Bytes())
			r.Expect("magic", league)
			So(r.Err(), ShouldBeNil)

			r = newTestReader(Magic("STRUCTPLAYER").Bytes())
			r.Expect("magic", league)
			So(errors.Is(r.Err(), ErrMagicMismatch), ShouldBeTrue)
			var de *DecodeError
			So(errors.As(r.Err(), &de), ShouldBeTrue)
			So(de.Field, ShouldEqual, "magic")
			So(de.Offset, ShouldEqual, 0)
		})

		Convey("dispatch", func() {
			b := encode(func(w *Writer) {
				w.Magic("GAME_PLAY")
				w.Magic("END_GAME")
				w.Magic("NOPE")
			})
			r := newTestReader(b)
			So(r.Dispatch("section", "BEGIN_GAME", "GAME_PLAY", "END_GAME"), ShouldEqual, Magic("GAME_PLAY"))
			So(r.Dispatch("section", "BEGIN_GAME", "GAME_PLAY", "END_GAME"), ShouldEqual, Magic("END_GAME"))
			So(r.Dispatch("section", "BEGIN_GAME", "GAME_PLAY", "END_GAME"), ShouldEqual, Magic(""))
			So(errors.Is(r.Err(), ErrMagicMismatch), ShouldBeTrue)
		})
	})
}

func TestVariants(t *testing.T) {
	t.Parallel()

	Convey("Variants", t, func() {
		Convey("enum tags", func() {
			r := newTestReader(encode(func(w *Writer) { w.Words([]uint32{2, 9}) }))
			So(ReadEnum[color](r, "color"), ShouldEqual, color(2))
			So(ReadEnum[color](r, "color"), ShouldEqual, color(0))

			var de *DecodeError
			So(errors.As(r.Err(), &de), ShouldBeTrue)
			So(de.Kind, ShouldEqual, ErrUnknownVariantTag)
			So(de.Tag, ShouldEqual, 9)
			So(de.Offset, ShouldEqual, 4)
			So(de.Error(), ShouldContainSubstring, "tag 9")
		})

		Convey("byte patterns", func() {
			table := map[string]string{
				WordPattern(3, 1):       "one",
				WordPattern(3, 0, 0, 1): "three",
			}
			r := newTestReader(encode(func(w *Writer) { w.Words([]uint32{0, 0, 1, 0, 1, 0}) }))
			So(ReadPattern(r, "pattern", 12, table), ShouldEqual, "three")
			So(ReadPattern(r, "pattern", 12, table), ShouldEqual, "")
			So(errors.Is(r.Err(), ErrUnknownVariantTag), ShouldBeTrue)
		})
	})
}

func TestSequences(t *testing.T) {
	t.Parallel()

	word := func(r *Reader) uint32 { return r.U32() }
	isZero := func(v uint32) bool { return v == 0 }

	Convey("Sequences", t, func() {
		Convey("counted lists", func() {
			r := newTestReader(encode(func(w *Writer) {
				WriteList(w, []uint32{5, 6}, func(w *Writer, v uint32) { w.U32(v) })
				w.U32(0)
			}))
			So(ReadList(r, "a", word), ShouldResemble, []uint32{5, 6})
			So(ReadList(r, "b", word), ShouldBeEmpty)
			So(r.Err(), ShouldBeNil)
		})

		Convey("nested lists", func() {
			r := newTestReader(encode(func(w *Writer) { w.Words([]uint32{2, 1, 7, 2, 8, 9}) }))
			got := ReadList(r, "outer", func(r *Reader) []uint32 { return ReadList(r, "inner", word) })
			So(got, ShouldResemble, [][]uint32{{7}, {8, 9}})
		})

		Convey("short list fails with element path", func() {
			r := newTestReader(encode(func(w *Writer) { w.Words([]uint32{3, 1}) }))
			So(ReadList(r, "items", word), ShouldBeNil)
			var de *DecodeError
			So(errors.As(r.Err(), &de), ShouldBeTrue)
			So(de.Kind, ShouldEqual, ErrTruncatedInput)
			So(de.Field, ShouldEqual, "items[1]")
		})

		Convey("until inclusive", func() {
			r := newTestReader(encode(func(w *Writer) { w.Words([]uint32{4, 3, 0, 9}) }))
			So(ReadUntil(r, "s", Inclusive, word, isZero), ShouldResemble, []uint32{4, 3, 0})
			So(r.U32(), ShouldEqual, 9)
		})

		Convey("until exclusive", func() {
			r := newTestReader(encode(func(w *Writer) { w.Words([]uint32{4, 0, 9}) }))
			So(ReadUntil(r, "s", Exclusive, word, isZero), ShouldResemble, []uint32{4})
			So(r.U32(), ShouldEqual, 9)
		})

		Convey("until without terminal", func() {
			r := newTestReader(encode(func(w *Writer) { w.Words([]uint32{4, 3}) }))
			So(ReadUntil(r, "s", Inclusive, word, isZero), ShouldBeNil)
			So(errors.Is(r.Err(), ErrUnexpectedEndOfSequence), ShouldBeTrue)
		})

		Convey("to end of stream", func() {
			r := newTestReader(encode(func(w *Writer) { w.Words([]uint32{1, 2, 3}) }))
			So(ReadToEOF(r, "all", word), ShouldResemble, []uint32{1, 2, 3})
			So(r.Err(), ShouldBeNil)

			Convey("fails on a partial element", func() {
				r := newTestReader([]byte{1, 0, 0, 0, 2})
				So(ReadToEOF(r, "all", word), ShouldBeNil)
				So(errors.Is(r.Err(), ErrTruncatedInput), ShouldBeTrue)
			})
		})
	})
}
