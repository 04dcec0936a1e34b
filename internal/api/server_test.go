package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/albapepper/fofdata/internal/cache"
	"github.com/albapepper/fofdata/internal/codec"
	"github.com/albapepper/fofdata/internal/config"
	"github.com/albapepper/fofdata/internal/league"
	"github.com/albapepper/fofdata/internal/players"
	"github.com/albapepper/fofdata/internal/savegame"
	"github.com/albapepper/fofdata/internal/week"

	. "github.com/smartystreets/goconvey/convey"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// bare has no opaque regions, so fixtures stay a few bytes long.
var bare = league.Revision{Name: "bare", Tail: -1}

func writeFile(path string, b []byte) {
	So(os.MkdirAll(filepath.Dir(path), 0o755), ShouldBeNil)
	So(os.WriteFile(path, b, 0o644), ShouldBeNil)
}

func leagueFile() []byte {
	var buf bytes.Buffer
	l := &league.League{Year: 2031, LeagueName: codec.NewText("Alpha League"), NumberTeams: 2}
	for i, city := range []string{"Chicago", "Green Bay"} {
		l.Teams = append(l.Teams, league.Team{
			Number: uint32(i),
			City:   codec.NewText(city), City2: codec.NewText(city),
			Name: codec.NewText("Club"), Name2: codec.NewText("Club"),
			Short: codec.NewText("C"), Short2: codec.NewText("C"),
		})
	}
	So(league.Encode(&buf, l, bare), ShouldBeNil)
	return buf.Bytes()
}

func rosterFile() []byte {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	w.Magic(players.Magic)
	w.Words(make([]uint32, 2+players.NextGroups+2))
	So(w.Flush(), ShouldBeNil)
	return buf.Bytes()
}

func weekFile() []byte {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	w.Magic(week.StartMagic)
	w.Words([]uint32{1, 2031, 1, 0, 0, 0})
	w.Text(codec.NewText("Soldier Field"))
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

	w.Magic(week.EndMagic)
	end := make([]uint32, 3+30+16+8) // player of the game, no drives, zeroed stats
	end[0] = 1234
	w.Words(end)
	So(w.Flush(), ShouldBeNil)
	return buf.Bytes()
}

func truncatedWeek() []byte {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	w.Magic(week.StartMagic)
	w.Words([]uint32{1, 2031})
	So(w.Flush(), ShouldBeNil)
	return buf.Bytes()
}

func newTestRouter(root string) http.Handler {
	cfg := &config.Config{
		SavedGamesDir:    root,
		Revision:         bare,
		PlayersSchema:    players.Counted,
		CodePageName:     "iso-8859-1",
		CORSAllowOrigins: []string{"*"},
	}
	return NewRouter(nil, cache.New(true, time.Hour), cfg, discard)
}

type response struct {
	code   int
	header http.Header
	body   map[string]interface{}
}

func get(h http.Handler, path string, headers ...string) response {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := response{code: rec.Code, header: rec.Header()}
	if rec.Body.Len() > 0 {
		So(json.Unmarshal(rec.Body.Bytes(), &res.body), ShouldBeNil)
	}
	return res
}

func errorCode(res response) string {
	e, _ := res.body["error"].(map[string]interface{})
	code, _ := e["code"].(string)
	return code
}

func TestRouter(t *testing.T) {
	t.Parallel()

	Convey("Given a saved-games directory with one league", t, func() {
		root := t.TempDir()
		dir := filepath.Join(root, "Alpha")
		writeFile(filepath.Join(dir, savegame.LeagueFile), leagueFile())
		writeFile(filepath.Join(dir, savegame.PlayersFile), rosterFile())
		writeFile(filepath.Join(dir, savegame.WeekFileName(2031, 1)), weekFile())
		writeFile(filepath.Join(dir, savegame.WeekFileName(2031, 2)), truncatedWeek())
		h := newTestRouter(root)

		Convey("meta and health endpoints answer", func() {
			res := get(h, "/")
			So(res.code, ShouldEqual, http.StatusOK)
			So(res.body["format"].(map[string]interface{})["revision"], ShouldEqual, "bare")
			So(res.header.Get("X-Process-Time"), ShouldEndWith, "ms")

			res = get(h, "/health")
			So(res.code, ShouldEqual, http.StatusOK)
			So(res.body["leagues"], ShouldEqual, 1.0)

			res = get(h, "/health/db")
			So(res.code, ShouldEqual, http.StatusServiceUnavailable)
			So(res.body["database"], ShouldEqual, "not configured")
		})

		Convey("leagues are listed with their week counts", func() {
			res := get(h, "/api/v1/leagues")
			So(res.code, ShouldEqual, http.StatusOK)
			So(res.body["count"], ShouldEqual, 1.0)
			first := res.body["leagues"].([]interface{})[0].(map[string]interface{})
			So(first["name"], ShouldEqual, "Alpha")
			So(first["weeks"], ShouldEqual, 2.0)
		})

		Convey("teams are cached and honour If-None-Match", func() {
			res := get(h, "/api/v1/leagues/Alpha/teams")
			So(res.code, ShouldEqual, http.StatusOK)
			So(res.header.Get("X-Cache"), ShouldEqual, "MISS")
			So(res.body["count"], ShouldEqual, 2.0)

			again := get(h, "/api/v1/leagues/Alpha/teams")
			So(again.header.Get("X-Cache"), ShouldEqual, "HIT")
			So(again.header.Get("ETag"), ShouldEqual, res.header.Get("ETag"))

			notModified := get(h, "/api/v1/leagues/Alpha/teams", "If-None-Match", res.header.Get("ETag"))
			So(notModified.code, ShouldEqual, http.StatusNotModified)
		})

		Convey("a single team is found by number", func() {
			res := get(h, "/api/v1/leagues/Alpha/teams/1")
			So(res.code, ShouldEqual, http.StatusOK)
			So(res.body["city"], ShouldEqual, "Green Bay")

			res = get(h, "/api/v1/leagues/Alpha/teams/7")
			So(res.code, ShouldEqual, http.StatusNotFound)
			So(errorCode(res), ShouldEqual, "NOT_FOUND")

			res = get(h, "/api/v1/leagues/Alpha/teams/x")
			So(res.code, ShouldEqual, http.StatusBadRequest)
			So(errorCode(res), ShouldEqual, "INVALID_TEAM")
		})

		Convey("the league file decodes", func() {
			res := get(h, "/api/v1/leagues/Alpha")
			So(res.code, ShouldEqual, http.StatusOK)
			So(res.body["league_name"], ShouldEqual, "Alpha League")
			So(res.body["year"], ShouldEqual, 2031.0)
		})

		Convey("an unknown league is a 404", func() {
			res := get(h, "/api/v1/leagues/Nope/teams")
			So(res.code, ShouldEqual, http.StatusNotFound)
			So(errorCode(res), ShouldEqual, "LEAGUE_NOT_FOUND")
		})

		Convey("the roster endpoints", func() {
			res := get(h, "/api/v1/leagues/Alpha/players")
			So(res.code, ShouldEqual, http.StatusOK)
			So(res.body["count"], ShouldEqual, 0.0)
			So(res.body["schema"], ShouldEqual, "counted")

			res = get(h, "/api/v1/leagues/Alpha/players?position=qb")
			So(res.code, ShouldEqual, http.StatusOK)

			res = get(h, "/api/v1/leagues/Alpha/players?position=XX")
			So(errorCode(res), ShouldEqual, "INVALID_POSITION")

			res = get(h, "/api/v1/leagues/Alpha/players/5")
			So(res.code, ShouldEqual, http.StatusNotFound)

			res = get(h, "/api/v1/leagues/Alpha/staff")
			So(res.code, ShouldEqual, http.StatusOK)
			So(res.body["staff"], ShouldBeEmpty)
		})

		Convey("the week index lists files on disk", func() {
			res := get(h, "/api/v1/leagues/Alpha/weeks")
			So(res.code, ShouldEqual, http.StatusOK)
			years := res.body["years"].([]interface{})
			So(years, ShouldHaveLength, 1)
			So(years[0].(map[string]interface{})["weeks"], ShouldResemble, []interface{}{1.0, 2.0})
		})

		Convey("a week decodes into games", func() {
			res := get(h, "/api/v1/leagues/Alpha/years/2031/weeks/1")
			So(res.code, ShouldEqual, http.StatusOK)
			So(res.body["games"], ShouldHaveLength, 1)

			res = get(h, "/api/v1/leagues/Alpha/years/2031/weeks/1/games")
			So(res.code, ShouldEqual, http.StatusOK)
			game := res.body["games"].([]interface{})[0].(map[string]interface{})
			So(game["home"], ShouldEqual, 4.0)
			So(game["away"], ShouldEqual, 9.0)
			So(game["plays"], ShouldEqual, 0.0)

			res = get(h, "/api/v1/leagues/Alpha/years/2031/weeks/1/games/0")
			So(res.code, ShouldEqual, http.StatusOK)
			So(res.body["sections"], ShouldHaveLength, 2)

			res = get(h, "/api/v1/leagues/Alpha/years/2031/weeks/1/games/3")
			So(res.code, ShouldEqual, http.StatusNotFound)
		})

		Convey("a broken week is a 422 naming the failure", func() {
			res := get(h, "/api/v1/leagues/Alpha/years/2031/weeks/2")
			So(res.code, ShouldEqual, http.StatusUnprocessableEntity)
			So(errorCode(res), ShouldEqual, "TRUNCATED_INPUT")
			So(res.body["error"].(map[string]interface{})["offset"], ShouldNotBeNil)
		})

		Convey("a missing week is a 404", func() {
			res := get(h, "/api/v1/leagues/Alpha/years/2031/weeks/9")
			So(res.code, ShouldEqual, http.StatusNotFound)
			So(errorCode(res), ShouldEqual, "FILE_NOT_FOUND")

			res = get(h, "/api/v1/leagues/Alpha/years/31/weeks/1")
			So(errorCode(res), ShouldEqual, "INVALID_YEAR")
		})
	})
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	Convey("RateLimitMiddleware rejects a burst past the limit", t, func() {
		ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
		h := RateLimitMiddleware(2, time.Minute)(ok)

		first := httptest.NewRecorder()
		h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
		So(first.Code, ShouldEqual, http.StatusNoContent)

		second := httptest.NewRecorder()
		h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
		So(second.Code, ShouldEqual, http.StatusTooManyRequests)
		So(second.Header().Get("Retry-After"), ShouldEqual, "60")
	})
}
