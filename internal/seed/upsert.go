package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/fofdata/internal/config"
	"github.com/albapepper/fofdata/internal/league"
	"github.com/albapepper/fofdata/internal/players"
	"github.com/albapepper/fofdata/internal/week"
)

// DB is the part of *pgxpool.Pool the seeders use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// ErrLeagueNotSeeded is returned when a league has to be seeded first.
var ErrLeagueNotSeeded = errors.New("league not seeded")

// LeagueID looks up a seeded league by directory name.
func LeagueID(ctx context.Context, db DB, name string) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, "league_id_by_name", name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrLeagueNotSeeded, name)
	}
	if err != nil {
		return 0, fmt.Errorf("look up league %s: %w", name, err)
	}
	return id, nil
}

// UpsertLeague writes the league row and returns its id.
func UpsertLeague(ctx context.Context, db DB, name, revision string, l *league.League) (int64, error) {
	calendar, err := json.Marshal(nonNil(l.Calendar))
	if err != nil {
		return 0, fmt.Errorf("marshal calendar: %w", err)
	}
	divisions, err := json.Marshal(l.Divisions)
	if err != nil {
		return 0, fmt.Errorf("marshal divisions: %w", err)
	}
	var id int64
	err = db.QueryRow(ctx, `
		INSERT INTO `+config.LeaguesTable+` (
			name, league_name, championship, year, data_version,
			number_teams, revision, calendar, divisions
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (name) DO UPDATE SET
			league_name = EXCLUDED.league_name,
			championship = EXCLUDED.championship,
			year = EXCLUDED.year,
			data_version = EXCLUDED.data_version,
			number_teams = EXCLUDED.number_teams,
			revision = EXCLUDED.revision,
			calendar = EXCLUDED.calendar,
			divisions = EXCLUDED.divisions,
			updated_at = NOW()
		RETURNING id`,
		name, l.LeagueName.Value, nilEmpty(l.ChampionshipName.Value), l.Year, l.DataVersion,
		l.NumberTeams, revision, calendar, divisions,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpsertTeam writes one team. Disagreeing name copies are recorded, not
// rejected.
func UpsertTeam(ctx context.Context, db DB, leagueID int64, t *league.Team) error {
	_, err := db.Exec(ctx, `
		INSERT INTO `+config.TeamsTable+` (
			league_id, number, city, name, short_name, name_mismatches
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (league_id, number) DO UPDATE SET
			city = EXCLUDED.city,
			name = EXCLUDED.name,
			short_name = EXCLUDED.short_name,
			name_mismatches = EXCLUDED.name_mismatches,
			updated_at = NOW()`,
		leagueID, t.Number, t.City.Value, t.Name.Value, t.Short.Value, nonNil(t.Mismatches()),
	)
	return err
}

// career groups the per-player stat lists stored as one JSON document.
type career struct {
	Passing   []players.SplitLine   `json:"passing"`
	Rushing   []players.SplitLine   `json:"rushing"`
	Receiving []players.SplitLine   `json:"receiving"`
	Defense   []players.SplitLine   `json:"defense"`
	Past      []players.CareerPoint `json:"past"`
	Current   []players.CareerPoint `json:"current"`
}

// UpsertPlayer writes one roster entry.
func UpsertPlayer(ctx context.Context, db DB, leagueID int64, p *players.Player) error {
	seasons, err := json.Marshal(nonNil(p.Seasons))
	if err != nil {
		return fmt.Errorf("marshal seasons: %w", err)
	}
	hist, err := json.Marshal(career{
		Passing:   nonNil(p.Passing),
		Rushing:   nonNil(p.Rushing),
		Receiving: nonNil(p.Receiving),
		Defense:   nonNil(p.Defense),
		Past:      nonNil(p.Past),
		Current:   nonNil(p.Current),
	})
	if err != nil {
		return fmt.Errorf("marshal career: %w", err)
	}
	_, err = db.Exec(ctx, `
		INSERT INTO `+config.PlayersTable+` (
			league_id, id, first_name, middle_name, last_name,
			position, position_group, experience, seasons, career
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (league_id, id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			middle_name = EXCLUDED.middle_name,
			last_name = EXCLUDED.last_name,
			position = EXCLUDED.position,
			position_group = EXCLUDED.position_group,
			experience = EXCLUDED.experience,
			seasons = EXCLUDED.seasons,
			career = EXCLUDED.career,
			updated_at = NOW()`,
		leagueID, p.ID, p.FirstName.Value, nilEmpty(p.MiddleName.Value), p.LastName.Value,
		p.Position.String(), p.Group.String(), p.Experience, seasons, hist,
	)
	return err
}

// UpsertStaff writes one staff member.
func UpsertStaff(ctx context.Context, db DB, leagueID int64, s *players.Staff) error {
	_, err := db.Exec(ctx, `
		INSERT INTO `+config.StaffTable+` (
			league_id, id, first_name, last_name, role, team, experience, ratings
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (league_id, id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			role = EXCLUDED.role,
			team = EXCLUDED.team,
			experience = EXCLUDED.experience,
			ratings = EXCLUDED.ratings,
			updated_at = NOW()`,
		leagueID, s.ID, s.FirstName.Value, s.LastName.Value, s.Role, s.Team, s.Experience, int64s(s.Ratings[:]),
	)
	return err
}

// UpsertGame writes the game header and summary and returns the game id.
func UpsertGame(ctx context.Context, db DB, leagueID int64, year, wk, index int, g *week.Game) (int64, error) {
	start, end := g.Start(), g.End()
	if start == nil || end == nil {
		return 0, g.Validate()
	}
	summary, err := json.Marshal(end)
	if err != nil {
		return 0, fmt.Errorf("marshal summary: %w", err)
	}
	var id int64
	err = db.QueryRow(ctx, `
		INSERT INTO `+config.GamesTable+` (
			league_id, year, week, game_index, home_team, away_team,
			location, played_when, player_of_game, summary
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (league_id, year, week, game_index) DO UPDATE SET
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			location = EXCLUDED.location,
			played_when = EXCLUDED.played_when,
			player_of_game = EXCLUDED.player_of_game,
			summary = EXCLUDED.summary,
			updated_at = NOW()
		RETURNING id`,
		leagueID, year, wk, index, start.Home.Number, start.Away.Number,
		nilEmpty(start.Location.Value), nilEmpty(start.When.Value), end.PlayerOfGame, summary,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

const insertPlay = `
	INSERT INTO ` + config.PlaysTable + ` (
		game_id, seq, quarter, minutes, seconds, off_team, down,
		yards_to_go, yardline, kind, description, outcome
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

// ReplacePlays deletes a game's plays and inserts plays in one batch.
func ReplacePlays(ctx context.Context, db DB, gameID int64, plays []*week.Play) (int, error) {
	b := &pgx.Batch{}
	b.Queue("delete_game_plays", gameID)
	for i, p := range plays {
		args, err := playArgs(gameID, i, p)
		if err != nil {
			return 0, err
		}
		b.Queue(insertPlay, args...)
	}

	br := db.SendBatch(ctx, b)
	defer br.Close()
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return 0, fmt.Errorf("batch statement %d: %w", i, err)
		}
	}
	return len(plays), br.Close()
}

func playArgs(gameID int64, seq int, p *week.Play) ([]any, error) {
	outcome, err := json.Marshal(p.Outcome)
	if err != nil {
		return nil, fmt.Errorf("marshal play %d: %w", seq, err)
	}
	kind := ""
	if p.Outcome != nil {
		kind = p.Outcome.Kind().String()
	}
	return []any{
		gameID, seq, p.Quarter, p.Minutes, p.Seconds, uint32(p.OffTeam), p.Down,
		p.YardsToGo, p.Yardline, kind, p.String(), outcome,
	}, nil
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// nilEmpty returns nil for empty strings (maps to SQL NULL).
func nilEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func int64s(ws []uint32) []int64 {
	out := make([]int64, len(ws))
	for i, w := range ws {
		out[i] = int64(w)
	}
	return out
}

// nonNil ensures a nil slice becomes an empty one for JSON and array columns.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
