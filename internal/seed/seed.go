package seed

import (
	"context"
	"log/slog"

	"github.com/albapepper/fofdata/internal/league"
	"github.com/albapepper/fofdata/internal/players"
	"github.com/albapepper/fofdata/internal/week"
)

// SeedLeague writes a decoded league file: the league row, then every team.
// A failed team is recorded and the rest continue.
func SeedLeague(
	ctx context.Context,
	db DB,
	name string,
	revision string,
	l *league.League,
	logger *slog.Logger,
) (int64, SeedResult) {
	var result SeedResult

	logger.Info("Seeding league", "league", name, "revision", revision, "teams", len(l.Teams))
	id, err := UpsertLeague(ctx, db, name, revision, l)
	if err != nil {
		result.AddErrorf("upsert league %s: %v", name, err)
		return 0, result
	}
	result.LeaguesUpserted++

	for i := range l.Teams {
		t := &l.Teams[i]
		if m := t.Mismatches(); len(m) > 0 {
			logger.Warn("Team name copies disagree", "team", t.Number, "fields", m)
		}
		if err := UpsertTeam(ctx, db, id, t); err != nil {
			result.AddErrorf("upsert team %d: %v", t.Number, err)
		} else {
			result.TeamsUpserted++
		}
	}
	logger.Info("Teams done", "count", result.TeamsUpserted)
	return id, result
}

// SeedPlayers writes a decoded roster and its staff.
func SeedPlayers(
	ctx context.Context,
	db DB,
	leagueID int64,
	roster *players.Roster,
	logger *slog.Logger,
) SeedResult {
	var result SeedResult

	logger.Info("Seeding players", "league_id", leagueID, "players", len(roster.Players), "staff", len(roster.Staff))
	for i := range roster.Players {
		p := &roster.Players[i]
		if err := UpsertPlayer(ctx, db, leagueID, p); err != nil {
			result.AddErrorf("upsert player %d: %v", p.ID, err)
		} else {
			result.PlayersUpserted++
		}
		if n := result.PlayersUpserted; n > 0 && n%500 == 0 {
			logger.Info("Player progress", "count", n)
		}
	}
	for i := range roster.Staff {
		s := &roster.Staff[i]
		if err := UpsertStaff(ctx, db, leagueID, s); err != nil {
			result.AddErrorf("upsert staff %d: %v", s.ID, err)
		} else {
			result.StaffUpserted++
		}
	}
	logger.Info("Players done", "players", result.PlayersUpserted, "staff", result.StaffUpserted)
	return result
}

// SeedWeek writes every game of a decoded week with its plays. Games are
// keyed by their position in the file.
func SeedWeek(
	ctx context.Context,
	db DB,
	leagueID int64,
	year, wk int,
	data *week.Week,
	logger *slog.Logger,
) SeedResult {
	var result SeedResult

	logger.Info("Seeding week", "league_id", leagueID, "year", year, "week", wk, "games", len(data.Games))
	for i := range data.Games {
		g := &data.Games[i]
		gameID, err := UpsertGame(ctx, db, leagueID, year, wk, i, g)
		if err != nil {
			result.AddErrorf("upsert game %d: %v", i, err)
			continue
		}
		result.GamesUpserted++

		n, err := ReplacePlays(ctx, db, gameID, g.Plays())
		if err != nil {
			result.AddErrorf("insert plays for game %d: %v", i, err)
			continue
		}
		result.PlaysInserted += n
	}
	logger.Info("Week done", "games", result.GamesUpserted, "plays", result.PlaysInserted)
	return result
}
