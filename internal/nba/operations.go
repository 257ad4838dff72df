package nba

import (
	"context"
	"fmt"
	"strings"
)

const (
	OpPlayerCareerStats   = "get_player_career_stats"
	OpPlayerAwards        = "get_player_awards"
	OpPlayerGameLog       = "get_player_game_log"
	OpTeamDetails         = "get_team_details"
	OpTeamYearByYearStats = "get_team_year_by_year_stats"
	OpTeamGameLog         = "get_team_game_log"
	OpLeagueStandings     = "get_league_team_standings"
	OpTodayScoreboard     = "get_today_scoreboard"
	OpLiveBoxScore        = "get_live_box_score"
	OpLivePlayByPlay      = "get_live_play_by_play"
)

// LeagueIDNBA is the only league standings are requested for.
const LeagueIDNBA = "00"

var (
	GameLogSeasonTypes   = []string{"Regular Season", "Pre Season", "Playoffs", "All Star"}
	StandingsSeasonTypes = []string{"Regular Season", "Pre Season"}
)

var (
	playerIDParam = Param{Name: "player_id", Description: "The id of the player."}
	teamIDParam   = Param{Name: "team_id", Description: "The id of the team."}
	gameIDParam   = Param{Name: "game_id", Description: "The id of the game, e.g. 0022300001."}
	seasonParam   = Param{Name: "season", Description: "The season in the format 'YYYY-YY'."}
)

func seasonTypeParam(allowed []string) Param {
	return Param{
		Name:        "season_type",
		Description: "The type of season. Pattern: " + quoteJoin(allowed),
	}
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}

// operations returns the fixed tool catalog in registration order.
func operations() []Operation {
	return []Operation{
		{
			Name:        OpPlayerCareerStats,
			Description: "Get career stats for a player by their ID.",
			Params:      []Param{playerIDParam},
			fetch: func(ctx context.Context, p Provider, a Args) ([]byte, error) {
				return p.PlayerCareerStats(ctx, a["player_id"])
			},
		},
		{
			Name:        OpPlayerAwards,
			Description: "Get awards for a player by their ID.",
			Params:      []Param{playerIDParam},
			fetch: func(ctx context.Context, p Provider, a Args) ([]byte, error) {
				return p.PlayerAwards(ctx, a["player_id"])
			},
		},
		{
			Name:        OpPlayerGameLog,
			Description: "Get game log for a player by their ID, season, and season type.",
			Params:      []Param{playerIDParam, seasonParam, seasonTypeParam(GameLogSeasonTypes)},
			fetch: func(ctx context.Context, p Provider, a Args) ([]byte, error) {
				return p.PlayerGameLog(ctx, a["player_id"], a["season"], a["season_type"])
			},
		},
		{
			Name: OpTeamDetails,
			Description: "Get details for a team by their ID. Details include championship awards, " +
				"conference awards, division awards, background, history, and more.",
			Params: []Param{teamIDParam},
			fetch: func(ctx context.Context, p Provider, a Args) ([]byte, error) {
				return p.TeamDetails(ctx, a["team_id"])
			},
		},
		{
			Name:        OpTeamYearByYearStats,
			Description: "Get year-by-year stats for a team by their ID.",
			Params:      []Param{teamIDParam},
			fetch: func(ctx context.Context, p Provider, a Args) ([]byte, error) {
				return p.TeamYearByYearStats(ctx, a["team_id"])
			},
		},
		{
			Name:        OpTeamGameLog,
			Description: "Get game log for a team by their ID, season, and season type.",
			Params:      []Param{teamIDParam, seasonParam, seasonTypeParam(GameLogSeasonTypes)},
			fetch: func(ctx context.Context, p Provider, a Args) ([]byte, error) {
				return p.TeamGameLog(ctx, a["team_id"], a["season"], a["season_type"])
			},
		},
		{
			Name:        OpLeagueStandings,
			Description: "Get league team standings for a given season and season type.",
			Params:      []Param{seasonParam, seasonTypeParam(StandingsSeasonTypes)},
			fetch: func(ctx context.Context, p Provider, a Args) ([]byte, error) {
				return p.LeagueStandings(ctx, LeagueIDNBA, a["season"], a["season_type"])
			},
		},
		{
			Name:        OpTodayScoreboard,
			Description: "Get today's live scoreboard: every game scheduled today with status, score, and leaders.",
			fetch: func(ctx context.Context, p Provider, _ Args) ([]byte, error) {
				return p.TodayScoreboard(ctx)
			},
			extract: requirePath("scoreboard.games", false, func(Args) string {
				return "No games found for today."
			}),
		},
		{
			Name:        OpLiveBoxScore,
			Description: "Get the live box score for a game by its ID.",
			Params:      []Param{gameIDParam},
			fetch: func(ctx context.Context, p Provider, a Args) ([]byte, error) {
				return p.BoxScore(ctx, a["game_id"])
			},
			extract: requirePath("game", false, func(a Args) string {
				return fmt.Sprintf("No box score found for game %s.", a["game_id"])
			}),
		},
		{
			Name:        OpLivePlayByPlay,
			Description: "Get the live play-by-play actions for a game by its ID.",
			Params:      []Param{gameIDParam},
			Shape:       ShapeList,
			fetch: func(ctx context.Context, p Provider, a Args) ([]byte, error) {
				return p.PlayByPlay(ctx, a["game_id"])
			},
			extract: requirePath("game.actions", true, func(a Args) string {
				return fmt.Sprintf("No play-by-play actions found for game %s.", a["game_id"])
			}),
		},
	}
}
