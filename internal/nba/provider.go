package nba

import "context"

// Provider is the statistics backend. Every method returns one raw JSON document.
// *fetch.Client is the production implementation.
type Provider interface {
	PlayerCareerStats(ctx context.Context, playerID string) ([]byte, error)
	PlayerAwards(ctx context.Context, playerID string) ([]byte, error)
	PlayerGameLog(ctx context.Context, playerID, season, seasonType string) ([]byte, error)
	TeamDetails(ctx context.Context, teamID string) ([]byte, error)
	TeamYearByYearStats(ctx context.Context, teamID string) ([]byte, error)
	TeamGameLog(ctx context.Context, teamID, season, seasonType string) ([]byte, error)
	LeagueStandings(ctx context.Context, leagueID, season, seasonType string) ([]byte, error)
	TodayScoreboard(ctx context.Context) ([]byte, error)
	BoxScore(ctx context.Context, gameID string) ([]byte, error)
	PlayByPlay(ctx context.Context, gameID string) ([]byte, error)
}
