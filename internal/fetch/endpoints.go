package fetch

import (
	"context"
	"fmt"
	"net/url"
)

func (c *Client) stats(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.FetchRaw(ctx, c.StatsBaseURL, path, params)
}

func (c *Client) live(ctx context.Context, path string) ([]byte, error) {
	return c.FetchRaw(ctx, c.LiveBaseURL, path, nil)
}

// /playercareerstats
func (c *Client) PlayerCareerStats(ctx context.Context, playerID string) ([]byte, error) {
	return c.stats(ctx, "/playercareerstats", url.Values{
		"PlayerID": {playerID},
		"PerMode":  {"Totals"},
		"LeagueID": {""},
	})
}

// /playerawards
func (c *Client) PlayerAwards(ctx context.Context, playerID string) ([]byte, error) {
	return c.stats(ctx, "/playerawards", url.Values{
		"PlayerID": {playerID},
	})
}

// /playergamelog
func (c *Client) PlayerGameLog(ctx context.Context, playerID, season, seasonType string) ([]byte, error) {
	return c.stats(ctx, "/playergamelog", url.Values{
		"PlayerID":   {playerID},
		"Season":     {season},
		"SeasonType": {seasonType},
		"DateFrom":   {""},
		"DateTo":     {""},
		"LeagueID":   {""},
	})
}

// /teamdetails
func (c *Client) TeamDetails(ctx context.Context, teamID string) ([]byte, error) {
	return c.stats(ctx, "/teamdetails", url.Values{
		"TeamID": {teamID},
	})
}

// /teamyearbyyearstats
func (c *Client) TeamYearByYearStats(ctx context.Context, teamID string) ([]byte, error) {
	return c.stats(ctx, "/teamyearbyyearstats", url.Values{
		"TeamID":     {teamID},
		"LeagueID":   {"00"},
		"PerMode":    {"Totals"},
		"SeasonType": {"Regular Season"},
	})
}

// /teamgamelog
func (c *Client) TeamGameLog(ctx context.Context, teamID, season, seasonType string) ([]byte, error) {
	return c.stats(ctx, "/teamgamelog", url.Values{
		"TeamID":     {teamID},
		"Season":     {season},
		"SeasonType": {seasonType},
		"DateFrom":   {""},
		"DateTo":     {""},
		"LeagueID":   {""},
	})
}

// /leaguestandingsv3
func (c *Client) LeagueStandings(ctx context.Context, leagueID, season, seasonType string) ([]byte, error) {
	return c.stats(ctx, "/leaguestandingsv3", url.Values{
		"LeagueID":   {leagueID},
		"Season":     {season},
		"SeasonType": {seasonType},
		"SeasonYear": {""},
	})
}

// /commonallplayers (historical and current players for the league)
func (c *Client) CommonAllPlayers(ctx context.Context, season string) ([]byte, error) {
	return c.stats(ctx, "/commonallplayers", url.Values{
		"LeagueID":            {"00"},
		"Season":              {season},
		"IsOnlyCurrentSeason": {"0"},
	})
}

// /scoreboard/todaysScoreboard_00.json
func (c *Client) TodayScoreboard(ctx context.Context) ([]byte, error) {
	return c.live(ctx, "/scoreboard/todaysScoreboard_00.json")
}

// /boxscore/boxscore_{game_id}.json
func (c *Client) BoxScore(ctx context.Context, gameID string) ([]byte, error) {
	return c.live(ctx, fmt.Sprintf("/boxscore/boxscore_%s.json", url.PathEscape(gameID)))
}

// /playbyplay/playbyplay_{game_id}.json
func (c *Client) PlayByPlay(ctx context.Context, gameID string) ([]byte, error) {
	return c.live(ctx, fmt.Sprintf("/playbyplay/playbyplay_%s.json", url.PathEscape(gameID)))
}
