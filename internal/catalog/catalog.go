// Package catalog serves the read-only player and team rosters.
//
// Teams are a fixed embedded list. Players come from the provider's
// commonallplayers result set and are reshaped into one record per player.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

//go:embed teams.json
var teamsJSON []byte

type Player struct {
	ID        int    `json:"id"`
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"`
}

type Team struct {
	ID           int    `json:"id"`
	FullName     string `json:"full_name"`
	Abbreviation string `json:"abbreviation"`
	Nickname     string `json:"nickname"`
	City         string `json:"city"`
	State        string `json:"state"`
	YearFounded  int    `json:"year_founded"`
}

// Source is the provider call the player roster is built from.
type Source interface {
	CommonAllPlayers(ctx context.Context, season string) ([]byte, error)
}

type Catalog struct {
	src Source
	now func() time.Time
}

func New(src Source) *Catalog {
	return &Catalog{src: src, now: time.Now}
}

// Players returns every player the league has on record, active or not.
func (c *Catalog) Players(ctx context.Context) ([]Player, error) {
	raw, err := c.src.CommonAllPlayers(ctx, CurrentSeason(c.now()))
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	return parsePlayers(raw)
}

func (c *Catalog) ActivePlayers(ctx context.Context) ([]Player, error) {
	all, err := c.Players(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]Player, 0, 600)
	for _, p := range all {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (c *Catalog) Teams() ([]Team, error) {
	var teams []Team
	if err := json.Unmarshal(teamsJSON, &teams); err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	return teams, nil
}

// CurrentSeason formats the season in progress at t as "YYYY-YY".
// A new season is counted from October.
func CurrentSeason(t time.Time) string {
	start := t.Year()
	if t.Month() < time.October {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

func parsePlayers(raw []byte) ([]Player, error) {
	set := gjson.GetBytes(raw, `resultSets.#(name=="CommonAllPlayers")`)
	if !set.Exists() {
		set = gjson.GetBytes(raw, "resultSets.0")
	}
	if !set.Exists() {
		return nil, fmt.Errorf("commonallplayers: no result set")
	}

	cols := map[string]int{}
	for i, h := range set.Get("headers").Array() {
		cols[h.String()] = i
	}
	for _, name := range []string{"PERSON_ID", "DISPLAY_LAST_COMMA_FIRST", "DISPLAY_FIRST_LAST", "ROSTERSTATUS"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("commonallplayers: missing column %s", name)
		}
	}

	rows := set.Get("rowSet").Array()
	players := make([]Player, 0, len(rows))
	for _, row := range rows {
		cells := row.Array()
		cell := func(name string) gjson.Result {
			if i := cols[name]; i < len(cells) {
				return cells[i]
			}
			return gjson.Result{}
		}
		first, last := splitName(cell("DISPLAY_LAST_COMMA_FIRST").String())
		players = append(players, Player{
			ID:        int(cell("PERSON_ID").Int()),
			FullName:  cell("DISPLAY_FIRST_LAST").String(),
			FirstName: first,
			LastName:  last,
			IsActive:  cell("ROSTERSTATUS").Int() == 1,
		})
	}
	return players, nil
}

// splitName splits "James, LeBron" into ("LeBron", "James").
// Single names ("Nene") have no first name.
func splitName(lastCommaFirst string) (string, string) {
	last, first, ok := strings.Cut(lastCommaFirst, ",")
	if !ok {
		return "", strings.TrimSpace(lastCommaFirst)
	}
	return strings.TrimSpace(first), strings.TrimSpace(last)
}
