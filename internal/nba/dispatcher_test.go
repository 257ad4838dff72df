package nba

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// fakeProvider answers every call with doc/err and records the arguments it saw.
type fakeProvider struct {
	mu    sync.Mutex
	doc   string
	err   error
	calls []string
	panic bool
}

func (f *fakeProvider) answer(call string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call+"("+strings.Join(args, ",")+")")
	f.mu.Unlock()
	if f.panic {
		panic("provider blew up")
	}
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.doc), nil
}

func (f *fakeProvider) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeProvider) PlayerCareerStats(_ context.Context, playerID string) ([]byte, error) {
	return f.answer("PlayerCareerStats", playerID)
}
func (f *fakeProvider) PlayerAwards(_ context.Context, playerID string) ([]byte, error) {
	return f.answer("PlayerAwards", playerID)
}
func (f *fakeProvider) PlayerGameLog(_ context.Context, playerID, season, seasonType string) ([]byte, error) {
	return f.answer("PlayerGameLog", playerID, season, seasonType)
}
func (f *fakeProvider) TeamDetails(_ context.Context, teamID string) ([]byte, error) {
	return f.answer("TeamDetails", teamID)
}
func (f *fakeProvider) TeamYearByYearStats(_ context.Context, teamID string) ([]byte, error) {
	return f.answer("TeamYearByYearStats", teamID)
}
func (f *fakeProvider) TeamGameLog(_ context.Context, teamID, season, seasonType string) ([]byte, error) {
	return f.answer("TeamGameLog", teamID, season, seasonType)
}
func (f *fakeProvider) LeagueStandings(_ context.Context, leagueID, season, seasonType string) ([]byte, error) {
	return f.answer("LeagueStandings", leagueID, season, seasonType)
}
func (f *fakeProvider) TodayScoreboard(_ context.Context) ([]byte, error) {
	return f.answer("TodayScoreboard")
}
func (f *fakeProvider) BoxScore(_ context.Context, gameID string) ([]byte, error) {
	return f.answer("BoxScore", gameID)
}
func (f *fakeProvider) PlayByPlay(_ context.Context, gameID string) ([]byte, error) {
	return f.answer("PlayByPlay", gameID)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// validArgs returns a complete argument set for op.
func validArgs(op Operation) Args {
	args := Args{}
	for _, p := range op.Params {
		switch p.Name {
		case "player_id":
			args[p.Name] = "2544"
		case "team_id":
			args[p.Name] = "1610612747"
		case "game_id":
			args[p.Name] = "0022300001"
		case "season":
			args[p.Name] = "2023-24"
		case "season_type":
			args[p.Name] = "Regular Season"
		}
	}
	return args
}

const liveDoc = `{"meta":{"version":1},"scoreboard":{"games":[{"gameId":"0022300001"}]},"game":{"gameId":"0022300001","actions":[{"actionNumber":1},{"actionNumber":2}]}}`

func TestRegistry(t *testing.T) {
	d := NewDispatcher(&fakeProvider{}, quietLogger())
	want := []string{
		OpPlayerCareerStats, OpPlayerAwards, OpPlayerGameLog,
		OpTeamDetails, OpTeamYearByYearStats, OpTeamGameLog,
		OpLeagueStandings, OpTodayScoreboard, OpLiveBoxScore, OpLivePlayByPlay,
	}
	ops := d.Operations()
	if len(ops) != len(want) {
		t.Fatalf("got %d operations, want %d", len(ops), len(want))
	}
	for i, name := range want {
		if ops[i].Name != name {
			t.Errorf("operation %d = %s, want %s", i, ops[i].Name, name)
		}
		if ops[i].Description == "" {
			t.Errorf("%s has no description", name)
		}
	}
	if op, _ := d.Operation(OpLivePlayByPlay); op.Shape != ShapeList {
		t.Errorf("play-by-play shape = %s, want list", op.Shape)
	}
	if op, _ := d.Operation(OpTodayScoreboard); len(op.Params) != 0 {
		t.Errorf("scoreboard takes no params, got %v", op.Params)
	}
}

func TestCallPassThrough(t *testing.T) {
	fp := &fakeProvider{doc: liveDoc}
	d := NewDispatcher(fp, quietLogger())

	for _, op := range d.Operations() {
		if op.Name == OpLivePlayByPlay {
			continue
		}
		t.Run(op.Name, func(t *testing.T) {
			res := d.Call(context.Background(), op.Name, validArgs(op))
			if res.Failed() {
				t.Fatalf("unexpected failure: %v", res.Err)
			}
			if string(res.Payload) != liveDoc {
				t.Errorf("payload changed:\n got %s\nwant %s", res.Payload, liveDoc)
			}
		})
	}
}

func TestCallPassesInputsVerbatim(t *testing.T) {
	fp := &fakeProvider{doc: `{}`}
	d := NewDispatcher(fp, quietLogger())

	d.Call(context.Background(), OpPlayerGameLog, Args{"player_id": " 2544 ", "season": "2023-24", "season_type": "playoffs"})
	if got, want := fp.lastCall(), "PlayerGameLog( 2544 ,2023-24,playoffs)"; got != want {
		t.Errorf("provider saw %s, want %s", got, want)
	}
}

func TestLeagueStandingsFixesLeagueID(t *testing.T) {
	fp := &fakeProvider{doc: `{"resultSets":[]}`}
	d := NewDispatcher(fp, quietLogger())

	args := Args{"season": "2023-24", "season_type": "Pre Season", "league_id": "10"}
	res := d.Call(context.Background(), OpLeagueStandings, args)
	if res.Failed() {
		t.Fatal(res.Err)
	}
	if got, want := fp.lastCall(), "LeagueStandings(00,2023-24,Pre Season)"; got != want {
		t.Errorf("provider saw %s, want %s", got, want)
	}
}

func TestCallProviderFailure(t *testing.T) {
	fp := &fakeProvider{err: errors.New("GET /playercareerstats failed: 400 body=PlayerID is invalid")}
	d := NewDispatcher(fp, quietLogger())

	for _, op := range d.Operations() {
		t.Run(op.Name, func(t *testing.T) {
			res := d.Call(context.Background(), op.Name, validArgs(op))
			if !res.Failed() {
				t.Fatal("expected failure")
			}
			want := `{"error":"GET /playercareerstats failed: 400 body=PlayerID is invalid"}`
			if op.Shape == ShapeList {
				want = "[" + want + "]"
			}
			if string(res.Payload) != want {
				t.Errorf("payload = %s, want %s", res.Payload, want)
			}
		})
	}
}

func TestCallRecoversPanics(t *testing.T) {
	d := NewDispatcher(&fakeProvider{panic: true}, quietLogger())

	res := d.Call(context.Background(), OpTeamDetails, Args{"team_id": "1610612747"})
	if !res.Failed() {
		t.Fatal("expected failure")
	}
	if !strings.Contains(string(res.Payload), "provider blew up") {
		t.Errorf("payload = %s", res.Payload)
	}
}

func TestCallCanceledContext(t *testing.T) {
	fp := &fakeProvider{doc: liveDoc}
	d := NewDispatcher(fp, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := d.Call(ctx, OpLivePlayByPlay, Args{"game_id": "0022300001"})
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", res.Err)
	}
	if string(res.Payload) != `[{"error":"context canceled"}]` {
		t.Errorf("payload = %s", res.Payload)
	}
}

func TestEmptyLiveResults(t *testing.T) {
	tests := []struct {
		name string
		op   string
		doc  string
		want string
	}{
		{"ScoreboardNoGames", OpTodayScoreboard, `{"scoreboard":{"gameDate":"2024-07-01","games":[]}}`, `{"error":"No games found for today."}`},
		{"ScoreboardMissing", OpTodayScoreboard, `{"meta":{}}`, `{"error":"No games found for today."}`},
		{"ScoreboardNullGames", OpTodayScoreboard, `{"scoreboard":{"games":null}}`, `{"error":"No games found for today."}`},
		{"BoxScoreEmptyGame", OpLiveBoxScore, `{"game":{}}`, `{"error":"No box score found for game 0022300001."}`},
		{"BoxScoreMissingGame", OpLiveBoxScore, `{"meta":{}}`, `{"error":"No box score found for game 0022300001."}`},
		{"PlayByPlayNoActions", OpLivePlayByPlay, `{"game":{"gameId":"0022300001","actions":[]}}`, `[{"error":"No play-by-play actions found for game 0022300001."}]`},
		{"PlayByPlayNoGame", OpLivePlayByPlay, `{}`, `[{"error":"No play-by-play actions found for game 0022300001."}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(&fakeProvider{doc: tt.doc}, quietLogger())
			res := d.Call(context.Background(), tt.op, Args{"game_id": "0022300001"})
			if !res.Failed() {
				t.Fatal("empty result must be reported as a failure")
			}
			var noData *NoDataError
			if !errors.As(res.Err, &noData) {
				t.Errorf("err = %T, want *NoDataError", res.Err)
			}
			if string(res.Payload) != tt.want {
				t.Errorf("payload = %s, want %s", res.Payload, tt.want)
			}
		})
	}
}

func TestPlayByPlayReturnsActions(t *testing.T) {
	d := NewDispatcher(&fakeProvider{doc: liveDoc}, quietLogger())

	res := d.Call(context.Background(), OpLivePlayByPlay, Args{"game_id": "0022300001"})
	if res.Failed() {
		t.Fatal(res.Err)
	}
	var actions []map[string]any
	if err := json.Unmarshal(res.Payload, &actions); err != nil {
		t.Fatalf("payload is not a list: %v (%s)", err, res.Payload)
	}
	if len(actions) != 2 || actions[1]["actionNumber"] != float64(2) {
		t.Errorf("actions = %v", actions)
	}
}

func TestCallDispatcherErrors(t *testing.T) {
	d := NewDispatcher(&fakeProvider{doc: `{}`}, quietLogger())

	t.Run("UnknownOperation", func(t *testing.T) {
		res := d.Call(context.Background(), "get_player_shoe_size", Args{})
		if !errors.Is(res.Err, ErrUnknownOperation) {
			t.Fatalf("err = %v", res.Err)
		}
		if string(res.Payload) != `{"error":"unknown operation: get_player_shoe_size"}` {
			t.Errorf("payload = %s", res.Payload)
		}
	})

	t.Run("MissingParam", func(t *testing.T) {
		res := d.Call(context.Background(), OpTeamGameLog, Args{"team_id": "1610612747", "season": "2023-24"})
		if !errors.Is(res.Err, ErrMissingParam) {
			t.Fatalf("err = %v", res.Err)
		}
		if !strings.Contains(res.Err.Error(), "season_type") {
			t.Errorf("err = %v", res.Err)
		}
	})

	t.Run("MissingParamListShape", func(t *testing.T) {
		res := d.Call(context.Background(), OpLivePlayByPlay, Args{})
		if string(res.Payload) != `[{"error":"missing required parameter: game_id"}]` {
			t.Errorf("payload = %s", res.Payload)
		}
	})

	t.Run("Reject", func(t *testing.T) {
		res := d.Reject(OpLivePlayByPlay, errors.New("arguments must be a JSON object"))
		if string(res.Payload) != `[{"error":"arguments must be a JSON object"}]` {
			t.Errorf("payload = %s", res.Payload)
		}
	})
}

func TestCallIdempotent(t *testing.T) {
	d := NewDispatcher(&fakeProvider{doc: liveDoc}, quietLogger())
	args := Args{"game_id": "0022300001"}

	first := d.Call(context.Background(), OpLiveBoxScore, args)
	second := d.Call(context.Background(), OpLiveBoxScore, args)
	if string(first.Payload) != string(second.Payload) {
		t.Errorf("payloads differ:\n%s\n%s", first.Payload, second.Payload)
	}
}

func TestCallConcurrent(t *testing.T) {
	fp := &fakeProvider{doc: liveDoc}
	d := NewDispatcher(fp, quietLogger())

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res := d.Call(context.Background(), OpPlayerAwards, Args{"player_id": fmt.Sprint(i)})
			if res.Failed() {
				t.Errorf("call %d failed: %v", i, res.Err)
			}
		}(i)
	}
	wg.Wait()
	if len(fp.calls) != 32 {
		t.Errorf("provider saw %d calls, want 32", len(fp.calls))
	}
}

func TestErrorPayload(t *testing.T) {
	err := errors.New(`bad "quote"`)
	if got := string(ErrorPayload(ShapeObject, err)); got != `{"error":"bad \"quote\""}` {
		t.Errorf("object payload = %s", got)
	}
	if got := string(ErrorPayload(ShapeList, err)); got != `[{"error":"bad \"quote\""}]` {
		t.Errorf("list payload = %s", got)
	}
}
