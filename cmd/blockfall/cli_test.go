package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/platform/vector"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

func TestParseScript(t *testing.T) {
	steps, err := parseScript("left RIGHT cw tick*3 speed drop")
	require.NoError(t, err)

	var tokens []string
	for _, s := range steps {
		tokens = append(tokens, s.token)
	}
	assert.Equal(t, []string{"left", "right", "cw", "tick", "tick", "tick", "speed", "drop"}, tokens)
	assert.Equal(t, engine.CommandMoveLeft, steps[0].cmd)
	assert.Equal(t, engine.CommandRotateCW, steps[2].cmd)
	assert.Equal(t, engine.CommandHardDrop, steps[7].cmd)
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{"left jump", `token 2: unknown command "jump"`},
		{"tick*0", `token 1: bad repeat`},
		{"tick*x", `token 1: bad repeat`},
	}
	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			_, err := parseScript(tt.script)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseScriptEmpty(t *testing.T) {
	steps, err := parseScript("   ")
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func recordASCII(t *testing.T, seed int64, script string) (string, engine.Snapshot) {
	t.Helper()
	steps, err := parseScript(script)
	require.NoError(t, err)

	var buf bytes.Buffer
	r := vector.NewASCII(registry.Options{Out: &buf})
	cfg := engine.DefaultConfig()
	cfg.Rows = 8
	cfg.Columns = 6
	game, err := engine.NewGame(cfg, seed, r)
	require.NoError(t, err)

	playScript(game, steps)
	require.NoError(t, r.Err())
	return buf.String(), game.Snapshot()
}

func TestPlayScriptIsDeterministic(t *testing.T) {
	script := "left cw tick*2 drop right right drop tick"
	out1, snap1 := recordASCII(t, 42, script)
	out2, snap2 := recordASCII(t, 42, script)

	assert.Equal(t, out1, out2)
	assert.Equal(t, snap1, snap2)
	assert.Contains(t, out1, "-- frame 1 gen 1 --")
}

func TestPlayScriptStopsAtGameOver(t *testing.T) {
	_, snap := recordASCII(t, 3, "drop*500")
	assert.Equal(t, engine.PhaseGameOver, snap.Phase)
	assert.Less(t, snap.Pieces, 500)
}

type fakeRuns struct {
	runs   []storage.Run
	totals storage.Totals
	err    error
}

func (f fakeRuns) BestRuns(int) ([]storage.Run, error)   { return f.runs, f.err }
func (f fakeRuns) RecentRuns(int) ([]storage.Run, error) { return f.runs, f.err }
func (f fakeRuns) Totals() (storage.Totals, error)       { return f.totals, f.err }
func (f fakeRuns) PlayerRuns(player string) ([]storage.Run, error) {
	var out []storage.Run
	for _, r := range f.runs {
		if r.Player == player {
			out = append(out, r)
		}
	}
	return out, f.err
}

func sampleRuns() fakeRuns {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return fakeRuns{
		runs: []storage.Run{
			{Player: "alice", Preset: "hard", Seed: 77, Lines: 12, Pieces: 40, SpeedUps: 2, Duration: 95 * time.Second, CreatedAt: created},
			{Player: "bob", Preset: "normal", Seed: 5, Lines: 3, Pieces: 20, Duration: 30 * time.Second, CreatedAt: created},
		},
		totals: storage.Totals{Runs: 2, Lines: 15, Pieces: 60, BestLines: 12, PlayTime: 125 * time.Second},
	}
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printHistory(&buf, sampleRuns(), 10, ""))

	out := buf.String()
	assert.Contains(t, out, "Best Runs")
	assert.Contains(t, out, "Recent Runs")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "1m35s")
	assert.Contains(t, out, "Runs: 2  Lines: 15  Pieces: 60  Best: 12  Played: 2m5s")
}

func TestPrintHistoryPlayer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printHistory(&buf, sampleRuns(), 10, "bob"))

	out := buf.String()
	assert.Contains(t, out, "Runs - bob")
	assert.Contains(t, out, "bob")
	assert.NotContains(t, out, "alice")
}

func TestPrintHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printHistory(&buf, fakeRuns{}, 10, ""))
	assert.Contains(t, buf.String(), "No runs recorded yet.")
}

func TestPrintHistoryError(t *testing.T) {
	boom := errors.New("boom")
	err := printHistory(&bytes.Buffer{}, fakeRuns{err: boom}, 10, "")
	assert.ErrorIs(t, err, boom)
}

func TestPrintRun(t *testing.T) {
	var buf bytes.Buffer
	run := sampleRuns().runs[0]
	run.ID = "run-1"
	printRun(&buf, run)

	out := buf.String()
	assert.Contains(t, out, "Run run-1")
	assert.Contains(t, out, "  Lines:    12\n")
	assert.Contains(t, out, "  Level:    3\n")
	assert.Contains(t, out, "blockfall play --seed 77 --difficulty hard")
}

func TestPrintBackends(t *testing.T) {
	var buf bytes.Buffer
	printBackends(&buf, []registry.BackendInfo{
		{ID: "ascii", Title: "Plain text frames"},
		{ID: "tcell", Title: "tcell canvas", Interactive: true},
	})

	lines := strings.Split(buf.String(), "\n")
	assert.Contains(t, buf.String(), "Renderers:")
	assert.Contains(t, lines[4], "ascii")
	assert.Contains(t, lines[4], "record")
	assert.Contains(t, lines[5], "interactive")
}

func TestPrintShapes(t *testing.T) {
	var buf bytes.Buffer
	printShapes(&buf, engine.Catalog{engine.MustShape("T", 0, 0, 0, 1, 0, 2, 1, 1)})

	out := buf.String()
	assert.Contains(t, out, "Shapes (1):")
	assert.Contains(t, out, "  T  2x3\n")
	assert.Contains(t, out, "    ###\n    .#.\n")
}
