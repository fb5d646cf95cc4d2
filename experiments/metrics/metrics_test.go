package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleRecords() ([]AgentConfig, []GameRecord, []MoveRecord) {
	start := time.UnixMilli(1_700_000_000_000)
	configs := []AgentConfig{
		{ID: 0, Kind: "greedy"},
		{ID: 1, Kind: "planner", Depth: 3, Budget: 50 * time.Millisecond, Rules: "standard", Evaluator: "position"},
	}
	games := []GameRecord{
		{ID: 1, Agent1: 0, Agent2: 1, GameMetric: GameMetric{RunID: "run", Matchup: "0v1", StartingFaction: "player",
			Winner: "ai", StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, Turns: 12, TotalMoves: 23}},
		{ID: 2, Agent1: 0, Agent2: 1, GameMetric: GameMetric{RunID: "run", Matchup: "0v1", StartingFaction: "ai",
			Winner: "ai", StartTime: start, EndTime: start.Add(2 * time.Second), Duration: 2 * time.Second, Turns: 20, TotalMoves: 39}},
	}
	moves := []MoveRecord{
		{Game: 1, MoveMetric: MoveMetric{Turn: 1, Faction: "ai", Action: "s1->s2 x10", Score: 40,
			SearchMetric: SearchMetric{Duration: time.Millisecond, MaxDepth: 3, Depth: 3, Nodes: 120, Cutoffs: 8, Candidates: 6}}},
		{Game: 1, MoveMetric: MoveMetric{Turn: 1, Faction: "player"}},
	}
	return configs, games, moves
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err, "open %s", path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "parse %s", path)
	return rows
}

func TestWriter(t *testing.T) {
	configs, games, moves := sampleRecords()
	w, err := NewWriter(t.TempDir(), "depth")
	require.NoError(t, err, "create writer")

	require.NoError(t, w.WriteAgentConfigs(configs), "write configs")
	require.NoError(t, w.WriteGameRecords(games), "write games")
	require.NoError(t, w.WriteMoveRecords(moves), "write moves")

	rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Len(t, rows, 3, "header plus two configs")
	require.Equal(t, []string{"1", "planner", "3", "50ms", "0", "standard", "position"}, rows[2], "planner row")

	rows = readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, rows, 3, "header plus two games")
	require.Equal(t, "ai", rows[1][6], "winner column")
	require.Equal(t, "23", rows[1][11], "total moves column")

	rows = readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, rows, 3, "header plus two moves")
	require.Equal(t, "s1->s2 x10", rows[1][3], "action column")
	require.Equal(t, "", rows[2][3], "pass has no action")

	t.Run("rewriting replaces the records", func(t *testing.T) {
		require.NoError(t, w.WriteAgentConfigs(configs[:1]), "rewrite configs")
		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 2, "header plus the single config")
	})

	t.Run("missing directory is reported", func(t *testing.T) {
		require.NoError(t, os.RemoveAll(w.Dir()), "remove output dir")
		require.Error(t, w.WriteGameRecords(games), "nowhere to write")
	})
}

func TestStore(t *testing.T) {
	configs, games, moves := sampleRecords()
	store, err := OpenStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err, "open store")
	defer store.Close()

	require.NoError(t, store.SaveRun("run", "depth", games[0].StartTime, configs), "save run")
	require.NoError(t, store.SaveGames("run", games, moves), "save games")

	loadedConfigs, err := store.AgentConfigs("run")
	require.NoError(t, err, "load configs")
	require.Equal(t, configs, loadedConfigs, "configs round-trip")

	loaded, err := store.GameRecords("run")
	require.NoError(t, err, "load games")
	require.Len(t, loaded, 2, "both games stored")
	require.Equal(t, games[1].Winner, loaded[1].Winner, "winner stored")
	require.Equal(t, games[1].Duration, loaded[1].Duration, "duration stored")
	require.True(t, games[1].EndTime.Equal(loaded[1].EndTime), "end time stored")

	counts, err := store.WinCounts("run")
	require.NoError(t, err, "count wins")
	require.Equal(t, []WinCount{{Matchup: "0v1", Winner: "ai", Games: 2}}, counts, "AI won both")

	n, err := store.MoveCount("run")
	require.NoError(t, err, "count moves")
	require.Equal(t, 2, n, "both moves stored")

	other, err := store.GameRecords("other")
	require.NoError(t, err, "unknown run is not an error")
	require.Empty(t, other, "runs are separate")

	require.Error(t, store.SaveRun("run", "depth", time.Now(), nil), "run ids are unique")
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(4, 9)
	c.AddNode()
	c.AddNode()
	c.AddCutoff()
	c.CompleteDepth(1)
	c.CompleteDepth(2)
	c.Interrupt()
	m := c.Complete()
	require.Equal(t, 4, m.MaxDepth, "configured depth")
	require.Equal(t, 2, m.Depth, "deepest completed")
	require.Equal(t, 2, m.Nodes, "nodes counted")
	require.Equal(t, 1, m.Cutoffs, "cutoffs counted")
	require.Equal(t, 9, m.Candidates, "candidates noted")
	require.True(t, m.TimedOut, "interruption noted")

	c.Start(1, 1)
	require.Zero(t, c.Complete().Nodes, "start resets the counters")

	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete(), "dummy collects nothing")
}
