package metrics

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store keeps experiment records in SQLite so runs can be compared across invocations.
type Store struct {
	conn *sqlx.DB
}

// OpenStore opens or creates the database at path.
func OpenStore(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		started_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS agent_configs (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		depth INTEGER NOT NULL,
		budget INTEGER NOT NULL,
		tie_band INTEGER NOT NULL,
		rules TEXT NOT NULL,
		evaluator TEXT NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS games (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		matchup TEXT NOT NULL,
		agent1 INTEGER NOT NULL,
		agent2 INTEGER NOT NULL,
		starting_faction TEXT NOT NULL,
		winner TEXT NOT NULL,
		start_time INTEGER NOT NULL,
		end_time INTEGER NOT NULL,
		duration INTEGER NOT NULL,
		turns INTEGER NOT NULL,
		total_moves INTEGER NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS moves (
		run_id TEXT NOT NULL,
		game INTEGER NOT NULL,
		turn INTEGER NOT NULL,
		faction TEXT NOT NULL,
		action TEXT NOT NULL,
		score INTEGER NOT NULL,
		duration INTEGER NOT NULL,
		max_depth INTEGER NOT NULL,
		depth INTEGER NOT NULL,
		nodes INTEGER NOT NULL,
		cutoffs INTEGER NOT NULL,
		candidates INTEGER NOT NULL,
		timed_out INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_moves_game ON moves(run_id, game);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveRun records one experiment run with its contestants.
func (s *Store) SaveRun(runID, name string, startedAt time.Time, configs []AgentConfig) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO runs (id, name, started_at) VALUES (?, ?, ?)`,
		runID, name, startedAt.UnixMilli()); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for _, c := range configs {
		if _, err := tx.Exec(`INSERT INTO agent_configs
			(run_id, id, kind, depth, budget, tie_band, rules, evaluator)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, c.ID, c.Kind, c.Depth, int64(c.Budget), c.TieBand, c.Rules, c.Evaluator); err != nil {
			return fmt.Errorf("insert agent config %d: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// SaveGames writes the game and move records of a run.
func (s *Store) SaveGames(runID string, games []GameRecord, moves []MoveRecord) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	gameStmt, err := tx.Preparex(`INSERT INTO games
		(run_id, id, matchup, agent1, agent2, starting_faction, winner,
		 start_time, end_time, duration, turns, total_moves)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer gameStmt.Close()
	for _, g := range games {
		if _, err := gameStmt.Exec(runID, g.ID, g.Matchup, g.Agent1, g.Agent2, g.StartingFaction, g.Winner,
			g.StartTime.UnixMilli(), g.EndTime.UnixMilli(), int64(g.Duration), g.Turns, g.TotalMoves); err != nil {
			return fmt.Errorf("insert game %d: %w", g.ID, err)
		}
	}

	moveStmt, err := tx.Preparex(`INSERT INTO moves
		(run_id, game, turn, faction, action, score, duration, max_depth, depth,
		 nodes, cutoffs, candidates, timed_out)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer moveStmt.Close()
	for _, m := range moves {
		timedOut := 0
		if m.TimedOut {
			timedOut = 1
		}
		if _, err := moveStmt.Exec(runID, m.Game, m.Turn, m.Faction, m.Action, m.Score, int64(m.Duration),
			m.MaxDepth, m.Depth, m.Nodes, m.Cutoffs, m.Candidates, timedOut); err != nil {
			return fmt.Errorf("insert move of game %d: %w", m.Game, err)
		}
	}
	return tx.Commit()
}

// AgentConfigs loads the contestants of a run ordered by id.
func (s *Store) AgentConfigs(runID string) ([]AgentConfig, error) {
	var configs []AgentConfig
	err := s.conn.Select(&configs, `SELECT id, kind, depth, budget, tie_band, rules, evaluator
		FROM agent_configs WHERE run_id = ? ORDER BY id`, runID)
	return configs, err
}

type gameRow struct {
	ID              int    `db:"id"`
	Matchup         string `db:"matchup"`
	Agent1          int    `db:"agent1"`
	Agent2          int    `db:"agent2"`
	StartingFaction string `db:"starting_faction"`
	Winner          string `db:"winner"`
	StartTime       int64  `db:"start_time"`
	EndTime         int64  `db:"end_time"`
	Duration        int64  `db:"duration"`
	Turns           int    `db:"turns"`
	TotalMoves      int    `db:"total_moves"`
}

// GameRecords loads the games of a run ordered by id.
func (s *Store) GameRecords(runID string) ([]GameRecord, error) {
	var rows []gameRow
	err := s.conn.Select(&rows, `SELECT id, matchup, agent1, agent2, starting_faction, winner,
		start_time, end_time, duration, turns, total_moves
		FROM games WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}

	records := make([]GameRecord, len(rows))
	for i, r := range rows {
		records[i] = GameRecord{
			ID:     r.ID,
			Agent1: r.Agent1,
			Agent2: r.Agent2,
			GameMetric: GameMetric{
				RunID:           runID,
				Matchup:         r.Matchup,
				StartingFaction: r.StartingFaction,
				Winner:          r.Winner,
				StartTime:       time.UnixMilli(r.StartTime),
				EndTime:         time.UnixMilli(r.EndTime),
				Duration:        time.Duration(r.Duration),
				Turns:           r.Turns,
				TotalMoves:      r.TotalMoves,
			},
		}
	}
	return records, nil
}

// WinCount is how often a faction won the games of one matchup.
type WinCount struct {
	Matchup string `db:"matchup"`
	Winner  string `db:"winner"`
	Games   int    `db:"games"`
}

// WinCounts tallies the winners of a run per matchup.
func (s *Store) WinCounts(runID string) ([]WinCount, error) {
	var counts []WinCount
	err := s.conn.Select(&counts, `SELECT matchup, winner, COUNT(*) AS games
		FROM games WHERE run_id = ? GROUP BY matchup, winner ORDER BY matchup, winner`, runID)
	return counts, err
}

// MoveCount returns how many move records a run holds.
func (s *Store) MoveCount(runID string) (int, error) {
	var count int
	err := s.conn.Get(&count, `SELECT COUNT(*) FROM moves WHERE run_id = ?`, runID)
	return count, err
}
