package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one contestant of an experiment.
type AgentConfig struct {
	ID        int           `db:"id"`
	Kind      string        `db:"kind"` // planner, greedy, random or sampler
	Depth     int           `db:"depth"`
	Budget    time.Duration `db:"budget"`
	TieBand   int           `db:"tie_band"`
	Rules     string        `db:"rules"`
	Evaluator string        `db:"evaluator"`
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID, plays Player
	Agent2 int // AgentConfig.ID, plays AI
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold the CSV files of one experiment run.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "depth", "budget", "tie_band", "rules", "evaluator"}
	rows := make([][]string, len(configs))
	for i, config := range configs {
		rows[i] = []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Depth),
			config.Budget.String(),
			strconv.Itoa(config.TieBand),
			config.Rules,
			config.Evaluator,
		}
	}
	if err := w.write("agent_configs.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write agent configs: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "run_id", "matchup", "agent1", "agent2", "starting_faction", "winner",
		"start_time", "end_time", "duration", "turns", "total_moves"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			record.RunID,
			record.Matchup,
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.StartingFaction,
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.TotalMoves),
		}
	}
	if err := w.write("game_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "turn", "faction", "action", "score", "duration", "max_depth", "depth",
		"nodes", "cutoffs", "candidates", "timed_out"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Turn),
			record.Faction,
			record.Action,
			strconv.Itoa(record.Score),
			record.Duration.String(),
			strconv.Itoa(record.MaxDepth),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Cutoffs),
			strconv.Itoa(record.Candidates),
			strconv.FormatBool(record.TimedOut),
		}
	}
	if err := w.write("move_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	return nil
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return err
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
