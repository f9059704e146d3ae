package store

import (
	"database/sql"
	"sync"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS global_kv (key TEXT PRIMARY KEY, value BLOB);
CREATE TABLE IF NOT EXISTS branches (
	branch TEXT PRIMARY KEY, parent TEXT, has_parent INTEGER,
	parent_turn INTEGER, parent_tick INTEGER, end_turn INTEGER, end_tick INTEGER
);
CREATE TABLE IF NOT EXISTS turns (
	branch TEXT, turn INTEGER, end_tick INTEGER, plan_end_tick INTEGER,
	PRIMARY KEY (branch, turn)
);
CREATE TABLE IF NOT EXISTS graphs (graph TEXT PRIMARY KEY, kind INTEGER);
CREATE TABLE IF NOT EXISTS nodes (
	graph TEXT, node TEXT, branch TEXT, turn INTEGER, tick INTEGER, present INTEGER
);
CREATE TABLE IF NOT EXISTS edges (
	graph TEXT, orig TEXT, dest TEXT, idx INTEGER, branch TEXT,
	turn INTEGER, tick INTEGER, present INTEGER
);
CREATE TABLE IF NOT EXISTS graph_vals (
	graph TEXT, key TEXT, branch TEXT, turn INTEGER, tick INTEGER, value BLOB, deleted INTEGER
);
CREATE TABLE IF NOT EXISTS node_vals (
	graph TEXT, node TEXT, key TEXT, branch TEXT, turn INTEGER, tick INTEGER, value BLOB, deleted INTEGER
);
CREATE TABLE IF NOT EXISTS edge_vals (
	graph TEXT, orig TEXT, dest TEXT, idx INTEGER, key TEXT, branch TEXT,
	turn INTEGER, tick INTEGER, value BLOB, deleted INTEGER
);
`

// pendingOp is one buffered write, applied in order inside the
// transaction Commit opens.
type pendingOp func(*sql.Tx) error

// SQLiteGateway is the default Gateway, backed by a pure-Go SQLite
// driver. Writes are buffered in memory and applied transactionally by
// Commit, matching §6's "may buffer writes until commit."
type SQLiteGateway struct {
	db *sql.DB

	mu      sync.Mutex
	pending []pendingOp
}

// Open creates (or reuses) a SQLite database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral, process-local store.
func Open(path string) (*SQLiteGateway, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "store: open sqlite")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: create schema")
	}
	return &SQLiteGateway{db: db}, nil
}

func (g *SQLiteGateway) queue(op pendingOp) {
	g.mu.Lock()
	g.pending = append(g.pending, op)
	g.mu.Unlock()
}

// Commit flushes every buffered write inside one transaction.
func (g *SQLiteGateway) Commit() error {
	g.mu.Lock()
	ops := g.pending
	g.pending = nil
	g.mu.Unlock()

	if len(ops) == 0 {
		return nil
	}
	tx, err := g.db.Begin()
	if err != nil {
		return errors.Wrap(err, "store: begin commit")
	}
	for _, op := range ops {
		if err := op(tx); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "store: commit")
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "store: finalize commit")
	}
	return nil
}

// Close releases the underlying connection. Unflushed writes are lost.
func (g *SQLiteGateway) Close() error { return g.db.Close() }

func (g *SQLiteGateway) GlobalGet(key string) ([]byte, bool, error) {
	var v []byte
	err := g.db.QueryRow(`SELECT value FROM global_kv WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "store: global_get")
	}
	return v, true, nil
}

func (g *SQLiteGateway) GlobalSet(key string, value []byte) error {
	g.queue(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO global_kv(key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
		return err
	})
	return nil
}

func (g *SQLiteGateway) GlobalDel(key string) error {
	g.queue(func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM global_kv WHERE key = ?`, key)
		return err
	})
	return nil
}

func (g *SQLiteGateway) AllBranches() ([]BranchRow, error) {
	rows, err := g.db.Query(`SELECT branch, parent, has_parent, parent_turn, parent_tick, end_turn, end_tick FROM branches`)
	if err != nil {
		return nil, errors.Wrap(err, "store: all_branches")
	}
	defer rows.Close()
	var out []BranchRow
	for rows.Next() {
		var r BranchRow
		var hasParent int
		if err := rows.Scan(&r.Branch, &r.Parent, &hasParent, &r.ParentTurn, &r.ParentTick, &r.EndTurn, &r.EndTick); err != nil {
			return nil, err
		}
		r.HasParent = hasParent != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func (g *SQLiteGateway) NewBranch(branchName, parent string, turn, tick int) error {
	g.queue(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO branches(branch, parent, has_parent, parent_turn, parent_tick, end_turn, end_tick)
			VALUES (?, ?, 1, ?, ?, ?, ?)`, branchName, parent, turn, tick, turn, tick)
		return err
	})
	return nil
}

func (g *SQLiteGateway) RecordTurnEnd(branchName string, turn, endTick, planEndTick int) error {
	g.queue(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO turns(branch, turn, end_tick, plan_end_tick) VALUES (?, ?, ?, ?)
			ON CONFLICT(branch, turn) DO UPDATE SET end_tick = excluded.end_tick, plan_end_tick = excluded.plan_end_tick`,
			branchName, turn, endTick, planEndTick)
		return err
	})
	return nil
}

func (g *SQLiteGateway) TurnsDump() ([]TurnRow, error) {
	rows, err := g.db.Query(`SELECT branch, turn, end_tick, plan_end_tick FROM turns`)
	if err != nil {
		return nil, errors.Wrap(err, "store: turns_dump")
	}
	defer rows.Close()
	var out []TurnRow
	for rows.Next() {
		var r TurnRow
		if err := rows.Scan(&r.Branch, &r.Turn, &r.EndTick, &r.PlanEndTick); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (g *SQLiteGateway) GraphsTypes() ([]GraphRow, error) {
	rows, err := g.db.Query(`SELECT graph, kind FROM graphs`)
	if err != nil {
		return nil, errors.Wrap(err, "store: graphs_types")
	}
	defer rows.Close()
	var out []GraphRow
	for rows.Next() {
		var r GraphRow
		if err := rows.Scan(&r.Graph, &r.Kind); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (g *SQLiteGateway) RecordGraphType(graphName string, kind int) error {
	g.queue(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO graphs(graph, kind) VALUES (?, ?)
			ON CONFLICT(graph) DO UPDATE SET kind = excluded.kind`, graphName, kind)
		return err
	})
	return nil
}

func (g *SQLiteGateway) NodesDump() ([]NodeRow, error) {
	rows, err := g.db.Query(`SELECT graph, node, branch, turn, tick, present FROM nodes ORDER BY branch, turn, tick`)
	if err != nil {
		return nil, errors.Wrap(err, "store: nodes_dump")
	}
	defer rows.Close()
	var out []NodeRow
	for rows.Next() {
		var r NodeRow
		var present int
		if err := rows.Scan(&r.Graph, &r.Node, &r.Branch, &r.Turn, &r.Tick, &present); err != nil {
			return nil, err
		}
		r.Present = present != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func (g *SQLiteGateway) EdgesDump() ([]EdgeRow, error) {
	rows, err := g.db.Query(`SELECT graph, orig, dest, idx, branch, turn, tick, present FROM edges ORDER BY branch, turn, tick`)
	if err != nil {
		return nil, errors.Wrap(err, "store: edges_dump")
	}
	defer rows.Close()
	var out []EdgeRow
	for rows.Next() {
		var r EdgeRow
		var present int
		if err := rows.Scan(&r.Graph, &r.Orig, &r.Dest, &r.Index, &r.Branch, &r.Turn, &r.Tick, &present); err != nil {
			return nil, err
		}
		r.Present = present != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func (g *SQLiteGateway) GraphValDump() ([]GraphValRow, error) {
	rows, err := g.db.Query(`SELECT graph, key, branch, turn, tick, value, deleted FROM graph_vals ORDER BY branch, turn, tick`)
	if err != nil {
		return nil, errors.Wrap(err, "store: graph_val_dump")
	}
	defer rows.Close()
	var out []GraphValRow
	for rows.Next() {
		var r GraphValRow
		var deleted int
		if err := rows.Scan(&r.Graph, &r.Key, &r.Branch, &r.Turn, &r.Tick, &r.Value, &deleted); err != nil {
			return nil, err
		}
		r.Deleted = deleted != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func (g *SQLiteGateway) NodeValDump() ([]NodeValRow, error) {
	rows, err := g.db.Query(`SELECT graph, node, key, branch, turn, tick, value, deleted FROM node_vals ORDER BY branch, turn, tick`)
	if err != nil {
		return nil, errors.Wrap(err, "store: node_val_dump")
	}
	defer rows.Close()
	var out []NodeValRow
	for rows.Next() {
		var r NodeValRow
		var deleted int
		if err := rows.Scan(&r.Graph, &r.Node, &r.Key, &r.Branch, &r.Turn, &r.Tick, &r.Value, &deleted); err != nil {
			return nil, err
		}
		r.Deleted = deleted != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func (g *SQLiteGateway) EdgeValDump() ([]EdgeValRow, error) {
	rows, err := g.db.Query(`SELECT graph, orig, dest, idx, key, branch, turn, tick, value, deleted FROM edge_vals ORDER BY branch, turn, tick`)
	if err != nil {
		return nil, errors.Wrap(err, "store: edge_val_dump")
	}
	defer rows.Close()
	var out []EdgeValRow
	for rows.Next() {
		var r EdgeValRow
		var deleted int
		if err := rows.Scan(&r.Graph, &r.Orig, &r.Dest, &r.Index, &r.Key, &r.Branch, &r.Turn, &r.Tick, &r.Value, &deleted); err != nil {
			return nil, err
		}
		r.Deleted = deleted != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func (g *SQLiteGateway) ExistNode(graph, node, branchName string, turn, tick int, present bool) error {
	g.queue(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO nodes(graph, node, branch, turn, tick, present) VALUES (?, ?, ?, ?, ?, ?)`,
			graph, node, branchName, turn, tick, boolInt(present))
		return err
	})
	return nil
}

func (g *SQLiteGateway) ExistEdge(graph, orig, dest string, index int, branchName string, turn, tick int, present bool) error {
	g.queue(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO edges(graph, orig, dest, idx, branch, turn, tick, present) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			graph, orig, dest, index, branchName, turn, tick, boolInt(present))
		return err
	})
	return nil
}

func (g *SQLiteGateway) GraphValSet(graph, key, branchName string, turn, tick int, value []byte, deleted bool) error {
	g.queue(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO graph_vals(graph, key, branch, turn, tick, value, deleted) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			graph, key, branchName, turn, tick, value, boolInt(deleted))
		return err
	})
	return nil
}

func (g *SQLiteGateway) NodeValSet(graph, node, key, branchName string, turn, tick int, value []byte, deleted bool) error {
	g.queue(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO node_vals(graph, node, key, branch, turn, tick, value, deleted) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			graph, node, key, branchName, turn, tick, value, boolInt(deleted))
		return err
	})
	return nil
}

func (g *SQLiteGateway) EdgeValSet(graph, orig, dest string, index int, key, branchName string, turn, tick int, value []byte, deleted bool) error {
	g.queue(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO edge_vals(graph, orig, dest, idx, key, branch, turn, tick, value, deleted) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			graph, orig, dest, index, key, branchName, turn, tick, value, boolInt(deleted))
		return err
	})
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ Gateway = (*SQLiteGateway)(nil)
