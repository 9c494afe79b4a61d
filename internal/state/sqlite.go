package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/loomstack-labs/specloom/pkg/spec"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database and runs migrations.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path == ":memory:" {
		dsn = ":memory:?_pragma=foreign_keys(1)"
	} else {
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path

	if err := s.Migrate(); err != nil {
		db.Close()
		return err
	}
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// CreateProject creates a new project.
func (s *SQLiteStore) CreateProject(ctx context.Context, name string) (*Project, error) {
	now := time.Now().UTC()
	p := &Project{
		ID:        generateID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

// GetProject returns a project by id, or ErrNotFound.
func (s *SQLiteStore) GetProject(ctx context.Context, id string) (*Project, error) {
	var p Project
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &p, nil
}

// ListProjects returns all projects, newest first.
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]*Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

// DeleteProject removes a project and its graph.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceGraph swaps the project's snapshot wholesale in one transaction.
func (s *SQLiteStore) ReplaceGraph(ctx context.Context, projectID string, g *Graph) error {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"nodes", "edges", "screens"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE project_id = ?`, table), projectID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		data, err := marshalNodeData(n)
		if err != nil {
			return err
		}
		var posX, posY sql.NullFloat64
		if n.Position != nil {
			posX = sql.NullFloat64{Float64: n.Position.X, Valid: true}
			posY = sql.NullFloat64{Float64: n.Position.Y, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO nodes (project_id, id, type, position_x, position_y, data) VALUES (?, ?, ?, ?, ?, ?)`,
			projectID, n.ID, string(n.Type), posX, posY, data,
		); err != nil {
			return fmt.Errorf("failed to insert node %q: %w", n.ID, err)
		}
	}

	for _, e := range g.Edges {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO edges (project_id, id, source, target, edge_type) VALUES (?, ?, ?, ?, ?)`,
			projectID, e.ID, e.Source, e.Target, string(e.Type),
		); err != nil {
			return fmt.Errorf("failed to insert edge %q: %w", e.ID, err)
		}
	}

	for i := range g.Screens {
		sc := &g.Screens[i]
		regions, err := json.Marshal(sc.Regions)
		if err != nil {
			return fmt.Errorf("failed to encode screen %q regions: %w", sc.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO screens (project_id, id, name, regions) VALUES (?, ?, ?, ?)`,
			projectID, sc.ID, sc.Name, regions,
		); err != nil {
			return fmt.Errorf("failed to insert screen %q: %w", sc.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE projects SET updated_at = ? WHERE id = ?`, time.Now().UTC(), projectID,
	); err != nil {
		return fmt.Errorf("failed to touch project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit graph: %w", err)
	}
	return nil
}

// GetGraph returns the project's snapshot with rows in insertion order,
// which keeps downstream validation output deterministic.
func (s *SQLiteStore) GetGraph(ctx context.Context, projectID string) (*Graph, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	g := &Graph{}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, position_x, position_y, data FROM nodes WHERE project_id = ? ORDER BY rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			n          spec.Node
			nodeType   string
			posX, posY sql.NullFloat64
			data       []byte
		)
		if err := rows.Scan(&n.ID, &nodeType, &posX, &posY, &data); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		n.Type = spec.NodeType(nodeType)
		if posX.Valid && posY.Valid {
			n.Position = &spec.Position{X: posX.Float64, Y: posY.Float64}
		}
		if err := unmarshalNodeData(&n, data); err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	edgeRows, err := s.db.QueryContext(ctx,
		`SELECT id, source, target, edge_type FROM edges WHERE project_id = ? ORDER BY rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer edgeRows.Close()
	for edgeRows.Next() {
		var (
			e        spec.Edge
			edgeType string
		)
		if err := edgeRows.Scan(&e.ID, &e.Source, &e.Target, &edgeType); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		e.Type = spec.EdgeType(edgeType)
		g.Edges = append(g.Edges, e)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, err
	}

	screenRows, err := s.db.QueryContext(ctx,
		`SELECT id, name, regions FROM screens WHERE project_id = ? ORDER BY rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query screens: %w", err)
	}
	defer screenRows.Close()
	for screenRows.Next() {
		var (
			sc      spec.Screen
			regions []byte
		)
		if err := screenRows.Scan(&sc.ID, &sc.Name, &regions); err != nil {
			return nil, fmt.Errorf("failed to scan screen: %w", err)
		}
		if len(regions) > 0 {
			if err := json.Unmarshal(regions, &sc.Regions); err != nil {
				return nil, fmt.Errorf("failed to decode screen %q regions: %w", sc.ID, err)
			}
		}
		g.Screens = append(g.Screens, sc)
	}
	return g, screenRows.Err()
}

// marshalNodeData serializes the node's typed data variant as JSON.
// Visual nodes store NULL.
func marshalNodeData(n *spec.Node) ([]byte, error) {
	var variant any
	switch {
	case n.DataPoint != nil:
		variant = n.DataPoint
	case n.Component != nil:
		variant = n.Component
	case n.Transform != nil:
		variant = n.Transform
	case n.Table != nil:
		variant = n.Table
	default:
		return nil, nil
	}
	data, err := json.Marshal(variant)
	if err != nil {
		return nil, fmt.Errorf("failed to encode node %q data: %w", n.ID, err)
	}
	return data, nil
}

// unmarshalNodeData narrows the stored JSON bag back into the variant
// matching the node type.
func unmarshalNodeData(n *spec.Node, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var err error
	switch n.Type {
	case spec.NodeDataPoint:
		n.DataPoint = &spec.DataPointData{}
		err = json.Unmarshal(data, n.DataPoint)
	case spec.NodeComponent:
		n.Component = &spec.ComponentData{}
		err = json.Unmarshal(data, n.Component)
	case spec.NodeTransform:
		n.Transform = &spec.TransformData{}
		err = json.Unmarshal(data, n.Transform)
	case spec.NodeTable:
		n.Table = &spec.TableData{}
		err = json.Unmarshal(data, n.Table)
	}
	if err != nil {
		return fmt.Errorf("failed to decode node %q data: %w", n.ID, err)
	}
	return nil
}
