// Package store keeps serialized scenes in SQLite. Every save creates a new
// revision so that the latest snapshot can be diffed against the previous
// one.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gogpu/sceneview"
)

// ErrNotFound is returned when a scene or revision does not exist.
var ErrNotFound = errors.New("store: not found")

const schema = `
CREATE TABLE IF NOT EXISTS revisions (
	id         TEXT PRIMARY KEY,
	scene      TEXT NOT NULL,
	seq        INTEGER NOT NULL,
	data       BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	UNIQUE (scene, seq)
);
CREATE INDEX IF NOT EXISTS revisions_scene ON revisions (scene, seq DESC);
`

// Revision describes one stored snapshot.
type Revision struct {
	ID        string    `json:"id"`
	Scene     string    `json:"scene"`
	Seq       int64     `json:"seq"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is a scene snapshot store. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: mkdir db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Save stores data as the next revision of scene.
func (s *Store) Save(ctx context.Context, scene string, data []byte) (Revision, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM revisions WHERE scene = ?`, scene)
	if err := row.Scan(&seq); err != nil {
		return Revision{}, fmt.Errorf("store: next revision of %s: %w", scene, err)
	}
	rev := Revision{
		ID:        uuid.NewString(),
		Scene:     scene,
		Seq:       seq + 1,
		Size:      len(data),
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO revisions (id, scene, seq, data, created_at) VALUES (?, ?, ?, ?, ?)`,
		rev.ID, rev.Scene, rev.Seq, data, rev.CreatedAt.UnixMilli())
	if err != nil {
		return Revision{}, fmt.Errorf("store: insert revision of %s: %w", scene, err)
	}
	if err := tx.Commit(); err != nil {
		return Revision{}, fmt.Errorf("store: commit: %w", err)
	}
	sceneview.Logger().Debug("store: saved", "scene", scene, "seq", rev.Seq, "bytes", rev.Size)
	return rev, nil
}

const selectRevision = `SELECT id, scene, seq, LENGTH(data), created_at, data FROM revisions `

func scanRevision(row *sql.Row) ([]byte, Revision, error) {
	var (
		rev  Revision
		ms   int64
		data []byte
	)
	err := row.Scan(&rev.ID, &rev.Scene, &rev.Seq, &rev.Size, &ms, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, Revision{}, ErrNotFound
	}
	if err != nil {
		return nil, Revision{}, err
	}
	rev.CreatedAt = time.UnixMilli(ms).UTC()
	return data, rev, nil
}

// Latest returns the newest snapshot of scene.
func (s *Store) Latest(ctx context.Context, scene string) ([]byte, Revision, error) {
	row := s.db.QueryRowContext(ctx, selectRevision+`WHERE scene = ? ORDER BY seq DESC LIMIT 1`, scene)
	data, rev, err := scanRevision(row)
	if err != nil {
		return nil, Revision{}, fmt.Errorf("store: latest %s: %w", scene, err)
	}
	return data, rev, nil
}

// Previous returns the newest snapshot of scene older than seq.
func (s *Store) Previous(ctx context.Context, scene string, seq int64) ([]byte, Revision, error) {
	row := s.db.QueryRowContext(ctx, selectRevision+`WHERE scene = ? AND seq < ? ORDER BY seq DESC LIMIT 1`, scene, seq)
	data, rev, err := scanRevision(row)
	if err != nil {
		return nil, Revision{}, fmt.Errorf("store: %s before %d: %w", scene, seq, err)
	}
	return data, rev, nil
}

// Get returns the snapshot with the given revision id.
func (s *Store) Get(ctx context.Context, id string) ([]byte, Revision, error) {
	row := s.db.QueryRowContext(ctx, selectRevision+`WHERE id = ?`, id)
	data, rev, err := scanRevision(row)
	if err != nil {
		return nil, Revision{}, fmt.Errorf("store: revision %s: %w", id, err)
	}
	return data, rev, nil
}

// Revisions lists the revisions of scene, newest first. A positive limit
// caps the result.
func (s *Store) Revisions(ctx context.Context, scene string, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scene, seq, LENGTH(data), created_at FROM revisions WHERE scene = ? ORDER BY seq DESC LIMIT ?`,
		scene, limit)
	if err != nil {
		return nil, fmt.Errorf("store: revisions of %s: %w", scene, err)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var rev Revision
		var ms int64
		if err := rows.Scan(&rev.ID, &rev.Scene, &rev.Seq, &rev.Size, &ms); err != nil {
			return nil, fmt.Errorf("store: scan revision: %w", err)
		}
		rev.CreatedAt = time.UnixMilli(ms).UTC()
		out = append(out, rev)
	}
	return out, rows.Err()
}

// Scenes lists the stored scene names in order.
func (s *Store) Scenes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT scene FROM revisions ORDER BY scene`)
	if err != nil {
		return nil, fmt.Errorf("store: scenes: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("store: scan scene: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Delete removes every revision of scene.
func (s *Store) Delete(ctx context.Context, scene string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM revisions WHERE scene = ?`, scene)
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", scene, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: delete %s: %w", scene, ErrNotFound)
	}
	return nil
}

// SaveView encodes v with codec and stores it as the next revision.
func (s *Store) SaveView(ctx context.Context, codec *sceneview.Codec, scene string, v sceneview.View) (Revision, error) {
	data, err := codec.Marshal(v)
	if err != nil {
		return Revision{}, fmt.Errorf("store: encode %s: %w", scene, err)
	}
	return s.Save(ctx, scene, data)
}

// LoadView decodes the latest snapshot of scene with codec.
func (s *Store) LoadView(ctx context.Context, codec *sceneview.Codec, scene string) (sceneview.View, Revision, error) {
	data, rev, err := s.Latest(ctx, scene)
	if err != nil {
		return nil, Revision{}, err
	}
	v, err := codec.Unmarshal(data)
	if err != nil {
		return nil, Revision{}, fmt.Errorf("store: decode %s: %w", scene, err)
	}
	return v, rev, nil
}

// LatestDiff returns the newest snapshot of scene encoded relative to the
// one before it, the full tree when there is only one revision.
func (s *Store) LatestDiff(ctx context.Context, codec *sceneview.Codec, scene string) ([]byte, Revision, error) {
	cur, rev, err := s.LoadView(ctx, codec, scene)
	if err != nil {
		return nil, Revision{}, err
	}
	var prev sceneview.View
	data, _, err := s.Previous(ctx, scene, rev.Seq)
	switch {
	case err == nil:
		if prev, err = codec.Unmarshal(data); err != nil {
			return nil, Revision{}, fmt.Errorf("store: decode %s before %d: %w", scene, rev.Seq, err)
		}
	case !errors.Is(err, ErrNotFound):
		return nil, Revision{}, err
	}
	out, err := codec.DiffJSON(cur, prev)
	if err != nil {
		return nil, Revision{}, fmt.Errorf("store: diff %s: %w", scene, err)
	}
	return out, rev, nil
}
