// Package store persists extraction runs in SQLite so processed
// policies can be queried and re-runs can skip unchanged documents.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/orange24122/extraction/annotate"
)

// Policy represents a row in the policies table.
type Policy struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ContentHash    string `json:"content_hash"`
	ParagraphCount int    `json:"paragraph_count"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// Store wraps the SQLite connection.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at path and applies the
// schema.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PolicyHash returns the stored content hash for a policy name, or ""
// when the policy has not been processed before.
func (s *Store) PolicyHash(ctx context.Context, name string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT content_hash FROM policies WHERE name = ?`, name).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying policy hash: %w", err)
	}
	return hash, nil
}

// SaveResult stores one policy's paragraphs and flat records in a
// single transaction, replacing any previous run for the same name.
func (s *Store) SaveResult(ctx context.Context, name, contentHash string, paras []annotate.ParagraphRecord, flat []annotate.FlatRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO policies (name, content_hash, paragraph_count)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			content_hash = excluded.content_hash,
			paragraph_count = excluded.paragraph_count,
			updated_at = CURRENT_TIMESTAMP`,
		name, contentHash, len(paras)); err != nil {
		return 0, fmt.Errorf("upserting policy: %w", err)
	}

	var policyID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM policies WHERE name = ?`, name).Scan(&policyID); err != nil {
		return 0, fmt.Errorf("resolving policy id: %w", err)
	}

	// Replace previous run data.
	if _, err := tx.ExecContext(ctx, `DELETE FROM paragraphs WHERE policy_id = ?`, policyID); err != nil {
		return 0, fmt.Errorf("clearing paragraphs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM flat_records WHERE policy_id = ?`, policyID); err != nil {
		return 0, fmt.Errorf("clearing flat records: %w", err)
	}

	for _, p := range paras {
		tags, _ := json.Marshal(p.SceneTags)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO paragraphs (policy_id, ordinal, content, scene_tags)
			VALUES (?, ?, ?, ?)`,
			policyID, p.Ordinal, p.Text, string(tags)); err != nil {
			return 0, fmt.Errorf("inserting paragraph %d: %w", p.Ordinal, err)
		}
	}

	for _, r := range flat {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO flat_records
				(policy_id, ordinal, item, level1, level2, scene_level1, scene_level2, scene_level3, action)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			policyID, r.Ordinal, r.Item, r.Level1, r.Level2,
			r.SceneLevel1, r.SceneLevel2, r.SceneLevel3, r.Action); err != nil {
			return 0, fmt.Errorf("inserting flat record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing result: %w", err)
	}
	return policyID, nil
}

// ListPolicies returns all processed policies in name order.
func (s *Store) ListPolicies(ctx context.Context) ([]Policy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, content_hash, paragraph_count, created_at, updated_at
		FROM policies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing policies: %w", err)
	}
	defer rows.Close()

	var policies []Policy
	for rows.Next() {
		var p Policy
		if err := rows.Scan(&p.ID, &p.Name, &p.ContentHash, &p.ParagraphCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning policy: %w", err)
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

// FlatRecords returns the stored flat records for a policy, restoring
// paragraph and insertion order.
func (s *Store) FlatRecords(ctx context.Context, policyID int64) ([]annotate.FlatRecord, error) {
	var name string
	if err := s.db.QueryRowContext(ctx,
		`SELECT name FROM policies WHERE id = ?`, policyID).Scan(&name); err != nil {
		return nil, fmt.Errorf("resolving policy name: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT ordinal, item, level1, level2, scene_level1, scene_level2, scene_level3, action
		FROM flat_records WHERE policy_id = ? ORDER BY id`, policyID)
	if err != nil {
		return nil, fmt.Errorf("querying flat records: %w", err)
	}
	defer rows.Close()

	var records []annotate.FlatRecord
	for rows.Next() {
		r := annotate.FlatRecord{PolicyName: name}
		if err := rows.Scan(&r.Ordinal, &r.Item, &r.Level1, &r.Level2,
			&r.SceneLevel1, &r.SceneLevel2, &r.SceneLevel3, &r.Action); err != nil {
			return nil, fmt.Errorf("scanning flat record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
