package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"leadscout-engine/internal/domain"
)

// Row is one archived lead. Payload carries the full lead object as it
// looked when last written; the remaining columns exist for querying
// without decoding it.
type Row struct {
	ID        int64           `json:"id"`
	LeadID    string          `json:"lead_id"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	Source    string          `json:"source"`
	FirstSeen string          `json:"first_seen"`
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS leads (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  lead_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  name TEXT NOT NULL,
  payload TEXT NOT NULL DEFAULT '{}',
  source TEXT NOT NULL DEFAULT '',
  first_seen TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_leads_lead_id
ON leads(lead_id);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_leads_kind
ON leads(kind);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

// InsertLeadIgnore archives a lead, deduping on lead_id. Reports
// whether a new row was actually written.
func InsertLeadIgnore(db *sql.DB, l domain.Lead, source string) (added bool, err error) {
	payload, err := json.Marshal(l)
	if err != nil {
		return false, fmt.Errorf("encode lead %s: %w", l.LeadID(), err)
	}

	name := leadName(l)
	_, err = db.Exec(`
INSERT OR IGNORE INTO leads (lead_id, kind, name, payload, source, first_seen)
VALUES (?, ?, ?, ?, ?, ?);`,
		l.LeadID(), string(l.LeadKind()), name, string(payload), source,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert lead: %w", err)
	}

	// IGNORE makes rows-affected unreliable across drivers; changes()
	// says whether this statement actually inserted.
	var changes int
	if e := db.QueryRow(`SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

// UpdateLeadPayload rewrites the stored payload after a tag or category
// change, keeping the archive in step with the live store.
func UpdateLeadPayload(db *sql.DB, l domain.Lead) error {
	payload, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode lead %s: %w", l.LeadID(), err)
	}
	if _, err := db.Exec(`UPDATE leads SET payload = ? WHERE lead_id = ?;`,
		string(payload), l.LeadID()); err != nil {
		return fmt.Errorf("update lead payload: %w", err)
	}
	return nil
}

// ListRecent returns archived leads newest first.
func ListRecent(ctx context.Context, db *sql.DB, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.QueryContext(ctx, `
SELECT id, lead_id, kind, name, payload, source, first_seen
FROM leads
ORDER BY id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var payload string
		if err := rows.Scan(&r.ID, &r.LeadID, &r.Kind, &r.Name, &payload, &r.Source, &r.FirstSeen); err != nil {
			return nil, err
		}
		r.Payload = json.RawMessage(payload)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByKind reports how many archived leads exist per kind.
func CountByKind(ctx context.Context, db *sql.DB) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, `
SELECT kind, COUNT(*)
FROM leads
GROUP BY kind;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		out[kind] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func leadName(l domain.Lead) string {
	switch v := l.(type) {
	case *domain.Person:
		return v.Name
	case *domain.Company:
		return v.Name
	}
	return ""
}
