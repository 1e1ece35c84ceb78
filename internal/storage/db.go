package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"fecdec/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS imports (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  sourcePath TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'running',
  records INTEGER NOT NULL DEFAULT 0,
  error TEXT,
  startedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  finishedAt TEXT
);

CREATE TABLE IF NOT EXISTS records (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  importId INTEGER NOT NULL,
  sourceFile TEXT NOT NULL,
  lineNo INTEGER NOT NULL,
  formType TEXT NOT NULL,
  fieldsJson TEXT NOT NULL,
  originalJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(importId) REFERENCES imports(id)
);
CREATE INDEX IF NOT EXISTS idx_records_importId ON records(importId);
CREATE INDEX IF NOT EXISTS idx_records_formType ON records(formType);
`
	_, err := d.conn.Exec(schema)
	return err
}

// BeginImport opens one bookkeeping row per input file.
func (d *DB) BeginImport(sourcePath string) (int, error) {
	res, err := d.conn.Exec(`INSERT INTO imports (sourcePath, status) VALUES (?, 'running')`, sourcePath)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (d *DB) InsertRecord(importID int, rec internal.Record) error {
	fields, err := json.Marshal(rec.Fields)
	if err != nil {
		return err
	}
	original, err := json.Marshal(rec.OriginalData)
	if err != nil {
		return err
	}
	_, err = d.conn.Exec(
		`INSERT INTO records (importId, sourceFile, lineNo, formType, fieldsJson, originalJson) VALUES (?, ?, ?, ?, ?, ?)`,
		importID, rec.SourceFile, rec.LineNo, rec.FormType, string(fields), string(original),
	)
	return err
}

func (d *DB) FinishImport(importID, count int) error {
	_, err := d.conn.Exec(
		`UPDATE imports SET status = 'done', records = ?, finishedAt = CURRENT_TIMESTAMP WHERE id = ?`,
		count, importID,
	)
	return err
}

func (d *DB) FailImport(importID int, cause error) error {
	_, err := d.conn.Exec(
		`UPDATE imports SET status = 'failed', error = ?, finishedAt = CURRENT_TIMESTAMP WHERE id = ?`,
		cause.Error(), importID,
	)
	return err
}

func (d *DB) GetImport(importID int) (internal.ImportRow, error) {
	row := d.conn.QueryRow(
		`SELECT id, sourcePath, status, records, error, startedAt, finishedAt FROM imports WHERE id = ?`,
		importID,
	)
	var out internal.ImportRow
	err := row.Scan(&out.ID, &out.SourcePath, &out.Status, &out.Records, &out.Error, &out.StartedAt, &out.FinishedAt)
	return out, err
}

func (d *DB) CountRecords(importID int) (int, error) {
	row := d.conn.QueryRow(`SELECT COUNT(*) FROM records WHERE importId = ?`, importID)
	var count int
	err := row.Scan(&count)
	return count, err
}
