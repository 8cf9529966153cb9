package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/josephgoksu/smarttask/models"
	"github.com/spf13/afero"
	_ "modernc.org/sqlite"
)

const defaultSQLiteFile = "tasks.db"

// SQLiteTaskStore keeps the task document in a sqlite database. Backups are
// written as text documents so they can be restored into any backend.
type SQLiteTaskStore struct {
	fs     afero.Fs
	db     *sql.DB
	dbPath string
	flk    locker
	held   bool
}

// NewSQLiteTaskStore creates an uninitialised sqlite store. fs is used for
// backup files only; nil means the OS filesystem.
func NewSQLiteTaskStore(fsys afero.Fs) *SQLiteTaskStore {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &SQLiteTaskStore{fs: fsys}
}

// Initialize opens the database named by 'dataFile' (":memory:" is allowed) and
// creates the schema.
func (s *SQLiteTaskStore) Initialize(config map[string]string) error {
	s.dbPath = config[DataFileKey]
	if s.dbPath == "" {
		s.dbPath = defaultSQLiteFile
	}

	s.flk = noLock{}
	if s.dbPath != ":memory:" {
		if dir := filepath.Dir(s.dbPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create database directory: %w", err)
			}
		}
		s.flk = flock.New(s.dbPath + lockSuffix)
	}

	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return fmt.Errorf("set busy timeout: %w", err)
	}

	s.db = db
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		s.db = nil
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *SQLiteTaskStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		deadline TEXT,                      -- RFC 3339, NULL when unset
		urgency INTEGER NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		priority_score REAL NOT NULL DEFAULT 0
	);

	-- Dependencies may name ids that no longer exist, so depends_on has no foreign key.
	CREATE TABLE IF NOT EXISTS task_dependencies (
		task_id INTEGER NOT NULL,
		depends_on INTEGER NOT NULL,
		position INTEGER NOT NULL,
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE,
		PRIMARY KEY (task_id, depends_on)
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_task_dependencies_task ON task_dependencies(task_id, position);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Path returns the database path.
func (s *SQLiteTaskStore) Path() string {
	return s.dbPath
}

// Load reads every task and the stored next_id. An empty database yields an
// empty document.
func (s *SQLiteTaskStore) Load() (models.TaskList, error) {
	if s.db == nil {
		return models.TaskList{}, errors.New("sqlite store not initialized")
	}

	list := models.NewTaskList()

	var nextID string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'next_id'`).Scan(&nextID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return models.TaskList{}, fmt.Errorf("read next_id: %w", err)
	default:
		n, convErr := strconv.Atoi(nextID)
		if convErr != nil {
			return models.TaskList{}, &models.DeserializationError{Path: "next_id", Err: convErr}
		}
		list.NextID = n
	}

	rows, err := s.db.Query(`
		SELECT id, title, description, deadline, urgency, completed, created_at, priority_score
		FROM tasks ORDER BY id`)
	if err != nil {
		return models.TaskList{}, fmt.Errorf("query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	index := make(map[int]int)
	for rows.Next() {
		var (
			t         models.Task
			deadline  sql.NullString
			completed int
			createdAt string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &deadline, &t.Urgency, &completed, &createdAt, &t.PriorityScore); err != nil {
			return models.TaskList{}, fmt.Errorf("scan task: %w", err)
		}
		path := fmt.Sprintf("tasks[id=%d]", t.ID)
		t.Completed = completed != 0
		if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return models.TaskList{}, &models.DeserializationError{Path: path + ".created_at", Err: err}
		}
		if deadline.Valid {
			d, err := time.Parse(time.RFC3339Nano, deadline.String)
			if err != nil {
				return models.TaskList{}, &models.DeserializationError{Path: path + ".deadline", Err: err}
			}
			t.Deadline = &d
		}
		t.Dependencies = []int{}
		index[t.ID] = len(list.Tasks)
		list.Tasks = append(list.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return models.TaskList{}, fmt.Errorf("iterate tasks: %w", err)
	}

	depRows, err := s.db.Query(`SELECT task_id, depends_on FROM task_dependencies ORDER BY task_id, position`)
	if err != nil {
		return models.TaskList{}, fmt.Errorf("query dependencies: %w", err)
	}
	defer func() { _ = depRows.Close() }()
	for depRows.Next() {
		var taskID, dependsOn int
		if err := depRows.Scan(&taskID, &dependsOn); err != nil {
			return models.TaskList{}, fmt.Errorf("scan dependency: %w", err)
		}
		if i, ok := index[taskID]; ok {
			list.Tasks[i].Dependencies = append(list.Tasks[i].Dependencies, dependsOn)
		}
	}
	if err := depRows.Err(); err != nil {
		return models.TaskList{}, fmt.Errorf("iterate dependencies: %w", err)
	}

	if err := list.Validate(); err != nil {
		return models.TaskList{}, err
	}
	return list, nil
}

// Save replaces every row in one transaction.
func (s *SQLiteTaskStore) Save(list models.TaskList) error {
	if s.db == nil {
		return errors.New("sqlite store not initialized")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM task_dependencies`); err != nil {
		return fmt.Errorf("clear dependencies: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	taskStmt, err := tx.Prepare(`
		INSERT INTO tasks (id, title, description, deadline, urgency, completed, created_at, priority_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare task insert: %w", err)
	}
	defer func() { _ = taskStmt.Close() }()

	depStmt, err := tx.Prepare(`INSERT OR IGNORE INTO task_dependencies (task_id, depends_on, position) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare dependency insert: %w", err)
	}
	defer func() { _ = depStmt.Close() }()

	for _, t := range list.Tasks {
		var deadline sql.NullString
		if t.Deadline != nil {
			deadline = sql.NullString{String: t.Deadline.Format(time.RFC3339Nano), Valid: true}
		}
		completed := 0
		if t.Completed {
			completed = 1
		}
		if _, err := taskStmt.Exec(t.ID, t.Title, t.Description, deadline, t.Urgency, completed,
			t.CreatedAt.Format(time.RFC3339Nano), t.PriorityScore); err != nil {
			return fmt.Errorf("insert task %d: %w", t.ID, err)
		}
		for pos, dep := range t.Dependencies {
			if _, err := depStmt.Exec(t.ID, dep, pos); err != nil {
				return fmt.Errorf("insert dependency %d->%d: %w", t.ID, dep, err)
			}
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO meta (key, value) VALUES ('next_id', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, strconv.Itoa(list.NextID)); err != nil {
		return fmt.Errorf("store next_id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Backup writes the current document as a text file. The format follows the
// destination's extension and defaults to JSON.
func (s *SQLiteTaskStore) Backup(destinationPath string) error {
	list, err := s.Load()
	if err != nil {
		return fmt.Errorf("load for backup: %w", err)
	}

	format := FormatFromPath(destinationPath)
	if format == "" || format == FormatSQLite {
		format = FormatJSON
	}
	data, err := Encode(list, format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(destinationPath); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create backup directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, destinationPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file to %s: %w", destinationPath, err)
	}
	if err := afero.WriteFile(s.fs, destinationPath+checksumSuffix, []byte(calculateChecksum(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write backup checksum for %s: %w", destinationPath, err)
	}
	return nil
}

// Restore validates the text document at sourcePath and replaces the database
// contents with it.
func (s *SQLiteTaskStore) Restore(sourcePath string) error {
	list, err := ReadDocument(s.fs, sourcePath, FormatJSON, true)
	if err != nil {
		return err
	}
	return s.Save(list)
}

// Hold takes an exclusive lock file next to the database and keeps it until
// Release or Close. Single statements are already serialised by sqlite.
func (s *SQLiteTaskStore) Hold() error {
	if s.held || s.flk == nil {
		return nil
	}
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", s.dbPath, err)
	}
	s.held = true
	return nil
}

// Release gives up a lock taken by Hold.
func (s *SQLiteTaskStore) Release() error {
	if !s.held {
		return nil
	}
	s.held = false
	return s.flk.Unlock()
}

// Close releases any held lock and closes the database.
func (s *SQLiteTaskStore) Close() error {
	_ = s.Release()
	if fl, ok := s.flk.(*flock.Flock); ok {
		_ = fl.Close()
	}
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
