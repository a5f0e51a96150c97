package iocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/schema"
	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Keys of the key-value table.
const (
	donorsKey          = "donors"
	historyKey         = "upload_history"
	processedKeyPrefix = "processed:"
)

// blobVersion is the payload format version written with every value.
const blobVersion = 1

// ErrUnsupportedVersion is returned when a stored value was written by a newer format.
var ErrUnsupportedVersion = errors.New("stored data has an unsupported format version")

// DonorStoreImpl keeps the donor collection in a key-value table on one of the SQL backends.
type DonorStoreImpl struct {
	db         *sql.DB
	tableName  string
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
	now        func() time.Time
}

var _ contract.DonorStore = &DonorStoreImpl{} // Compile-time check

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// NewDonorStore initializes and returns a new DonorStore based on the backend type.
func NewDonorStore(tableName string, backend schema.DatabaseBackend, connStr string) (*DonorStoreImpl, error) {
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// No-op store: nothing is persisted
		return &DonorStoreImpl{tableName: tableName, backend: backend, connStr: connStr, now: time.Now}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(getCreateTableQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &DonorStoreImpl{
		db:         db,
		tableName:  tableName,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
		now:        time.Now,
	}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				kv_key VARCHAR(255) PRIMARY KEY,
				kv_value LONGBLOB NOT NULL,
				kv_version INT NOT NULL,
				kv_timestamp BIGINT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				kv_key TEXT PRIMARY KEY,
				kv_value BYTEA NOT NULL,
				kv_version INTEGER NOT NULL,
				kv_timestamp BIGINT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				kv_key TEXT PRIMARY KEY,
				kv_value BLOB NOT NULL,
				kv_version INTEGER NOT NULL,
				kv_timestamp INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// disabled reports whether the store persists nothing.
func (ds *DonorStoreImpl) disabled() bool {
	return ds.backend == schema.NoneBackend || ds.db == nil
}

// placeholder returns the n-th (1-based) parameter placeholder for the backend.
func (ds *DonorStoreImpl) placeholder(n int) string {
	switch ds.backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("$%d", n)
	default: // SQLite and MySQL
		return "?"
	}
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ds *DonorStoreImpl) getUpsertQuery() string {
	quotedTableName := quoteTableName(ds.tableName, ds.backend)
	switch ds.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (kv_key, kv_value, kv_version, kv_timestamp) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE kv_value = new.kv_value, kv_version = new.kv_version, kv_timestamp = new.kv_timestamp`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (kv_key, kv_value, kv_version, kv_timestamp) VALUES ($1, $2, $3, $4)
			ON CONFLICT (kv_key) DO UPDATE SET kv_value = EXCLUDED.kv_value, kv_version = EXCLUDED.kv_version, kv_timestamp = EXCLUDED.kv_timestamp`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (kv_key, kv_value, kv_version, kv_timestamp) VALUES (?, ?, ?, ?)`, quotedTableName)
	}
}

// get reads one key. A missing key returns (nil, nil).
func (ds *DonorStoreImpl) get(ctx context.Context, q queryer, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT kv_value, kv_version FROM %s WHERE kv_key = %s`,
		quoteTableName(ds.tableName, ds.backend), ds.placeholder(1))

	var value []byte
	var version int
	if err := q.QueryRowContext(ctx, query, key).Scan(&value, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if version > blobVersion {
		return nil, fmt.Errorf("%w: %s is version %d", ErrUnsupportedVersion, key, version)
	}
	return value, nil
}

// set writes one key as JSON.
func (ds *DonorStoreImpl) set(ctx context.Context, q queryer, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if _, err := q.ExecContext(ctx, ds.getUpsertQuery(), key, value, blobVersion, ds.now().Unix()); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// withTx runs fn in a transaction and rolls back on any error.
func (ds *DonorStoreImpl) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := ds.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadData returns the full donor collection.
func (ds *DonorStoreImpl) LoadData(ctx context.Context) ([]schema.DonorData, error) {
	if ds.disabled() {
		return []schema.DonorData{}, nil
	}
	return ds.loadDonors(ctx, ds.db)
}

func (ds *DonorStoreImpl) loadDonors(ctx context.Context, q queryer) ([]schema.DonorData, error) {
	raw, err := ds.get(ctx, q, donorsKey)
	if err != nil {
		return nil, err
	}
	donors := []schema.DonorData{}
	if raw == nil {
		return donors, nil
	}
	if err := json.Unmarshal(raw, &donors); err != nil {
		return nil, fmt.Errorf("failed to decode donors: %w", err)
	}
	for i := range donors {
		donors[i].Recompute()
	}
	return donors, nil
}

// SaveData replaces the full donor collection.
func (ds *DonorStoreImpl) SaveData(ctx context.Context, donors []schema.DonorData) error {
	if ds.disabled() {
		return nil
	}
	return ds.withTx(ctx, func(tx *sql.Tx) error {
		return ds.set(ctx, tx, donorsKey, prepareDonors(donors))
	})
}

// MergeNewData implements the DonorStore interface.
func (ds *DonorStoreImpl) MergeNewData(existing, incoming []schema.DonorData) []schema.DonorData {
	return MergeDonors(existing, incoming)
}

// SaveUploadHistory appends one entry to the upload history.
func (ds *DonorStoreImpl) SaveUploadHistory(ctx context.Context, added, total int, source string) error {
	if ds.disabled() {
		return nil
	}
	entry := schema.UploadHistoryEntry{Source: source, RecordsAdded: added, TotalRecords: total}
	return ds.withTx(ctx, func(tx *sql.Tx) error {
		return ds.appendHistory(ctx, tx, entry)
	})
}

func (ds *DonorStoreImpl) appendHistory(ctx context.Context, q queryer, entry schema.UploadHistoryEntry) error {
	history, err := ds.loadHistory(ctx, q)
	if err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Date.IsZero() {
		entry.Date = ds.now().UTC()
	}
	return ds.set(ctx, q, historyKey, append(history, entry))
}

// GetUploadHistory returns the upload history, oldest first.
func (ds *DonorStoreImpl) GetUploadHistory(ctx context.Context) ([]schema.UploadHistoryEntry, error) {
	if ds.disabled() {
		return []schema.UploadHistoryEntry{}, nil
	}
	return ds.loadHistory(ctx, ds.db)
}

func (ds *DonorStoreImpl) loadHistory(ctx context.Context, q queryer) ([]schema.UploadHistoryEntry, error) {
	raw, err := ds.get(ctx, q, historyKey)
	if err != nil {
		return nil, err
	}
	history := []schema.UploadHistoryEntry{}
	if raw == nil {
		return history, nil
	}
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, fmt.Errorf("failed to decode upload history: %w", err)
	}
	return history, nil
}

// CommitImport writes the merged collection and its history entry in one transaction.
func (ds *DonorStoreImpl) CommitImport(ctx context.Context, donors []schema.DonorData, entry schema.UploadHistoryEntry) error {
	if ds.disabled() {
		return nil
	}
	return ds.withTx(ctx, func(tx *sql.Tx) error {
		if err := ds.set(ctx, tx, donorsKey, prepareDonors(donors)); err != nil {
			return err
		}
		return ds.appendHistory(ctx, tx, entry)
	})
}

// ClearData removes every key: donors, history and processed-document marks.
func (ds *DonorStoreImpl) ClearData(ctx context.Context) error {
	if ds.disabled() {
		return nil
	}
	return ds.withTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(ds.tableName, ds.backend))
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to clear %s: %w", ds.tableName, err)
		}
		return nil
	})
}

// IsDocumentProcessed reports whether a document was already imported.
func (ds *DonorStoreImpl) IsDocumentProcessed(ctx context.Context, id string) (bool, error) {
	if ds.disabled() {
		return false, nil
	}
	raw, err := ds.get(ctx, ds.db, processedKeyPrefix+id)
	if err != nil {
		return false, err
	}
	return raw != nil, nil
}

// MarkDocumentProcessed records a document as imported.
func (ds *DonorStoreImpl) MarkDocumentProcessed(ctx context.Context, doc schema.ProcessedDocument) error {
	if ds.disabled() {
		return nil
	}
	if doc.ID == "" {
		return errors.New("processed document requires an ID")
	}
	if doc.ProcessedAt.IsZero() {
		doc.ProcessedAt = ds.now().UTC()
	}
	return ds.set(ctx, ds.db, processedKeyPrefix+doc.ID, doc)
}

// GetProcessedDocuments lists every document marked as imported, ordered by ID.
func (ds *DonorStoreImpl) GetProcessedDocuments(ctx context.Context) ([]schema.ProcessedDocument, error) {
	docs := []schema.ProcessedDocument{}
	if ds.disabled() {
		return docs, nil
	}

	query := fmt.Sprintf(`SELECT kv_value FROM %s WHERE kv_key LIKE %s ORDER BY kv_key`,
		quoteTableName(ds.tableName, ds.backend), ds.placeholder(1))
	rows, err := ds.db.QueryContext(ctx, query, processedKeyPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to list processed documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan processed document: %w", err)
		}
		var doc schema.ProcessedDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode processed document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Close closes the underlying DB connection.
func (ds *DonorStoreImpl) Close() error {
	if ds.db != nil {
		return ds.db.Close()
	}
	return nil
}

// GetStatus returns status information about the donor store.
func (ds *DonorStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ds.backend),
		Connected: ds.db != nil,
	}
	if ds.disabled() {
		return status, nil
	}

	ctx := context.Background()
	quotedTableName := quoteTableName(ds.tableName, ds.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := ds.db.QueryRowContext(ctx, countQuery).Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	var lastTs, oldestTs int64
	rangeQuery := fmt.Sprintf("SELECT MAX(kv_timestamp), MIN(kv_timestamp) FROM %s", quotedTableName)
	if err := ds.db.QueryRowContext(ctx, rangeQuery).Scan(&lastTs, &oldestTs); err != nil {
		return status, fmt.Errorf("failed to get entry times: %w", err)
	}
	status.LastEntryTime = time.Unix(lastTs, 0)
	status.OldestEntryTime = time.Unix(oldestTs, 0)

	donors, err := ds.loadDonors(ctx, ds.db)
	if err != nil {
		return status, err
	}
	status.TotalDonors = len(donors)

	history, err := ds.loadHistory(ctx, ds.db)
	if err != nil {
		return status, err
	}
	status.UploadCount = len(history)

	processedQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE kv_key LIKE %s", quotedTableName, ds.placeholder(1))
	if err := ds.db.QueryRowContext(ctx, processedQuery, processedKeyPrefix+"%").Scan(&status.ProcessedDocuments); err != nil {
		return status, fmt.Errorf("failed to count processed documents: %w", err)
	}

	status.TableSizeBytes = ds.estimateTableSize(ctx, status.TotalEntries)
	return status, nil
}

// estimateTableSize asks the backend for the table size and falls back to a rough estimate.
func (ds *DonorStoreImpl) estimateTableSize(ctx context.Context, entries int) int64 {
	fallback := int64(entries) * 1000
	var size int64

	switch ds.backend {
	case schema.SQLiteBackend:
		sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		if err := ds.db.QueryRowContext(ctx, sizeQuery).Scan(&size); err != nil {
			return 0
		}
		return size

	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(ds.connStr)
		if err != nil || cfg.DBName == "" {
			return fallback
		}
		sizeQuery := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		if err := ds.db.QueryRowContext(ctx, sizeQuery, cfg.DBName, ds.tableName).Scan(&size); err != nil {
			return fallback
		}
		return size

	case schema.PostgreSQLBackend:
		if err := ds.db.QueryRowContext(ctx, "SELECT pg_total_relation_size($1)", ds.tableName).Scan(&size); err != nil {
			return fallback
		}
		return size

	default:
		return fallback
	}
}

// prepareDonors returns a copy with derived fields refreshed.
func prepareDonors(donors []schema.DonorData) []schema.DonorData {
	out := schema.CloneDonors(donors)
	if out == nil {
		out = []schema.DonorData{}
	}
	for i := range out {
		out[i].Recompute()
	}
	return out
}
