// Package exports records the region annotations of exported definitions so
// that other compilation units can read them back. They are the only region
// information that outlives a checker run.
package exports

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"

	"github.com/funvibe/regionck/internal/annotations"
	"github.com/funvibe/regionck/internal/config"
	"github.com/funvibe/regionck/internal/symbols"
)

var log = commonlog.GetLogger(config.LogExports)

// SchemaVersion is the layout version written to new databases. Databases
// with another major version are refused.
const SchemaVersion = "1.0.0"

var (
	// ErrSignatureNotFound indicates the requested signature was never recorded.
	ErrSignatureNotFound = errors.New("signature not found")

	// ErrIncompatibleSchema indicates a database written by an incompatible version.
	ErrIncompatibleSchema = errors.New("incompatible export database")
)

// Signature is the exported region annotation of one definition. Regions
// are stored by binder name since region tokens are local to a unit.
type Signature struct {
	Module  string
	Symbol  string
	Kind    string
	Regions []string
	RunID   uuid.UUID
}

// Collect gathers the annotations of every exported symbol of a checked unit.
// Symbols the checker never annotated are skipped, and so are anonymous
// functions, which other units cannot name. Records are keyed by name, so
// when two binders share one the first declared wins.
func Collect(module string, syms *symbols.SymbolTable, ann *annotations.Store, runID uuid.UUID) []Signature {
	var out []Signature
	seen := make(map[string]symbols.Symbol)
	for _, sym := range syms.Exported() {
		if sym.Kind == symbols.LambdaSymbol {
			continue
		}
		set, ok := ann.Symbol(sym.ID)
		if !ok {
			continue
		}
		if first, dup := seen[sym.Name]; dup {
			log.Warningf("%s: '%s' is exported twice, keeping the binder at %s and skipping %s",
				module, sym.Name, first.Token.Position(), sym.Token.Position())
			continue
		}
		seen[sym.Name] = sym
		names := make([]string, 0, set.Len())
		for _, r := range set.Regions() {
			names = append(names, syms.Name(r.Symbol()))
		}
		out = append(out, Signature{
			Module:  module,
			Symbol:  sym.Name,
			Kind:    sym.Kind.String(),
			Regions: names,
			RunID:   runID,
		})
	}
	return out
}

// Store handles SQLite storage for exported signatures.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens or creates the signature database at path.
// ":memory:" gives a private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open(config.ExportsDriver, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// In-memory databases are per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS signatures (
		module  TEXT NOT NULL,
		symbol  TEXT NOT NULL,
		kind    TEXT NOT NULL,
		regions JSON NOT NULL,
		run_id  TEXT NOT NULL,
		PRIMARY KEY (module, symbol)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}
	if err := checkSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// checkSchema stamps a fresh database with SchemaVersion, or verifies that
// an existing one is compatible with it.
func checkSchema(db *sql.DB) error {
	_, err := db.Exec("CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)")
	if err != nil {
		return fmt.Errorf("creating meta table: %w", err)
	}
	var stored string
	err = db.QueryRow("SELECT value FROM meta WHERE key = 'schema'").Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := db.Exec("INSERT INTO meta (key, value) VALUES ('schema', ?)", SchemaVersion); err != nil {
			return fmt.Errorf("writing schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	return compatible(stored)
}

func compatible(stored string) error {
	current := semver.MustParse(SchemaVersion)
	v, err := semver.NewVersion(stored)
	if err != nil {
		return fmt.Errorf("%w: schema version %q: %v", ErrIncompatibleSchema, stored, err)
	}
	c, err := semver.NewConstraint(fmt.Sprintf("^%d", current.Major()))
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: schema %s, want %s", ErrIncompatibleSchema, v, c)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save records sigs, replacing earlier records of the same symbols.
func (s *Store) Save(ctx context.Context, sigs []Signature) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, sig := range sigs {
		regions, err := json.Marshal(nonNil(sig.Regions))
		if err != nil {
			return fmt.Errorf("encoding regions of %s.%s: %w", sig.Module, sig.Symbol, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO signatures (module, symbol, kind, regions, run_id) VALUES (?, ?, ?, json(?), ?)",
			sig.Module, sig.Symbol, sig.Kind, string(regions), sig.RunID.String(),
		)
		if err != nil {
			return fmt.Errorf("saving %s.%s: %w", sig.Module, sig.Symbol, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing signatures: %w", err)
	}
	log.Infof("saved %d signatures", len(sigs))
	return nil
}

// Lookup returns the recorded signature of module.symbol.
func (s *Store) Lookup(ctx context.Context, module, symbol string) (Signature, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT module, symbol, kind, regions, run_id FROM signatures WHERE module = ? AND symbol = ?",
		module, symbol)
	sig, err := scanSignature(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Signature{}, ErrSignatureNotFound
	}
	return sig, err
}

// List returns all signatures recorded for module, ordered by symbol name.
func (s *Store) List(ctx context.Context, module string) ([]Signature, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT module, symbol, kind, regions, run_id FROM signatures WHERE module = ? ORDER BY symbol",
		module)
	if err != nil {
		return nil, fmt.Errorf("listing signatures: %w", err)
	}
	defer rows.Close()

	var out []Signature
	for rows.Next() {
		sig, err := scanSignature(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sig)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSignature(row scanner) (Signature, error) {
	var (
		sig     Signature
		regions string
		runID   string
	)
	if err := row.Scan(&sig.Module, &sig.Symbol, &sig.Kind, &regions, &runID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Signature{}, err
		}
		return Signature{}, fmt.Errorf("reading signature: %w", err)
	}
	if err := json.Unmarshal([]byte(regions), &sig.Regions); err != nil {
		return Signature{}, fmt.Errorf("decoding regions of %s.%s: %w", sig.Module, sig.Symbol, err)
	}
	id, err := uuid.Parse(runID)
	if err != nil {
		return Signature{}, fmt.Errorf("parsing run id of %s.%s: %w", sig.Module, sig.Symbol, err)
	}
	sig.RunID = id
	return sig, nil
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
