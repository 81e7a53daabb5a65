// Package store provides the SQLite-backed persistence for reminder series
// and their exception overlays.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps the reminders database. It satisfies series.Store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get loads one series and its exceptions. found is false for unknown ids.
func (s *Store) Get(id string) (model.Series, bool, error) {
	row := s.db.QueryRow(`SELECT
		id, title, amount, anchor_date, rule_kind, rule_interval, days_of_week,
		end_kind, end_count, end_date, paid, template_id, transaction_id,
		created_at, updated_at
		FROM series WHERE id = ?`, id)

	ser, err := scanSeries(row)
	if err == sql.ErrNoRows {
		return model.Series{}, false, nil
	}
	if err != nil {
		return model.Series{}, false, err
	}

	if err := s.loadExceptions(&ser); err != nil {
		return model.Series{}, false, err
	}
	return ser, true, nil
}

// List loads every series, ordered by anchor date.
func (s *Store) List() ([]model.Series, error) {
	rows, err := s.db.Query(`SELECT
		id, title, amount, anchor_date, rule_kind, rule_interval, days_of_week,
		end_kind, end_count, end_date, paid, template_id, transaction_id,
		created_at, updated_at
		FROM series ORDER BY anchor_date, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Series
	for rows.Next() {
		ser, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ser)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := s.loadExceptions(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Put stores a series and rewrites its exceptions in one transaction.
func (s *Store) Put(ser model.Series) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := putTx(tx, ser); err != nil {
		return err
	}
	return tx.Commit()
}

// PutPair stores two series atomically: both commit or neither does. This
// is the write behind a series split.
func (s *Store) PutPair(a, b model.Series) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := putTx(tx, a); err != nil {
		return err
	}
	if err := putTx(tx, b); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a series; its exceptions cascade.
func (s *Store) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM series WHERE id = ?", id)
	return err
}

// Count returns the number of stored series.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM series").Scan(&count)
	return count, err
}

func putTx(tx *sql.Tx, ser model.Series) error {
	var endCount sql.NullInt64
	var endDate sql.NullString
	switch ser.Rule.End.Kind {
	case model.EndAfter:
		endCount = sql.NullInt64{Int64: int64(ser.Rule.End.Count), Valid: true}
	case model.EndOn:
		endDate = sql.NullString{String: dateutil.DayKey(ser.Rule.End.Date), Valid: true}
	}

	var daysOfWeek sql.NullString
	if ser.Rule.DaysOfWeek != nil {
		daysOfWeek = sql.NullString{String: joinDays(ser.Rule.DaysOfWeek), Valid: true}
	}

	paid := 0
	if ser.Paid {
		paid = 1
	}

	_, err := tx.Exec(`INSERT OR REPLACE INTO series
		(id, title, amount, anchor_date, rule_kind, rule_interval, days_of_week,
		 end_kind, end_count, end_date, paid, template_id, transaction_id,
		 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ser.ID, ser.Title, ser.Amount.String(), dateutil.DayKey(ser.AnchorDate),
		string(ser.Rule.Kind), ser.Rule.Interval, daysOfWeek,
		string(ser.Rule.End.Kind), endCount, endDate, paid,
		nullable(ser.TemplateID), nullable(ser.TransactionID),
		ser.CreatedAt.UTC().Format(time.RFC3339), ser.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM exceptions WHERE series_id = ?", ser.ID); err != nil {
		return err
	}

	// Deterministic write order keeps the db diffable.
	keys := make([]string, 0, len(ser.Exceptions))
	for key := range ser.Exceptions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		exc := ser.Exceptions[key]

		var amount, date, txnID, title sql.NullString
		var excPaid sql.NullInt64
		if exc.Title != nil {
			title = sql.NullString{String: *exc.Title, Valid: true}
		}
		if exc.Amount != nil {
			amount = sql.NullString{String: exc.Amount.String(), Valid: true}
		}
		if exc.Date != nil {
			date = sql.NullString{String: dateutil.DayKey(*exc.Date), Valid: true}
		}
		if exc.Paid != nil {
			v := int64(0)
			if *exc.Paid {
				v = 1
			}
			excPaid = sql.NullInt64{Int64: v, Valid: true}
		}
		if exc.TransactionID != nil {
			txnID = sql.NullString{String: *exc.TransactionID, Valid: true}
		}

		_, err := tx.Exec(`INSERT INTO exceptions
			(series_id, original_date, action, title, amount, date, paid, transaction_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ser.ID, key, string(exc.Action), title, amount, date, excPaid, txnID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSeries(row rowScanner) (model.Series, error) {
	var ser model.Series
	var amount, anchorDate, ruleKind, endKind, createdAt, updatedAt string
	var daysOfWeek, endDate, templateID, transactionID sql.NullString
	var endCount sql.NullInt64
	var paid int

	err := row.Scan(
		&ser.ID, &ser.Title, &amount, &anchorDate, &ruleKind, &ser.Rule.Interval, &daysOfWeek,
		&endKind, &endCount, &endDate, &paid, &templateID, &transactionID,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return model.Series{}, err
	}

	ser.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return model.Series{}, fmt.Errorf("series %s: parsing amount %q: %w", ser.ID, amount, err)
	}
	ser.AnchorDate, err = dateutil.ParseDayKey(anchorDate)
	if err != nil {
		return model.Series{}, fmt.Errorf("series %s: parsing anchor_date %q: %w", ser.ID, anchorDate, err)
	}

	ser.Rule.Kind = model.RuleKind(ruleKind)
	if daysOfWeek.Valid {
		ser.Rule.DaysOfWeek, err = splitDays(daysOfWeek.String)
		if err != nil {
			return model.Series{}, fmt.Errorf("series %s: parsing days_of_week %q: %w", ser.ID, daysOfWeek.String, err)
		}
	}

	ser.Rule.End.Kind = model.EndKind(endKind)
	if endCount.Valid {
		ser.Rule.End.Count = int(endCount.Int64)
	}
	if endDate.Valid {
		ser.Rule.End.Date, err = dateutil.ParseDayKey(endDate.String)
		if err != nil {
			return model.Series{}, fmt.Errorf("series %s: parsing end_date %q: %w", ser.ID, endDate.String, err)
		}
	}

	ser.Paid = paid != 0
	if templateID.Valid {
		ser.TemplateID = templateID.String
	}
	if transactionID.Valid {
		ser.TransactionID = transactionID.String
	}
	ser.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	ser.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return ser, nil
}

func (s *Store) loadExceptions(ser *model.Series) error {
	rows, err := s.db.Query(`SELECT
		original_date, action, title, amount, date, paid, transaction_id
		FROM exceptions WHERE series_id = ?`, ser.ID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key, action string
		var title, amount, date, txnID sql.NullString
		var paid sql.NullInt64

		if err := rows.Scan(&key, &action, &title, &amount, &date, &paid, &txnID); err != nil {
			return err
		}

		exc := model.Exception{Action: model.ExceptionAction(action)}
		if title.Valid {
			exc.Title = &title.String
		}
		if amount.Valid {
			d, err := decimal.NewFromString(amount.String)
			if err != nil {
				return fmt.Errorf("series %s exception %s: parsing amount %q: %w", ser.ID, key, amount.String, err)
			}
			exc.Amount = &d
		}
		if date.Valid {
			d, err := dateutil.ParseDayKey(date.String)
			if err != nil {
				return fmt.Errorf("series %s exception %s: parsing date %q: %w", ser.ID, key, date.String, err)
			}
			exc.Date = &d
		}
		if paid.Valid {
			v := paid.Int64 != 0
			exc.Paid = &v
		}
		if txnID.Valid {
			exc.TransactionID = &txnID.String
		}

		ser.SetException(key, exc)
	}
	return rows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func joinDays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func splitDays(s string) ([]int, error) {
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	days := make([]int, len(parts))
	for i, p := range parts {
		d, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		days[i] = d
	}
	return days, nil
}
