package timeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/model"
)

// Header is the CSV header for exported timelines.
const Header = "series_id,scheduled_date,original_date,title,amount,status,paid,materialized,transaction_id"

const (
	numFields       = 9
	colSeriesID     = 0
	colScheduled    = 1
	colOriginal     = 2
	colTitle        = 3
	colAmount       = 4
	colStatus       = 5
	colPaid         = 6
	colMaterialized = 7
	colTxnID        = 8
)

// WriteOccurrences exports occurrences as CSV (including header), each row
// classified against now.
func WriteOccurrences(w io.Writer, occs []model.Occurrence, now time.Time) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, occ := range occs {
		if err := cw.Write(MarshalOccurrence(occ, now)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadOccurrences parses an exported timeline back into occurrences.
func ReadOccurrences(r io.Reader) ([]model.Occurrence, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading timeline CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var occs []model.Occurrence
	for i, rec := range records[1:] {
		occ, err := UnmarshalOccurrence(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		occs = append(occs, occ)
	}
	return occs, nil
}

// MarshalOccurrence converts an occurrence to a CSV row.
func MarshalOccurrence(occ model.Occurrence, now time.Time) []string {
	row := make([]string, numFields)
	row[colSeriesID] = occ.SeriesID
	row[colScheduled] = occ.ScheduledDate.Format(dateutil.DayFormat)
	row[colOriginal] = occ.OriginalDate.Format(dateutil.DayFormat)
	row[colTitle] = occ.Title
	row[colAmount] = occ.Amount.StringFixed(2)
	row[colStatus] = string(Classify(occ, now))
	row[colPaid] = strconv.FormatBool(occ.Paid)
	row[colMaterialized] = strconv.FormatBool(occ.Materialized)
	row[colTxnID] = occ.TransactionID
	return row
}

// UnmarshalOccurrence converts a CSV row to an occurrence. The status
// column is derived on export and ignored on import.
func UnmarshalOccurrence(record []string) (model.Occurrence, error) {
	if len(record) != numFields {
		return model.Occurrence{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	scheduled, err := time.Parse(dateutil.DayFormat, record[colScheduled])
	if err != nil {
		return model.Occurrence{}, fmt.Errorf("parsing scheduled_date %q: %w", record[colScheduled], err)
	}
	original, err := time.Parse(dateutil.DayFormat, record[colOriginal])
	if err != nil {
		return model.Occurrence{}, fmt.Errorf("parsing original_date %q: %w", record[colOriginal], err)
	}
	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Occurrence{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	paid, err := strconv.ParseBool(record[colPaid])
	if err != nil {
		return model.Occurrence{}, fmt.Errorf("parsing paid %q: %w", record[colPaid], err)
	}
	materialized, err := strconv.ParseBool(record[colMaterialized])
	if err != nil {
		return model.Occurrence{}, fmt.Errorf("parsing materialized %q: %w", record[colMaterialized], err)
	}

	return model.Occurrence{
		SeriesID:      record[colSeriesID],
		ScheduledDate: scheduled,
		OriginalDate:  original,
		Title:         record[colTitle],
		Amount:        amount,
		Paid:          paid,
		Materialized:  materialized,
		TransactionID: record[colTxnID],
	}, nil
}
