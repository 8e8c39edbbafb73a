package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/stmtledger/internal/model"
)

// Header is the CSV header of an exported ledger. The marker column holds
// the printed type marker (CR, DR, ...) that decided a record, if any.
const Header = "date,type,description,amount,balance,category,marker"

const (
	numFields  = 7
	dateFormat = "2006-01-02"
	colDate    = 0
	colType    = 1
	colDesc    = 2
	colAmount  = 3
	colBalance = 4
	colCat     = 5
	colMarker  = 6
)

// WriteLedger writes records, including the header, in the order given.
func WriteLedger(w io.Writer, records []model.TransactionRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadLedger reads records written by WriteLedger.
func ReadLedger(r io.Reader) ([]model.TransactionRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if strings.Join(rows[0], ",") != Header {
		return nil, fmt.Errorf("unexpected ledger header %q", strings.Join(rows[0], ","))
	}

	var records []model.TransactionRecord
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rec.Line = i + 2
		records = append(records, rec)
	}
	return records, nil
}

// MarshalRecord converts a record to a CSV row. A missing balance is written
// as an empty cell.
func MarshalRecord(rec model.TransactionRecord) []string {
	row := make([]string, numFields)
	row[colDate] = rec.Date.Format(dateFormat)
	row[colType] = string(rec.Type)
	row[colDesc] = rec.Description
	row[colAmount] = rec.Amount.StringFixed(2)
	if rec.Balance.Valid {
		row[colBalance] = rec.Balance.Decimal.StringFixed(2)
	}
	row[colCat] = rec.Category
	row[colMarker] = rec.Marker
	return row
}

// UnmarshalRecord converts a CSV row to a record.
func UnmarshalRecord(row []string) (model.TransactionRecord, error) {
	if len(row) != numFields {
		return model.TransactionRecord{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	date, err := time.Parse(dateFormat, row[colDate])
	if err != nil {
		return model.TransactionRecord{}, fmt.Errorf("parsing date %q: %w", row[colDate], err)
	}

	amount, err := decimal.NewFromString(row[colAmount])
	if err != nil {
		return model.TransactionRecord{}, fmt.Errorf("parsing amount %q: %w", row[colAmount], err)
	}

	var balance decimal.NullDecimal
	if row[colBalance] != "" {
		b, err := decimal.NewFromString(row[colBalance])
		if err != nil {
			return model.TransactionRecord{}, fmt.Errorf("parsing balance %q: %w", row[colBalance], err)
		}
		balance = decimal.NewNullDecimal(b)
	}

	return model.TransactionRecord{
		Date:        date,
		Type:        model.ParseDirection(row[colType]),
		Description: row[colDesc],
		Amount:      amount,
		Balance:     balance,
		Category:    row[colCat],
		Marker:      row[colMarker],
	}, nil
}
