// Package input reads integers and congruence systems for the command line
// tool from JSON and CSV files.
package input

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
	"github.com/mahdiidarabi/cryptomath/pkg/numtheory"
)

// ErrUnsupportedFormat is returned for files that are neither .json nor .csv.
var ErrUnsupportedFormat = errors.New("input: unsupported file format")

// Parser reads integers and congruences from a stream.
type Parser interface {
	// ParseIntegers reads a list of integers.
	ParseIntegers(r io.Reader) ([]bigint.Int, error)

	// ParseCongruences reads a list of x ≡ residue (mod modulus) constraints.
	ParseCongruences(r io.Reader) ([]numtheory.Congruence, error)
}

// ForFile picks a parser from the file extension.
func ForFile(path string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return &JSONParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ReadIntegers parses the integers in a .json or .csv file.
func ReadIntegers(path string) ([]bigint.Int, error) {
	p, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return p.ParseIntegers(file)
}

// ReadCongruences parses the congruence system in a .json or .csv file.
func ReadCongruences(path string) ([]numtheory.Congruence, error) {
	p, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return p.ParseCongruences(file)
}

// JSONParser reads JSON arrays.
//
// Integers:
//
//	["123", 45, "0xff", "-7"]
//
// Congruences:
//
//	[{"residue": "2", "modulus": "3"}, {"residue": 3, "modulus": 5}]
type JSONParser struct {
	ResidueField string // default: "residue"
	ModulusField string // default: "modulus"
}

// ParseIntegers implements Parser.
func (p *JSONParser) ParseIntegers(r io.Reader) ([]bigint.Int, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber() // keep large numbers exact

	var items []any
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	values := make([]bigint.Int, 0, len(items))
	for i, item := range items {
		v, err := ParseValue(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// ParseCongruences implements Parser.
func (p *JSONParser) ParseCongruences(r io.Reader) ([]numtheory.Congruence, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var items []map[string]any
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	residueField := orDefault(p.ResidueField, "residue")
	modulusField := orDefault(p.ModulusField, "modulus")

	system := make([]numtheory.Congruence, 0, len(items))
	for i, item := range items {
		rVal, ok := item[residueField]
		if !ok {
			return nil, fmt.Errorf("item %d: missing %s field", i, residueField)
		}
		mVal, ok := item[modulusField]
		if !ok {
			return nil, fmt.Errorf("item %d: missing %s field", i, modulusField)
		}
		c, err := congruence(rVal, mVal)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		system = append(system, c)
	}
	return system, nil
}

// CSVParser reads CSV files with a header row. Integers come from the value
// column; congruences from the residue and modulus columns.
type CSVParser struct {
	ValueCol   string // default: "value"
	ResidueCol string // default: "residue"
	ModulusCol string // default: "modulus"
}

// ParseIntegers implements Parser.
func (p *CSVParser) ParseIntegers(r io.Reader) ([]bigint.Int, error) {
	valueCol := orDefault(p.ValueCol, "value")
	var values []bigint.Int
	err := readCSV(r, []string{valueCol}, func(fields []string) error {
		v, err := ParseValue(fields[0])
		if err != nil {
			return err
		}
		values = append(values, v)
		return nil
	})
	return values, err
}

// ParseCongruences implements Parser.
func (p *CSVParser) ParseCongruences(r io.Reader) ([]numtheory.Congruence, error) {
	cols := []string{orDefault(p.ResidueCol, "residue"), orDefault(p.ModulusCol, "modulus")}
	var system []numtheory.Congruence
	err := readCSV(r, cols, func(fields []string) error {
		c, err := congruence(fields[0], fields[1])
		if err != nil {
			return err
		}
		system = append(system, c)
		return nil
	})
	return system, err
}

// readCSV calls row with the named columns of every record after the header.
func readCSV(r io.Reader, columns []string, row func([]string) error) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	idx := make([]int, len(columns))
	for i, name := range columns {
		idx[i] = -1
		for j, col := range header {
			if strings.TrimSpace(col) == name {
				idx[i] = j
			}
		}
		if idx[i] == -1 {
			return fmt.Errorf("missing required column: %s", name)
		}
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read record: %w", err)
		}
		fields := make([]string, len(idx))
		for i, j := range idx {
			if j >= len(record) {
				return fmt.Errorf("line %d: %s column out of range", line, columns[i])
			}
			fields[i] = record[j]
		}
		if err := row(fields); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func congruence(residue, modulus any) (numtheory.Congruence, error) {
	r, err := ParseValue(residue)
	if err != nil {
		return numtheory.Congruence{}, fmt.Errorf("failed to parse residue: %w", err)
	}
	m, err := ParseValue(modulus)
	if err != nil {
		return numtheory.Congruence{}, fmt.Errorf("failed to parse modulus: %w", err)
	}
	return numtheory.Congruence{Residue: r, Modulus: m}, nil
}

// ParseCongruence parses "residue:modulus", as accepted on the command line.
func ParseCongruence(s string) (numtheory.Congruence, error) {
	residue, modulus, ok := strings.Cut(s, ":")
	if !ok {
		return numtheory.Congruence{}, fmt.Errorf("congruence %q: expected residue:modulus", s)
	}
	return congruence(residue, modulus)
}

// ParseValue parses an integer given as a decimal string, a 0x-prefixed hex
// string (optionally negative) or a JSON number.
func ParseValue(val any) (bigint.Int, error) {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		neg := strings.HasPrefix(s, "-")
		digits := strings.TrimPrefix(s, "-")
		if !strings.HasPrefix(digits, "0x") && !strings.HasPrefix(digits, "0X") {
			return bigint.ParseStrict(s)
		}

		digits = digits[2:]
		if len(digits)%2 == 1 {
			digits = "0" + digits
		}
		raw, err := hex.DecodeString(digits)
		if err != nil || len(digits) == 0 {
			return bigint.Zero(), fmt.Errorf("%w: %q", bigint.ErrSyntax, v)
		}
		x := bigint.FromUint(bigint.UintFromBytes(raw))
		if neg {
			x = x.Neg()
		}
		return x, nil

	case json.Number:
		return bigint.ParseStrict(string(v))

	case int64:
		return bigint.New(v), nil

	case int:
		return bigint.New(int64(v)), nil

	default:
		return bigint.Zero(), fmt.Errorf("unsupported type: %T", val)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
