// Package loader reads memory access traces.
//
// A trace is a text file with one access per line:
//
//	<kind> <address> [ignored...]
//
// where kind is "l" for a load or "s" for a store and the address is a
// decimal or 0x-prefixed hexadecimal 32-bit value. Blank lines are skipped.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/timing/core"
)

// ErrMalformedLine is returned for a line that is not a valid access.
var ErrMalformedLine = errors.New("malformed trace line")

// Load reads the trace file at path.
func Load(path string) ([]core.AccessRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace %s: %w", path, err)
	}

	return records, nil
}

// Read parses a whole trace from r.
func Read(r io.Reader) ([]core.AccessRecord, error) {
	var records []core.AccessRecord

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		rec, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if ok {
			records = append(records, rec)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan trace: %w", err)
	}

	return records, nil
}

// parseLine parses one trace line. ok is false for blank lines.
func parseLine(line string) (rec core.AccessRecord, ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return core.AccessRecord{}, false, nil
	}
	if len(fields) < 2 {
		return core.AccessRecord{}, false,
			fmt.Errorf("%w: missing address in %q", ErrMalformedLine, line)
	}

	switch fields[0] {
	case "l":
		rec.IsLoad = true
	case "s":
		rec.IsLoad = false
	default:
		return core.AccessRecord{}, false,
			fmt.Errorf("%w: unknown access kind %q", ErrMalformedLine, fields[0])
	}

	addr, err := ParseAddress(fields[1])
	if err != nil {
		return core.AccessRecord{}, false, err
	}
	rec.Addr = addr

	return rec, true, nil
}

// ParseAddress parses a decimal or 0x-prefixed hexadecimal 32-bit address.
func ParseAddress(s string) (uint32, error) {
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}

	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad address %q", ErrMalformedLine, s)
	}

	return uint32(v), nil
}

// Write emits records in trace format, addresses in hexadecimal.
func Write(w io.Writer, records []core.AccessRecord) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		kind := "s"
		if rec.IsLoad {
			kind = "l"
		}
		if _, err := fmt.Fprintf(bw, "%s %#x\n", kind, rec.Addr); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
	}
	return bw.Flush()
}
