package partition

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-netclop/pkg/sigclu"
)

// Extension of partition files inside an ensemble directory
const Extension = ".csv"

// ReadPartition reads a partition file of "name,module[,flow]" records.
// Lines starting with '#' are comments and an optional "node,module" header
// is skipped. Modules are ordered by first appearance of their id.
func ReadPartition(path string) (sigclu.Partition, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open partition %s: %w", path, err)
	}
	defer r.Close()

	p, err := Decode(io.NewSectionReader(r, 0, int64(r.Len())))
	if err != nil {
		return nil, fmt.Errorf("read partition %s: %w", path, err)
	}
	return p, nil
}

// Decode parses partition records from r
func Decode(r io.Reader) (sigclu.Partition, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var (
		modules sigclu.Partition
		index   = make(map[string]int)
		seen    = make(map[sigclu.Node]string)
		first   = true
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, perr.Line, perr.Err)
			}
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}
		if len(record) < 2 || len(record) > 3 {
			return nil, fmt.Errorf("%w: line %d: want 2 or 3 fields, got %d", ErrMalformedRecord, line, len(record))
		}

		name := strings.TrimSpace(record[0])
		id := strings.TrimSpace(record[1])
		if name == "" || id == "" {
			return nil, fmt.Errorf("%w: line %d: empty node or module", ErrMalformedRecord, line)
		}
		if len(record) == 3 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64); err != nil {
				return nil, fmt.Errorf("%w: line %d: flow %q is not a number", ErrMalformedRecord, line, record[2])
			}
		}

		node := sigclu.Node(name)
		if prev, ok := seen[node]; ok {
			return nil, fmt.Errorf("%w: line %d: node %q listed in modules %s and %s", ErrMalformedRecord, line, name, prev, id)
		}
		seen[node] = id

		j, ok := index[id]
		if !ok {
			j = len(modules)
			index[id] = j
			modules = append(modules, sigclu.NewNodeSet())
		}
		modules[j].Add(node)
	}
	return modules, nil
}

func isHeader(record []string) bool {
	if len(record) < 2 {
		return false
	}
	name := strings.ToLower(strings.TrimSpace(record[0]))
	return (name == "node" || name == "name") && strings.EqualFold(strings.TrimSpace(record[1]), "module")
}

// ReplicateFiles returns the partition files of dir sorted by name
func ReplicateFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list replicates in %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), Extension) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s has no %s files", ErrNoReplicates, dir, Extension)
	}
	return files, nil
}

// ReadEnsemble reads every partition file of dir in name order
func ReadEnsemble(dir string) (sigclu.Ensemble, error) {
	files, err := ReplicateFiles(dir)
	if err != nil {
		return nil, err
	}

	ensemble := make(sigclu.Ensemble, 0, len(files))
	for _, f := range files {
		p, err := ReadPartition(f)
		if err != nil {
			return nil, err
		}
		ensemble = append(ensemble, p)
	}
	return ensemble, nil
}
