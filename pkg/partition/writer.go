package partition

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/dd0wney/cluso-netclop/pkg/sigclu"
)

// NodeTableHeader is the first row of a node table
var NodeTableHeader = []string{"node", "module", "core", "stability"}

// WriteNodeTable writes the node table of result to path
func WriteNodeTable(path string, result *sigclu.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create node table: %w", err)
	}
	if err := EncodeNodeTable(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeNodeTable writes one row per reference node ordered by module and
// node. Modules are numbered from 1; core is the 1-based core index within
// the module and 0 for nodes outside every core, whose stability is empty.
func EncodeNodeTable(w io.Writer, result *sigclu.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(NodeTableHeader); err != nil {
		return fmt.Errorf("write node table: %w", err)
	}

	assignments := result.Assignments()
	for _, m := range result.Modules {
		nodes := m.Module.Sorted()
		sort.SliceStable(nodes, func(i, j int) bool {
			return coreOrder(assignments[nodes[i]].Core) < coreOrder(assignments[nodes[j]].Core)
		})

		for _, n := range nodes {
			a := assignments[n]
			stability := ""
			if a.Core > 0 {
				stability = strconv.FormatFloat(m.Stability[a.Core-1], 'f', 4, 64)
			}
			row := []string{string(n), strconv.Itoa(m.Index + 1), strconv.Itoa(a.Core), stability}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write node table: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write node table: %w", err)
	}
	return nil
}

// coreOrder sorts core members first and unassigned nodes last
func coreOrder(core int) int {
	if core == 0 {
		return int(^uint(0) >> 1)
	}
	return core
}
