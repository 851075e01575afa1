package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"

	"github.com/dd0wney/cluso-netclop/pkg/sigclu"
)

// Run is a stored clustering run
type Run struct {
	ID         string
	CreatedAt  time.Time
	Seed       int64
	Scheme     string
	Modules    int
	Replicates int
	Digest     string
	Config     sigclu.Config
	Cores      []Core
}

// Core is one stored core. Module and Index are 0-based.
type Core struct {
	Module    int
	Index     int
	Stability float64
	Nodes     []sigclu.Node
}

// NewRunID returns a fresh random run id
func NewRunID() string {
	return uuid.NewString()
}

// NewRun captures result under id. Core nodes are stored in sorted order.
func NewRun(id string, result *sigclu.Result, cfg sigclu.Config, scheme, digest string) *Run {
	run := &Run{
		ID:         id,
		CreatedAt:  time.Now().UTC(),
		Seed:       result.Seed,
		Scheme:     scheme,
		Modules:    len(result.Modules),
		Replicates: result.Replicates,
		Digest:     digest,
		Config:     cfg,
	}
	for _, m := range result.Modules {
		for i, core := range m.Cores {
			run.Cores = append(run.Cores, Core{
				Module:    m.Index,
				Index:     i,
				Stability: m.Stability[i],
				Nodes:     core.Sorted(),
			})
		}
	}
	return run
}

func encodeNodes(nodes []sigclu.Node) ([]byte, error) {
	data, err := json.Marshal(nodes)
	if err != nil {
		return nil, fmt.Errorf("marshal core nodes: %w", err)
	}
	return snappy.Encode(nil, data), nil
}

func decodeNodes(raw []byte) ([]sigclu.Node, error) {
	data, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, fmt.Errorf("decompress core nodes: %w", err)
	}
	var nodes []sigclu.Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("unmarshal core nodes: %w", err)
	}
	return nodes, nil
}

// Size returns the number of nodes in the core
func (c Core) Size() int {
	return len(c.Nodes)
}
