package networks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/bifrost-platform/asset-info-v2/models"
)

var ErrNetworkNotFound = fmt.Errorf("network not found")

// Endpoints maps network ids to the RPC nodes configured for them.
type Endpoints struct {
	networks map[string]Network
}

func NewEndpoints(ns ...Network) *Endpoints {
	result := &Endpoints{networks: map[string]Network{}}
	for _, n := range ns {
		if _, found := result.networks[n.GetName()]; found {
			panic(fmt.Errorf("network with name '%s' already exists", n.GetName()))
		}
		result.networks[n.GetName()] = n
	}
	return result
}

// LoadEndpoints reads the rpc list, a reference list of {id, url} sorted by
// id. A missing file yields an empty registry: every network then relies on
// its environment override or is skipped.
func LoadEndpoints(path string) (*Endpoints, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewEndpoints(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading rpc list %s: %w", path, err)
	}
	var refs models.ReferenceList
	if err := json.Unmarshal(content, &refs); err != nil {
		return nil, fmt.Errorf("parsing rpc list %s: %w", path, err)
	}
	ns := make([]Network, 0, len(refs))
	for _, ref := range refs {
		nodes := map[string]string{}
		if ref.URL != "" {
			nodes[string(ref.ID)] = ref.URL
		}
		ns = append(ns, NewGenericNetwork(GenericNetworkConfig{
			Name:             string(ref.ID),
			NodeVariableName: GetNodeVariableName(ref.ID),
			DefaultNodes:     nodes,
		}))
	}
	return NewEndpoints(ns...), nil
}

func (e *Endpoints) GetNetwork(id models.ID) (Network, error) {
	res, found := e.networks[string(id)]
	if !found {
		return nil, fmt.Errorf("network '%s': %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

// Network returns the rpc list entry for id, or an entry without nodes when
// the list does not name it, so that the environment override still applies.
func (e *Endpoints) Network(id models.ID) Network {
	if n, err := e.GetNetwork(id); err == nil {
		return n
	}
	return NewGenericNetwork(GenericNetworkConfig{
		Name:             string(id),
		NodeVariableName: GetNodeVariableName(id),
		DefaultNodes:     map[string]string{},
	})
}

// Names lists the networks with an rpc list entry, sorted.
func (e *Endpoints) Names() []string {
	res := make([]string, 0, len(e.networks))
	for name := range e.networks {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// GetNodes returns the nodes for id. A non-empty environment override
// (comma separated urls) replaces the rpc list entry and also works for
// networks the list does not mention. An empty map means the network has no
// endpoint.
func (e *Endpoints) GetNodes(id models.ID) map[string]string {
	varName := GetNodeVariableName(id)
	if n, err := e.GetNetwork(id); err == nil {
		varName = n.GetNodeVariableName()
	}
	if override := strings.TrimSpace(os.Getenv(varName)); override != "" {
		nodes := map[string]string{}
		for i, url := range strings.Split(override, ",") {
			if url = strings.TrimSpace(url); url != "" {
				nodes[fmt.Sprintf("%s-env-%d", id, i)] = url
			}
		}
		return nodes
	}
	n, err := e.GetNetwork(id)
	if err != nil {
		return map[string]string{}
	}
	nodes := map[string]string{}
	for name, url := range n.GetDefaultNodes() {
		nodes[name] = url
	}
	return nodes
}
