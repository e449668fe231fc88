package networks

import (
	"strconv"
	"strings"

	"github.com/bifrost-platform/asset-info-v2/models"
)

const evmIDPrefix = "evm-"

type GenericNetworkConfig struct {
	Name             string            `json:"name"`
	NodeVariableName string            `json:"node_variable_name"`
	DefaultNodes     map[string]string `json:"default_nodes"`
}

// GenericNetwork is a network whose endpoints come from the repository's
// rpc list.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() (uint64, bool) {
	return ChainIDFromNetworkID(models.ID(gn.config.Name))
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}

// ChainIDFromNetworkID extracts n from an "evm-<n>" network id.
func ChainIDFromNetworkID(id models.ID) (uint64, bool) {
	rest, ok := strings.CutPrefix(string(id), evmIDPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// GetNodeVariableName is the environment variable that overrides the nodes
// of a network, e.g. ASSETINFO_NODE_EVM_1.
func GetNodeVariableName(id models.ID) string {
	return "ASSETINFO_NODE_" + strings.ToUpper(strings.ReplaceAll(string(id), "-", "_"))
}
