package networks

// Network is a chain the on-chain checks can reach over JSON-RPC.
type Network interface {
	GetName() string
	GetChainID() (uint64, bool)
	GetNodeVariableName() string
	GetDefaultNodes() map[string]string
}
