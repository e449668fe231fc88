package validation

import (
	"fmt"
	"strconv"

	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/store"
)

// NativeCoinTag marks the contract that mirrors a network's currency.
const NativeCoinTag = "native-coin"

func addressEqual(a, b models.Address) bool {
	eq, err := a.Equal(b)
	return err == nil && eq
}

// checkCurrencies requires each network's currency to mirror exactly one
// contract, on that network, of the asset it names.
func (c *Corpus) checkCurrencies() []*Violation {
	var vs []*Violation
	for _, ne := range c.Snapshot.Networks.Entries {
		n := ne.Record
		asset, found := c.Asset(n.Currency.ID)
		if !found {
			continue
		}
		e := store.RecordEntry{Record: n, Path: ne.Path}
		related := []string{recordRef(models.CategoryAsset, asset.Record.ID)}
		fail := func(rule, field, msg string) *Violation {
			v := c.on(e, ConsistencyViolation, rule)
			v.Field = field
			v.Message = msg
			v.Related = related
			return v
		}

		onNetwork := asset.Record.Contracts.OnNetwork(n.ID)
		var matches []models.Contract
		for _, contract := range onNetwork {
			if addressEqual(contract.Address, n.Currency.Address) {
				matches = append(matches, contract)
			}
		}
		switch {
		case len(onNetwork) == 0:
			vs = append(vs, fail("currency-contract-missing", "currency",
				fmt.Sprintf("asset %q has no contract on network %q", asset.Record.ID, n.ID)))
			continue
		case len(matches) == 0:
			v := fail("currency-address", "currency.address",
				fmt.Sprintf("no contract of asset %q on network %q has the currency address", asset.Record.ID, n.ID))
			v.Actual = n.Currency.Address.String()
			v.Expected = onNetwork[0].Address.String()
			vs = append(vs, v)
			continue
		case len(matches) > 1:
			vs = append(vs, fail("currency-ambiguous", "currency.address",
				fmt.Sprintf("asset %q lists the currency address %d times on network %q", asset.Record.ID, len(matches), n.ID)))
			continue
		}

		contract := matches[0]
		mismatch := func(field, want, got string) {
			if want == got {
				return
			}
			v := fail("currency-mismatch", "currency."+field,
				fmt.Sprintf("currency %s differs from the %s of the contract in asset %q", field, field, asset.Record.ID))
			v.Expected = want
			v.Actual = got
			vs = append(vs, v)
		}
		mismatch("decimals", strconv.Itoa(contract.Decimals), strconv.Itoa(n.Currency.Decimals))
		mismatch("name", contract.Name, n.Currency.Name)
		mismatch("symbol", contract.Symbol, n.Currency.Symbol)

		if n.Network.IsUnknown() {
			continue
		}
		for _, tag := range []string{NativeCoinTag, n.Network.String()} {
			if !contract.Tags.Contains(tag) {
				v := fail("currency-contract-tag", "currency",
					fmt.Sprintf("the currency contract in asset %q must be tagged %q", asset.Record.ID, tag))
				v.Expected = tag
				vs = append(vs, v)
			}
		}
	}
	return vs
}

// checkContractNetworkTags requires every contract to carry the network
// type of the network it is deployed on.
func (c *Corpus) checkContractNetworkTags() []*Violation {
	var vs []*Violation
	for _, ae := range c.Snapshot.Assets.Entries {
		e := store.RecordEntry{Record: ae.Record, Path: ae.Path}
		for i, contract := range ae.Record.Contracts {
			network, found := c.Network(contract.Network)
			if !found {
				continue
			}
			tag := network.Record.Network.String()
			if contract.Tags.Contains(tag) {
				continue
			}
			v := c.on(e, ConsistencyViolation, "contract-network-tag")
			v.Field = fmt.Sprintf("contracts[%d].tags", i)
			v.Message = fmt.Sprintf("contract on %q must be tagged with its network type %q", contract.Network, tag)
			v.Expected = tag
			v.Related = []string{recordRef(models.CategoryNetwork, network.Record.ID)}
			vs = append(vs, v)
		}
	}
	return vs
}

// checkDirectories requires each record's id to equal its directory name.
func (c *Corpus) checkDirectories() []*Violation {
	var vs []*Violation
	for _, cat := range models.InfoCategories() {
		for _, e := range c.Snapshot.Entries(cat) {
			if dir := e.DirName(); dir != string(e.Record.GetID()) {
				v := c.on(e, ConsistencyViolation, "dir-id-mismatch")
				v.Field = "id"
				v.Message = "id must equal the name of the record directory"
				v.Expected = dir
				v.Actual = string(e.Record.GetID())
				vs = append(vs, v)
			}
		}
	}
	return vs
}
