package stats

// AssetMeta describes a supported reserve asset.
type AssetMeta struct {
	Name     string
	Decimals uint8
}

// assetMetadata maps asset symbols to display metadata. On-chain amounts
// for an asset are fixed-point integers scaled by 10^Decimals.
var assetMetadata = map[string]AssetMeta{
	"USDC": {Name: "USD Coin", Decimals: 6},
	"WETH": {Name: "Wrapped Ether", Decimals: 18},
	"DAI":  {Name: "Dai Stablecoin", Decimals: 18},
	"USDT": {Name: "Tether USD", Decimals: 6},
	"WBTC": {Name: "Wrapped Bitcoin", Decimals: 8},
	"LINK": {Name: "Chainlink", Decimals: 18},
}

const defaultDecimals = 18

// AssetDecimals returns the fixed-point scale for an asset symbol,
// defaulting to 18 for unknown assets.
func AssetDecimals(asset string) uint8 {
	if meta, ok := assetMetadata[asset]; ok {
		return meta.Decimals
	}
	return defaultDecimals
}
