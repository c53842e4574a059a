package types

type AssetClassName string

const (
	AssetClassStock  AssetClassName = "STOCK"
	AssetClassCrypto AssetClassName = "CRYPTO"
	AssetClassForex  AssetClassName = "FOREX"
	AssetClassIndex  AssetClassName = "INDEX"
)

// AssetClass carries the leverage policy for a class of tradable symbols.
type AssetClass struct {
	Name        AssetClassName `json:"name"`
	MaxLeverage int            `json:"maxLeverage"`
}
