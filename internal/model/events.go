package model

// EventKind discriminates protocol event variants.
type EventKind string

const (
	KindSupply          EventKind = "Supply"
	KindBorrow          EventKind = "Borrow"
	KindWithdraw        EventKind = "Withdraw"
	KindRepay           EventKind = "Repay"
	KindFlashLoan       EventKind = "FlashLoan"
	KindLiquidationCall EventKind = "LiquidationCall"
	KindSwap            EventKind = "Swap"
)

// KnownKinds lists every decodable event kind.
var KnownKinds = []EventKind{
	KindSupply,
	KindBorrow,
	KindWithdraw,
	KindRepay,
	KindFlashLoan,
	KindLiquidationCall,
	KindSwap,
}

const (
	ProtocolAaveV3    = "aave-v3"
	ProtocolUniswapV3 = "uniswap-v3"
)

// VolumeContribution is one (asset, amount) pair an event adds to volume
// totals. Amounts are decimal-string encodings of unsigned 256-bit integers.
type VolumeContribution struct {
	Asset  string
	Amount string
}

// EventData is the variant part of an Event. Every variant resolves its
// primary asset, actor, and amount via a fixed field-priority list, and
// exposes all asset-/actor-bearing values for cross-field matching.
type EventData interface {
	Kind() EventKind
	PrimaryAsset() string
	PrimaryActor() string
	PrimaryAmount() string
	PrimaryAmountUSD() string
	Assets() []string
	Actors() []string
	VolumeContributions() []VolumeContribution
}

// SupplyEventData is a decoded Aave V3 Supply payload.
type SupplyEventData struct {
	Reserve      string `json:"reserve"`
	User         string `json:"user"`
	OnBehalfOf   string `json:"onBehalfOf,omitempty"`
	Amount       string `json:"amount"`
	AmountUSD    string `json:"amountUSD,omitempty"`
	ReferralCode int    `json:"referralCode,omitempty"`
}

func (e SupplyEventData) Kind() EventKind          { return KindSupply }
func (e SupplyEventData) PrimaryAsset() string     { return e.Reserve }
func (e SupplyEventData) PrimaryActor() string     { return e.User }
func (e SupplyEventData) PrimaryAmount() string    { return e.Amount }
func (e SupplyEventData) PrimaryAmountUSD() string { return e.AmountUSD }
func (e SupplyEventData) Assets() []string         { return []string{e.Reserve} }
func (e SupplyEventData) Actors() []string         { return []string{e.User} }
func (e SupplyEventData) VolumeContributions() []VolumeContribution {
	return []VolumeContribution{{Asset: e.Reserve, Amount: e.Amount}}
}

// BorrowEventData is a decoded Aave V3 Borrow payload.
type BorrowEventData struct {
	Reserve          string `json:"reserve"`
	User             string `json:"user"`
	OnBehalfOf       string `json:"onBehalfOf,omitempty"`
	Amount           string `json:"amount"`
	AmountUSD        string `json:"amountUSD,omitempty"`
	InterestRateMode int    `json:"interestRateMode,omitempty"`
	BorrowRate       string `json:"borrowRate,omitempty"`
}

func (e BorrowEventData) Kind() EventKind          { return KindBorrow }
func (e BorrowEventData) PrimaryAsset() string     { return e.Reserve }
func (e BorrowEventData) PrimaryActor() string     { return e.User }
func (e BorrowEventData) PrimaryAmount() string    { return e.Amount }
func (e BorrowEventData) PrimaryAmountUSD() string { return e.AmountUSD }
func (e BorrowEventData) Assets() []string         { return []string{e.Reserve} }
func (e BorrowEventData) Actors() []string         { return []string{e.User} }
func (e BorrowEventData) VolumeContributions() []VolumeContribution {
	return []VolumeContribution{{Asset: e.Reserve, Amount: e.Amount}}
}

// WithdrawEventData is a decoded Aave V3 Withdraw payload.
type WithdrawEventData struct {
	Reserve   string `json:"reserve"`
	User      string `json:"user"`
	To        string `json:"to,omitempty"`
	Amount    string `json:"amount"`
	AmountUSD string `json:"amountUSD,omitempty"`
}

func (e WithdrawEventData) Kind() EventKind          { return KindWithdraw }
func (e WithdrawEventData) PrimaryAsset() string     { return e.Reserve }
func (e WithdrawEventData) PrimaryActor() string     { return e.User }
func (e WithdrawEventData) PrimaryAmount() string    { return e.Amount }
func (e WithdrawEventData) PrimaryAmountUSD() string { return e.AmountUSD }
func (e WithdrawEventData) Assets() []string         { return []string{e.Reserve} }
func (e WithdrawEventData) Actors() []string         { return []string{e.User} }
func (e WithdrawEventData) VolumeContributions() []VolumeContribution {
	return []VolumeContribution{{Asset: e.Reserve, Amount: e.Amount}}
}

// RepayEventData is a decoded Aave V3 Repay payload.
type RepayEventData struct {
	Reserve    string `json:"reserve"`
	User       string `json:"user"`
	Repayer    string `json:"repayer,omitempty"`
	Amount     string `json:"amount"`
	AmountUSD  string `json:"amountUSD,omitempty"`
	UseATokens bool   `json:"useATokens,omitempty"`
}

func (e RepayEventData) Kind() EventKind          { return KindRepay }
func (e RepayEventData) PrimaryAsset() string     { return e.Reserve }
func (e RepayEventData) PrimaryActor() string     { return e.User }
func (e RepayEventData) PrimaryAmount() string    { return e.Amount }
func (e RepayEventData) PrimaryAmountUSD() string { return e.AmountUSD }
func (e RepayEventData) Assets() []string         { return []string{e.Reserve} }
func (e RepayEventData) Actors() []string         { return []string{e.User} }
func (e RepayEventData) VolumeContributions() []VolumeContribution {
	return []VolumeContribution{{Asset: e.Reserve, Amount: e.Amount}}
}

// FlashLoanEventData is a decoded Aave V3 FlashLoan payload.
type FlashLoanEventData struct {
	Asset     string `json:"asset"`
	Initiator string `json:"initiator"`
	Target    string `json:"target,omitempty"`
	Amount    string `json:"amount"`
	Premium   string `json:"premium,omitempty"`
	AmountUSD string `json:"amountUSD,omitempty"`
}

func (e FlashLoanEventData) Kind() EventKind          { return KindFlashLoan }
func (e FlashLoanEventData) PrimaryAsset() string     { return e.Asset }
func (e FlashLoanEventData) PrimaryActor() string     { return e.Initiator }
func (e FlashLoanEventData) PrimaryAmount() string    { return e.Amount }
func (e FlashLoanEventData) PrimaryAmountUSD() string { return e.AmountUSD }
func (e FlashLoanEventData) Assets() []string         { return []string{e.Asset} }
func (e FlashLoanEventData) Actors() []string         { return []string{e.Initiator} }
func (e FlashLoanEventData) VolumeContributions() []VolumeContribution {
	return []VolumeContribution{{Asset: e.Asset, Amount: e.Amount}}
}

// LiquidationCallEventData is a decoded Aave V3 LiquidationCall payload.
// User is the liquidated party.
type LiquidationCallEventData struct {
	CollateralAsset               string `json:"collateralAsset"`
	DebtAsset                     string `json:"debtAsset"`
	User                          string `json:"user"`
	Liquidator                    string `json:"liquidator"`
	DebtToCover                   string `json:"debtToCover"`
	DebtToCoverUSD                string `json:"debtToCoverUSD,omitempty"`
	LiquidatedCollateralAmount    string `json:"liquidatedCollateralAmount"`
	LiquidatedCollateralAmountUSD string `json:"liquidatedCollateralAmountUSD,omitempty"`
}

func (e LiquidationCallEventData) Kind() EventKind          { return KindLiquidationCall }
func (e LiquidationCallEventData) PrimaryAsset() string     { return e.CollateralAsset }
func (e LiquidationCallEventData) PrimaryActor() string     { return e.User }
func (e LiquidationCallEventData) PrimaryAmount() string    { return e.DebtToCover }
func (e LiquidationCallEventData) PrimaryAmountUSD() string { return e.DebtToCoverUSD }

func (e LiquidationCallEventData) Assets() []string {
	return []string{e.CollateralAsset, e.DebtAsset}
}

func (e LiquidationCallEventData) Actors() []string {
	return []string{e.User, e.Liquidator}
}

func (e LiquidationCallEventData) VolumeContributions() []VolumeContribution {
	return []VolumeContribution{
		{Asset: e.CollateralAsset, Amount: e.LiquidatedCollateralAmount},
		{Asset: e.DebtAsset, Amount: e.DebtToCover},
	}
}

// SwapEventData is a decoded Uniswap V3 Swap payload.
type SwapEventData struct {
	Sender       string `json:"sender"`
	Recipient    string `json:"recipient"`
	TokenIn      string `json:"tokenIn"`
	TokenOut     string `json:"tokenOut"`
	AmountIn     string `json:"amountIn"`
	AmountOut    string `json:"amountOut"`
	AmountInUSD  string `json:"amountInUSD,omitempty"`
	AmountOutUSD string `json:"amountOutUSD,omitempty"`
	SqrtPriceX96 string `json:"sqrtPriceX96,omitempty"`
	Liquidity    string `json:"liquidity,omitempty"`
	Tick         int32  `json:"tick,omitempty"`
}

func (e SwapEventData) Kind() EventKind          { return KindSwap }
func (e SwapEventData) PrimaryAsset() string     { return e.TokenIn }
func (e SwapEventData) PrimaryActor() string     { return e.Sender }
func (e SwapEventData) PrimaryAmount() string    { return e.AmountIn }
func (e SwapEventData) PrimaryAmountUSD() string { return e.AmountInUSD }

func (e SwapEventData) Assets() []string {
	return []string{e.TokenIn, e.TokenOut}
}

func (e SwapEventData) Actors() []string {
	return []string{e.Sender, e.Recipient}
}

func (e SwapEventData) VolumeContributions() []VolumeContribution {
	return []VolumeContribution{
		{Asset: e.TokenIn, Amount: e.AmountIn},
		{Asset: e.TokenOut, Amount: e.AmountOut},
	}
}
