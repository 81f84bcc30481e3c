package query

import (
	"arkivscope/internal/arkiv"
	"arkivscope/internal/model"
)

// Attribute keys the service indexes for its single equality clause.
const (
	attrTxHash    = "txHash"
	attrEventType = "eventType"
	attrUser      = "user"
	attrReserve   = "reserve"
	attrProtocol  = "protocol"
)

// PlanClause picks the one server-side equality clause for a filter, most
// selective dimension first: transaction hash, then event type, then
// actor, then asset. The asset clause only reaches entities that carry a
// reserve attribute, which is why the remaining dimensions are re-checked
// client-side. With nothing set the plan falls back to all Aave events.
func PlanClause(f model.Filter) arkiv.Clause {
	switch {
	case f.TxHash != "":
		return arkiv.Clause{Key: attrTxHash, Value: f.TxHash}
	case f.Kind != "":
		return arkiv.Clause{Key: attrEventType, Value: f.Kind}
	case f.Actor != "":
		return arkiv.Clause{Key: attrUser, Value: f.Actor}
	case f.Asset != "":
		return arkiv.Clause{Key: attrReserve, Value: f.Asset}
	case f.Protocol != "":
		return arkiv.Clause{Key: attrProtocol, Value: f.Protocol}
	default:
		return arkiv.Clause{Key: attrProtocol, Value: model.ProtocolAaveV3}
	}
}
