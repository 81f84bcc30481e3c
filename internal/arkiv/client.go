// Package arkiv is a thin client for the hosted ledger-query service.
package arkiv

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"

	"arkivscope/internal/model"
)

// Clause is a single attribute equality predicate. The service supports
// exactly one top-level equality clause per query; all further filtering
// happens client-side.
type Clause struct {
	Key   string
	Value string
}

func (c Clause) String() string {
	return fmt.Sprintf("%s = %q", c.Key, c.Value)
}

// Options selects which parts of matched entities the service returns.
type Options struct {
	IncludePayload    bool
	IncludeAttributes bool
}

// QueryError wraps a failed upstream query. The client performs no
// retries; the failure is terminal for that query.
type QueryError struct {
	Clause string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("arkiv query [%s]: %v", e.Clause, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Client wraps a JSON-RPC connection to an Arkiv endpoint. Construct it
// once at process start and pass it to every consumer; lifecycle is owned
// by the caller.
type Client struct {
	rpcClient *rpc.Client
}

// Dial connects to the Arkiv RPC endpoint.
func Dial(ctx context.Context, rpcURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial arkiv rpc: %w", err)
	}
	return &Client{rpcClient: rpcClient}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

type queryOptions struct {
	IncludePayload    bool `json:"includePayload"`
	IncludeAttributes bool `json:"includeAttributes"`
}

// Query fetches all entities matching the clause in a single request.
// There is no pagination loop; the service materializes the full result.
func (c *Client) Query(ctx context.Context, clause Clause, opts Options) ([]model.Envelope, error) {
	if clause.Key == "" {
		return nil, &QueryError{Clause: clause.String(), Err: fmt.Errorf("clause key is required")}
	}

	var entities []model.Envelope
	err := c.rpcClient.CallContext(ctx, &entities, "arkiv_queryEntities",
		clause.String(),
		queryOptions{
			IncludePayload:    opts.IncludePayload,
			IncludeAttributes: opts.IncludeAttributes,
		},
	)
	if err != nil {
		return nil, &QueryError{Clause: clause.String(), Err: err}
	}
	return entities, nil
}
