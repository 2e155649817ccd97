package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/objectledger/custodian/internal/adapter"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// rpcCaller issues JSON-RPC calls against a single node endpoint
type rpcCaller struct {
	endpoint string
	http     adapter.HTTPClient
	json     adapter.JSON
	next     atomic.Int64
}

func newRPCCaller(endpoint string, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON) *rpcCaller {
	return &rpcCaller{
		endpoint: endpoint,
		http:     httpClient,
		json:     jsonAdapter,
	}
}

// call performs one JSON-RPC round trip and decodes the result into out.
// A nil out discards the result. A null result with a nil error is reported
// as errNullResult so callers can map it to their not-found semantics.
func (c *rpcCaller) call(ctx context.Context, method string, params any, out any) error {
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.next.Add(1),
		Method:  method,
		Params:  params,
	}

	body, err := c.json.Marshal(req)
	if err != nil {
		return err
	}

	respBody, err := c.http.PostJSON(ctx, c.endpoint, body)
	if err != nil {
		return err
	}

	var resp rpcResponse
	if err := c.json.Unmarshal(respBody, &resp); err != nil {
		return err
	}

	if resp.Error != nil {
		return resp.Error
	}

	if out == nil {
		return nil
	}

	if len(resp.Result) == 0 || string(resp.Result) == "null" {
		return errNullResult
	}

	return c.json.Unmarshal(resp.Result, out)
}
