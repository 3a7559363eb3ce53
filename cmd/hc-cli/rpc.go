package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// callGov issues a single JSON-RPC request against the endpoint named by the
// HCGOV_RPC_URL environment variable, falling back to defaultEndpoint.
func callGov(method string, params interface{}) (json.RawMessage, *rpcError, error) {
	paramsRaw, err := json.Marshal(params)
	if err != nil {
		return nil, nil, err
	}
	payload := map[string]interface{}{
		"id":      1,
		"jsonrpc": "2.0",
		"method":  method,
		"params":  json.RawMessage(paramsRaw),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	endpoint := os.Getenv("HCGOV_RPC_URL")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	resp, err := http.Post(endpoint+"/rpc", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	var rpcResp struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, nil, fmt.Errorf("failed to decode RPC response: %w", err)
	}
	return rpcResp.Result, rpcResp.Error, nil
}

func handleRPCError(w io.Writer, err *rpcError) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(w, "RPC error %d: %s\n", err.Code, err.Message)
	return 1
}

func handleCallError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(w, "RPC call failed: %v\n", err)
	return 1
}

func writeResult(w io.Writer, result json.RawMessage) {
	if len(result) == 0 {
		fmt.Fprintln(w, "null")
		return
	}
	if _, err := w.Write(result); err == nil {
		if result[len(result)-1] != '\n' {
			fmt.Fprintln(w)
		}
	}
}
