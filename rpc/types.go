// Package rpc exposes the governance engine over a JSON-RPC-flavored HTTP
// API: request envelope {id, method, params}, response envelope
// {id, result} or {id, error}, mounted with go-chi/chi/v5 the way the
// teacher's gateway/routes package mounts its proxies.
package rpc

import "encoding/json"

const jsonRPCVersion = "2.0"

// Error codes mirror the teacher's rpc/http.go convention of negative,
// JSON-RPC-spec-compatible codes for the generic cases and a private
// -32000-and-below range for domain-specific ones.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeServerError    = -32000

	codeProposalNotFound    = -32010
	codeProposalClosed      = -32011
	codeProposalBoosted     = -32012
	codeProposalNotBoosted  = -32013
	codeProposalStillActive = -32014
	codeNotEnoughConfidence = -32015
	codeConfidenceTooYoung  = -32016
	codeNoVotingPower       = -32017
	codeInsufficientFunds   = -32018
	codeInsufficientStake   = -32019
	codeInsufficientAllow   = -32020
	codeInvalidAmount       = -32021
	codeInvalidCompensation = -32022
)

// Request is the envelope every call arrives in.
type Request struct {
	ID      json.RawMessage `json:"id"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Response is the envelope every call returns, Result and Error mutually
// exclusive.
type Response struct {
	ID      json.RawMessage `json:"id"`
	JSONRPC string          `json:"jsonrpc"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *ErrorObject    `json:"error,omitempty"`
}

// ErrorObject is the JSON-RPC error shape.
type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newResult(id json.RawMessage, result interface{}) Response {
	return Response{ID: id, JSONRPC: jsonRPCVersion, Result: result}
}

func newError(id json.RawMessage, code int, message string) Response {
	return Response{ID: id, JSONRPC: jsonRPCVersion, Error: &ErrorObject{Code: code, Message: message}}
}
