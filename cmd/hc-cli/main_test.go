package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func stubRPC(t *testing.T, respond func(method string) (json.RawMessage, *rpcError)) func() {
	t.Helper()
	original := http.DefaultClient
	http.DefaultClient = &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		var decoded struct {
			Method string `json:"method"`
		}
		if err := json.NewDecoder(req.Body).Decode(&decoded); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		result, rpcErr := respond(decoded.Method)
		payload, err := json.Marshal(struct {
			Result json.RawMessage `json:"result,omitempty"`
			Error  *rpcError       `json:"error,omitempty"`
		}{Result: result, Error: rpcErr})
		if err != nil {
			t.Fatalf("failed to marshal stub response: %v", err)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader(payload)),
			Header:     make(http.Header),
		}, nil
	})}
	return func() { http.DefaultClient = original }
}

func TestRunProposeSucceeds(t *testing.T) {
	restore := stubRPC(t, func(method string) (json.RawMessage, *rpcError) {
		if method != "gov.createProposal" {
			t.Fatalf("unexpected method %q", method)
		}
		return json.RawMessage(`{"id":0}`), nil
	})
	defer restore()

	var stdout, stderr bytes.Buffer
	code := run("propose", []string{"-from", "hc1abc", "-metadata", "raise the debt ceiling"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), `"id":0`) {
		t.Fatalf("expected output to contain the created id, got %q", stdout.String())
	}
}

func TestRunProposeRequiresFrom(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run("propose", []string{"-metadata", "x"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "--from is required") {
		t.Fatalf("expected usage error, got %q", stderr.String())
	}
}

func TestRunVotePropagatesRPCError(t *testing.T) {
	restore := stubRPC(t, func(method string) (json.RawMessage, *rpcError) {
		return nil, &rpcError{Code: -32011, Message: "hcgov: proposal is closed"}
	})
	defer restore()

	var stdout, stderr bytes.Buffer
	code := run("vote", []string{"-from", "hc1abc", "-id", "0", "-supports"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "proposal is closed") {
		t.Fatalf("expected error message to surface, got %q", stderr.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run("bogus", nil, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Unknown command") {
		t.Fatalf("expected unknown command message, got %q", stderr.String())
	}
}
