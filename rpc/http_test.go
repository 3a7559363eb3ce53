package rpc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hcgov/config"
	"hcgov/crypto"
	"hcgov/hcengine"
	"hcgov/tokenledger"

	"github.com/stretchr/testify/require"
)

func doRPC(t *testing.T, handler http.Handler, method string, params interface{}) Response {
	t.Helper()
	body, err := json.Marshal(Request{ID: json.RawMessage(`1`), JSONRPC: jsonRPCVersion, Method: method, Params: marshalParams(t, params)})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/rpc", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func marshalParams(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestRPCCreateAndGetProposal(t *testing.T) {
	voteToken := tokenledger.NewInMemory()
	stakeToken := tokenledger.NewInMemory()
	cfg := config.Global{
		SupportPctWei:               "510000000000000000",
		QueuePeriodSeconds:          86400,
		BoostPeriodSeconds:          21600,
		BoostPeriodExtensionSeconds: 3600,
		PendedBoostPeriodSeconds:    3600,
		CompensationFeePct:          10,
		ConfidenceThresholdBase:     4,
	}
	engine, err := hcengine.NewEngine(voteToken, stakeToken, cfg)
	require.NoError(t, err)
	key, err := crypto.GeneratePrivateKey()
	require.NoError(t, err)
	creator := key.PubKey().Address()

	server := NewServer(engine, nil)
	handler := server.Router()

	resp := doRPC(t, handler, "gov.createProposal", createProposalParams{Creator: creator.String(), Metadata: "raise the debt ceiling"})
	require.Nil(t, resp.Error)
	created, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, float64(0), created["id"])

	resp = doRPC(t, handler, "gov.getProposal", idParams{ID: 0})
	require.Nil(t, resp.Error)
	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var view proposalView
	require.NoError(t, json.Unmarshal(raw, &view))
	require.Equal(t, "raise the debt ceiling", view.Metadata)
	require.Equal(t, "queued", view.State)
}

func TestRPCUnknownMethod(t *testing.T) {
	voteToken := tokenledger.NewInMemory()
	stakeToken := tokenledger.NewInMemory()
	cfg := config.Global{
		SupportPctWei:               "510000000000000000",
		QueuePeriodSeconds:          86400,
		BoostPeriodSeconds:          21600,
		BoostPeriodExtensionSeconds: 3600,
		PendedBoostPeriodSeconds:    3600,
		CompensationFeePct:          10,
		ConfidenceThresholdBase:     4,
	}
	engine, err := hcengine.NewEngine(voteToken, stakeToken, cfg)
	require.NoError(t, err)
	server := NewServer(engine, nil)

	resp := doRPC(t, server.Router(), "gov.doesNotExist", nil)
	require.NotNil(t, resp.Error)
	require.Equal(t, codeMethodNotFound, resp.Error.Code)
}

func TestRPCGetProposalNotFoundMapsToStableCode(t *testing.T) {
	voteToken := tokenledger.NewInMemory()
	stakeToken := tokenledger.NewInMemory()
	cfg := config.Global{
		SupportPctWei:               "510000000000000000",
		QueuePeriodSeconds:          86400,
		BoostPeriodSeconds:          21600,
		BoostPeriodExtensionSeconds: 3600,
		PendedBoostPeriodSeconds:    3600,
		CompensationFeePct:          10,
		ConfidenceThresholdBase:     4,
	}
	engine, err := hcengine.NewEngine(voteToken, stakeToken, cfg)
	require.NoError(t, err)
	server := NewServer(engine, nil)

	resp := doRPC(t, server.Router(), "gov.getProposal", idParams{ID: 999})
	require.NotNil(t, resp.Error)
	require.Equal(t, codeProposalNotFound, resp.Error.Code)
}
