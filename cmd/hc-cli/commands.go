package main

import (
	"flag"
	"fmt"
	"io"
)

func runPropose(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("propose", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var creator, metadata string
	fs.StringVar(&creator, "from", "", "proposer bech32 address")
	fs.StringVar(&metadata, "metadata", "", "opaque proposal metadata")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if creator == "" {
		fmt.Fprintln(stderr, "Error: --from is required")
		return 1
	}
	result, rpcErr, err := callGov("gov.createProposal", map[string]string{"creator": creator, "metadata": metadata})
	if err != nil {
		return handleCallError(stderr, err)
	}
	if rpcErr != nil {
		return handleRPCError(stderr, rpcErr)
	}
	writeResult(stdout, result)
	return 0
}

func runVote(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vote", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var voter string
	var id uint64
	var supports bool
	fs.StringVar(&voter, "from", "", "voter bech32 address")
	fs.Uint64Var(&id, "id", 0, "proposal identifier")
	fs.BoolVar(&supports, "supports", true, "true for yea, false for nay")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if voter == "" {
		fmt.Fprintln(stderr, "Error: --from is required")
		return 1
	}
	result, rpcErr, err := callGov("gov.vote", map[string]interface{}{"voter": voter, "id": id, "supports": supports})
	if err != nil {
		return handleCallError(stderr, err)
	}
	if rpcErr != nil {
		return handleRPCError(stderr, rpcErr)
	}
	writeResult(stdout, result)
	return 0
}

func runStakeLike(method string, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(method, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var staker, amount string
	var id uint64
	var supports bool
	fs.StringVar(&staker, "from", "", "staker bech32 address")
	fs.Uint64Var(&id, "id", 0, "proposal identifier")
	fs.StringVar(&amount, "amount", "", "amount in wei, base-10")
	fs.BoolVar(&supports, "supports", true, "true to target the upstake ledger, false for downstake")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if staker == "" {
		fmt.Fprintln(stderr, "Error: --from is required")
		return 1
	}
	if amount == "" {
		fmt.Fprintln(stderr, "Error: --amount is required")
		return 1
	}
	result, rpcErr, err := callGov(method, map[string]interface{}{"staker": staker, "id": id, "amount": amount, "supports": supports})
	if err != nil {
		return handleCallError(stderr, err)
	}
	if rpcErr != nil {
		return handleRPCError(stderr, rpcErr)
	}
	writeResult(stdout, result)
	return 0
}

func runStake(args []string, stdout, stderr io.Writer) int {
	return runStakeLike("gov.stake", args, stdout, stderr)
}

func runUnstake(args []string, stdout, stderr io.Writer) int {
	return runStakeLike("gov.unstake", args, stdout, stderr)
}

func runPoke(method string, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(method, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var caller string
	var id uint64
	fs.StringVar(&caller, "from", "", "caller bech32 address (receives the compensation fee)")
	fs.Uint64Var(&id, "id", 0, "proposal identifier")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if caller == "" {
		fmt.Fprintln(stderr, "Error: --from is required")
		return 1
	}
	result, rpcErr, err := callGov(method, map[string]interface{}{"caller": caller, "id": id})
	if err != nil {
		return handleCallError(stderr, err)
	}
	if rpcErr != nil {
		return handleRPCError(stderr, rpcErr)
	}
	writeResult(stdout, result)
	return 0
}

func runBoost(args []string, stdout, stderr io.Writer) int {
	return runPoke("gov.boostProposal", args, stdout, stderr)
}

func runExpire(args []string, stdout, stderr io.Writer) int {
	return runPoke("gov.expireNonBoosted", args, stdout, stderr)
}

func runResolve(args []string, stdout, stderr io.Writer) int {
	return runPoke("gov.resolveBoosted", args, stdout, stderr)
}

func runShow(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var id uint64
	fs.Uint64Var(&id, "id", 0, "proposal identifier")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	result, rpcErr, err := callGov("gov.getProposal", map[string]interface{}{"id": id})
	if err != nil {
		return handleCallError(stderr, err)
	}
	if rpcErr != nil {
		return handleRPCError(stderr, rpcErr)
	}
	writeResult(stdout, result)
	return 0
}

func runList(args []string, stdout, stderr io.Writer) int {
	result, rpcErr, err := callGov("gov.numProposals", map[string]interface{}{})
	if err != nil {
		return handleCallError(stderr, err)
	}
	if rpcErr != nil {
		return handleRPCError(stderr, rpcErr)
	}
	writeResult(stdout, result)
	return 0
}
