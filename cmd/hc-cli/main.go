// Command hc-cli drives a running hc-serverd instance over its JSON-RPC
// surface, grounded on cmd/nhb-cli's flag.NewFlagSet-per-subcommand style.
package main

import (
	"fmt"
	"io"
	"os"
)

const defaultEndpoint = "http://localhost:8090"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage())
		os.Exit(1)
	}
	code := run(os.Args[1], os.Args[2:], os.Stdout, os.Stderr)
	os.Exit(code)
}

func run(command string, args []string, stdout, stderr io.Writer) int {
	switch command {
	case "propose":
		return runPropose(args, stdout, stderr)
	case "vote":
		return runVote(args, stdout, stderr)
	case "stake":
		return runStake(args, stdout, stderr)
	case "unstake":
		return runUnstake(args, stdout, stderr)
	case "boost":
		return runBoost(args, stdout, stderr)
	case "expire":
		return runExpire(args, stdout, stderr)
	case "resolve":
		return runResolve(args, stdout, stderr)
	case "show":
		return runShow(args, stdout, stderr)
	case "list":
		return runList(args, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		fmt.Fprintln(stderr, usage())
		return 1
	}
}

func usage() string {
	return `Usage: hc-cli <command> [flags]

Commands:
  propose   Create a new governance proposal
  vote      Cast a vote on a proposal
  stake     Upstake or downstake a proposal
  unstake   Withdraw a previously committed stake
  boost     Poke a Pended proposal past its pended_boost_period
  expire    Poke a non-Boosted proposal past its queue deadline
  resolve   Poke a Boosted proposal past its boost deadline
  show      Fetch a proposal's current state
  list      Report the number of proposals ever created`
}
