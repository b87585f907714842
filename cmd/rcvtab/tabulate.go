package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencount/rcvcore/ballot"
	"github.com/opencount/rcvcore/contest"
	"github.com/opencount/rcvcore/rcvconfig"
	"github.com/opencount/rcvcore/rcvlog"
)

var tabulateCmd = &cobra.Command{
	Use:   "tabulate <file.json>",
	Args:  cobra.ExactArgs(1),
	Short: "Tabulate a ContestInput JSON file and print its ContestReport",
	RunE:  runTabulate,
}

func init() {
	tabulateCmd.Flags().Bool("verbose", false, "log round-by-round engine decisions to stderr")
	tabulateCmd.Flags().String("config", "", "path to a rcvconfig YAML file (default tunables otherwise)")
}

// contestInputDoc is the on-disk JSON shape for a ContestInput. Variant
// is one of "irv", "wbv-stv", "frac-stv" (spec.md §6.1).
type contestInputDoc struct {
	Candidates []struct {
		Index   int    `json:"index"`
		Name    string `json:"name"`
		WriteIn bool   `json:"write_in"`
		Party   string `json:"party"`
	} `json:"candidates"`
	Ballots []struct {
		Sequence     []int `json:"sequence"`
		Multiplicity int   `json:"multiplicity"`
	} `json:"ballots"`
	Seats            int    `json:"seats"`
	Variant          string `json:"variant"`
	QuotaBallotCount int    `json:"quota_ballot_count"`
	InvalidBallots   int    `json:"invalid_ballots"`
}

func runTabulate(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("rcvtab: reading %s: %w", args[0], err)
	}

	var doc contestInputDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("rcvtab: decoding %s: %w", args[0], err)
	}

	in, err := toContestInput(doc)
	if err != nil {
		return err
	}

	opts := contest.DefaultOptions()
	if configPath != "" {
		cfg, err := rcvconfig.Load(configPath)
		if err != nil {
			return fmt.Errorf("rcvtab: loading config %s: %w", configPath, err)
		}
		opts.Config = cfg
	}
	if verbose {
		opts.Logger = rcvlog.New(rcvlog.Config{Level: rcvlog.LevelDebug, Output: os.Stderr})
	}

	report, err := contest.Tabulate(in, opts)
	if err != nil {
		return fmt.Errorf("rcvtab: tabulating %s: %w", args[0], err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("rcvtab: encoding report: %w", err)
	}
	fmt.Println(string(out))

	return nil
}

func toContestInput(doc contestInputDoc) (contest.ContestInput, error) {
	candidates := make([]ballot.Candidate, len(doc.Candidates))
	for i, c := range doc.Candidates {
		candidates[i] = ballot.Candidate{Index: c.Index, Name: c.Name, WriteIn: c.WriteIn, Party: c.Party}
	}

	ballots := make([]ballot.Ballot, len(doc.Ballots))
	for i, b := range doc.Ballots {
		ballots[i] = ballot.Ballot{Sequence: b.Sequence, Multiplicity: b.Multiplicity}
	}

	variant, err := parseVariant(doc.Variant)
	if err != nil {
		return contest.ContestInput{}, err
	}

	return contest.ContestInput{
		Candidates:       candidates,
		Ballots:          ballots,
		Seats:            doc.Seats,
		Variant:          variant,
		QuotaBallotCount: doc.QuotaBallotCount,
		InvalidBallots:   doc.InvalidBallots,
	}, nil
}

func parseVariant(s string) (contest.Variant, error) {
	switch s {
	case "irv":
		return contest.VariantIRV, nil
	case "wbv-stv":
		return contest.VariantWholeBallotSTV, nil
	case "frac-stv":
		return contest.VariantFractionalSTV, nil
	default:
		return 0, fmt.Errorf("rcvtab: unknown variant %q (want irv, wbv-stv, or frac-stv)", s)
	}
}
