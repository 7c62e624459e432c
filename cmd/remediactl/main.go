// Command remediactl is the operator CLI for the remediation approval
// gateway. Its batch subcommand reads threats from a CSV file, drives the
// gateway's /batch endpoint, and prints the decision report to stdout.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"remedia/internal/threat"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "remediactl",
		Short:         "Operator CLI for the remedia approval gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBatchCmd())
	return root
}

type batchOptions struct {
	input   string
	server  string
	timeout time.Duration
}

func newBatchCmd() *cobra.Command {
	opts := batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Submit a CSV of threats and print the decision report",
		Long: "Reads threat records from a CSV file (header row required, " +
			"threat_id column mandatory; file_path, sha256 and description are " +
			"recognized, any other column becomes an extra field), submits them " +
			"to the gateway's batch endpoint, and prints the report as JSON. " +
			"Batch mode always withholds confirmation, so destructive " +
			"recommendations are denied and logged for later review.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "path to the threats CSV file (required)")
	cmd.Flags().StringVarP(&opts.server, "server", "s", "http://localhost:8080", "gateway base URL")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "overall request timeout")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runBatch(ctx context.Context, out io.Writer, opts batchOptions) error {
	f, err := os.Open(opts.input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	threats, err := threat.ParseCSV(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", opts.input, err)
	}
	if len(threats) == 0 {
		return fmt.Errorf("parsing %s: no threat rows found", opts.input)
	}

	body, err := json.Marshal(map[string]any{"threats": threats})
	if err != nil {
		return fmt.Errorf("encoding batch request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.server+"/batch", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building batch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling gateway: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading gateway response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway returned %s: %s", resp.Status, bytes.TrimSpace(payload))
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, payload, "", "  "); err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}
	fmt.Fprintln(out, pretty.String())
	return nil
}
