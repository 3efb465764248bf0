package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/logging"
)

func newInvokeCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Handle one directive and print the response",
		Long: `invoke reads one directive (a JSON request envelope) and prints the
response. Normalized errors such as TargetOfflineError are responses and
exit 0; a directive that cannot be handled at all exits 1.`,
		Example: `  cortexbridge invoke --file turn-on.json
  cat report-state.json | cortexbridge invoke --file -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := readDirective(cmd, file)
			if err != nil {
				return err
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log := logging.NewWithWriter(cfg.Logging, version, cmd.ErrOrStderr())

			svc, _, err := newService(cfg, log)
			if err != nil {
				return err
			}

			resp, err := svc.HandleJSON(cmd.Context(), body)
			if err != nil {
				return fmt.Errorf("invoking directive: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `directive JSON file ("-" for stdin)`)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readDirective(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		body, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return body, nil
	}

	body, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading directive: %w", err)
	}
	return body, nil
}
