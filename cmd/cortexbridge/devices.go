package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nerrad567/cortex-voice-bridge/internal/alexa"
	"github.com/nerrad567/cortex-voice-bridge/internal/bridges/cortex"
	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/logging"
)

func newDevicesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List the endpoints discovery would report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log := logging.NewWithWriter(cfg.Logging, version, cmd.ErrOrStderr())
			client := cortex.NewClient(cfg.Controller, cortex.WithLogger(log))

			reply, err := client.Send(cmd.Context(), cortex.ListObjects())
			if err != nil {
				return fmt.Errorf("listing controller objects: %w", err)
			}
			objects, err := cortex.ParseObjectList(reply)
			if err != nil {
				return err
			}
			endpoints := cortex.MapInventory(objects)

			if opts.jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(endpoints)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"ID", "Name", "Category", "Interfaces"})
			for _, ep := range endpoints {
				tw.AppendRow(table.Row{
					ep.EndpointID,
					ep.FriendlyName,
					strings.Join(ep.DisplayCategories, ", "),
					interfaceNames(ep),
				})
			}
			tw.AppendFooter(table.Row{"", "", "Total", len(endpoints)})
			tw.Render()
			return nil
		},
	}
}

// interfaceNames lists an endpoint's interfaces without the "Alexa." prefix.
func interfaceNames(ep alexa.Endpoint) string {
	names := make([]string, 0, len(ep.Capabilities))
	for _, c := range ep.Capabilities {
		if c.Interface == alexa.NamespaceAlexa {
			continue
		}
		names = append(names, strings.TrimPrefix(c.Interface, alexa.NamespaceAlexa+"."))
	}
	return strings.Join(names, ", ")
}
