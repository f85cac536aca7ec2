package main

import (
	"fmt"

	"github.com/spf13/cobra"

	knock "github.com/goliatone/go-knock"
	"github.com/goliatone/go-knock/internal/knockform"
	"github.com/goliatone/go-knock/pkg/openapi"
)

func newOpenAPICmd(a *app) *cobra.Command {
	var servers []string
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document of the knock endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := knockform.Build(a.cfg, "")
			if err != nil {
				return err
			}
			options := []openapi.Option{
				openapi.WithTitle(knock.Product),
				openapi.WithVersion(knock.Version),
				openapi.WithPath(a.cfg.PathApplication),
				openapi.WithOperationID("knock"),
			}
			for _, url := range servers {
				options = append(options, openapi.WithServer(url))
			}
			doc, err := openapi.Describe(f, options...)
			if err != nil {
				return err
			}
			if err := openapi.Validate(commandContext(cmd), doc); err != nil {
				return err
			}
			payload, err := doc.MarshalJSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return err
		},
	}
	cmd.Flags().StringSliceVar(&servers, "server", nil, "server URL to list in the document (repeatable)")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with the encryption key masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
