package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"keepnotes/internal/store"
)

const (
	exportFormatJSON = "json"
	exportFormatYAML = "yaml"
)

func newExportCommand(wiring commandWiring) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole notes document to stdout",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withSession(wiring, false, func(ctx context.Context, s *session, _ []string) error {
		data := s.notes.Snapshot()
		raw, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(format)) {
		case exportFormatJSON:
			_, err = fmt.Fprintln(wiring.stdout, string(raw))
			return err
		case exportFormatYAML:
			// Round-trip through JSON so YAML keys match the stored field names.
			var doc any
			if err := json.Unmarshal(raw, &doc); err != nil {
				return err
			}
			encoder := yaml.NewEncoder(wiring.stdout)
			encoder.SetIndent(2)
			if err := encoder.Encode(doc); err != nil {
				return err
			}
			return encoder.Close()
		default:
			return fmt.Errorf("unsupported format %q (expected json or yaml)", format)
		}
	})
	cmd.Flags().StringVar(&format, "format", exportFormatJSON, "output format: json|yaml")
	return cmd
}

func newImportCommand(wiring commandWiring) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Seed the store from a browser localStorage export",
		Long:  "Import reads the JSON value stored under keep-notes-store-v1 by the browser widget. Existing state is kept unless --force is given.",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = withSession(wiring, false, func(ctx context.Context, s *session, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		wrote, err := store.SeedFromBrowserExport(ctx, s.state, raw, force)
		if err != nil {
			return err
		}
		if !wrote {
			fmt.Fprintln(wiring.stdout, "notes already exist; use --force to replace them")
			return nil
		}
		if err := s.notes.Reload(ctx); err != nil {
			return err
		}
		data := s.notes.Snapshot()
		fmt.Fprintf(wiring.stdout, "imported %d notes and %d tags\n", len(data.Notes), len(data.Tags))
		return nil
	})
	cmd.Flags().BoolVar(&force, "force", false, "replace existing notes")
	return cmd
}
