package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"admissions/internal/adapter"
	"admissions/internal/bundle"
	"admissions/internal/textutil"
)

func newExtractCommand() *cobra.Command {
	var institution string
	var pageURL string
	var faculty string
	var outPath string

	cmd := &cobra.Command{
		Use:   "extract <snapshot.html>",
		Short: "Extract an evidence bundle from a saved institution page",
		Long: "Parse a saved HTML page with the institution adapter and write the raw\n" +
			"candidates and discovered documents as a YAML bundle. Use --out - for stdout.\n" +
			"Sub-pages worth extracting next are listed on stderr.",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(pageURL) == "" {
				return errors.New("--url is required")
			}
			ad, err := adapter.Lookup(institution)
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open snapshot: %w", err)
			}
			defer file.Close()
			page, err := adapter.ParsePage(pageURL, faculty, file)
			if err != nil {
				return err
			}

			info := ad.Info()
			b := &bundle.Bundle{
				Institution: info.Slug,
				Candidates:  ad.ExtractCandidates(page),
				Documents:   ad.ExtractPDFLinks(page),
			}
			for _, sub := range ad.EnumerateSubPages(page) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Sub-page: %s\n", sub)
			}

			target := strings.TrimSpace(outPath)
			if target == "-" {
				return bundle.Encode(cmd.OutOrStdout(), b, bundle.FormatYAML)
			}
			if target == "" {
				target = fmt.Sprintf("%s-%s.yaml", info.Slug, textutil.SanitizeToken(faculty))
			}
			if err := bundle.Save(target, b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d candidates and %d documents from %s to %s\n",
				len(b.Candidates), len(b.Documents), info.Name, target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&institution, "institution", "i", "ucv", "Institution adapter slug")
	cmd.Flags().StringVar(&pageURL, "url", "", "URL the snapshot was fetched from")
	cmd.Flags().StringVarP(&faculty, "faculty", "f", "", "Faculty slug of the page")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Bundle path (.yaml, .yml or .json)")
	return cmd
}
