package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Inspect the skill taxonomy",
}

var taxonomyLookupCmd = &cobra.Command{
	Use:   "lookup <term>",
	Short: "Resolve a skill term to its canonical form",
	Long:  "Prints the canonical name, aliases, category, technology family and implied skills of a term.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaxonomyLookup,
}

var taxonomyVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the taxonomy version",
	Args:  cobra.NoArgs,
	RunE:  runTaxonomyVersion,
}

func init() {
	taxonomyCmd.AddCommand(taxonomyLookupCmd)
	taxonomyCmd.AddCommand(taxonomyVersionCmd)
	rootCmd.AddCommand(taxonomyCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runTaxonomyLookup(cmd *cobra.Command, args []string) error {
	tax, err := loadTaxonomy(taxonomyPath)
	if err != nil {
		return err
	}

	info := tax.Lookup(args[0])
	if !verbose {
		return writeJSON(cmd.OutOrStdout(), "", info)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Term:      %s\n", info.Term)
	fmt.Fprintf(out, "Known:     %t\n", info.Known)
	fmt.Fprintf(out, "Canonical: %s (%s)\n", info.Canonical, info.Display)
	if info.Category != "" {
		fmt.Fprintf(out, "Category:  %s\n", info.Category)
	}
	if info.Family != "" {
		fmt.Fprintf(out, "Family:    %s\n", info.Family)
	}
	if len(info.Aliases) > 0 {
		fmt.Fprintf(out, "Aliases:   %s\n", strings.Join(info.Aliases, ", "))
	}
	if len(info.Implies) > 0 {
		fmt.Fprintf(out, "Implies:   %s\n", strings.Join(info.Implies, ", "))
	}
	return nil
}

func runTaxonomyVersion(cmd *cobra.Command, _ []string) error {
	tax, err := loadTaxonomy(taxonomyPath)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), tax.Version())
	return err
}
