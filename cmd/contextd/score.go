package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mentorhub/contextd/internal/core"
	"github.com/mentorhub/contextd/internal/service/relevance"
	"github.com/mentorhub/contextd/internal/service/ui"
)

var (
	scoreIndustry     string
	scoreOrgUnit      string
	scoreRelationship string
	scoreRole         string
)

var scoreCmd = &cobra.Command{
	Use:   "score <category>",
	Short: "Score a catalogue concept for relevance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		scorer := relevance.NewScorer(relevance.DefaultTables())

		in := relevance.Input{
			Category:       args[0],
			TenantIndustry: scoreIndustry,
			Role:           scoreRole,
			Relationship:   core.Relationship(scoreRelationship),
		}
		if scoreOrgUnit != "" {
			in.OrgUnit = &scoreOrgUnit
		}

		score := scorer.Score(in)
		threshold := scorer.Threshold(scoreRole)

		fmt.Printf("%s %s\n", ui.UsageStyle.Render("category:"), relevance.StripOrderPrefix(args[0]))
		fmt.Printf("%s %s\n", ui.UsageStyle.Render("score:"), ui.ScoreStyle.Render(fmt.Sprintf("%.2f", score)))
		fmt.Printf("%s %.2f\n", ui.UsageStyle.Render("threshold:"), threshold)
		if score >= threshold {
			fmt.Println(ui.TitleStyle.Render("RELEVANT"))
		} else {
			fmt.Println(ui.DescStyle.Render("not relevant"))
		}
		return nil
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreIndustry, "industry", "", "tenant industry description")
	scoreCmd.Flags().StringVar(&scoreOrgUnit, "org-unit", "", "viewer's department (omit for owner view)")
	scoreCmd.Flags().StringVar(&scoreRelationship, "relationship", "", "concept relationship: PREREQUISITE, RELATED or ADVANCED")
	scoreCmd.Flags().StringVar(&scoreRole, "role", "", "viewer role for threshold selection")
	rootCmd.AddCommand(scoreCmd)
}
