package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/material"
)

var resourceCmd = &cobra.Command{
	Use:   "resource",
	Short: "Manage the learning resource catalog",
}

var resourceAddCmd = &cobra.Command{
	Use:   "add <title> <url>",
	Short: "Add an external learning resource",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("type")
		topic, _ := cmd.Flags().GetString("topic")
		minutes, _ := cmd.Flags().GetInt("minutes")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		return e.ws.AddResource(cmd.Context(), material.Resource{
			Title:         args[0],
			URL:           args[1],
			Type:          material.ResourceType(kind),
			Topic:         topic,
			EstimatedTime: minutes,
		})
	},
}

var resourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learning resources",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		for _, r := range e.ws.Resources() {
			fmt.Fprintf(out, "%-8s  %-30s  %s\n", r.Type, truncate(r.Title, 30), r.URL)
		}
		return nil
	},
}

func init() {
	resourceAddCmd.Flags().String("type", string(material.ResourceArticle),
		"Resource type: article, video, podcast, book or course")
	resourceAddCmd.Flags().String("topic", "", "Topic the resource covers")
	resourceAddCmd.Flags().Int("minutes", 0, "Estimated time in minutes")

	resourceCmd.AddCommand(resourceAddCmd)
	resourceCmd.AddCommand(resourceListCmd)
}
