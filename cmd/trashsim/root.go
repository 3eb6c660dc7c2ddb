package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trashsim",
	Short: "Headless Trash Piles table for exercising the engine and the bots",
	Long: `trashsim runs AI-vs-AI games of Trash Piles through the same command
dispatcher the Nakama match handler uses, without a server. It is the fastest
way to sanity-check rule changes and compare bot strategies.`,
}
