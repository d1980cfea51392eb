package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List collision policies and jump rules",
	Long: `Shows the collision policies and jump rules a world config can select
with physics.collision and physics.jump_rule.`,
	Args: cobra.NoArgs,
	Run:  runPolicies,
}

func runPolicies(_ *cobra.Command, _ []string) {
	policies := registry.List()

	maxLen := len("Name")
	for _, p := range policies {
		maxLen = max(maxLen, len(p.Name))
	}
	for _, r := range physics.JumpRules {
		maxLen = max(maxLen, len(r.String()))
	}

	fmt.Println("Collision policies (physics.collision):")
	fmt.Println()
	for _, p := range policies {
		marker := " "
		if p.Name == registry.DefaultPolicy {
			marker = "*"
		}
		fmt.Printf(" %s %-*s  %s\n", marker, maxLen, p.Name, p.Description)
	}

	fmt.Println()
	fmt.Println("Jump rules (physics.jump_rule):")
	fmt.Println()
	for _, r := range physics.JumpRules {
		marker := " "
		if r == physics.JumpGrounded {
			marker = "*"
		}
		fmt.Printf(" %s %-*s  %s\n", marker, maxLen, r.String(), r.Description())
	}

	fmt.Println()
	fmt.Println("* default")
}
