package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpilot/internal/roadmap"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Browse the career roadmap flowchart",
}

var roadmapShowCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Print a roadmap node (default: the start node)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := roadmap.Default()
		if err != nil {
			return fmt.Errorf("load roadmap: %w", err)
		}
		key := g.Start()
		if len(args) == 1 {
			key = args[0]
		}
		node, ok := g.Node(key)
		if !ok {
			return fmt.Errorf("%w: %q", roadmap.ErrUnknownNode, key)
		}
		printNode(cmd.OutOrStdout(), node)
		return nil
	},
}

var roadmapWalkCmd = &cobra.Command{
	Use:   "walk <option-or-step>...",
	Short: "Walk from the start node, choosing options and following next steps",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := roadmap.Default()
		if err != nil {
			return fmt.Errorf("load roadmap: %w", err)
		}
		nav := roadmap.NewNavigator(g)
		for i, arg := range args {
			if err := walkStep(nav, arg); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		out := cmd.OutOrStdout()
		var path []string
		for _, st := range nav.State().History {
			path = append(path, st.From)
		}
		path = append(path, nav.CurrentKey())
		fmt.Fprintf(out, "Path:    %s\n", strings.Join(path, " → "))
		fmt.Fprintf(out, "Choices: %s\n\n", strings.Join(nav.Choices(), ", "))
		printNode(out, nav.Current())
		return nil
	},
}

var roadmapCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the built-in roadmap",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := roadmap.Default()
		if err != nil {
			return err
		}
		if err := roadmap.Validate(g); err != nil {
			return err
		}

		var decisions, milestones, deadEnds int
		for _, k := range g.Keys() {
			node, _ := g.Node(k)
			switch n := node.(type) {
			case *roadmap.Decision:
				decisions++
			case *roadmap.Milestone:
				milestones++
				if n.DeadEnd() {
					deadEnds++
				}
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d nodes (%d decisions, %d milestones, %d dead ends), start %q\n",
			g.Len(), decisions, milestones, deadEnds, g.Start())
		return nil
	},
}

func init() {
	roadmapCmd.AddCommand(roadmapShowCmd)
	roadmapCmd.AddCommand(roadmapWalkCmd)
	roadmapCmd.AddCommand(roadmapCheckCmd)
}

// walkStep chooses arg on a decision node or follows it as a next step on a
// milestone.
func walkStep(nav *roadmap.Navigator, arg string) error {
	switch n := nav.Current().(type) {
	case *roadmap.Decision:
		return nav.Choose(arg)
	case *roadmap.Milestone:
		if !slices.Contains(n.Details.NextSteps, arg) {
			return fmt.Errorf("%q is not a next step of %q", arg, n.Key)
		}
		return nav.FollowNextStep(arg)
	}
	return fmt.Errorf("unexpected node at %q", nav.CurrentKey())
}

func printNode(w io.Writer, node roadmap.Node) {
	fmt.Fprintf(w, "%s [%s] %s\n", node.NodeKey(), node.Kind(), node.NodeTitle())
	if d := node.NodeDescription(); d != "" {
		fmt.Fprintf(w, "  %s\n", d)
	}

	switch n := node.(type) {
	case *roadmap.Decision:
		fmt.Fprintln(w, "\nOptions:")
		for _, o := range n.Options {
			fmt.Fprintf(w, "  %-28s %s → %s\n", o.ID, o.Label, o.Next)
		}
	case *roadmap.Milestone:
		fmt.Fprintf(w, "\nTimeline:   %s\n", n.Details.Timeline)
		fmt.Fprintf(w, "Key skills: %s\n", strings.Join(n.Details.KeySkills, ", "))
		fmt.Fprintln(w, "Milestones:")
		for _, m := range n.Details.Milestones {
			fmt.Fprintf(w, "  • %s\n", m)
		}
		if n.DeadEnd() {
			fmt.Fprintln(w, "\nNo further steps.")
			return
		}
		fmt.Fprintln(w, "\nNext steps:")
		for _, s := range n.Details.NextSteps {
			fmt.Fprintf(w, "  %-28s %s\n", s, roadmap.StepLabel(s))
		}
	}
}
