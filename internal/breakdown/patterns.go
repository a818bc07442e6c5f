package breakdown

import (
	"context"
	"strings"
)

// Patterns is the builtin provider: a keyword match on the task title
// selects a canned five-step plan. It never fails, which makes it the
// terminal link of any fallback chain.
type Patterns struct{}

func (Patterns) Breakdown(_ context.Context, title, _ string) ([]string, error) {
	lower := strings.ToLower(title)
	for _, p := range patternTable {
		if strings.Contains(lower, p.keyword) {
			return append([]string(nil), p.steps...), nil
		}
	}
	return append([]string(nil), genericSteps...), nil
}

type pattern struct {
	keyword string
	steps   []string
}

var patternTable = []pattern{
	{"write", []string{
		"Research and gather relevant information",
		"Create an outline with main points",
		"Write the first draft",
		"Review and edit for clarity",
		"Proofread and finalize",
	}},
	{"study", []string{
		"Gather all study materials",
		"Review notes and highlight key concepts",
		"Create summary flashcards",
		"Practice with sample problems/questions",
		"Take a short break, then do a final review",
	}},
	{"prepare", []string{
		"List all requirements needed",
		"Gather necessary materials",
		"Set up your workspace",
		"Do a practice run-through",
		"Make final adjustments",
	}},
	{"create", []string{
		"Brainstorm ideas and concepts",
		"Sketch out initial design/plan",
		"Build the core components",
		"Add details and refinements",
		"Review and polish the final product",
	}},
	{"organize", []string{
		"Take inventory of what you have",
		"Sort items into categories",
		"Decide what to keep/remove",
		"Arrange items in their places",
		"Label and document the system",
	}},
	{"learn", []string{
		"Find quality learning resources",
		"Start with the fundamentals",
		"Take notes on key concepts",
		"Practice with hands-on exercises",
		"Review and reinforce learning",
	}},
	{"plan", []string{
		"Define your goals clearly",
		"Research options and possibilities",
		"List required steps and resources",
		"Create a timeline with milestones",
		"Review and adjust the plan",
	}},
	{"build", []string{
		"Define requirements and scope",
		"Design the architecture/structure",
		"Implement core functionality",
		"Test and debug thoroughly",
		"Document and deploy",
	}},
	{"clean", []string{
		"Clear out obvious clutter",
		"Dust and wipe surfaces",
		"Deep clean specific areas",
		"Organize items in their places",
		"Do a final walkthrough",
	}},
	{"email", []string{
		"Clarify the purpose of the email",
		"Draft the main message",
		"Review tone and clarity",
		"Proofread for errors",
		"Send and follow up if needed",
	}},
	{"meeting", []string{
		"Define the meeting agenda",
		"Prepare necessary materials",
		"Send invites with details",
		"Set up the meeting space/link",
		"Take notes and assign action items",
	}},
	{"project", []string{
		"Define project scope and goals",
		"Break down into milestones",
		"Assign tasks and deadlines",
		"Execute and track progress",
		"Review and close out",
	}},
}

var genericSteps = []string{
	"Clarify what needs to be done",
	"Gather any required resources",
	"Start with the first small step",
	"Work through the main portion",
	"Review and complete the task",
}
