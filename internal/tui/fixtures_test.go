package tui

import "github.com/kingrea/stagetrack/internal/progress"

// exampleStages is the two-stage application used throughout the engine tests.
func exampleStages() []progress.Stage {
	return []progress.Stage{
		{
			ID:      "s1",
			Ordinal: progress.Ordinal(1),
			Title:   "KYC",
			Status:  progress.StatusCompleted,
			Capabilities: progress.Capabilities{
				CanUpdate:    true,
				CanSummarize: true,
			},
			SubSteps: []progress.SubStep{{ID: "a", Label: "PAN verification", Completed: true}},
		},
		{
			ID:      "s2",
			Ordinal: progress.Ordinal(2),
			Title:   "Income",
			Status:  progress.StatusPending,
			Capabilities: progress.Capabilities{
				CanSummarize: true,
				CanContinue:  true,
			},
		},
	}
}

func threeStages() []progress.Stage {
	sub := []progress.SubStep{{ID: "x", Label: "Step"}}
	return []progress.Stage{
		{ID: "s1", Title: "One", Status: progress.StatusCompleted, SubSteps: sub},
		{ID: "s2", Title: "Two", Status: progress.StatusInProgress, SubSteps: sub},
		{ID: "s3", Title: "Three", Status: progress.StatusCompleted, SubSteps: sub},
	}
}
