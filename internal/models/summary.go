package models

// JournalDay aggregates the non-deleted journal entries of one date.
type JournalDay struct {
	Entries   int
	WordCount int
}

// HabitCounts aggregates habits for one date.
type HabitCounts struct {
	Total          int
	Active         int
	CompletedToday int
}

// GoalCounts aggregates active goals relative to one date.
type GoalCounts struct {
	Active      int
	Completed   int
	OnTrack     int
	AtRisk      int
	AvgProgress float64
}

// JobCounts aggregates active job applications.
type JobCounts struct {
	Active          int
	Interviewing    int
	Offer           int
	Rejected        int
	RecentlyUpdated int
}
