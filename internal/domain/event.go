package domain

const (
	EventNameProfileRemoved     = "profile.removed"
	EventNameRosterUpdated      = "roster.updated"
	EventNameLeaderboardUpdated = "leaderboard.updated"
)

type EventProfileRemoved struct {
	Profile PlayerProfile
}

func (EventProfileRemoved) Name() string { return EventNameProfileRemoved }

type EventRosterUpdated struct {
	Profiles []PlayerProfile
	Active   []PlayerProfile
}

func (EventRosterUpdated) Name() string { return EventNameRosterUpdated }

type EventLeaderboardUpdated struct {
	Entries []LeaderboardEntry
}

func (EventLeaderboardUpdated) Name() string { return EventNameLeaderboardUpdated }
