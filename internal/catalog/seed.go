package catalog

import (
	"github.com/google/uuid"

	"github.com/victornm/partyquiz/internal/domain"
)

// SampleDecks are the built-in decks used when no decks file is configured.
func SampleDecks() []domain.Deck {
	return []domain.Deck{
		newDeck("Social Media Brainrot", "📱",
			"Name 3 apps you open without thinking",
			"Name 3 things people comment on every post",
			"Name 3 reasons a video goes viral",
			"Name 3 things people do for \"aesthetic\"",
			"Name 3 things you'd put in a \"photo dump\"",
			"Name 3 things influencers always say",
			"Name 3 emojis you see way too much",
			"Name 3 reasons people start drama online",
			"Name 3 things you'd do for clout",
			"Name 3 red flags in someone's profile",
			"Name 3 ways people procrastinate online",
		),

		newDeck("Pop Culture", "🎬",
			"Name 3 Marvel characters",
			"Name 3 Disney movies",
			"Name 3 famous pop stars",
			"Name 3 animated TV shows",
			"Name 3 streaming services",
			"Name 3 reality TV shows",
			"Name 3 movie genres",
			"Name 3 famous fictional villains",
			"Name 3 famous movie franchises",
			"Name 3 video game franchises",
			"Name 3 songs that everyone knows the chorus to",
		),

		newDeck("Everyday Life", "🏠",
			"Name 3 things in your fridge right now",
			"Name 3 things you always lose",
			"Name 3 excuses for being late",
			"Name 3 things you'd grab in a fire",
			"Name 3 chores nobody wants to do",
			"Name 3 things people argue about on road trips",
			"Name 3 foods you could eat every day",
			"Name 3 things you do before bed",
			"Name 3 things that are always broken",
		),
	}
}

func newDeck(title, emoji string, prompts ...string) domain.Deck {
	d := domain.Deck{
		ID:      uuid.New(),
		Title:   title,
		Emoji:   emoji,
		Enabled: true,
	}
	for _, p := range prompts {
		d.Questions = append(d.Questions, domain.NewQuestion(p))
	}
	return d
}
