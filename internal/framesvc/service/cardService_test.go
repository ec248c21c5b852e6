package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/avvvet/tarot-frames/internal/framesvc/config"
	"github.com/avvvet/tarot-frames/internal/framesvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructFullImageURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{name: "relative path", base: "https://cdn.example/storage/v1/object/public/cards", path: "major/the-star.png",
			want: "https://cdn.example/storage/v1/object/public/cards/major/the-star.png"},
		{name: "slashes collapse", base: "https://cdn.example/cards/", path: "/the-star.png", want: "https://cdn.example/cards/the-star.png"},
		{name: "already absolute", base: "https://cdn.example", path: "https://other.example/a.png", want: "https://other.example/a.png"},
		{name: "empty path", base: "https://cdn.example", path: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConstructFullImageURL(tt.base, tt.path))
		})
	}
}

func TestCardServiceFound(t *testing.T) {
	cards := &memCards{cards: map[int]*models.Card{
		17: {Index: 17, CardID: "the-star", DeckID: "classic", CardName: "The Star", ImageURL: "the-star.png"},
	}}
	svc := NewCardService(cards, "https://cdn.example/cards")

	card := svc.GetCardByIndex(context.Background(), 17)
	require.NotNil(t, card)
	assert.Equal(t, "https://cdn.example/cards/the-star.png", card.ImageURL)
	assert.Equal(t, "the-star.png", cards.cards[17].ImageURL, "store copy must not be mutated")
}

func TestCardServiceDefaultConfigGivesAbsoluteURL(t *testing.T) {
	for _, key := range []string{"IMAGE_BASE_URL", "BASE_URL", "VERCEL_URL", "PORT"} {
		t.Setenv(key, "")
	}
	cfg, err := config.Load()
	require.NoError(t, err)

	cards := &memCards{cards: map[int]*models.Card{
		42: {Index: 42, CardID: "seven-of-cups", ImageURL: "cards/seven-of-cups.png"},
	}}
	card := NewCardService(cards, cfg.ImageBaseURL).GetCardByIndex(context.Background(), 42)
	require.NotNil(t, card)

	u, err := url.Parse(card.ImageURL)
	require.NoError(t, err)
	assert.True(t, u.IsAbs(), card.ImageURL)
	assert.Equal(t, "http://localhost:8080/cards/seven-of-cups.png", card.ImageURL)
}

func TestCardServiceNotFoundNeverFails(t *testing.T) {
	tests := []struct {
		name  string
		cards *memCards
		index int
	}{
		{name: "missing row", cards: &memCards{cards: map[int]*models.Card{}}, index: 300},
		{name: "query failure", cards: &memCards{err: errBoom}, index: 1},
		{name: "negative index", cards: &memCards{}, index: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCardService(tt.cards, "https://cdn.example")
			assert.Nil(t, svc.GetCardByIndex(context.Background(), tt.index))
		})
	}
}
