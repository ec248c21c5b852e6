package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/avvvet/tarot-frames/internal/framesvc/models"
	"github.com/avvvet/tarot-frames/internal/framesvc/store"
	log "github.com/sirupsen/logrus"
)

type CardService struct {
	store        store.CardFinder
	imageBaseURL string
}

func NewCardService(store store.CardFinder, imageBaseURL string) *CardService {
	return &CardService{store: store, imageBaseURL: imageBaseURL}
}

// GetCardByIndex never fails: a missing card and a failed query both come back as nil.
// The returned card carries an absolute image url.
func (s *CardService) GetCardByIndex(ctx context.Context, index int) *models.Card {
	if index < 0 {
		return nil
	}

	card, err := s.store.GetCardByIndex(ctx, index)
	if err != nil {
		log.Errorf("Error fetching card %d: %s", index, err)
		return nil
	}
	if card == nil {
		log.Warnf("No card found at index %d", index)
		return nil
	}

	out := *card
	out.ImageURL = ConstructFullImageURL(s.imageBaseURL, card.ImageURL)

	log.Debugf("Fetched card %d: %s", index, out.CardID)
	return &out
}

// ConstructFullImageURL keeps absolute urls and joins relative storage paths onto base.
func ConstructFullImageURL(base, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	if base == "" {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
