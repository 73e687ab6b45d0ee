package screen

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"techmarket/internal/domain"
	"techmarket/internal/service"

	"go.uber.org/zap"
)

// ListState is what the product list currently shows
type ListState int

const (
	ListLoading ListState = iota
	ListError
	ListLoaded
)

func (s ListState) String() string {
	switch s {
	case ListError:
		return "error"
	case ListLoaded:
		return "loaded"
	default:
		return "loading"
	}
}

// ListScreen shows every product as a card. Each focus refetches the whole
// list; there is no cache and no retry.
type ListScreen struct {
	products service.ProductService
	nav      *Navigator
	width    int
	logger   *zap.Logger

	mu      sync.Mutex
	seq     uint64
	state   ListState
	cards   []domain.ProductCard
	message string
}

// NewListScreen creates a new instance of ListScreen. Description lines
// wrap at cardWidth runes.
func NewListScreen(products service.ProductService, nav *Navigator, cardWidth int, logger *zap.Logger) *ListScreen {
	return &ListScreen{products: products, nav: nav, width: cardWidth, logger: logger}
}

// Focus fetches the list and replaces the rendered cards. Results of an
// older focus, or of a visit that has ended, are dropped.
func (s *ListScreen) Focus() {
	visit := s.nav.Visit()

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.state = ListLoading
	s.cards = nil
	s.message = ""
	s.mu.Unlock()

	products, err := s.products.List(visit.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq || !s.nav.IsCurrent(visit) {
		s.logger.Debug("Discarding stale product list", zap.Uint64("focus", seq))
		return
	}

	if err != nil {
		s.logger.Debug("Product list failed", zap.Error(err))
		s.state = ListError
		s.message = service.MsgListFailed
		return
	}

	s.state = ListLoaded
	s.cards = domain.NewProductCards(products, s.width)
}

// Snapshot returns the render state, the cards when loaded, and the error
// message when failed.
func (s *ListScreen) Snapshot() (ListState, []domain.ProductCard, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := make([]domain.ProductCard, len(s.cards))
	copy(cards, s.cards)
	return s.state, cards, s.message
}

// Render writes the current state as text.
func (s *ListScreen) Render(w io.Writer) error {
	state, cards, message := s.Snapshot()

	switch state {
	case ListLoading:
		_, err := fmt.Fprintln(w, MsgLoadingProducts)
		return err
	case ListError:
		_, err := fmt.Fprintln(w, message)
		return err
	}

	var b strings.Builder
	b.WriteString("TECHMARKET\n")
	if len(cards) == 0 {
		b.WriteString("No products yet.\n")
	}
	for _, card := range cards {
		b.WriteString("\n")
		b.WriteString(card.Heading + "\n")
		if card.Description != "" {
			b.WriteString(card.Description + "\n")
		}
		b.WriteString(card.Price + "\n")
		if card.Image != "" {
			b.WriteString(card.Image + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
