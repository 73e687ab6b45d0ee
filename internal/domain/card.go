package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// DescriptionLines is how many lines of description a card shows.
const DescriptionLines = 2

// ProductCard is the list-view projection of a product.
type ProductCard struct {
	ID          int64  `json:"id"`
	Heading     string `json:"heading"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
}

// NewProductCard renders p for a list whose lines are width runes wide.
func NewProductCard(p *Product, width int) ProductCard {
	return ProductCard{
		ID:          p.ID,
		Heading:     fmt.Sprintf("%d- %s", p.ID, p.Title),
		Title:       p.Title,
		Description: TruncateLines(p.Description, width, DescriptionLines),
		Price:       FormatPrice(p.Price),
		Image:       p.Image,
	}
}

// NewProductCards renders products in order.
func NewProductCards(products []*Product, width int) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, NewProductCard(p, width))
	}
	return cards
}

// FormatPrice formats a price with two decimal places.
func FormatPrice(price decimal.Decimal) string {
	return "R$ " + price.StringFixed(2)
}

// TruncateLines word-wraps each line of text at width runes and keeps at
// most maxLines lines, marking a cut with an ellipsis. Explicit line breaks
// are kept.
func TruncateLines(text string, width, maxLines int) string {
	if width <= 0 || maxLines <= 0 {
		return text
	}

	var lines []string
	for _, paragraph := range strings.Split(strings.TrimSpace(text), "\n") {
		lines = append(lines, wrap(paragraph, width)...)
		if len(lines) > maxLines {
			break
		}
	}

	if len(lines) <= maxLines {
		return strings.Join(lines, "\n")
	}

	kept := lines[:maxLines]
	last := []rune(kept[maxLines-1])
	if len(last) >= width {
		last = last[:width-1]
	}
	kept[maxLines-1] = string(last) + "…"
	return strings.Join(kept, "\n")
}

// wrap splits one line of text into lines of at most width runes. A blank
// line stays a single empty line.
func wrap(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			r := []rune(word)
			lines = append(lines, string(r[:width]))
			word = string(r[width:])
		}
		if word == "" {
			continue
		}

		switch {
		case line == "":
			line = word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" || len(lines) == 0 {
		lines = append(lines, line)
	}
	return lines
}
