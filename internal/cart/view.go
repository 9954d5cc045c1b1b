package cart

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fairyhunter13/coffee-storefront-simulator/internal/model"
)

// EmptyMessage is shown in place of line items when the cart is empty.
const EmptyMessage = "Your cart is empty."

var printer = message.NewPrinter(language.AmericanEnglish)

// LineView is the display form of one line item.
type LineView struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Qty     int     `json:"qty"`
	Display string  `json:"display"`
}

// Summary is what a cart render shows: the badge count, each line and the total.
type Summary struct {
	Items        []model.LineItem `json:"items"`
	Lines        []LineView       `json:"lines"`
	Count        int              `json:"count"`
	Total        float64          `json:"total"`
	TotalDisplay string           `json:"total_display"`
	Empty        bool             `json:"empty"`
	Message      string           `json:"message,omitempty"`
}

// Summarize builds the render view of items.
func Summarize(items []model.LineItem) Summary {
	if items == nil {
		items = []model.LineItem{}
	}
	s := Summary{
		Items: items,
		Lines: make([]LineView, 0, len(items)),
		Total: Total(items),
		Empty: len(items) == 0,
	}
	for _, it := range items {
		s.Count += it.Qty
		s.Lines = append(s.Lines, LineView{
			Name:    it.Name,
			Price:   it.Price,
			Qty:     it.Qty,
			Display: printer.Sprintf("%s × %d", FormatMoney(it.Price), it.Qty),
		})
	}
	s.TotalDisplay = FormatMoney(s.Total)
	if s.Empty {
		s.Message = EmptyMessage
	}
	return s
}

// FormatMoney renders amount in US dollars with two decimals, e.g. "$10.50".
func FormatMoney(amount float64) string {
	return printer.Sprintf("%v%.2f", currency.Symbol(currency.USD), amount)
}
