package entities

import "errors"

// CartItem is a single order line collected by the browser-side cart.
type CartItem struct {
	ID    string
	Name  string
	Qty   int
	Price int
	Image string
}

type Customer struct {
	Brief         string
	Name          string
	Contact       string
	DiscordUserID string
	FileURL       string
}

type OrderSubmission struct {
	OrderID  string
	Items    []CartItem
	Customer Customer
}

// Total is the order sum in the smallest currency unit.
func (o OrderSubmission) Total() int {
	total := 0
	for _, item := range o.Items {
		total += item.Price * item.Qty
	}
	return total
}

// OrderReceipt is the result of order intake. The channel is the only
// required resource; the rest is filled in as optional steps succeed.
type OrderReceipt struct {
	OrderID   string
	ChannelID string
	InviteURL string
	Total     int

	// Diagnostics collects failures of non-fatal steps (invite, DM,
	// order event). The order is still successful when it is non-empty.
	Diagnostics []Diagnostic
}

type Diagnostic struct {
	Step string
	Err  error
}

var (
	ErrChannelCreateFailed = errors.New("channel create failed")
	ErrUpstreamFailed      = errors.New("upstream request failed")
)
