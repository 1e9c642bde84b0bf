package handler

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/sixlab/storefront/internal/entities"
)

// Discord snowflakes are 17-20 digit numeric strings.
var snowflakePattern = regexp.MustCompile(`^\d{17,20}$`)

// newValidate returns the shared validator with the snowflake rule
// registered.
func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("snowflake", func(fl validator.FieldLevel) bool {
		return snowflakePattern.MatchString(fl.Field().String())
	})
	return v
}

// CartItem is one order line as submitted by the browser cart.
type CartItem struct {
	ID    string `json:"id" validate:"required,max=64"`
	Name  string `json:"name" validate:"required,max=200"`
	Qty   int    `json:"qty" validate:"required,min=1,max=999"`
	Price int    `json:"price" validate:"min=0,max=1000000"`
	Image string `json:"image,omitempty" validate:"omitempty,url"`
}

type Customer struct {
	Brief         string `json:"brief" validate:"required,min=1,max=2000"`
	Name          string `json:"name,omitempty" validate:"omitempty,max=200"`
	Contact       string `json:"contact,omitempty" validate:"omitempty,max=300"`
	DiscordUserID string `json:"discordUserId,omitempty" validate:"omitempty,snowflake"`
	FileURL       string `json:"fileUrl,omitempty" validate:"omitempty,url"`
}

// OrderRequest is the POST /api/order payload.
type OrderRequest struct {
	OrderID  string     `json:"orderId,omitempty" validate:"omitempty,min=1,max=64"`
	Items    []CartItem `json:"items" validate:"required,min=1,max=50,dive"`
	Customer Customer   `json:"customer" validate:"required"`
}

// OrderResponse reports a successful intake.
type OrderResponse struct {
	OK        bool   `json:"ok"`
	OrderID   string `json:"orderId"`
	ChannelID string `json:"channelId"`
	InviteURL string `json:"inviteUrl,omitempty"`
}

type CloseRequest struct {
	ChannelID string `json:"channelId" validate:"required,snowflake"`
	// Action close renames the channel and posts a closing message;
	// delete removes it entirely. Defaults to close.
	Action string `json:"action,omitempty" validate:"omitempty,oneof=close delete"`
}

type GrantRequest struct {
	ChannelID         string `json:"channelId" validate:"required,snowflake"`
	CustomerDiscordID string `json:"customerDiscordId" validate:"required,snowflake"`
}

type MembershipResponse struct {
	OK      bool `json:"ok"`
	Member  bool `json:"member"`
	Pending bool `json:"pending"`
	Ready   bool `json:"ready"`
}

type MeResponse struct {
	DiscordUserID *string `json:"discordUserId"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type Product struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Collection string   `json:"collection"`
	Price      int      `json:"price"`
	Images     []string `json:"images"`
}

func OrderRequestToEntity(req OrderRequest) entities.OrderSubmission {
	items := make([]entities.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, entities.CartItem{
			ID:    item.ID,
			Name:  item.Name,
			Qty:   item.Qty,
			Price: item.Price,
			Image: item.Image,
		})
	}

	return entities.OrderSubmission{
		OrderID: req.OrderID,
		Items:   items,
		Customer: entities.Customer{
			Brief:         req.Customer.Brief,
			Name:          req.Customer.Name,
			Contact:       req.Customer.Contact,
			DiscordUserID: req.Customer.DiscordUserID,
			FileURL:       req.Customer.FileURL,
		},
	}
}

func ProductEntityToJSON(p entities.Product) Product {
	return Product{
		ID:         p.ID,
		Name:       p.Name,
		Collection: p.Collection,
		Price:      p.Price,
		Images:     p.Images,
	}
}

func MembershipEntityToJSON(m entities.Membership) MembershipResponse {
	return MembershipResponse{
		OK:      true,
		Member:  m.Member,
		Pending: m.Pending,
		Ready:   m.Ready,
	}
}
