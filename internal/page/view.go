package page

import (
	"github.com/andreasstove999/ecommerce-system/restaurant-cart-go/internal/display"
)

type ItemView struct {
	MealID   int64  `json:"mealId"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Amount   string `json:"amount"`
}

type ButtonView struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

type BadgeView struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

// View is what the page shows, read back from its display surface.
type View struct {
	SessionID       string     `json:"sessionId"`
	RestaurantID    int64      `json:"restaurantId"`
	RestaurantName  string     `json:"restaurantName"`
	Items           []ItemView `json:"items"`
	Total           string     `json:"total"`
	Button          ButtonView `json:"button"`
	CartCount       BadgeView  `json:"cartCount"`
	SubmissionState string     `json:"submissionState"`
	InFlight        bool       `json:"inFlight"`
	Notices         []string   `json:"notices"`
}

func (s *Session) View() View {
	items := s.ctrl.Items()
	v := View{
		SessionID:      s.ID,
		RestaurantID:   s.Restaurant.ID,
		RestaurantName: s.Restaurant.Name,
		Items:          make([]ItemView, 0, len(items)),
		Total:          display.Text(s.surface, display.TotalKey),
		Button: ButtonView{
			Label:   display.Text(s.surface, display.ButtonLabelKey),
			Enabled: !display.Flag(s.surface, display.ButtonDisabledKey),
		},
		CartCount: BadgeView{
			Text:    display.Text(s.surface, display.BadgeTextKey),
			Visible: display.Flag(s.surface, display.BadgeVisibleKey),
		},
		SubmissionState: s.ctrl.State().String(),
		InFlight:        s.ctrl.InFlight(),
		Notices:         s.surface.Notices(),
	}
	for _, it := range items {
		v.Items = append(v.Items, ItemView{
			MealID:   it.ID,
			Name:     display.Text(s.surface, display.NameKey(it.ID)),
			Price:    display.Text(s.surface, display.PriceKey(it.ID)),
			Quantity: display.Text(s.surface, display.QuantityKey(it.ID)),
			Amount:   display.Text(s.surface, display.AmountKey(it.ID)),
		})
	}
	if v.Notices == nil {
		v.Notices = []string{}
	}
	return v
}
