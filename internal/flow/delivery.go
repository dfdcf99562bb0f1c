package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/resvio/bot-platform/internal/session"
)

type deliveryFlow struct{}

func (f *deliveryFlow) menuMessage(req Request) Message {
	rows := make([]ListRow, 0, len(req.Tenant.DeliveryMenu))
	for i, item := range req.Tenant.DeliveryMenu {
		rows = append(rows, ListRow{
			ID:          fmt.Sprintf("%d", i+1),
			Title:       item.Name,
			Description: item.PriceText,
		})
	}
	return List(ListMessage{
		Body: T(req.Lang, msgMenuHeader, req.Tenant.Name) + "\n" + T(req.Lang, msgDeliveryHeader),
		Rows: rows,
	})
}

// menu lists the delivery menu; a selection asks for quantity.
func (f *deliveryFlow) menu(ctx context.Context, req Request) (Result, error) {
	choice, ok := parseChoice(req.Text)
	if !ok || choice < 1 || choice > len(req.Tenant.DeliveryMenu) {
		msgs := []Message{f.menuMessage(req)}
		if req.Text != "" {
			msgs = []Message{Text(T(req.Lang, msgInvalidOption)), f.menuMessage(req)}
		}
		return stay(req, msgs...), nil
	}

	item := req.Tenant.DeliveryMenu[choice-1]
	data := req.Session.Data.Clone()
	data.Delivery = &session.DeliveryData{ItemID: item.ID, ItemName: item.Name}
	return Result{NextStep: StepDeliveryQuantity, Data: data, Redispatch: true}, nil
}

// quantity collects how many units to order, 1 through 9.
func (f *deliveryFlow) quantity(ctx context.Context, req Request) (Result, error) {
	data := req.Session.Data.Clone()
	if data.Delivery == nil {
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	}

	if req.Text == "" {
		return stay(req, Text(T(req.Lang, msgAskQuantity, data.Delivery.ItemName))), nil
	}

	qty, ok := parseChoice(req.Text)
	if !ok || qty < 1 || qty > 9 {
		return stay(req, Text(T(req.Lang, msgInvalidQuantity))), nil
	}
	data.Delivery.Quantity = qty
	return Result{NextStep: StepDeliveryAddress, Data: data, Redispatch: true}, nil
}

// address collects the delivery address; short inputs re-prompt.
func (f *deliveryFlow) address(ctx context.Context, req Request) (Result, error) {
	data := req.Session.Data.Clone()
	if data.Delivery == nil {
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	}

	if req.Text == "" {
		return stay(req, Text(T(req.Lang, msgAskAddress))), nil
	}

	addr := strings.TrimSpace(req.Text)
	if len([]rune(addr)) < 8 {
		return stay(req, Text(T(req.Lang, msgAddressTooShort))), nil
	}
	data.Delivery.Address = addr
	return Result{NextStep: StepDeliveryConfirm, Data: data, Redispatch: true}, nil
}

// confirm shows the order summary and closes it on "1".
func (f *deliveryFlow) confirm(ctx context.Context, req Request) (Result, error) {
	data := req.Session.Data.Clone()
	if data.Delivery == nil {
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	}
	d := data.Delivery

	summary := []Message{
		Text(T(req.Lang, msgDeliverySummary, d.Quantity, d.ItemName, d.Address, req.Tenant.DeliveryFeeText)),
		Text(T(req.Lang, msgConfirmOptions)),
	}
	if req.Text == "" {
		return stay(req, summary...), nil
	}

	choice, ok := parseChoice(req.Text)
	switch {
	case ok && choice == 1:
		done := Text(T(req.Lang, msgDeliveryConfirmed))
		data.Delivery = nil
		return Result{NextStep: StepMenu, Data: data, Messages: []Message{done}}, nil
	case ok && choice == 0:
		data.Delivery = nil
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	default:
		return stay(req, append([]Message{Text(T(req.Lang, msgInvalidOption))}, summary...)...), nil
	}
}
