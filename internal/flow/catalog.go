package flow

import (
	"context"
	"fmt"

	"github.com/resvio/bot-platform/internal/session"
)

type catalogFlow struct{}

func (f *catalogFlow) menuMessage(req Request) Message {
	rows := make([]ListRow, 0, len(req.Tenant.Products))
	for i, p := range req.Tenant.Products {
		rows = append(rows, ListRow{
			ID:          fmt.Sprintf("%d", i+1),
			Title:       p.Name,
			Description: p.PriceText,
		})
	}
	return List(ListMessage{
		Body: T(req.Lang, msgMenuHeader, req.Tenant.Name) + "\n" + T(req.Lang, msgCatalogHeader),
		Rows: rows,
	})
}

// menu lists the tenant's products; a selection shows that product.
func (f *catalogFlow) menu(ctx context.Context, req Request) (Result, error) {
	choice, ok := parseChoice(req.Text)
	if !ok || choice < 1 || choice > len(req.Tenant.Products) {
		msgs := []Message{f.menuMessage(req)}
		if req.Text != "" {
			msgs = []Message{Text(T(req.Lang, msgInvalidOption)), f.menuMessage(req)}
		}
		return stay(req, msgs...), nil
	}

	p := req.Tenant.Products[choice-1]
	data := req.Session.Data.Clone()
	data.Catalog = &session.CatalogData{ProductID: p.ID}
	return Result{
		NextStep: StepCatalogItem,
		Data:     data,
		Messages: []Message{
			Text(T(req.Lang, msgCatalogItem, p.Name, p.Description, p.PriceText)),
			Text(T(req.Lang, msgBackOption)),
		},
	}, nil
}

// item shows a product detail; 0 returns to the catalog menu.
func (f *catalogFlow) item(ctx context.Context, req Request) (Result, error) {
	choice, ok := parseChoice(req.Text)
	if ok && choice == 0 {
		data := req.Session.Data.Clone()
		data.Catalog = nil
		return Result{NextStep: StepMenu, Data: data, Redispatch: true}, nil
	}
	// Any other number is treated as a new catalog selection.
	if ok && choice >= 1 && choice <= len(req.Tenant.Products) {
		return f.menu(ctx, req)
	}
	return stay(req, Text(T(req.Lang, msgBackOption))), nil
}
