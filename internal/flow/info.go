package flow

import (
	"context"
	"fmt"
)

type infoFlow struct{}

func (f *infoFlow) menuMessage(req Request) Message {
	rows := make([]ListRow, 0, len(req.Tenant.Topics))
	for i, topic := range req.Tenant.Topics {
		rows = append(rows, ListRow{ID: fmt.Sprintf("%d", i+1), Title: topic.Question})
	}
	return List(ListMessage{
		Body: T(req.Lang, msgMenuHeader, req.Tenant.Name) + "\n" + T(req.Lang, msgInfoHeader),
		Rows: rows,
	})
}

// menu lists FAQ topics; a selection answers it.
func (f *infoFlow) menu(ctx context.Context, req Request) (Result, error) {
	choice, ok := parseChoice(req.Text)
	if !ok || choice < 1 || choice > len(req.Tenant.Topics) {
		msgs := []Message{f.menuMessage(req)}
		if req.Text != "" {
			msgs = []Message{Text(T(req.Lang, msgInvalidOption)), f.menuMessage(req)}
		}
		return stay(req, msgs...), nil
	}

	topic := req.Tenant.Topics[choice-1]
	return Result{
		NextStep: StepInfoTopic,
		Data:     req.Session.Data.Clone(),
		Messages: []Message{
			Text(topic.Answer),
			Text(T(req.Lang, msgInfoBack)),
		},
	}, nil
}

// topic follows up an answer: 0 returns to the menu, another number answers
// a different topic.
func (f *infoFlow) topic(ctx context.Context, req Request) (Result, error) {
	choice, ok := parseChoice(req.Text)
	if ok && choice == 0 {
		return Result{NextStep: StepMenu, Data: req.Session.Data.Clone(), Redispatch: true}, nil
	}
	if ok && choice >= 1 && choice <= len(req.Tenant.Topics) {
		topic := req.Tenant.Topics[choice-1]
		return stay(req, Text(topic.Answer), Text(T(req.Lang, msgInfoBack))), nil
	}
	return stay(req, Text(T(req.Lang, msgInfoBack))), nil
}
