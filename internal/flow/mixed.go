package flow

import "context"

// mixedMenu is the entire mixed flow: it only asks which of the other flows
// the customer wants and hands the session off via a flow override. It holds
// no booking or catalog logic of its own.
func mixedMenu(ctx context.Context, req Request) (Result, error) {
	prompt := Text(T(req.Lang, msgMixedMenu, req.Tenant.Name))

	choice, ok := parseChoice(req.Text)
	if !ok || choice == 0 {
		msgs := []Message{prompt}
		if req.Text != "" {
			msgs = []Message{Text(T(req.Lang, msgInvalidOption)), prompt}
		}
		return stay(req, msgs...), nil
	}

	var target ID
	switch choice {
	case 1:
		target = FlowBooking
	case 2:
		target = FlowCatalog
	case 3:
		target = FlowInfo
	default:
		return stay(req, Text(T(req.Lang, msgInvalidOption)), prompt), nil
	}

	return Result{
		NextStep:     StepMenu,
		Data:         req.Session.Data.Clone(),
		FlowOverride: target,
		Redispatch:   true,
	}, nil
}

// fallbackMenu handles tenants with an unrecognized business category: a
// single static reply pointing at the tenant's contact phone.
func fallbackMenu(ctx context.Context, req Request) (Result, error) {
	return stay(req, Text(T(req.Lang, msgFallback, req.Tenant.Name, req.Tenant.ContactPhone))), nil
}
