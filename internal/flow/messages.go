package flow

import "fmt"

// Message catalog keys.
const (
	msgInvalidOption     = "invalid_option"
	msgMenuHeader        = "menu_header"
	msgMenuMyAppts       = "menu_my_appts"
	msgChooseDate        = "choose_date"
	msgNoDates           = "no_dates"
	msgChooseTime        = "choose_time"
	msgNoTimes           = "no_times"
	msgBackOption        = "back_option"
	msgAskName           = "ask_name"
	msgNameTooShort      = "name_too_short"
	msgAskNote           = "ask_note"
	msgConfirmSummary    = "confirm_summary"
	msgConfirmOptions    = "confirm_options"
	msgBookingCreated    = "booking_created"
	msgBookingAborted    = "booking_aborted"
	msgApptsHeader       = "appts_header"
	msgNoAppts           = "no_appts"
	msgChangeTypePrompt  = "change_type_prompt"
	msgRescheduled       = "rescheduled"
	msgApptCancelled     = "appt_cancelled"
	msgCatalogHeader     = "catalog_header"
	msgCatalogItem       = "catalog_item"
	msgInfoHeader        = "info_header"
	msgInfoBack          = "info_back"
	msgEventHeader       = "event_header"
	msgAskGuests         = "ask_guests"
	msgInvalidGuests     = "invalid_guests"
	msgRSVPConfirmed     = "rsvp_confirmed"
	msgDeliveryHeader    = "delivery_header"
	msgAskQuantity       = "ask_quantity"
	msgInvalidQuantity   = "invalid_quantity"
	msgAskAddress        = "ask_address"
	msgAddressTooShort   = "address_too_short"
	msgDeliverySummary   = "delivery_summary"
	msgDeliveryConfirmed = "delivery_confirmed"
	msgMixedMenu         = "mixed_menu"
	msgFallback          = "fallback"
	// MsgApology is exported for the dispatcher's failure path.
	MsgApology = "apology"
)

var catalog = map[string]map[string]string{
	"en": {
		msgInvalidOption:     "Sorry, I didn't understand that option. Please reply with one of the numbers below.",
		msgMenuHeader:        "Hi! This is %s. How can we help you today?",
		msgMenuMyAppts:       "My appointments",
		msgChooseDate:        "Choose a date for your %s:",
		msgNoDates:           "We have no open days coming up. Please contact us directly.",
		msgChooseTime:        "Available times on %s:",
		msgNoTimes:           "No times are free on that date. Let's pick another day.",
		msgBackOption:        "Reply 0 to go back.",
		msgAskName:           "What name should we put on the booking?",
		msgNameTooShort:      "That name looks too short. Please send your full name.",
		msgAskNote:           "Anything we should know? Send a note, or 0 for none.",
		msgConfirmSummary:    "Please confirm your booking:\n%s on %s at %s\nName: %s%s",
		msgConfirmOptions:    "Reply 1 to confirm or 0 to cancel.",
		msgBookingCreated:    "All set! Your %s is booked for %s at %s. See you then!",
		msgBookingAborted:    "No problem, nothing was booked.",
		msgApptsHeader:       "Your upcoming appointments:",
		msgNoAppts:           "You have no upcoming appointments.",
		msgChangeTypePrompt:  "What would you like to do with your %s on %s at %s?\n1 - Change the date\n2 - Change the time\n3 - Cancel it\n0 - Back to menu",
		msgRescheduled:       "Done! Your %s is now on %s at %s.",
		msgApptCancelled:     "Your %s on %s has been cancelled.",
		msgCatalogHeader:     "Here's what we have:",
		msgCatalogItem:       "%s\n%s\nPrice: %s",
		msgInfoHeader:        "What would you like to know?",
		msgInfoBack:          "Reply 0 for the menu, or another number for a different question.",
		msgEventHeader:       "Upcoming events:",
		msgAskGuests:         "How many people are coming, including you? (1-20)",
		msgInvalidGuests:     "Please send a number between 1 and 20.",
		msgRSVPConfirmed:     "You're in! %s for %d on %s. We'll save your spot, %s.",
		msgDeliveryHeader:    "What would you like to order?",
		msgAskQuantity:       "How many %s? (1-9)",
		msgInvalidQuantity:   "Please send a quantity between 1 and 9.",
		msgAskAddress:        "Where should we deliver? Send street, number and neighborhood.",
		msgAddressTooShort:   "That address looks incomplete. Please send street, number and neighborhood.",
		msgDeliverySummary:   "Your order:\n%dx %s\nDeliver to: %s\nDelivery fee: %s",
		msgDeliveryConfirmed: "Order confirmed! We'll be on our way soon.",
		msgMixedMenu:         "Hi! This is %s. What would you like?\n1 - Book an appointment\n2 - See our products\n3 - Questions and info",
		msgFallback:          "Thanks for reaching out to %s! Please call us at %s and we'll be happy to help.",
		MsgApology:           "Sorry, something went wrong on our side. Please try again in a moment.",
	},
	"pt": {
		msgInvalidOption:     "Desculpe, não entendi essa opção. Responda com um dos números abaixo.",
		msgMenuHeader:        "Olá! Aqui é %s. Como podemos ajudar?",
		msgMenuMyAppts:       "Meus agendamentos",
		msgChooseDate:        "Escolha uma data para %s:",
		msgNoDates:           "Não temos dias disponíveis em breve. Entre em contato conosco.",
		msgChooseTime:        "Horários disponíveis em %s:",
		msgNoTimes:           "Não há horários livres nessa data. Vamos escolher outro dia.",
		msgBackOption:        "Responda 0 para voltar.",
		msgAskName:           "Qual nome devemos colocar no agendamento?",
		msgNameTooShort:      "Esse nome parece muito curto. Envie seu nome completo.",
		msgAskNote:           "Alguma observação? Envie uma mensagem, ou 0 para nenhuma.",
		msgConfirmSummary:    "Confirme seu agendamento:\n%s em %s às %s\nNome: %s%s",
		msgConfirmOptions:    "Responda 1 para confirmar ou 0 para cancelar.",
		msgBookingCreated:    "Pronto! Seu %s está agendado para %s às %s. Até lá!",
		msgBookingAborted:    "Sem problemas, nada foi agendado.",
		msgApptsHeader:       "Seus próximos agendamentos:",
		msgNoAppts:           "Você não tem agendamentos futuros.",
		msgChangeTypePrompt:  "O que deseja fazer com seu %s em %s às %s?\n1 - Mudar a data\n2 - Mudar o horário\n3 - Cancelar\n0 - Voltar ao menu",
		msgRescheduled:       "Feito! Seu %s agora é em %s às %s.",
		msgApptCancelled:     "Seu %s em %s foi cancelado.",
		msgCatalogHeader:     "Veja o que temos:",
		msgCatalogItem:       "%s\n%s\nPreço: %s",
		msgInfoHeader:        "O que você gostaria de saber?",
		msgInfoBack:          "Responda 0 para o menu, ou outro número para outra pergunta.",
		msgEventHeader:       "Próximos eventos:",
		msgAskGuests:         "Quantas pessoas vão, incluindo você? (1-20)",
		msgInvalidGuests:     "Envie um número entre 1 e 20.",
		msgRSVPConfirmed:     "Confirmado! %s para %d em %s. Vamos guardar seu lugar, %s.",
		msgDeliveryHeader:    "O que você gostaria de pedir?",
		msgAskQuantity:       "Quantos %s? (1-9)",
		msgInvalidQuantity:   "Envie uma quantidade entre 1 e 9.",
		msgAskAddress:        "Onde devemos entregar? Envie rua, número e bairro.",
		msgAddressTooShort:   "Esse endereço parece incompleto. Envie rua, número e bairro.",
		msgDeliverySummary:   "Seu pedido:\n%dx %s\nEntregar em: %s\nTaxa de entrega: %s",
		msgDeliveryConfirmed: "Pedido confirmado! Logo estaremos a caminho.",
		msgMixedMenu:         "Olá! Aqui é %s. O que você deseja?\n1 - Agendar um horário\n2 - Ver nossos produtos\n3 - Dúvidas e informações",
		msgFallback:          "Obrigado por falar com %s! Ligue para %s e teremos prazer em ajudar.",
		MsgApology:           "Desculpe, tivemos um problema por aqui. Tente novamente em instantes.",
	},
}

// T resolves a catalog message for a language, formatting arguments in.
// Unknown languages fall back to English.
func T(lang, key string, args ...any) string {
	msgs, ok := catalog[lang]
	if !ok {
		msgs = catalog["en"]
	}
	tmpl, ok := msgs[key]
	if !ok {
		tmpl = catalog["en"][key]
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
