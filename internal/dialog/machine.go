package dialog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AlekSi/pointer"

	"github.com/gratefultolord/intake_bot/internal/document"
)

const minNameLength = 3

// Intent tells the host what a reply means beyond its text. The machine
// never changes state because of an intent.
type Intent string

const (
	IntentNone       Intent = ""
	IntentHandoff    Intent = "handoff"
	IntentEndSession Intent = "end_session"
)

type Reply struct {
	Text   string
	Intent Intent
}

type input struct {
	text string
	now  time.Time
}

type handler func(st State, in input) (State, Reply)

var handlers = map[Step]handler{
	StepStart:            handleStart,
	StepAskIsCustomer:    handleAskIsCustomer,
	StepAskPersonType:    handleAskPersonType,
	StepAwaitingDocument: handleAwaitingDocument,
	StepAwaitingName:     handleAwaitingName,
	StepMenuCustomer:     handleMenuCustomer,
	StepMenuNonCustomer:  handleMenuNonCustomer,
}

// Machine advances conversations. It holds no per-user data and is safe
// for concurrent use.
type Machine struct {
	now      func() time.Time
	location *time.Location
}

type Option func(*Machine)

func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// WithLocation sets the time zone the greeting hour is read in.
func WithLocation(loc *time.Location) Option {
	return func(m *Machine) {
		m.location = loc
	}
}

func New(opts ...Option) *Machine {
	m := &Machine{
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// Advance consumes one inbound message and returns the next state and the reply.
// A missing step is a new conversation; an unrecognized one is reset to start.
func (m *Machine) Advance(st State, text string) (State, Reply) {
	if st.Step == "" {
		st.Step = StepStart
	}

	h, ok := handlers[st.Step]
	if !ok {
		return NewState(), Reply{Text: msgUnknownStep}
	}

	return h(st, input{text: text, now: m.now().In(m.location)})
}

func greetingFor(hour int) string {
	switch {
	case hour < 12:
		return greetingMorning
	case hour < 18:
		return greetingAfternoon
	default:
		return greetingEvening
	}
}

func handleStart(st State, in input) (State, Reply) {
	if st.Greeting == nil {
		st.Greeting = pointer.ToString(greetingFor(in.now.Hour()))
	}
	st.Step = StepAskIsCustomer

	return st, Reply{Text: fmt.Sprintf(welcomeTemplate, pointer.GetString(st.Greeting))}
}

func handleAskIsCustomer(st State, in input) (State, Reply) {
	switch {
	case answerNotCustomer.matches(in.text):
		st.IsCustomer = pointer.ToBool(false)
	case answerCustomer.matches(in.text):
		st.IsCustomer = pointer.ToBool(true)
	default:
		return st, Reply{Text: msgIsCustomerInvalid}
	}

	st.Step = StepAskPersonType

	return st, Reply{Text: msgAskPersonType}
}

func handleAskPersonType(st State, in input) (State, Reply) {
	var reply string
	switch {
	case answerIndividual.matches(in.text):
		st.PersonType = pointer.To(PersonIndividual)
		reply = msgAskIndividualID
	case answerOrganization.matches(in.text):
		st.PersonType = pointer.To(PersonOrganization)
		reply = msgAskOrganizationID
	default:
		return st, Reply{Text: msgPersonTypeInvalid}
	}

	st.Step = StepAwaitingDocument

	return st, Reply{Text: reply}
}

func handleAwaitingDocument(st State, in input) (State, Reply) {
	if st.PersonType == nil || !st.PersonType.Valid() {
		st.PersonType = nil
		st.Step = StepAskPersonType
		return st, Reply{Text: msgAskPersonType}
	}

	kind := st.PersonType.Kind()
	res := document.Validate(kind, in.text)
	if !res.Valid {
		return st, Reply{Text: fmt.Sprintf(documentRejectedTemplate, kind.Label())}
	}

	st.Document = pointer.ToString(res.Digits)
	st.Step = StepAwaitingName

	return st, Reply{Text: fmt.Sprintf(documentAcceptedTemplate, kind.Label(), res.Formatted)}
}

func handleAwaitingName(st State, in input) (State, Reply) {
	name := strings.TrimSpace(in.text)
	if utf8.RuneCountInString(name) < minNameLength {
		return st, Reply{Text: msgNameTooShort}
	}

	st.Name = pointer.ToString(name)

	if pointer.GetBool(st.IsCustomer) {
		st.Step = StepMenuCustomer
		return st, Reply{Text: fmt.Sprintf(customerMenuTemplate, name)}
	}

	st.Step = StepMenuNonCustomer

	return st, Reply{Text: fmt.Sprintf(nonCustomerMenuTemplate, name)}
}

func handleMenuCustomer(st State, in input) (State, Reply) {
	return st, selectOption(customerMenu, in.text, msgCustomerMenuInvalid)
}

func handleMenuNonCustomer(st State, in input) (State, Reply) {
	return st, selectOption(nonCustomerMenu, in.text, msgNonCustomerMenuInvalid)
}

func selectOption(menu map[string]menuOption, text, invalid string) Reply {
	opt, ok := menu[optionCode(text)]
	if !ok {
		return Reply{Text: invalid}
	}

	return Reply{Text: opt.text, Intent: opt.intent}
}
