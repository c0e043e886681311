package dialog

import "github.com/gratefultolord/intake_bot/internal/document"

type Step string

const (
	StepStart            Step = "start"
	StepAskIsCustomer    Step = "ask_is_customer"
	StepAskPersonType    Step = "ask_person_type"
	StepAwaitingDocument Step = "awaiting_document"
	StepAwaitingName     Step = "awaiting_name"
	StepMenuCustomer     Step = "menu_customer"
	StepMenuNonCustomer  Step = "menu_non_customer"
)

func (s Step) Valid() bool {
	_, ok := handlers[s]
	return ok
}

type PersonType string

const (
	PersonIndividual   PersonType = "individual"
	PersonOrganization PersonType = "organization"
)

// Valid reports whether p is one of the known person types.
func (p PersonType) Valid() bool {
	return p == PersonIndividual || p == PersonOrganization
}

func (p PersonType) Kind() document.Kind {
	if p == PersonOrganization {
		return document.KindOrganization
	}

	return document.KindIndividual
}

// State is everything kept about one user between messages.
// Optional fields stay nil until the step that owns them accepts an answer.
type State struct {
	Step       Step        `json:"step"`
	Greeting   *string     `json:"greeting,omitempty"`
	IsCustomer *bool       `json:"is_customer,omitempty"`
	PersonType *PersonType `json:"person_type,omitempty"`
	Document   *string     `json:"document,omitempty"`
	Name       *string     `json:"name,omitempty"`
}

func NewState() State {
	return State{Step: StepStart}
}
