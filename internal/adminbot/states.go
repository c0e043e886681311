package adminbot

type AdminState struct {
	Step      string
	HandoffID int64
}

const (
	StateMainMenu = "main_menu"

	StateViewingHandoff = "viewing_handoff"

	StateAddingAdmin = "adding_admin"
)
