// Package presentation defines what the gate shows to the driver and how the
// driver's input reaches the controller.
package presentation

// Display is the presentation layer as seen by the controller. Each call is a
// single, short mutation of what is shown.
type Display interface {
	ShowLoginPrompt()
	HideLoginPrompt()
	ReadCredentialInput() string
	ClearCredentialInput()
	SetKeyboardVisible(visible bool)
	SetBarrierVisible(visible bool)
	SetArmAngle(tenthsDeg int)
	ShowMessage(text string)
	SetCountDisplay(count, max int)
	SetClockDisplay(text string)
	SetGateStateDisplay(state string)
}
