package keyboard

import "keymatrix-go/bus"

// Topics published by the controller.
var (
	TopicMode  = bus.T("kbd", "mode")  // retained types.ModeEvent
	TopicPress = bus.T("kbd", "press") // types.PressEvent
	TopicFault = bus.T("kbd", "fault") // retained types.FaultEvent
)
