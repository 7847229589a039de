package gioui

import (
	"fmt"

	"gioui.org/widget"
)

// iconCache holds the decoded IconVG icons, keyed by the first byte of their
// data, as the same icon is drawn every frame by many buttons.
var iconCache = map[*byte]*widget.Icon{}

func widgetForIcon(data []byte) *widget.Icon {
	if len(data) == 0 {
		return nil
	}
	if icon, ok := iconCache[&data[0]]; ok {
		return icon
	}
	icon, err := widget.NewIcon(data)
	if err != nil {
		// the icons are compiled in, so this is a programming error
		panic(fmt.Sprintf("invalid icon data: %v", err))
	}
	iconCache[&data[0]] = icon
	return icon
}
