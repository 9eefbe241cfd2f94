package preview

import (
	"fmt"
	"io"
)

// Integration names accepted by Named.
const (
	IntegrationNone = "none"
	IntegrationEcho = "echo"
)

// Echo returns an integration whose entry points write what they were asked
// to show to w. It stands in for the try-on surface when running outside the
// game client.
func Echo(w io.Writer) Symbols {
	return Symbols{
		EntryOpen: OpenFunc(func() error {
			_, err := fmt.Fprintln(w, "tryon: open")
			return err
		}),
		EntryPreview: PreviewFunc(func(itemID uint32, dyeID uint16) error {
			_, err := fmt.Fprintf(w, "tryon: item %d dye %d\n", itemID, dyeID)
			return err
		}),
	}
}

// Named returns the integration configured by name. "none" and "" return
// nil, which selects the fallback bridge.
func Named(name string, w io.Writer) (Integration, error) {
	switch name {
	case "", IntegrationNone:
		return nil, nil
	case IntegrationEcho:
		return Echo(w), nil
	default:
		return nil, fmt.Errorf("unknown preview integration %q", name)
	}
}
