package byteglass

import (
	"fmt"
	"io"
)

// Legend writes one line per rendering rule showing the marker, the
// pattern it stands for, its byte class, and the resolved style. The
// marker is printed in its own style when live styles are on, so the
// legend doubles as a color check.
func Legend(w io.Writer, cfg Config) error {
	registry := NewRegistry(cfg)
	for _, t := range registry.Templates() {
		marker := string(rune(t.Label()))
		if t.Label() == 0 {
			marker = "·"
		}
		if cfg.Styles == StylesLive && !t.Style().IsZero() {
			marker = string(t.Style().Sequence()) + marker + string(t.Style().Closer())
		}
		if _, err := fmt.Fprintf(w, "  %s  %-9s %-10s %s\n", marker, t.Kind(), t.Class(), t.Style().Brief()); err != nil {
			return err
		}
	}
	return nil
}
