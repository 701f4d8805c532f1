package models

import "strings"

// RegexMarker prefixes order-file lines that hold deferred-placement patterns.
const RegexMarker = "(regex)"

// OrderList is the trimmed, non-empty lines of an order file in declared order.
type OrderList struct {
	Lines []string
}

// Empty reports whether the list holds no lines.
func (o OrderList) Empty() bool {
	return len(o.Lines) == 0
}

// PlainLines returns the lines not carrying the regex marker, in declared order.
func (o OrderList) PlainLines() []string {
	out := make([]string, 0, len(o.Lines))
	for _, line := range o.Lines {
		if !strings.HasPrefix(line, RegexMarker) {
			out = append(out, line)
		}
	}
	return out
}

// RegexLines returns the lines carrying the regex marker (marker kept), in declared order.
func (o OrderList) RegexLines() []string {
	out := make([]string, 0)
	for _, line := range o.Lines {
		if strings.HasPrefix(line, RegexMarker) {
			out = append(out, line)
		}
	}
	return out
}

// FinalOrder is the resolved sequence of absolute paths for one root,
// oldest timestamp first.
type FinalOrder []string
