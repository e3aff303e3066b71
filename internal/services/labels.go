package services

import "log"

// Label is the payload handed to the printing collaborator: the three fields
// a part label carries, verbatim. Layout and transport are the printer's
// problem, not this engine's.
type Label struct {
	UPC         string `json:"upc"`
	Placement   string `json:"placement"`
	Description string `json:"description"`
}

// LabelPrinter renders and transmits a part label.
type LabelPrinter interface {
	Print(label Label) error
}

// LogPrinter is the default collaborator when no physical printer is wired
// up: it just records what would have been printed.
type LogPrinter struct{}

func (LogPrinter) Print(label Label) error {
	log.Printf("[INFO] LabelPrinter: upc=%s placement=%s desc=%q", label.UPC, label.Placement, label.Description)
	return nil
}
