// Package display renders user-facing command output: order listings and
// warnings.
//
// Log lines go through the logger package. This package is for the output a
// command produces on purpose, such as the listing printed by show:
//
//	listing := display.NewOrderListing(cmd.OutOrStdout(), report)
//	listing.Print()
//
// Warnings carry an optional message, related files and a suggestion:
//
//	warning := display.Warning{
//	    Title:      "Order file already exists",
//	    Files:      []string{path},
//	    Suggestion: "Use --force to overwrite it",
//	}
//	warning.Display(os.Stderr)
//
// Color is used only when the writer is a terminal.
package display
