package sheets

import "context"

// Grid is a worksheet as rows of cell strings. Rows are ragged: sources do
// not pad short rows, so consumers must bounds-check column access.
type Grid [][]string

// Ports for inbound spreadsheet adapters.
type (
	// GridSource fetches one worksheet of a spreadsheet as a Grid. The
	// worksheet argument is the tab title as shown in the spreadsheet UI.
	GridSource interface {
		Fetch(ctx context.Context, spreadsheetID, worksheet string) (Grid, error)
	}
)
