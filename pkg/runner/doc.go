/*
Package runner drives a list screen from a line-oriented terminal or pipe.

Each loop iteration shows the current state through an IOHandler, reads one
line, turns it into actions and sends them to a roster.Store. Persistence is
the store's concern; the runner only translates.

# Commands

	add            open the editor for a new contact
	name <text>    type into the editor
	save           save the editor (ignored while the name is blank)
	cancel         close the editor or the prompt
	delete <n>     ask to delete the n-th contact (1-based)
	confirm        confirm the presented prompt
	list           show the screen again
	help           show this list
	quit           leave

Lines starting with "{" are decoded as wire actions (see package schema).
*/
package runner
