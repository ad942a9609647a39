package engine

// connection forwards to the attached Editor and turns every call into a
// no-op while no editor is attached.
type connection struct {
	ed Editor
}

func (c *connection) has() bool { return c.ed != nil }

func (c *connection) commitText(text string) {
	if c.ed != nil {
		c.ed.CommitText(text)
	}
}

func (c *connection) commitCorrection(offset int, oldText, newText string) {
	if c.ed != nil {
		c.ed.CommitCorrection(offset, oldText, newText)
	}
}

func (c *connection) commitCompletion(index int, text string) {
	if c.ed != nil {
		c.ed.CommitCompletion(index, text)
	}
}

func (c *connection) deleteSurrounding(before, after int) {
	if c.ed != nil {
		c.ed.DeleteSurrounding(before, after)
	}
}

func (c *connection) setComposingText(text string) {
	if c.ed != nil {
		c.ed.SetComposingText(text)
	}
}

func (c *connection) setComposingRegion(start, end int) {
	if c.ed != nil {
		c.ed.SetComposingRegion(start, end)
	}
}

func (c *connection) finishComposingText() {
	if c.ed != nil {
		c.ed.FinishComposingText()
	}
}

func (c *connection) setSelection(start, end int) {
	if c.ed != nil {
		c.ed.SetSelection(start, end)
	}
}

func (c *connection) beginBatchEdit() bool {
	return c.ed != nil && c.ed.BeginBatchEdit()
}

func (c *connection) endBatchEdit() {
	if c.ed != nil {
		c.ed.EndBatchEdit()
	}
}

func (c *connection) textBeforeCursor(n int) string {
	if c.ed == nil {
		return ""
	}
	return c.ed.TextBeforeCursor(n)
}

func (c *connection) textAfterCursor(n int) string {
	if c.ed == nil {
		return ""
	}
	return c.ed.TextAfterCursor(n)
}

func (c *connection) selectedText() string {
	if c.ed == nil {
		return ""
	}
	return c.ed.SelectedText()
}

// cursor returns the end of the editor selection, or 0 without an editor.
func (c *connection) cursor() int {
	if c.ed == nil {
		return 0
	}
	_, end := c.ed.Selection()
	return end
}

func (c *connection) selection() (int, int) {
	if c.ed == nil {
		return 0, 0
	}
	return c.ed.Selection()
}

func (c *connection) sendKeyChar(code rune) {
	if c.ed != nil {
		c.ed.SendKeyChar(code)
	}
}

func (c *connection) sendDelete() {
	if c.ed != nil {
		c.ed.SendDelete()
	}
}

func (c *connection) sendForwardDelete() {
	if c.ed != nil {
		c.ed.SendForwardDelete()
	}
}
