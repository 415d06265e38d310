package tui

// commentFocus tracks which sibling comment is focused under one parent.
type commentFocus struct {
	parentID  int
	focusedID int
	index     int
	sameLevel int
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// Seed focuses id under parentID before the first reconciliation.
func (f *commentFocus) Seed(parentID, id int) {
	f.parentID, f.focusedID = parentID, id
}

// Reconcile applies freshly fetched kids. Under the same parent the focused
// comment is found again by id; otherwise, or when it vanished, focus falls
// back to the first kid.
func (f *commentFocus) Reconcile(parentID int, kids []int) {
	f.sameLevel = len(kids)
	sameParent := parentID == f.parentID
	f.parentID = parentID

	if len(kids) == 0 {
		f.focusedID, f.index = 0, 0
		return
	}
	if sameParent && f.focusedID != 0 {
		if i := indexOf(kids, f.focusedID); i >= 0 {
			f.index = i
			return
		}
	}
	f.focusedID, f.index = kids[0], 0
}

// Restore focuses id if it is one of kids.
func (f *commentFocus) Restore(id int, kids []int) bool {
	i := indexOf(kids, id)
	if i < 0 {
		return false
	}
	f.focusedID, f.index = id, i
	return true
}

// Next moves to the following sibling, wrapping around, and returns it.
func (f *commentFocus) Next(kids []int) int {
	return f.move(kids, 1)
}

// Previous moves to the preceding sibling, wrapping around, and returns it.
func (f *commentFocus) Previous(kids []int) int {
	return f.move(kids, -1)
}

func (f *commentFocus) move(kids []int, delta int) int {
	f.sameLevel = len(kids)
	if len(kids) == 0 {
		f.focusedID, f.index = 0, 0
		return 0
	}
	i := indexOf(kids, f.focusedID)
	if i < 0 {
		i = 0
	} else {
		i = (i + delta + len(kids)) % len(kids)
	}
	f.focusedID, f.index = kids[i], i
	return f.focusedID
}
