package dnd

// PendingMove is one optimistic move awaiting its remote confirmation. It
// carries the inverse placement so a failure can be compensated without
// touching unrelated state.
type PendingMove struct {
	OpID     string
	BoardID  int
	ItemID   int
	Title    string
	From     Placement
	To       Placement
	ToColumn string

	// Epoch is the store snapshot the mutation was applied to. A reload in
	// between means the mutation has already been discarded.
	Epoch uint64
}

// pendingLog tracks unconfirmed moves in dispatch order.
type pendingLog struct {
	ops   map[string]*PendingMove
	order []string
}

func newPendingLog() *pendingLog {
	return &pendingLog{ops: make(map[string]*PendingMove)}
}

func (l *pendingLog) add(op *PendingMove) {
	l.ops[op.OpID] = op
	l.order = append(l.order, op.OpID)
}

// remove drops an op and reports whether it was still pending.
func (l *pendingLog) remove(opID string) bool {
	if _, ok := l.ops[opID]; !ok {
		return false
	}
	delete(l.ops, opID)
	for i, id := range l.order {
		if id == opID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// laterMoveOf reports whether another op dispatched after opID moves the
// same item. Such an op owns the item's current placement.
func (l *pendingLog) laterMoveOf(opID string, itemID int) bool {
	after := false
	for _, id := range l.order {
		if id == opID {
			after = true
			continue
		}
		if after && l.ops[id].ItemID == itemID {
			return true
		}
	}
	return false
}

func (l *pendingLog) len() int {
	return len(l.order)
}

func (l *pendingLog) list() []*PendingMove {
	out := make([]*PendingMove, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.ops[id])
	}
	return out
}
