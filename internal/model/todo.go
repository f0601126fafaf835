package model

// Expiration is the optional due date of a todo. Date is kept as the
// string the service sends; the client never parses it.
type Expiration struct {
	DoesExpire bool
	Date       string
}

type Todo struct {
	ID          int64
	Title       string
	Description string
	StateID     int64
	PriorityID  int64
	ColorID     int64
	Expiration  Expiration
}

type TodoState struct {
	ID    int64
	State string
}

type TodoPriority struct {
	ID       int64
	Priority uint8
}

type TodoColor struct {
	ID  int64
	Hex string
}

// Options bundles the read-only reference data a todo points at.
type Options struct {
	States     []TodoState
	Priorities []TodoPriority
	Colors     []TodoColor
}

func (o Options) StateByID(id int64) (TodoState, bool) {
	for _, s := range o.States {
		if s.ID == id {
			return s, true
		}
	}
	return TodoState{}, false
}

func (o Options) PriorityByID(id int64) (TodoPriority, bool) {
	for _, p := range o.Priorities {
		if p.ID == id {
			return p, true
		}
	}
	return TodoPriority{}, false
}

func (o Options) ColorByID(id int64) (TodoColor, bool) {
	for _, c := range o.Colors {
		if c.ID == id {
			return c, true
		}
	}
	return TodoColor{}, false
}
