package value

// List is Ironcamel's persistent singly-linked list: an immutable cons
// chain with O(1) cached length and structurally shared tails (spec.md §3
// "Persistent list", §4.3). Nodes are never mutated after construction, so
// a List can be freely shared across call frames and closures; Go's
// garbage collector reclaims nodes once the last reference drops, which is
// exactly the "structural reference counting" spec.md §3/§5 calls for —
// see DESIGN.md for why no separate refcounting library is used.
type List struct {
	isEmpty bool
	head    Value
	tail    *List
	length  int
}

// Empty is the distinct, shared zero-length list node (spec.md §3 "Empty
// list is a distinct node with length 0 and a placeholder value").
var Empty = &List{isEmpty: true, length: 0}

func (*List) Type() string { return "list" }

func (l *List) String() string {
	// writelist (spec.md §4.4) owns user-facing formatting; String here is
	// only used in diagnostics.
	if l.isEmpty {
		return "[]"
	}
	return "[" + l.head.String() + ", ...]"
}

// Singleton builds a one-element list.
func Singleton(v Value) *List {
	return &List{head: v, tail: Empty, length: 1}
}

// Cons prepends v to tail, sharing tail's node by reference (spec.md §8
// property 3: cons(v, t).Tail() and t refer to the same node).
func Cons(v Value, tail *List) *List {
	return &List{head: v, tail: tail, length: tail.length + 1}
}

// FromSlice builds a list from args in order (spec.md §4.4 `list` builtin).
func FromSlice(vs []Value) *List {
	l := Empty
	for i := len(vs) - 1; i >= 0; i-- {
		l = Cons(vs[i], l)
	}
	return l
}

// IsEmpty reports whether the list has zero elements.
func (l *List) IsEmpty() bool { return l.isEmpty }

// Length returns the cached length in O(1) (spec.md §4.3, §8 property 2).
func (l *List) Length() int { return l.length }

// Head returns the first element and true, or (nil, false) for the empty
// list; the `hd` built-in turns the false case into its fatal empty-list
// error (spec.md §4.4).
func (l *List) Head() (Value, bool) {
	if l.isEmpty {
		return nil, false
	}
	return l.head, true
}

// Tail returns the shared tail node and true when length > 1; for an empty
// or singleton list it returns (nil, false) (spec.md §4.3 `tail()`).
func (l *List) Tail() (*List, bool) {
	if l.length <= 1 {
		return nil, false
	}
	return l.tail, true
}

// ToSlice materializes the list into a slice in order, for testing and for
// writelist/list-consuming built-ins (spec.md §4.3 `to_vector`).
func (l *List) ToSlice() []Value {
	out := make([]Value, 0, l.length)
	for n := l; !n.isEmpty; n = n.tail {
		out = append(out, n.head)
	}
	return out
}

// Clone is O(1): a persistent list already shares structure, so cloning is
// just returning the same pointer (spec.md §4.3 "a clone that is O(1)").
func (l *List) Clone() *List { return l }
