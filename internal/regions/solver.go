package regions

import (
	"fmt"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("regionck.regions")

// Constraint is a pending equality between two region terms.
type Constraint struct {
	Left  Term
	Right Term
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s = %s", c.Left, c.Right)
}

// MismatchError reports two concrete sets that unification required equal.
type MismatchError struct {
	Left  Set
	Right Set
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("region mismatch: %s is not equal to %s", e.Left, e.Right)
}

// SolveStats counts solver work over the lifetime of a Store.
type SolveStats struct {
	Invocations int // calls to Solve
	Passes      int // scans that resolved a variable, summed over all calls
	LastPasses  int // resolving scans made by the most recent call
	Resolved    int // variables resolved by the solver
}

// Store is the worklist of pending region equalities.
type Store struct {
	table   *Table
	pending []Constraint
	stats   SolveStats
}

func NewStore(table *Table) *Store {
	return &Store{table: table}
}

// Table returns the resolution arena the store writes to.
func (s *Store) Table() *Table {
	return s.table
}

// AddConstraint records lhs = rhs. Nothing is solved until Solve runs.
func (s *Store) AddConstraint(lhs, rhs Term) {
	if lhs == nil || rhs == nil {
		return
	}
	s.pending = append(s.pending, Constraint{Left: lhs, Right: rhs})
}

// Pending returns the constraints that could not be discharged yet.
func (s *Store) Pending() []Constraint {
	out := make([]Constraint, len(s.pending))
	copy(out, s.pending)
	return out
}

func (s *Store) Stats() SolveStats {
	return s.stats
}

// Solve discharges constraints until no pass resolves a variable.
//
// Each constraint is classified after applying the current resolutions:
// two sets must be equal, a variable against a set is resolved and dropped,
// two distinct open variables stay pending. A pass that resolves nothing
// cannot enable further progress and ends the call without being counted,
// so the number of counted passes is bounded by the number of variables.
func (s *Store) Solve() error {
	s.stats.Invocations++
	s.stats.LastPasses = 0
	for len(s.pending) > 0 {
		resolved := 0
		keep := s.pending[:0:0]
		for i, c := range s.pending {
			left := s.table.Apply(c.Left)
			right := s.table.Apply(c.Right)
			var err error
			switch l := left.(type) {
			case Set:
				switch r := right.(type) {
				case Set:
					if !l.Equal(r) {
						err = &MismatchError{Left: l, Right: r}
					}
				case Var:
					err = s.table.Resolve(r, l)
					resolved++
				}
			case Var:
				switch r := right.(type) {
				case Set:
					err = s.table.Resolve(l, r)
					resolved++
				case Var:
					if l != r {
						keep = append(keep, c)
					}
				}
			}
			if err != nil {
				keep = append(keep, s.pending[i+1:]...)
				s.pending = keep
				return err
			}
		}
		s.pending = keep
		if resolved == 0 {
			break
		}
		s.stats.Passes++
		s.stats.LastPasses++
		s.stats.Resolved += resolved
	}
	log.Debugf("solve #%d: %d passes, %d pending", s.stats.Invocations, s.stats.LastPasses, len(s.pending))
	return nil
}
