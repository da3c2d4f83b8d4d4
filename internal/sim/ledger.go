package sim

import "sort"

// Batch is one production day's output for a single product.
// Invariant: 0 <= Current <= Initial. A batch with Current == 0, or whose
// Expiry day has arrived, is removed from the ledger and never reappears.
type Batch struct {
	Day     int // production day
	Initial float64
	Current float64
	Expiry  int // last day the batch exists; removed before that day's allocations
}

// Ledger owns the live batches of one product for the lifetime of one run.
type Ledger struct {
	batches map[int]*Batch
}

func NewLedger() *Ledger {
	return &Ledger{batches: make(map[int]*Batch)}
}

// Add creates the batch for a production day. One batch per day.
func (l *Ledger) Add(day int, qty float64, shelfLife int) {
	l.batches[day] = &Batch{
		Day:     day,
		Initial: qty,
		Current: qty,
		Expiry:  day + shelfLife - 1,
	}
}

// Expire removes every batch whose expiry day is `day` and returns them
// (their remaining quantity is the caller's waste).
func (l *Ledger) Expire(day int) []Batch {
	var expired []Batch
	for pday, b := range l.batches {
		if b.Expiry == day {
			expired = append(expired, *b)
			delete(l.batches, pday)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].Day < expired[j].Day })
	return expired
}

// Eligible returns batches a distributor with the given policy window may buy
// from on `day`: age strictly below the window and stock remaining.
// Ordered oldest first, which is the FIFO consumption order.
func (l *Ledger) Eligible(day, policyDays int) []*Batch {
	var out []*Batch
	for _, b := range l.batches {
		if day-b.Day < policyDays && b.Current > 0 {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// DropEmpty removes fully depleted batches.
func (l *Ledger) DropEmpty() {
	for pday, b := range l.batches {
		if b.Current <= 0 {
			delete(l.batches, pday)
		}
	}
}

// Snapshot copies the current quantity of every live batch, keyed by
// production day.
func (l *Ledger) Snapshot() map[int]float64 {
	out := make(map[int]float64, len(l.batches))
	for pday, b := range l.batches {
		out[pday] = b.Current
	}
	return out
}

// Len reports the number of live batches.
func (l *Ledger) Len() int { return len(l.batches) }
