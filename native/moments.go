package native

// Moment is a set of operations on disjoint qubits that run in one step.
type Moment []Operation

// Moments layers ops into moments. Each op lands in the first moment
// after the last one that touches any of its qubits, so ops commute into
// parallel steps without changing their order on any qubit. Operations on
// no qubits join the final moment.
func Moments(ops []Operation) []Moment {
	var (
		moments []Moment
		free    []Operation
		// next step at which each qubit is available
		ready = make(map[Qubit]int)
	)
	for _, op := range ops {
		if len(op.Qubits) == 0 {
			free = append(free, op)
			continue
		}
		step := 0
		for _, q := range op.Qubits {
			step = max(step, ready[q])
		}
		for len(moments) <= step {
			moments = append(moments, nil)
		}
		moments[step] = append(moments[step], op)
		for _, q := range op.Qubits {
			ready[q] = step + 1
		}
	}
	if len(free) > 0 {
		if len(moments) == 0 {
			moments = append(moments, nil)
		}
		last := len(moments) - 1
		moments[last] = append(moments[last], free...)
	}
	return moments
}

// Flatten returns the operations of moments in order.
func Flatten(moments []Moment) []Operation {
	var ops []Operation
	for _, m := range moments {
		ops = append(ops, m...)
	}
	return ops
}
