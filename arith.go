package sqlitego

// Add returns a new Value holding a + b: the sum for numbers, the
// concatenation for text. Integer overflow wraps.
func Add[T Addable](a, b Value[T]) Value[T] {
	return Value[T]{payload: a.payload + b.payload}
}

func Sub[T Number](a, b Value[T]) Value[T] {
	return Value[T]{payload: a.payload - b.payload}
}

func Mul[T Number](a, b Value[T]) Value[T] {
	return Value[T]{payload: a.payload * b.payload}
}

// Div returns a / b. Integer division by zero fails with
// ErrDivisionByZero; float division follows IEEE-754.
func Div[T Number](a, b Value[T]) (Value[T], error) {
	var zero T
	if b.payload == zero && TypeOf[T]() == IntegerType {
		return Value[T]{}, ErrDivisionByZero
	}

	return Value[T]{payload: a.payload / b.payload}, nil
}

// Concat joins two blobs into a new Value. Neither operand is aliased.
func Concat[T ~[]byte](a, b Value[T]) Value[T] {
	p := make(T, 0, len(a.payload)+len(b.payload))
	p = append(p, a.payload...)
	p = append(p, b.payload...)
	return Value[T]{payload: p}
}

// Inc increments v in place and returns v itself.
func Inc[T Number](v *Value[T]) *Value[T] {
	v.payload++
	return v
}

func Dec[T Number](v *Value[T]) *Value[T] {
	v.payload--
	return v
}

// PostInc increments v in place and returns its state from before.
func PostInc[T Number](v *Value[T]) Value[T] {
	old := *v
	Inc(v)
	return old
}

func PostDec[T Number](v *Value[T]) Value[T] {
	old := *v
	Dec(v)
	return old
}
