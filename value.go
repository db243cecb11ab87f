package sqlitego

import (
	"bytes"
	"cmp"
	"database/sql/driver"
	"fmt"
	"reflect"
	"strconv"
)

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type Float interface {
	~float32 | ~float64
}

// Number is any payload that supports + - * / and increments.
type Number interface {
	Signed | Float
}

// Addable is any payload that supports the + operator.
type Addable interface {
	Number | ~string
}

// Payload is the set of scalar types a Value can hold.
type Payload interface {
	Number | ~string | ~[]byte
}

// Value holds exactly one payload. Which operations are available
// depends on the payload: see Add, Sub, Mul, Div, Concat, Inc and Dec.
type Value[T Payload] struct {
	payload T
}

// New wraps payload. Every Value starts from an explicit payload.
func New[T Payload](payload T) Value[T] {
	return Value[T]{payload: payload}
}

// NewInteger wraps a signed integer, stored by SQLite in 1 to 8 bytes
// depending on its magnitude.
func NewInteger[T Signed](payload T) Value[T] {
	return New(payload)
}

// NewReal wraps a floating point number.
func NewReal[T Float](payload T) Value[T] {
	return New(payload)
}

func NewText[T ~string](payload T) Value[T] {
	return New(payload)
}

func NewBlob[T ~[]byte](payload T) Value[T] {
	return New(payload)
}

// Get returns a reference to the payload; writes through it mutate v.
func (v *Value[T]) Get() *T {
	return &v.payload
}

func (v *Value[T]) Set(payload T) {
	v.payload = payload
}

// Payload returns a copy of the payload.
func (v Value[T]) Payload() T {
	return v.payload
}

func (v Value[T]) SQLType() SQLType {
	return TypeOf[T]()
}

// TypeOf returns the SQL type label for payloads of type T.
func TypeOf[T Payload]() SQLType {
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Float32, reflect.Float64:
		return RealType
	case reflect.String:
		return TextType
	case reflect.Slice:
		return BlobType
	default:
		return IntegerType
	}
}

func (v Value[T]) String() string {
	if rv := reflect.ValueOf(v.payload); rv.Kind() == reflect.Slice {
		return string(rv.Bytes())
	}

	return fmt.Sprint(v.payload)
}

// relate reports a < b and a == b using the payload's native operators,
// so NaN is neither less than nor equal to anything.
func relate[T Payload](a, b T) (less, equal bool) {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ra.Kind() {
	case reflect.Float32, reflect.Float64:
		return ra.Float() < rb.Float(), ra.Float() == rb.Float()
	case reflect.String:
		return ra.String() < rb.String(), ra.String() == rb.String()
	case reflect.Slice:
		c := bytes.Compare(ra.Bytes(), rb.Bytes())
		return c < 0, c == 0
	default:
		return ra.Int() < rb.Int(), ra.Int() == rb.Int()
	}
}

func (v Value[T]) Equal(other Value[T]) bool {
	_, eq := relate(v.payload, other.payload)
	return eq
}

func (v Value[T]) NotEqual(other Value[T]) bool {
	return !v.Equal(other)
}

func (v Value[T]) Less(other Value[T]) bool {
	lt, _ := relate(v.payload, other.payload)
	return lt
}

func (v Value[T]) LessOrEqual(other Value[T]) bool {
	lt, eq := relate(v.payload, other.payload)
	return lt || eq
}

func (v Value[T]) Greater(other Value[T]) bool {
	return other.Less(v)
}

func (v Value[T]) GreaterOrEqual(other Value[T]) bool {
	return other.LessOrEqual(v)
}

// Compare returns -1, 0 or +1. Unlike Less it is a total order: NaN
// sorts before every other float, as in cmp.Compare.
func (v Value[T]) Compare(other Value[T]) int {
	ra, rb := reflect.ValueOf(v.payload), reflect.ValueOf(other.payload)
	switch ra.Kind() {
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(ra.Float(), rb.Float())
	case reflect.String:
		return cmp.Compare(ra.String(), rb.String())
	case reflect.Slice:
		return bytes.Compare(ra.Bytes(), rb.Bytes())
	default:
		return cmp.Compare(ra.Int(), rb.Int())
	}
}

// Value implements driver.Valuer so a Value can be passed as a
// statement argument.
func (v Value[T]) Value() (driver.Value, error) {
	rv := reflect.ValueOf(v.payload)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Slice:
		return rv.Bytes(), nil
	default:
		return rv.Int(), nil
	}
}

// Scan implements sql.Scanner. NULL resets the payload to its zero value.
func (v *Value[T]) Scan(src interface{}) error {
	dst := reflect.ValueOf(&v.payload).Elem()
	if src == nil {
		dst.SetZero()
		return nil
	}

	fail := func(err error) error {
		if err != nil {
			return fmt.Errorf("%w: %T into %s: %s", ErrInvalidScan, src, TypeOf[T](), err)
		}

		return fmt.Errorf("%w: %T into %s", ErrInvalidScan, src, TypeOf[T]())
	}

	switch dst.Kind() {
	case reflect.Float32, reflect.Float64:
		var f float64
		switch s := src.(type) {
		case float64:
			f = s
		case int64:
			f = float64(s)
		case string, []byte:
			var err error
			f, err = strconv.ParseFloat(asString(s), 64)
			if err != nil {
				return fail(err)
			}
		default:
			return fail(nil)
		}
		dst.SetFloat(f)
	case reflect.String:
		switch s := src.(type) {
		case string, []byte:
			dst.SetString(asString(s))
		case int64, float64, bool:
			dst.SetString(fmt.Sprint(s))
		default:
			return fail(nil)
		}
	case reflect.Slice:
		switch s := src.(type) {
		case []byte:
			dst.SetBytes(bytes.Clone(s))
		case string:
			dst.SetBytes([]byte(s))
		default:
			return fail(nil)
		}
	default:
		var i int64
		switch s := src.(type) {
		case int64:
			i = s
		case bool:
			if s {
				i = 1
			}
		case string, []byte:
			var err error
			i, err = strconv.ParseInt(asString(s), 10, 64)
			if err != nil {
				return fail(err)
			}
		default:
			return fail(nil)
		}
		if dst.OverflowInt(i) {
			return fail(strconv.ErrRange)
		}
		dst.SetInt(i)
	}

	return nil
}

func asString(src interface{}) string {
	if b, ok := src.([]byte); ok {
		return string(b)
	}

	return src.(string)
}
