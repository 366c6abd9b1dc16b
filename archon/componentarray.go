package archon

import (
	"reflect"
	"unsafe"
)

const minOccupied = 8

// ComponentArray is a type-erased, growable column of one component type.
// The backing storage is a reflect.New(reflect.ArrayOf(cap, meta.Type))
// array rather than a raw byte buffer, so the garbage collector scans it
// the same way it would scan a plain []T: component types carrying
// strings, slices, maps, or pointers stay reachable for as long as the
// column holds them. Row access goes through a cached base pointer and
// meta.Stride for speed, but every write lands through reflect so pointer
// fields are copied with the correct write barriers. Storage is allocated
// only once capacity becomes positive; zero-sized components never
// allocate and Get always returns nil for them, but len/cap are still
// tracked for row accounting.
type ComponentArray struct {
	meta ComponentMeta
	arr  reflect.Value // addressable [cap]meta.Type array; invalid until first allocation
	base unsafe.Pointer
	len  int
	cap  int
}

// NewComponentArray returns an empty column for meta with no allocation.
func NewComponentArray(meta ComponentMeta) ComponentArray {
	return ComponentArray{meta: meta}
}

// NewComponentArrayWithValue returns a column containing exactly one
// element, copied from value.
func NewComponentArrayWithValue(meta ComponentMeta, value reflect.Value) (ComponentArray, error) {
	c := NewComponentArray(meta)
	if err := c.Append(value); err != nil {
		return ComponentArray{}, err
	}
	return c, nil
}

// Meta returns the column's component metadata.
func (c *ComponentArray) Meta() ComponentMeta { return c.meta }

// Len returns the number of occupied rows.
func (c *ComponentArray) Len() int { return c.len }

// Cap returns the current element capacity.
func (c *ComponentArray) Cap() int { return c.cap }

func (c *ComponentArray) offset(i int) int {
	return i * int(c.meta.Stride)
}

// Get returns a pointer to row i, or nil if i is out of bounds or the
// component is zero-sized. The pointer addresses live memory inside the
// column's backing array and may be cast back to *T.
func (c *ComponentArray) Get(i int) unsafe.Pointer {
	if i < 0 || i >= c.len || c.meta.Size == 0 {
		return nil
	}
	return unsafe.Add(c.base, c.offset(i))
}

// GetValue returns row i as an addressable reflect.Value of meta.Type,
// suitable for passing to another column's Set or Append. ok is false if i
// is out of bounds.
func (c *ComponentArray) GetValue(i int) (value reflect.Value, ok bool) {
	if i < 0 || i >= c.len {
		return reflect.Value{}, false
	}
	if c.meta.Size == 0 {
		return reflect.New(c.meta.Type).Elem(), true
	}
	return reflect.NewAt(c.meta.Type, c.Get(i)).Elem(), true
}

// Set overwrites row i with value. Fails IndexOutOfBoundsError if
// i >= Len, TypeMismatchError if value's type does not match meta.Type.
func (c *ComponentArray) Set(i int, value reflect.Value) error {
	if err := c.checkType(value); err != nil {
		return err
	}
	if i < 0 || i >= c.len {
		return IndexOutOfBoundsError{Index: i, Len: c.len}
	}
	if c.meta.Size == 0 {
		return nil
	}
	c.arr.Index(i).Set(value)
	return nil
}

func (c *ComponentArray) checkType(value reflect.Value) error {
	if value.Type() != c.meta.Type {
		return TypeMismatchError{Expected: int(c.meta.Size), Got: int(value.Type().Size())}
	}
	return nil
}

// Append grows the column by one row containing value, growing capacity if
// necessary. Fails TypeMismatchError if value's type does not match
// meta.Type.
func (c *ComponentArray) Append(value reflect.Value) error {
	if err := c.checkType(value); err != nil {
		return err
	}
	c.EnsureTotalCapacity(c.len + 1)
	if c.meta.Size > 0 {
		c.arr.Index(c.len).Set(value)
	}
	c.len++
	return nil
}

// Insert shifts rows [i, len) one step right and writes value into row i.
// i must be <= Len.
func (c *ComponentArray) Insert(i int, value reflect.Value) error {
	if err := c.checkType(value); err != nil {
		return err
	}
	if i < 0 || i > c.len {
		return IndexOutOfBoundsError{Index: i, Len: c.len}
	}
	c.EnsureTotalCapacity(c.len + 1)
	if c.meta.Size > 0 {
		reflect.Copy(c.arr.Slice(i+1, c.len+1), c.arr.Slice(i, c.len))
		c.arr.Index(i).Set(value)
	}
	c.len++
	return nil
}

// ShiftRemove removes row i, shifting rows (i, len) one step left.
func (c *ComponentArray) ShiftRemove(i int) error {
	if i < 0 || i >= c.len {
		return IndexOutOfBoundsError{Index: i, Len: c.len}
	}
	if c.meta.Size > 0 {
		reflect.Copy(c.arr.Slice(i, c.len-1), c.arr.Slice(i+1, c.len))
	}
	c.len--
	return nil
}

// SwapRemove is the canonical O(1) removal primitive: if i is not the last
// row, the last row is copied over row i. It destroys row order.
func (c *ComponentArray) SwapRemove(i int) error {
	if i < 0 || i >= c.len {
		return IndexOutOfBoundsError{Index: i, Len: c.len}
	}
	last := c.len - 1
	if i != last && c.meta.Size > 0 {
		c.arr.Index(i).Set(c.arr.Index(last))
	}
	c.len--
	return nil
}

// EnsureCapacity is a no-op if Cap() is already >= n.
func (c *ComponentArray) EnsureCapacity(n int) {
	if c.cap >= n {
		return
	}
	c.reallocate(n)
}

// EnsureTotalCapacity grows amortized to max(cap*3/2, max(n, MIN_OCCUPIED)).
func (c *ComponentArray) EnsureTotalCapacity(n int) {
	if c.cap >= n {
		return
	}
	target := c.cap * 3 / 2
	if n > target {
		target = n
	}
	if target < minOccupied {
		target = minOccupied
	}
	c.reallocate(target)
}

// ShrinkAndFree shrinks capacity to max(n, Len); frees entirely when that
// is zero.
func (c *ComponentArray) ShrinkAndFree(n int) {
	target := n
	if c.len > target {
		target = c.len
	}
	if target == 0 {
		c.arr = reflect.Value{}
		c.base = nil
		c.cap = 0
		return
	}
	c.reallocate(target)
}

// ClearRetainingCapacity sets Len to zero without deallocating.
func (c *ComponentArray) ClearRetainingCapacity() {
	c.len = 0
}

func (c *ComponentArray) reallocate(newCap int) {
	if c.meta.Size == 0 {
		c.cap = newCap
		return
	}
	newArr := reflect.New(reflect.ArrayOf(newCap, c.meta.Type)).Elem()
	if c.len > 0 {
		reflect.Copy(newArr.Slice(0, c.len), c.arr.Slice(0, c.len))
	}
	c.arr = newArr
	c.base = newArr.Addr().UnsafePointer()
	c.cap = newCap
}
