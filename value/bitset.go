package value

// Bitset is a character set. The low 256 code points live in a fixed
// bit array, everything above in a sparse map.
type Bitset struct {
	low  [4]uint64
	high map[rune]bool
}

func NewBitset() *Bitset { return &Bitset{} }

func (*Bitset) Kind() Kind { return KindBitset }

func (b *Bitset) String() string { return "make bitset! [...]" }

// Equal on bitsets is identity; two structurally equal sets built
// separately are distinct values.
func (b *Bitset) Equal(other Value, _ bool) bool {
	o, ok := other.(*Bitset)
	return ok && o == b
}

func (b *Bitset) Add(r rune) {
	if r >= 0 && r < 256 {
		b.low[r/64] |= 1 << (uint(r) % 64)
		return
	}
	if b.high == nil {
		b.high = make(map[rune]bool)
	}
	b.high[r] = true
}

func (b *Bitset) AddRange(from, to rune) {
	for r := from; r <= to; r++ {
		b.Add(r)
	}
}

func (b *Bitset) Contains(r rune) bool {
	if r >= 0 && r < 256 {
		return b.low[r/64]&(1<<(uint(r)%64)) != 0
	}
	return b.high[r]
}
