package cache

// Decoder splits a 32-bit address into a set index and a tag for a fixed
// cache geometry.
//
// The tag keeps every address bit that is neither a set-index bit nor a
// block-offset bit, left in place. It is only compared for equality, so it
// is never shifted down into a compact block number.
type Decoder struct {
	lineSize uint32
	setMask  uint32
	tagMask  uint32
}

// NewDecoder creates a decoder for numSets sets of lineSize-byte lines. Both
// values must be powers of two.
func NewDecoder(numSets, lineSize int) Decoder {
	b := uint32(lineSize)
	setMask := b * uint32(numSets-1)

	return Decoder{
		lineSize: b,
		setMask:  setMask,
		tagMask:  ^(setMask | (b - 1)),
	}
}

// Decode returns the set index and tag of addr.
func (d Decoder) Decode(addr uint32) (set int, tag uint32) {
	set = int((addr & d.setMask) / d.lineSize)
	tag = addr & d.tagMask
	return set, tag
}

// SetMask returns the mask selecting the set-index bits.
func (d Decoder) SetMask() uint32 {
	return d.setMask
}

// TagMask returns the mask selecting the tag bits.
func (d Decoder) TagMask() uint32 {
	return d.tagMask
}

// BlockAddr returns addr with the block-offset bits cleared.
func (d Decoder) BlockAddr(addr uint32) uint32 {
	return addr &^ (d.lineSize - 1)
}
