// Package channel implements the Fiat-Shamir transcript FRI draws its
// folding challenges and query positions from. It is built on blake2s: every
// mix absorbs data into a running 32-byte digest, and every draw derives
// fresh pseudorandom output from that digest without consuming it, so mixes
// and draws can be freely interleaved and the transcript stays reproducible
// given the same sequence of calls.
package channel

import (
	"encoding/binary"
	"math/bits"

	"github.com/vybium/vybium-circle-fri/internal/circlefri/field"
	"golang.org/x/crypto/blake2s"
)

// DigestSize is the width of the channel's running digest and of the hashes
// it mixes in, in bytes.
const DigestSize = 32

// Time tracks how many challenges a channel has absorbed and how many
// values have been drawn since the last one, giving proofs and verifiers a
// cheap way to assert they consumed the transcript identically.
type Time struct {
	NChallenges uint64
	NSent       uint64
}

// Channel is a Fiat-Shamir transcript. The zero value is a valid, freshly
// initialized channel.
type Channel struct {
	digest [DigestSize]byte
	time   Time
}

// New returns a freshly initialized channel.
func New() *Channel {
	return &Channel{}
}

// Time returns the channel's current (NChallenges, NSent) counters.
func (c *Channel) Time() Time { return c.time }

func (c *Channel) absorb(data []byte) {
	h, err := blake2s.New256(nil)
	if err != nil {
		panic(err)
	}
	h.Write(c.digest[:])
	h.Write(data)
	copy(c.digest[:], h.Sum(nil))
	c.time.NChallenges++
	c.time.NSent = 0
}

// MixU64 absorbs a little-endian u64, e.g. a query count or layer index.
func (c *Channel) MixU64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	c.absorb(buf[:])
}

// MixRoot absorbs a Merkle commitment root.
func (c *Channel) MixRoot(root [DigestSize]byte) {
	c.absorb(root[:])
}

// MixFelts absorbs a sequence of secure-field elements, each serialized as
// its four little-endian M31 coordinates in order.
func (c *Channel) MixFelts(felts []field.QM31) {
	buf := make([]byte, 0, len(felts)*16)
	for _, f := range felts {
		coords := f.ToM31Array()
		for _, x := range coords {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], x.Value())
			buf = append(buf, b[:]...)
		}
	}
	c.absorb(buf)
}

// DrawRandomBytes derives the next 32 pseudorandom bytes from the channel's
// current digest without mutating it, keyed by how many draws have happened
// since the last mix so consecutive draws differ.
func (c *Channel) DrawRandomBytes() [DigestSize]byte {
	h, err := blake2s.New256(nil)
	if err != nil {
		panic(err)
	}
	h.Write(c.digest[:])
	var counter [8]byte
	binary.LittleEndian.PutUint64(counter[:], c.time.NSent)
	h.Write(counter[:])
	c.time.NSent++

	var out [DigestSize]byte
	copy(out[:], h.Sum(nil))
	return out
}

// drawM31s fills n canonical M31 values by rejection-sampling 31-bit lanes
// out of a stream of DrawRandomBytes() calls, discarding any lane that lands
// on or above Modulus to avoid biasing the low end of the field.
func (c *Channel) drawM31s(n int) []field.M31 {
	out := make([]field.M31, 0, n)
	for len(out) < n {
		bytes := c.DrawRandomBytes()
		for i := 0; i+4 <= len(bytes) && len(out) < n; i += 4 {
			v := binary.LittleEndian.Uint32(bytes[i:i+4]) & field.Modulus
			if v < field.Modulus {
				out = append(out, field.NewM31(v))
			}
		}
	}
	return out
}

// DrawFelt draws a single secure-field element from four rejection-sampled
// M31 lanes.
func (c *Channel) DrawFelt() field.QM31 {
	coords := c.drawM31s(4)
	return field.FromM31Array([4]field.M31{coords[0], coords[1], coords[2], coords[3]})
}

// DrawFelts draws n independent secure-field elements.
func (c *Channel) DrawFelts(n int) []field.QM31 {
	out := make([]field.QM31, n)
	for i := range out {
		out[i] = c.DrawFelt()
	}
	return out
}

// DrawRandomM31s draws n canonical base-field elements, used for query
// position sampling.
func (c *Channel) DrawRandomM31s(n int) []field.M31 {
	return c.drawM31s(n)
}

// TrailingZeros returns the number of trailing zero bits of the channel's
// current digest, treated as a little-endian integer.
func (c *Channel) TrailingZeros() uint32 {
	count := uint32(0)
	for _, b := range c.digest {
		if b == 0 {
			count += 8
			continue
		}
		count += uint32(bits.TrailingZeros8(b))
		break
	}
	return count
}
