package dispatch

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// The digest encoding is canonical per kind, so that equal values always write
// the same bytes:
//
//   - integers are written big-endian as 64-bit words, regardless of their size
//   - floats are written as their IEEE-754 bits, with -0 folded into +0
//   - strings and sequences are prefixed by their length
//   - maps write the sum of their per-entry digests (irrespective of iteration order)
//   - interfaces write the name of their dynamic type before its value

func writeUint64(d *xxhash.Digest, x uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], x)
	_, _ = d.Write(buf[:])
}

func writeBool(d *xxhash.Digest, b bool) {
	if b {
		_, _ = d.Write([]byte{1})
	} else {
		_, _ = d.Write([]byte{0})
	}
}

func writeFloat64(d *xxhash.Digest, f float64) {
	if f == 0 {
		// -0 == +0, so both must hash alike
		f = 0
	}
	writeUint64(d, math.Float64bits(f))
}

func writeString(d *xxhash.Digest, s string) {
	writeUint64(d, uint64(len(s)))
	_, _ = d.WriteString(s)
}

// scalarHash returns the hash function for kinds whose digest does not depend on
// any other table; nil if the kind is not a scalar.
func scalarHash(k reflect.Kind) hashFunc {
	switch k {
	case reflect.Bool:
		return func(d *xxhash.Digest, v reflect.Value) error {
			writeBool(d, v.Bool())
			return nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(d *xxhash.Digest, v reflect.Value) error {
			writeUint64(d, uint64(v.Int()))
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(d *xxhash.Digest, v reflect.Value) error {
			writeUint64(d, v.Uint())
			return nil
		}
	case reflect.Float32, reflect.Float64:
		return func(d *xxhash.Digest, v reflect.Value) error {
			writeFloat64(d, v.Float())
			return nil
		}
	case reflect.Complex64, reflect.Complex128:
		return func(d *xxhash.Digest, v reflect.Value) error {
			c := v.Complex()
			writeFloat64(d, real(c))
			writeFloat64(d, imag(c))
			return nil
		}
	case reflect.String:
		return func(d *xxhash.Digest, v reflect.Value) error {
			writeString(d, v.String())
			return nil
		}
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		// identity
		return func(d *xxhash.Digest, v reflect.Value) error {
			writeUint64(d, uint64(v.Pointer()))
			return nil
		}
	default:
		return nil
	}
}
