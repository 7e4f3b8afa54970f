package containers

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

func writeHash(d *xxhash.Digest, h uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], h)
	_, _ = d.Write(buf[:])
}
