// Package binformat is the shared ascending-ID chunk-loop engine every
// Korg/NI-style binary format plugin is built on: a length-prefixed
// ASCII tag framing, followed by a sequence of ID-prefixed parameter
// records where a non-ascending ID ends the current sub-section
// (spec §4.7). Grounded on spec §4.7's korgmultisample walkthrough and
// mukunda--modlib/itmod's struct-binary parsing idiom, generalized to
// a byte-at-a-time loop since no two vendor tables share a layout.
package binformat

import (
	"github.com/schollz/convertwithmoss/internal/bytestream"
)

// Param is one decoded ID-prefixed parameter record.
type Param struct {
	ID      byte
	Payload []byte
}

// ReadAscendingParams reads ID-prefixed records from r until either the
// stream ends or the next ID is not strictly greater than the previous
// one, at which point the offending byte is pushed back via r.UnreadByte
// and the loop returns normally (spec §4.7's delimiting rule). readOne
// decodes one record's payload given its ID and returns the payload to
// store for that ID (nil when the callback keeps the value itself).
func ReadAscendingParams(r *bytestream.Reader, readOne func(id byte, r *bytestream.Reader) ([]byte, error)) ([]Param, error) {
	var params []Param
	var lastID byte
	first := true

	for {
		id, err := r.PeekByte()
		if err != nil {
			return params, nil
		}
		if !first && id <= lastID {
			return params, nil
		}
		if _, err := r.ReadByte(); err != nil {
			return params, nil
		}

		payload, err := readOne(id, r)
		if err != nil {
			return params, err
		}
		params = append(params, Param{ID: id, Payload: payload})
		lastID = id
		first = false
	}
}

// FindParam returns the first param with the given id.
func FindParam(params []Param, id byte) (Param, bool) {
	for _, p := range params {
		if p.ID == id {
			return p, true
		}
	}
	return Param{}, false
}
