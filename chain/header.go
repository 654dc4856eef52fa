// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"bytes"
	"time"

	"github.com/mutualcredit/transactord/account"
	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/transactionrecord"
	"github.com/mutualcredit/transactord/util"
)

// TimeFormat - layout of header times
const TimeFormat = "2006-01-02 15:04:05.000000000 -0700"

const (
	maxFieldLength = 8192
)

// Header - position of one record in an author's chain
//
// the header link is the SHA3-256 of the packed header and the next
// header in the chain refers to it as Previous
type Header struct {
	Kind      transactionrecord.TagType `json:"kind"`
	Author    *account.Account          `json:"author"`
	Sequence  uint64                    `json:"sequence,string"`
	Previous  transactionrecord.Link    `json:"previous"`
	EntryLink transactionrecord.Link    `json:"entryLink"`
	Time      string                    `json:"time"`
	Signature account.Signature         `json:"signature"`
}

// FormatTime - header time text for an instant
func FormatTime(at time.Time) string {
	return at.UTC().Format(TimeFormat)
}

func (header *Header) message() ([]byte, error) {
	if nil == header.Author || !header.Kind.IsValid() {
		return nil, fault.HeaderIsInvalid
	}
	message := util.ToVarint64(uint64(header.Kind))
	message = appendBytes(message, header.Author.Bytes())
	message = append(message, util.ToVarint64(header.Sequence)...)
	message = appendBytes(message, header.Previous[:])
	message = appendBytes(message, header.EntryLink[:])
	message = appendBytes(message, []byte(header.Time))
	return message, nil
}

// Pack - the signed header bytes, the signature must be the author's
func (header *Header) Pack() ([]byte, error) {
	message, err := header.message()
	if nil != err {
		return nil, err
	}
	err = header.Author.CheckSignature(message, header.Signature)
	if nil != err {
		return nil, err
	}
	return appendBytes(message, header.Signature), nil
}

// Link - reference to this header
func (header *Header) Link() (transactionrecord.Link, error) {
	packed, err := header.Pack()
	if nil != err {
		return transactionrecord.Link{}, err
	}
	return transactionrecord.Packed(packed).MakeLink(), nil
}

// Sign - sign the header with the author's key
func (header *Header) Sign(key *account.PrivateKey) error {
	if !key.Account().Equal(header.Author) {
		return fault.WrongChainOwner
	}
	message, err := header.message()
	if nil != err {
		return err
	}
	header.Signature = key.Sign(message)
	return nil
}

// UnpackHeader - decode and verify a packed header
func UnpackHeader(buffer []byte) (header *Header, err error) {

	defer func() {
		if r := recover(); nil != r {
			header = nil
			err = fault.HeaderIsInvalid
		}
	}()

	kind, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.HeaderIsInvalid
	}

	authorBytes, n, err := readBytes(buffer, n)
	if nil != err {
		return nil, err
	}
	author, err := account.AccountFromBytes(authorBytes)
	if nil != err {
		return nil, err
	}

	sequence, count := util.FromVarint64(buffer[n:])
	if 0 == count {
		return nil, fault.HeaderIsInvalid
	}
	n += count

	previous, n, err := readLink(buffer, n)
	if nil != err {
		return nil, err
	}
	entryLink, n, err := readLink(buffer, n)
	if nil != err {
		return nil, err
	}
	timeBytes, n, err := readBytes(buffer, n)
	if nil != err {
		return nil, err
	}
	signature, n, err := readBytes(buffer, n)
	if nil != err {
		return nil, err
	}

	header = &Header{
		Kind:      transactionrecord.TagType(kind),
		Author:    author,
		Sequence:  sequence,
		Previous:  previous,
		EntryLink: entryLink,
		Time:      string(timeBytes),
		Signature: signature,
	}

	packed, err := header.Pack()
	if nil != err {
		return nil, err
	}
	if !bytes.Equal(packed, buffer[:n]) || n != len(buffer) {
		return nil, fault.HeaderIsInvalid
	}
	return header, nil
}

func appendBytes(buffer []byte, data []byte) []byte {
	buffer = append(buffer, util.ToVarint64(uint64(len(data)))...)
	return append(buffer, data...)
}

func readBytes(buffer []byte, n int) ([]byte, int, error) {
	length, offset := util.ClippedVarint64(buffer[n:], 0, maxFieldLength)
	if 0 == offset || n+offset+length > len(buffer) {
		return nil, 0, fault.HeaderIsInvalid
	}
	n += offset
	field := make([]byte, length)
	copy(field, buffer[n:n+length])
	return field, n + length, nil
}

func readLink(buffer []byte, n int) (transactionrecord.Link, int, error) {
	field, n, err := readBytes(buffer, n)
	if nil != err {
		return transactionrecord.Link{}, 0, err
	}
	link, err := transactionrecord.LinkFromBytes(field)
	if nil != err {
		return transactionrecord.Link{}, 0, fault.HeaderIsInvalid
	}
	return link, n, nil
}
