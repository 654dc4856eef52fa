// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mutualcredit/transactord/amount"
)

type errMissing string

func (e errMissing) Error() string {
	return "missing parameter: " + string(e)
}

// validate locally so a bad amount never reaches the node
func checkAmount(s string) (string, error) {
	if "" == s {
		return "", errMissing("amount")
	}
	a, err := amount.Parse(s)
	if nil != err {
		return "", err
	}
	return a.String(), nil
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
