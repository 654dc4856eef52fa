// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messaging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mutualcredit/transactord/fault"
	"github.com/mutualcredit/transactord/fixtures"
)

func TestConfigurationTimeout(t *testing.T) {
	c := &Configuration{}
	d, err := c.timeout()
	assert.Nil(t, err, "default")
	assert.Equal(t, defaultTimeout, d, "default")

	c.Timeout = "250ms"
	d, err = c.timeout()
	assert.Nil(t, err, "explicit")
	assert.Equal(t, 250*time.Millisecond, d, "explicit")

	for _, s := range []string{"soon", "-1s", "0s"} {
		c.Timeout = s
		_, err = c.timeout()
		assert.Equal(t, fault.InvalidTimeout, err, s)
	}
}

func TestConnectionIdentities(t *testing.T) {
	a := fixtures.Key(t, 1).Account()
	b := fixtures.Key(t, 2).Account()

	c := &Connection{Identities: []string{a.String(), b.String()}}
	identities, err := c.identities()
	assert.Nil(t, err, "identities")
	assert.Equal(t, 2, len(identities), "count")
	assert.True(t, b.Equal(identities[1]), "order")

	c.Identities = nil
	_, err = c.identities()
	assert.Equal(t, fault.MissingParameters, err, "none")

	c.Identities = []string{"not an account"}
	_, err = c.identities()
	assert.NotNil(t, err, "invalid")
}

func TestConfigurationKeys(t *testing.T) {
	c := &Configuration{
		PrivateKey: "PRIVATE:00",
		PublicKey:  "PUBLIC:00",
	}
	_, _, err := c.keys()
	assert.Equal(t, fault.InvalidPrivateKeyFile, err, "short private key")
}

func TestConfigurationClientKeys(t *testing.T) {
	c := &Configuration{}
	keys, err := c.clientKeys()
	assert.Nil(t, err, "no peers")
	assert.Equal(t, 0, len(keys), "any client")

	first := "PUBLIC:" + strings.Repeat("01", 32)
	second := "PUBLIC:" + strings.Repeat("02", 32)
	c.Connect = []Connection{
		{PublicKey: first},
		{PublicKey: second},
	}
	keys, err = c.clientKeys()
	assert.Nil(t, err, "peers")
	if assert.Equal(t, 2, len(keys), "count") {
		assert.Equal(t, bytes.Repeat([]byte{2}, 32), keys[1], "second key")
	}

	c.Connect = append(c.Connect, Connection{PublicKey: "PUBLIC:0102"})
	_, err = c.clientKeys()
	assert.Equal(t, fault.InvalidPublicKeyFile, err, "short key")
}
