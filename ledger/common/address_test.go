// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/blinklabs-io/txkit/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressFromBytes(t *testing.T) {
	testDefs := []struct {
		addressBytesHex string
		expectedAddress string
	}{
		{
			addressBytesHex: "11e1317b152faac13426e6a83e06ff88a4d62cce3c1634ab0a5ec1330952563c5410bff6a0d43ccebb7c37e1f69f5eb260552521adff33b9c2",
			expectedAddress: "addr1z8snz7c4974vzdpxu65ruphl3zjdvtxw8strf2c2tmqnxz2j2c79gy9l76sdg0xwhd7r0c0kna0tycz4y5s6mlenh8pq0xmsha",
		},
		{
			addressBytesHex: "7121bd8c2e0df2fbe92137f78dbaba48f62308e52303049f0d628b6c4c",
			expectedAddress: "addr1wysmmrpwphe0h6fpxlmcmw46frmzxz89yvpsf8cdv29kcnqsw3vw6",
		},
		{
			addressBytesHex: "61cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b",
			expectedAddress: "addr1v887yfpftg5z660dmf063hj0zv0zh8xjrfkfyd2e07j076cecha5k",
		},
		// Long (but apparently valid) address from:
		// https://github.com/IntersectMBO/cardano-ledger/issues/2729
		{
			addressBytesHex: "015bad085057ac10ecc7060f7ac41edd6f63068d8963ef7d86ca58669e5ecf2d283418a60be5a848a2380eb721000da1e0bbf39733134beca4cb57afb0b35fc89c63061c9914e055001a518c7516",
			expectedAddress: "addr1q9d66zzs27kppmx8qc8h43q7m4hkxp5d39377lvxefvxd8j7eukjsdqc5c97t2zg5guqadepqqx6rc9m7wtnxy6tajjvk4a0kze4ljyuvvrpexg5up2sqxj33363v35gtew",
		},
		// Byron address, mainnet with derivation
		{
			addressBytesHex: "82d818584283581caf56de241bcca83d72c51e74d18487aa5bc68b45e2caa170fa329d3aa101581e581cea1425ccdd649b25af5deb7e6335da2eb8167353a55e77925122e95f001a3a858621",
			expectedAddress: "DdzFFzCqrht2ii4Vc7KRchSkVvQtCqdGkQt4nF4Yxg1NpsubFBity2Tpt2eSEGrxBH1eva8qCFKM2Y5QkwM1SFBizRwZgz1N452WYvgG",
		},
		// Byron address, preview
		{
			addressBytesHex: "82d818582483581c5d5e698eba3dd9452add99a1af9461beb0ba61b8bece26e7399878dda1024102001a36d41aba",
			expectedAddress: "FHnt4NL7yPXvDWHa8bVs73UEUdJd64VxWXSFNqetECtYfTd9TtJguJ14Lu3feth",
		},
	}
	for _, testDef := range testDefs {
		addr, err := NewAddressFromBytes(
			test.DecodeHexString(testDef.addressBytesHex),
		)
		require.NoError(t, err, "failed to decode address bytes %s", testDef.addressBytesHex)
		assert.Equal(t, testDef.expectedAddress, addr.String())
		assert.Equal(t, testDef.addressBytesHex, hex.EncodeToString(addr.Bytes()))
	}
}

func TestInspectAddress(t *testing.T) {
	testDefs := []struct {
		name     string
		address  string
		kind     string
		network  string
		prefix   string
		script   bool
		hasStake bool
	}{
		{
			name:     "base address",
			address:  "addr1qyln2c2cx5jc4hw768pwz60n5245462dvp4auqcw09rl2xz07huw84puu6cea3qe0ce3apks7hjckqkh5ad4uax0l9ws0q9xty",
			kind:     AddressKindBase,
			network:  "mainnet",
			prefix:   "addr",
			hasStake: true,
		},
		{
			name:     "script base address",
			address:  "addr1z8snz7c4974vzdpxu65ruphl3zjdvtxw8strf2c2tmqnxz2j2c79gy9l76sdg0xwhd7r0c0kna0tycz4y5s6mlenh8pq0xmsha",
			kind:     AddressKindBase,
			network:  "mainnet",
			prefix:   "addr",
			script:   true,
			hasStake: true,
		},
		{
			name:    "enterprise script address",
			address: "addr1wysmmrpwphe0h6fpxlmcmw46frmzxz89yvpsf8cdv29kcnqsw3vw6",
			kind:    AddressKindEnterprise,
			network: "mainnet",
			prefix:  "addr",
			script:  true,
		},
		{
			name:    "testnet enterprise address",
			address: "addr_test1vpmwd5tk8quxnzxq46h8vztf00xtphrd7zd0al5ur5jsylg3r9v4l",
			kind:    AddressKindEnterprise,
			network: "testnet",
			prefix:  "addr_test",
		},
		{
			name:     "reward address",
			address:  "stake1u9usfr6nz6d5qaz63kr5yszdwd0dcgnlngh4und7n6cjx6qh02h9m",
			kind:     AddressKindReward,
			network:  "mainnet",
			prefix:   "stake",
			hasStake: true,
		},
		{
			name:    "byron mainnet address",
			address: "Ae2tdPwUPEYwFx4dmJheyNPPYXtvHbJLeCaA96o6Y2iiUL18cAt7AizN2zG",
			kind:    AddressKindByron,
			network: "mainnet",
		},
		{
			name:    "byron preview address",
			address: "FHnt4NL7yPXvDWHa8bVs73UEUdJd64VxWXSFNqetECtYfTd9TtJguJ14Lu3feth",
			kind:    AddressKindByron,
			network: "testnet",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			info, err := InspectAddress(testDef.address)
			require.NoError(t, err)
			assert.Equal(t, testDef.address, info.Address)
			assert.Equal(t, testDef.kind, info.Kind)
			assert.Equal(t, testDef.network, info.Network)
			assert.Equal(t, testDef.prefix, info.Prefix)
			assert.Equal(t, testDef.script, info.Script)
			assert.Equal(t, testDef.hasStake, info.StakingHash != "")
			assert.True(t, NetworkById(info.NetworkId).Accepts(info))
		})
	}
}

func TestInspectAddressParts(t *testing.T) {
	paymentHash := NewBlake2b224(bytes.Repeat([]byte{0x11}, AddressHashSize))
	stakingHash := NewBlake2b224(bytes.Repeat([]byte{0x22}, AddressHashSize))
	testDefs := []struct {
		name          string
		header        byte
		payload       []byte
		kind          string
		script        bool
		stakingScript bool
		hasPayment    bool
		hasStake      bool
	}{
		{
			name:          "script payment with script staking",
			header:        0x31,
			payload:       append(paymentHash.Bytes(), stakingHash.Bytes()...),
			kind:          AddressKindBase,
			script:        true,
			stakingScript: true,
			hasPayment:    true,
			hasStake:      true,
		},
		{
			name:          "key payment with script staking",
			header:        0x20,
			payload:       append(paymentHash.Bytes(), stakingHash.Bytes()...),
			kind:          AddressKindBase,
			stakingScript: true,
			hasPayment:    true,
			hasStake:      true,
		},
		{
			name:     "key reward",
			header:   0xe1,
			payload:  stakingHash.Bytes(),
			kind:     AddressKindReward,
			hasStake: true,
		},
		{
			name:          "script reward",
			header:        0xf0,
			payload:       stakingHash.Bytes(),
			kind:          AddressKindReward,
			stakingScript: true,
			hasStake:      true,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			addr, err := NewAddressFromBytes(append([]byte{testDef.header}, testDef.payload...))
			require.NoError(t, err)
			info, err := InspectAddress(addr.String())
			require.NoError(t, err)
			assert.Equal(t, testDef.kind, info.Kind)
			assert.Equal(t, testDef.script, info.Script)
			assert.Equal(t, testDef.stakingScript, info.StakingScript)
			if testDef.hasPayment {
				assert.Equal(t, paymentHash.String(), info.PaymentHash)
			} else {
				assert.Empty(t, info.PaymentHash)
			}
			if testDef.hasStake {
				assert.Equal(t, stakingHash.String(), info.StakingHash)
			}
			assert.Nil(t, info.StakingPointer)
		})
	}
	// Pointer addresses report the pointer (CIP-19 test vector)
	info, err := InspectAddress("addr1gx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer5pnz75xxcrzqf96k")
	require.NoError(t, err)
	require.NotNil(t, info.StakingPointer)
	assert.Equal(t, AddressPayloadPointer{Slot: 2498243, TxIndex: 27, CertIndex: 3}, *info.StakingPointer)
	assert.Empty(t, info.StakingHash)
	assert.False(t, info.StakingScript)
}

func TestInspectAddressInvalid(t *testing.T) {
	testDefs := []string{
		"",
		"addr1notarealaddress",
		// Prefix swapped on a mainnet address
		"addr_test1v887yfpftg5z660dmf063hj0zv0zh8xjrfkfyd2e07j076cecha5k",
		"Ae2tdPwUPEYwFx4dmJheyNPPYXtvHbJLeCaA96o6Y2iiUL18cAt7AizN2zH",
		"0OIl",
	}
	for _, addr := range testDefs {
		_, err := InspectAddress(addr)
		require.Error(t, err, "expected error for %q", addr)
		assert.True(t, errors.Is(err, ErrInvalidAddress))
		assert.False(t, IsValidAddress(addr))
	}
}

func TestAddressPointer(t *testing.T) {
	// Pointer address with slot 2498243, tx index 27, cert index 3 (CIP-19 test vector)
	addr, err := NewAddress(
		"addr1gx2fxv2umyhttkxyxp8x0dlpdt3k6cwng5pxj3jhsydzer5pnz75xxcrzqf96k",
	)
	require.NoError(t, err)
	assert.Equal(t, AddressKindPointer, addr.Kind())
	pointer := addr.StakingPointer()
	require.NotNil(t, pointer)
	assert.Equal(t, uint64(2498243), pointer.Slot)
	assert.Equal(t, uint64(27), pointer.TxIndex)
	assert.Equal(t, uint64(3), pointer.CertIndex)
}

func TestAddressNetworkId(t *testing.T) {
	testDefs := []struct {
		address           string
		expectedNetworkId uint8
	}{
		{
			address:           "addr_test1wpvdxve27gk4ylwyf7t6xn3c7swrfzwz9uv0akwnpctkc4qdhgye0",
			expectedNetworkId: AddressNetworkTestnet,
		},
		{
			address:           "FHnt4NL7yPXsabNmoHMHCfzUVkAC1vSZKd3fgyPfvRGhoXdum5oadfcrADWF8Fc",
			expectedNetworkId: AddressNetworkTestnet,
		},
		{
			address:           "addr1q862w5ru0hpxl4r6vezgtegrfqve0dm2dp3yj2f7y4arrf223wd3fr6qcumc6873am478xnxmfp8lgpe6q6ju9ttjgns2xavze",
			expectedNetworkId: AddressNetworkMainnet,
		},
	}
	for _, testDef := range testDefs {
		addr, err := NewAddress(testDef.address)
		require.NoError(t, err, "failed to decode address")
		assert.Equal(t, testDef.expectedNetworkId, addr.NetworkId())
	}
}

func TestNetworkLookup(t *testing.T) {
	assert.Equal(t, NetworkMainnet, NetworkByName("mainnet"))
	assert.Equal(t, NetworkPreview, NetworkByName("preview"))
	assert.Equal(t, NetworkInvalid, NetworkByName("bogus"))
	assert.Equal(t, NetworkPreprod, NetworkByNetworkMagic(1))
	assert.Equal(t, NetworkMainnet, NetworkById(AddressNetworkMainnet))
	assert.Equal(t, NetworkTestnet, NetworkById(AddressNetworkTestnet))
	assert.Equal(t, NetworkInvalid, NetworkById(7))
	assert.True(t, NetworkMainnet.IsMainnet())
	assert.False(t, NetworkPreprod.IsMainnet())
}
