// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration shared by
// crontest packages.
//
// CBOR is used in two places: schedule descriptors are hashed over
// their CBOR encoding to produce fingerprints, and the CLI can emit
// query results as CBOR (--format cbor) for consumption by other
// tools. Both need byte-identical output for identical input, so the
// encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items.
//
// Times encode as RFC 3339 text strings wrapped in tag 0, preserving
// the zone offset of each occurrence.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types carry `json` struct tags; fxamacker/cbor reads them when no
// `cbor` tag is present, so one tag controls JSON, YAML-adjacent CLI
// output and CBOR naming alike.
package codec
