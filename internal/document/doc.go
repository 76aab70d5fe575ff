// Package document defines the on-disk competition format and its decoding.
//
// A competition document is JSON (or YAML with the same shape). Decoding
// runs in two gates:
//
//  1. Schema: the input is unified with the embedded CUE schema
//     (#Competition in schema.cue). Shape errors stop here with positions.
//  2. Typing: the input is decoded into the Go wire types below.
//
// Semantic checks (duplicate IDs, dangling references, score rules) belong
// to package competition, which builds the derivation graph from these
// types. This package makes no decisions about the competition itself.
package document
