// Package digest turns command-line inputs into the lookup keys the subtitle
// services expect: the MD5-prefix digest for NAPI-PROJEKT and the 64-bit
// size-plus-edges hash for NAPISY24. It also parses "napiprojekt:<digest>"
// literals, which skip hashing entirely.
package digest
