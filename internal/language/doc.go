// Package language normalizes subtitle language identifiers and maps them to
// the wire tokens each subtitle service expects (NAPI-PROJEKT uses "PL"/"ENG",
// NAPISY24 uses lowercase ISO codes).
package language
