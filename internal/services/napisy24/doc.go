// Package napisy24 wraps the NAPISY24 subtitle agent API
// (CheckSubAgent.php): a form POST keyed by the 64-bit file hash answered
// with an "OK-2|...||<zip>" framed subtitle archive.
package napisy24
