// Package napiprojekt wraps the NAPI-PROJEKT subtitle download API
// (api-napiprojekt3.php): a form POST keyed by content digest answered with an
// XML envelope carrying the base64-encoded subtitle text.
package napiprojekt
