// Package auth holds the credential material for the exchange API and
// produces the signed headers that authenticated requests carry.
//
// Every authenticated request is signed over the string
//
//	{timestamp}{METHOD}{path}
//
// where timestamp is the number of milliseconds since the Unix epoch and
// path is the request path without its query string. The signature travels
// base64 encoded in the KALSHI-ACCESS-SIGNATURE header alongside the key id
// and the timestamp used to produce it.
package auth
