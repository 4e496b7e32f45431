// Package body encodes request payloads.
//
// # Form Bodies
//
// [NewURLEncoded] writes the string parameters of a [params.Params] as
// application/x-www-form-urlencoded. [NewMultipart] writes strings and
// binaries as multipart/form-data:
//
//	p := params.NewBuilder().
//		PutString("title", "holiday").
//		AddBinary("photo", photo).
//		Build()
//	mp, err := body.NewMultipart(p, body.WithCharset("utf-8"))
//	size := mp.Length() // photo is not read
//	_, err = mp.WriteTo(conn)
//
// # Sizing
//
// Every encoder computes Length by running WriteTo against a [Counter].
// The multipart encoder asks a Counter to skip over binary parts instead of
// streaming them, so sizing a large upload costs no I/O.
//
// # Explicit Bodies
//
// [NewBytes], [NewString] and [NewJSON] produce fixed payloads for requests
// that do not send form parameters.
package body
